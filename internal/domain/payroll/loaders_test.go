package payroll

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salarydash/internal/platform/tables"
)

func seed(t *testing.T, store tables.Provider, collection string, header []string, rows ...[]string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.EnsureCollection(ctx, collection, header))
	for _, row := range rows {
		require.NoError(t, store.AppendRow(ctx, collection, row))
	}
}

func TestLoadEmployeeMasterTrimsHeadersAndValues(t *testing.T) {
	store := tables.NewMemory()
	seed(t, store, CollectionMaster,
		[]string{" Emp Name", "DOJ", "Group ", "Department", "Area", "Net Salary PM "},
		[]string{" Asha ", "2021-04-01", "A", "Ops", "North", "30,000"},
		[]string{"", "", "", "", "", ""},
	)

	records, err := NewLoader(store).LoadEmployeeMaster(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, EmployeeKey("Asha"), records[0].Name)
	assert.Equal(t, "A", records[0].Group)
	assert.Equal(t, 30000.0, records[0].NetSalaryPM)
}

func TestLoadEmployeeMasterMissingColumn(t *testing.T) {
	store := tables.NewMemory()
	seed(t, store, CollectionMaster, []string{"Emp Name", "Area"})

	_, err := NewLoader(store).LoadEmployeeMaster(context.Background())
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, ColNetSalary, schemaErr.Column)
	assert.Empty(t, schemaErr.Employee)
}

func TestLoadersRequireNameColumn(t *testing.T) {
	tests := []struct {
		collection string
		header     []string
		load       func(*Loader) error
	}{
		{
			collection: CollectionMaster,
			header:     []string{"DOJ", "Group", "Department", "Area", "Net Salary PM"},
			load: func(l *Loader) error {
				_, err := l.LoadEmployeeMaster(context.Background())
				return err
			},
		},
		{
			collection: CollectionAdvances,
			header:     []string{"Advance Taken", "Advance Date", "Remaining Advance"},
			load: func(l *Loader) error {
				_, err := l.LoadAdvanceLedger(context.Background())
				return err
			},
		},
		{
			collection: CollectionPeriodInput,
			header:     []string{"Month", "Working Days", "Paid Amount"},
			load: func(l *Loader) error {
				_, err := l.LoadPeriodInput(context.Background(), "Mar")
				return err
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.collection, func(t *testing.T) {
			store := tables.NewMemory()
			seed(t, store, tc.collection, tc.header)

			err := tc.load(NewLoader(store))
			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, tc.collection, schemaErr.Collection)
			assert.Equal(t, ColEmpName, schemaErr.Column)
			assert.Contains(t, err.Error(), tc.collection)
		})
	}
}

func TestLoadPeriodInputUnknownMonth(t *testing.T) {
	store := tables.NewMemory()
	seed(t, store, CollectionPeriodInput, PeriodInputHeader, []string{"Mar", "Asha", "30", "100"})

	input, err := NewLoader(store).LoadPeriodInput(context.Background(), "Xyz")
	require.NoError(t, err)
	assert.Empty(t, input.Records)
	assert.Equal(t, "Xyz", input.Month)
}

func TestLoadEmployeeMasterRejectsBadSalary(t *testing.T) {
	for _, value := range []string{"", "abc", "-10"} {
		store := tables.NewMemory()
		seed(t, store, CollectionMaster, MasterHeader, []string{"Asha", "", "", "", "", value})

		_, err := NewLoader(store).LoadEmployeeMaster(context.Background())
		var schemaErr *SchemaError
		require.True(t, errors.As(err, &schemaErr), value)
		assert.Equal(t, EmployeeKey("Asha"), schemaErr.Employee)
	}
}

func TestLoadEmployeeMasterCreatesCollection(t *testing.T) {
	store := tables.NewMemory()
	records, err := NewLoader(store).LoadEmployeeMaster(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)

	table, err := store.GetAllRows(context.Background(), CollectionMaster)
	require.NoError(t, err)
	assert.Equal(t, MasterHeader, table.Header)
}

func TestLoadAdvanceLedgerBlankRemaining(t *testing.T) {
	store := tables.NewMemory()
	seed(t, store, CollectionAdvances, AdvanceHeader,
		[]string{"Asha", "5000", "2024-01-10", "2000"},
		[]string{"Ravi", "1000", "2024-02-01", ""},
	)

	records, err := NewLoader(store).LoadAdvanceLedger(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].RemainingAdvance)
	assert.Equal(t, 2000.0, *records[0].RemainingAdvance)
	assert.Equal(t, 5000.0, records[0].AmountTaken)
	assert.Nil(t, records[1].RemainingAdvance)
}

func TestLoadPeriodInputFiltersMonth(t *testing.T) {
	store := tables.NewMemory()
	seed(t, store, CollectionPeriodInput, PeriodInputHeader,
		[]string{"Mar", "Asha", "30", "5000"},
		[]string{"Apr", "Asha", "28", ""},
		[]string{"Mar", "Ravi", "12", ""},
	)

	input, err := NewLoader(store).LoadPeriodInput(context.Background(), "Mar")
	require.NoError(t, err)
	assert.True(t, input.HasPaid)
	require.Len(t, input.Records, 2)
	require.NotNil(t, input.Records[0].PaidAmount)
	assert.Equal(t, 5000.0, *input.Records[0].PaidAmount)
	assert.Nil(t, input.Records[1].PaidAmount)
	assert.Equal(t, 12.0, input.Records[1].WorkingDays)
}

func TestLoadPeriodInputWithoutPaidColumn(t *testing.T) {
	store := tables.NewMemory()
	seed(t, store, CollectionPeriodInput, []string{"Month", "Emp Name", "Working Days"},
		[]string{"Mar", "Asha", "30"},
	)

	input, err := NewLoader(store).LoadPeriodInput(context.Background(), "Mar")
	require.NoError(t, err)
	assert.False(t, input.HasPaid)
	require.Len(t, input.Records, 1)
}

func TestLoadPeriodInputRejectsWorkingDays(t *testing.T) {
	for _, value := range []string{"", "x", "32", "-1"} {
		store := tables.NewMemory()
		seed(t, store, CollectionPeriodInput, PeriodInputHeader, []string{"Mar", "Asha", value, ""})

		_, err := NewLoader(store).LoadPeriodInput(context.Background(), "Mar")
		var schemaErr *SchemaError
		require.True(t, errors.As(err, &schemaErr), value)
		assert.Equal(t, ColWorkingDays, schemaErr.Column)
	}
}

func TestBootstrapCreatesSources(t *testing.T) {
	store := tables.NewMemory()
	require.NoError(t, NewLoader(store).Bootstrap(context.Background()))
	for name, header := range map[string][]string{
		CollectionMaster:      MasterHeader,
		CollectionAdvances:    AdvanceHeader,
		CollectionPeriodInput: PeriodInputHeader,
	} {
		table, err := store.GetAllRows(context.Background(), name)
		require.NoError(t, err)
		assert.Equal(t, header, table.Header)
	}
}

func TestParseAmount(t *testing.T) {
	v, ok := parseAmount(" 1,234.50 ")
	assert.True(t, ok)
	assert.Equal(t, 1234.5, v)

	_, ok = parseAmount("NaN")
	assert.False(t, ok)
	_, ok = parseAmount("")
	assert.False(t, ok)
}
