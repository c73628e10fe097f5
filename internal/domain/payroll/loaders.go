package payroll

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"salarydash/internal/platform/tables"
)

// Loader reads the three source collections into typed records. Headers and
// cell values are trimmed before use.
type Loader struct {
	store tables.Provider
}

func NewLoader(store tables.Provider) *Loader {
	return &Loader{store: store}
}

// Bootstrap creates any missing source collection with its default header.
func (l *Loader) Bootstrap(ctx context.Context) error {
	for _, c := range []struct {
		name   string
		header []string
	}{
		{CollectionMaster, MasterHeader},
		{CollectionAdvances, AdvanceHeader},
		{CollectionPeriodInput, PeriodInputHeader},
	} {
		if err := l.store.EnsureCollection(ctx, c.name, c.header); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) LoadEmployeeMaster(ctx context.Context) ([]EmployeeRecord, error) {
	rows, _, err := l.load(ctx, CollectionMaster, MasterHeader, ColEmpName, ColNetSalary)
	if err != nil {
		return nil, err
	}
	out := make([]EmployeeRecord, 0, len(rows))
	for _, row := range rows {
		name := NewEmployeeKey(row[ColEmpName])
		if name == "" {
			continue
		}
		salary, ok := parseAmount(row[ColNetSalary])
		if !ok {
			return nil, &SchemaError{Collection: CollectionMaster, Column: ColNetSalary, Employee: name, Reason: fmt.Sprintf("has invalid value %q", row[ColNetSalary])}
		}
		if salary < 0 {
			return nil, &SchemaError{Collection: CollectionMaster, Column: ColNetSalary, Employee: name, Reason: "is negative"}
		}
		out = append(out, EmployeeRecord{
			Name:          name,
			DateOfJoining: row[ColDateOfJoining],
			Group:         row[ColGroup],
			Department:    row[ColDepartment],
			Area:          row[ColArea],
			NetSalaryPM:   salary,
		})
	}
	return out, nil
}

func (l *Loader) LoadAdvanceLedger(ctx context.Context) ([]AdvanceRecord, error) {
	rows, _, err := l.load(ctx, CollectionAdvances, AdvanceHeader, ColEmpName, ColRemainingAdvance)
	if err != nil {
		return nil, err
	}
	out := make([]AdvanceRecord, 0, len(rows))
	for _, row := range rows {
		name := NewEmployeeKey(row[ColEmpName])
		if name == "" {
			continue
		}
		taken, _ := parseAmount(row[ColAdvanceTaken])
		record := AdvanceRecord{Name: name, AmountTaken: taken, DateTaken: row[ColAdvanceDate]}
		if remaining, ok := parseAmount(row[ColRemainingAdvance]); ok {
			record.RemainingAdvance = &remaining
		}
		out = append(out, record)
	}
	return out, nil
}

// LoadPeriodInput returns the monthly input rows whose Month equals month.
// The month label is matched as stored and is not validated here.
func (l *Loader) LoadPeriodInput(ctx context.Context, month string) (PeriodInput, error) {
	rows, columns, err := l.load(ctx, CollectionPeriodInput, PeriodInputHeader, ColMonth, ColEmpName, ColWorkingDays)
	if err != nil {
		return PeriodInput{}, err
	}
	input := PeriodInput{Month: month, HasPaid: columns[ColPaidAmount]}
	for _, row := range rows {
		if row[ColMonth] != month {
			continue
		}
		name := NewEmployeeKey(row[ColEmpName])
		if name == "" {
			continue
		}
		days, ok := parseAmount(row[ColWorkingDays])
		if !ok || days < 0 || days > MaxWorkingDays {
			return PeriodInput{}, &SchemaError{
				Collection: CollectionPeriodInput,
				Column:     ColWorkingDays,
				Employee:   name,
				Reason:     fmt.Sprintf("has invalid value %q", row[ColWorkingDays]),
			}
		}
		record := PayrollInputRecord{Month: month, Name: name, WorkingDays: days}
		if input.HasPaid {
			if paid, ok := parseAmount(row[ColPaidAmount]); ok {
				record.PaidAmount = &paid
			}
		}
		input.Records = append(input.Records, record)
	}
	return input, nil
}

// load returns rows keyed by trimmed column name with trimmed values, plus the
// set of columns present. A required column missing from the header is a
// SchemaError even when the collection holds no rows.
func (l *Loader) load(ctx context.Context, collection string, header []string, required ...string) ([]map[string]string, map[string]bool, error) {
	if err := l.store.EnsureCollection(ctx, collection, header); err != nil {
		return nil, nil, err
	}
	table, err := l.store.GetAllRows(ctx, collection)
	if err != nil {
		return nil, nil, err
	}

	columns := make(map[string]bool, len(table.Header))
	raw := make(map[string]string, len(table.Header))
	for _, cell := range table.Header {
		name := strings.TrimSpace(cell)
		if name == "" || columns[name] {
			continue
		}
		columns[name] = true
		raw[name] = cell
	}
	for _, column := range required {
		if !columns[column] {
			return nil, nil, &SchemaError{Collection: collection, Column: column}
		}
	}

	rows := make([]map[string]string, 0, len(table.Rows))
	for _, source := range table.Rows {
		row := make(map[string]string, len(raw))
		blank := true
		for name, cell := range raw {
			value := strings.TrimSpace(source[cell])
			row[name] = value
			if value != "" {
				blank = false
			}
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	return rows, columns, nil
}

// parseAmount accepts plain or comma grouped numbers. Blank and non-numeric
// cells report false.
func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
