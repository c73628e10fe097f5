package tables

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryEnsureCollectionKeepsExistingHeader(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.EnsureCollection(ctx, "master_data", []string{"Emp Name", "Net Salary PM"}))
	require.NoError(t, store.AppendRow(ctx, "master_data", []string{"Asha", "30000"}))
	require.NoError(t, store.EnsureCollection(ctx, "master_data", []string{"Other"}))

	table, err := store.GetAllRows(ctx, "master_data")
	require.NoError(t, err)
	assert.Equal(t, []string{"Emp Name", "Net Salary PM"}, table.Header)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "30000", table.Rows[0]["Net Salary PM"])
}

func TestMemoryGetAllRowsUnknownCollection(t *testing.T) {
	table, err := NewMemory().GetAllRows(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, table.Header)
	assert.Empty(t, table.Rows)
}

func TestMemoryPadsShortRows(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	require.NoError(t, store.EnsureCollection(ctx, "c", []string{"a", "b", "c"}))
	require.NoError(t, store.AppendRow(ctx, "c", []string{"1"}))

	table, err := store.GetAllRows(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, Row{"a": "1", "b": "", "c": ""}, table.Rows[0])
}

func TestMemoryFindRowFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	require.NoError(t, store.EnsureCollection(ctx, "master_data", []string{" Emp Name ", "Area"}))
	require.NoError(t, store.AppendRow(ctx, "master_data", []string{"Ravi", "North"}))
	require.NoError(t, store.AppendRow(ctx, "master_data", []string{"Asha", "South"}))
	require.NoError(t, store.AppendRow(ctx, "master_data", []string{"Asha ", "East"}))

	handle, ok, err := store.FindRow(ctx, "master_data", "Emp Name", "Asha")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, store.DeleteRow(ctx, handle))

	table, err := store.GetAllRows(ctx, "master_data")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "East", table.Rows[1]["Area"])

	_, ok, err = store.FindRow(ctx, "master_data", "Emp Name", "Nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryDeleteStaleHandle(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	require.NoError(t, store.AppendRow(ctx, "c", []string{"x"}))
	err := store.DeleteRow(ctx, RowHandle{Collection: "c", Ref: 99})
	assert.True(t, errors.Is(err, ErrRowNotFound))
}

func TestMemoryReplaceRows(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	require.NoError(t, store.ReplaceRows(ctx, "Mar", []string{"Emp Name"}, [][]string{{"a"}, {"b"}}))
	require.NoError(t, store.ReplaceRows(ctx, "Mar", []string{"Emp Name", "Final Payable"}, [][]string{{"c", "10"}}))

	table, err := store.GetAllRows(ctx, "Mar")
	require.NoError(t, err)
	assert.Equal(t, []string{"Emp Name", "Final Payable"}, table.Header)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "c", table.Rows[0]["Emp Name"])
}

func TestConnectionErrorUnwraps(t *testing.T) {
	base := errors.New("dial tcp: refused")
	err := wrap("read", "master_data", base)

	var connErr *ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, "read", connErr.Op)
	assert.True(t, errors.Is(err, base))
	assert.Contains(t, err.Error(), `"master_data"`)

	assert.Same(t, err, wrap("append", "other", err))
	assert.Nil(t, wrap("read", "x", nil))
}

func TestA1QuotesTitles(t *testing.T) {
	assert.Equal(t, "'Mar'", a1("Mar"))
	assert.Equal(t, "'O''Brien'", a1("O'Brien"))
}
