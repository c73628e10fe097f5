package tables_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salarydash/internal/platform/config"
	"salarydash/internal/platform/db"
	"salarydash/internal/platform/tables"
)

func TestPostgresProviderRoundTrip(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, config.Config{DatabaseURL: dbURL})
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, db.Migrate(ctx, pool, "../../../migrations"))

	store := tables.NewPostgres(pool)
	require.NoError(t, store.Ping(ctx))

	collection := fmt.Sprintf("master_%d", time.Now().UnixNano())
	require.NoError(t, store.EnsureCollection(ctx, collection, []string{"Emp Name ", "Area"}))
	require.NoError(t, store.AppendRow(ctx, collection, []string{"Asha", "North"}))
	require.NoError(t, store.AppendRow(ctx, collection, []string{"Ravi", "South"}))
	require.NoError(t, store.AppendRow(ctx, collection, []string{"Asha", "East"}))

	handle, ok, err := store.FindRow(ctx, collection, "Emp Name", " Asha ")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, store.DeleteRow(ctx, handle))

	table, err := store.GetAllRows(ctx, collection)
	require.NoError(t, err)
	assert.Equal(t, []string{"Emp Name ", "Area"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Ravi", table.Rows[0]["Emp Name "])
	assert.Equal(t, "East", table.Rows[1]["Area"])

	require.NoError(t, store.ReplaceRows(ctx, collection, []string{"Emp Name"}, [][]string{{"Only"}}))
	table, err = store.GetAllRows(ctx, collection)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Only", table.Rows[0]["Emp Name"])
}
