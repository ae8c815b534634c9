package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranusri1903/expense-tracker/internal/entity/account"
	"github.com/pranusri1903/expense-tracker/internal/entity/expense"
)

type pathConfig struct {
	path string
}

func (c pathConfig) Path() string { return c.path }

func newTestSqlite(t *testing.T) *SqliteStorage {
	t.Helper()
	s, err := NewSqliteStorage(pathConfig{path: filepath.Join(t.TempDir(), "tracker.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func Test_OnSqliteExpensesRoundTrip_ShouldPreserveOrderAndValues(t *testing.T) {
	ctx := context.Background()
	s := newTestSqlite(t)

	saved := []expense.Record{
		record(t, "01/15/2024", expense.Food, "Lunch", "12.50"),
		record(t, "01/10/2024", expense.Food, "Dinner", "30.00"),
		record(t, "02/01/2024", expense.Transportation, "Bus", "2.75"),
	}
	require.NoError(t, s.SaveExpenses(ctx, "alice", saved))

	loaded, err := s.LoadExpenses(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, loaded, len(saved))
	for i := range saved {
		assert.True(t, saved[i].Equal(loaded[i]), i)
	}
}

func Test_OnSqliteSave_ShouldOverwriteWholeCollection(t *testing.T) {
	ctx := context.Background()
	s := newTestSqlite(t)

	require.NoError(t, s.SaveExpenses(ctx, "alice", []expense.Record{
		record(t, "01/15/2024", expense.Food, "Lunch", "12.50"),
	}))
	require.NoError(t, s.SaveExpenses(ctx, "alice", []expense.Record{
		record(t, "02/01/2024", expense.Transportation, "Bus", "2.75"),
		record(t, "01/10/2024", expense.Food, "Dinner", "30.00"),
	}))

	loaded, err := s.LoadExpenses(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Bus", loaded[0].Description)
	assert.Equal(t, "Dinner", loaded[1].Description)
}

func Test_OnSqliteMissingUser_ShouldYieldEmptyCollection(t *testing.T) {
	s := newTestSqlite(t)

	loaded, err := s.LoadExpenses(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func Test_OnSqliteAccountsRoundTrip_ShouldPreserveOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestSqlite(t)

	saved := []account.Account{
		{Username: "alice", Password: "pw1"},
		{Username: "bob", Password: "pw2"},
	}
	require.NoError(t, s.SaveAccounts(ctx, saved))

	loaded, err := s.LoadAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}
