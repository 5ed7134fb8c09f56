package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/splitpot/splitpot/internal/models"
	"github.com/splitpot/splitpot/internal/storage"
	"github.com/splitpot/splitpot/internal/storage/sqlite"
)

// testEnv bundles the services over one temp SQLite store plus three
// registered users in one group.
type testEnv struct {
	store    storage.Store
	groups   *GroupService
	expenses *ExpenseService
	payments *PaymentService

	alice, bob, carol string
	group             *models.Group
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	env := &testEnv{
		store:    store,
		groups:   NewGroupService(store),
		expenses: NewExpenseService(store),
		payments: NewPaymentService(store),
	}

	ctx := context.Background()
	for name, id := range map[string]*string{"alice": &env.alice, "bob": &env.bob, "carol": &env.carol} {
		user := models.NewUser(name+"@example.com", name, "hash")
		require.NoError(t, store.CreateUser(ctx, user))
		*id = user.ID
	}

	env.group, err = env.groups.CreateGroup(ctx, "Ski Trip", env.alice, []string{env.bob, env.carol})
	require.NoError(t, err)
	return env
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
