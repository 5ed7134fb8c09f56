package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groupID = "g1"

func expense(payer, total string, shares map[string]string) ExpenseForBalance {
	s := make(map[string]decimal.Decimal, len(shares))
	for id, amount := range shares {
		s[id] = d(amount)
	}
	return ExpenseForBalance{GroupID: groupID, PayerID: payer, Total: d(total), Shares: s}
}

func payment(from, to, amount string, completed bool) PaymentForBalance {
	return PaymentForBalance{GroupID: groupID, FromUserID: from, ToUserID: to, Amount: d(amount), Completed: completed}
}

func TestAggregateBalances(t *testing.T) {
	t.Run("participant owes payer their share", func(t *testing.T) {
		balances, err := AggregateBalances(groupID, []ExpenseForBalance{
			expense("alice", "30", map[string]string{"alice": "15", "bob": "15"}),
		}, nil)
		require.NoError(t, err)

		require.Len(t, balances, 1)
		assert.True(t, balances[Pair{Debtor: "bob", Creditor: "alice"}].Equal(d("15")))
	})

	t.Run("completed payment settles the debt", func(t *testing.T) {
		balances, err := AggregateBalances(groupID, []ExpenseForBalance{
			expense("alice", "30", map[string]string{"alice": "15", "bob": "15"}),
		}, []PaymentForBalance{
			payment("bob", "alice", "15", true),
		})
		require.NoError(t, err)
		assert.Empty(t, balances)
	})

	t.Run("pending and cancelled payments are ignored", func(t *testing.T) {
		balances, err := AggregateBalances(groupID, []ExpenseForBalance{
			expense("alice", "30", map[string]string{"alice": "15", "bob": "15"}),
		}, []PaymentForBalance{
			payment("bob", "alice", "15", false),
		})
		require.NoError(t, err)

		require.Len(t, balances, 1)
		assert.True(t, balances[Pair{Debtor: "bob", Creditor: "alice"}].Equal(d("15")))
	})

	t.Run("overpayment becomes a credit in the opposite direction", func(t *testing.T) {
		balances, err := AggregateBalances(groupID, []ExpenseForBalance{
			expense("alice", "20", map[string]string{"alice": "10", "bob": "10"}),
		}, []PaymentForBalance{
			payment("bob", "alice", "25", true),
		})
		require.NoError(t, err)

		require.Len(t, balances, 1)
		assert.True(t, balances[Pair{Debtor: "alice", Creditor: "bob"}].Equal(d("15")))
	})

	t.Run("opposite debts net to a single direction", func(t *testing.T) {
		balances, err := AggregateBalances(groupID, []ExpenseForBalance{
			expense("alice", "30", map[string]string{"alice": "15", "bob": "15"}),
			expense("bob", "20", map[string]string{"alice": "10", "bob": "10"}),
		}, nil)
		require.NoError(t, err)

		require.Len(t, balances, 1)
		assert.True(t, balances[Pair{Debtor: "bob", Creditor: "alice"}].Equal(d("5")))
		_, both := balances[Pair{Debtor: "alice", Creditor: "bob"}]
		assert.False(t, both)
	})

	t.Run("reversal cancels the reversed expense", func(t *testing.T) {
		original := expense("alice", "30", map[string]string{"alice": "15", "bob": "15"})
		reversal := original
		reversal.Reversal = true

		balances, err := AggregateBalances(groupID, []ExpenseForBalance{original, reversal}, nil)
		require.NoError(t, err)
		assert.Empty(t, balances)
	})

	t.Run("order of history never changes the result", func(t *testing.T) {
		expenses := []ExpenseForBalance{
			expense("alice", "60", map[string]string{"alice": "20", "bob": "20", "carol": "20"}),
			expense("bob", "9", map[string]string{"bob": "3", "carol": "3", "alice": "3"}),
			expense("carol", "14", map[string]string{"carol": "7", "alice": "7"}),
		}
		payments := []PaymentForBalance{
			payment("bob", "alice", "5", true),
			payment("carol", "alice", "10", true),
			payment("carol", "bob", "2", false),
		}

		want, err := AggregateBalances(groupID, expenses, payments)
		require.NoError(t, err)

		reversedE := []ExpenseForBalance{expenses[2], expenses[0], expenses[1]}
		reversedP := []PaymentForBalance{payments[2], payments[0], payments[1]}
		got, err := AggregateBalances(groupID, reversedE, reversedP)
		require.NoError(t, err)

		require.Len(t, got, len(want))
		for pair, amount := range want {
			assert.True(t, got[pair].Equal(amount), "pair %v: got %s want %s", pair, got[pair], amount)
		}
	})

	t.Run("expense from another group is a computation error", func(t *testing.T) {
		e := expense("alice", "10", map[string]string{"alice": "5", "bob": "5"})
		e.GroupID = "other"

		_, err := AggregateBalances(groupID, []ExpenseForBalance{e}, nil)
		assert.ErrorIs(t, err, ErrComputation)
	})

	t.Run("irreconcilable shares are a computation error", func(t *testing.T) {
		e := expense("alice", "10", map[string]string{"alice": "5", "bob": "4.99"})

		_, err := AggregateBalances(groupID, []ExpenseForBalance{e}, nil)
		assert.ErrorIs(t, err, ErrComputation)
	})

	t.Run("payment from another group is a computation error", func(t *testing.T) {
		p := payment("bob", "alice", "5", true)
		p.GroupID = "other"

		_, err := AggregateBalances(groupID, nil, []PaymentForBalance{p})
		assert.ErrorIs(t, err, ErrComputation)
	})
}

func TestEntries(t *testing.T) {
	balances := map[Pair]decimal.Decimal{
		{Debtor: "carol", Creditor: "alice"}: d("3"),
		{Debtor: "bob", Creditor: "carol"}:   d("1"),
		{Debtor: "bob", Creditor: "alice"}:   d("2"),
	}

	entries := Entries(balances)
	require.Len(t, entries, 3)
	assert.Equal(t, "bob", entries[0].Debtor)
	assert.Equal(t, "alice", entries[0].Creditor)
	assert.Equal(t, "bob", entries[1].Debtor)
	assert.Equal(t, "carol", entries[1].Creditor)
	assert.Equal(t, "carol", entries[2].Debtor)
}
