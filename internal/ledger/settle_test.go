package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanSettlement(t *testing.T) {
	t.Run("largest debtor pays largest creditor first", func(t *testing.T) {
		// Net positions: alice +40, bob -25, carol -15.
		balances := map[Pair]decimal.Decimal{
			{Debtor: "bob", Creditor: "alice"}:   d("25"),
			{Debtor: "carol", Creditor: "alice"}: d("15"),
		}

		plan := PlanSettlement(balances)

		require.Len(t, plan, 2)
		assert.Equal(t, Transfer{From: "bob", To: "alice", Amount: d("25")}, plan[0])
		assert.Equal(t, Transfer{From: "carol", To: "alice", Amount: d("15")}, plan[1])
	})

	t.Run("ties broken by member ID ascending", func(t *testing.T) {
		balances := map[Pair]decimal.Decimal{
			{Debtor: "zoe", Creditor: "carol"}:  d("10"),
			{Debtor: "anna", Creditor: "carol"}: d("10"),
		}

		plan := PlanSettlement(balances)

		require.Len(t, plan, 2)
		assert.Equal(t, "anna", plan[0].From)
		assert.Equal(t, "zoe", plan[1].From)
	})

	t.Run("cross debts collapse through an intermediary", func(t *testing.T) {
		// bob owes alice 10, carol owes bob 10: one hop, carol pays alice.
		balances := map[Pair]decimal.Decimal{
			{Debtor: "bob", Creditor: "alice"}: d("10"),
			{Debtor: "carol", Creditor: "bob"}: d("10"),
		}

		plan := PlanSettlement(balances)

		require.Len(t, plan, 1)
		assert.Equal(t, Transfer{From: "carol", To: "alice", Amount: d("10")}, plan[0])
	})

	t.Run("empty balances need no transfers", func(t *testing.T) {
		assert.Empty(t, PlanSettlement(nil))
		assert.Empty(t, PlanSettlement(map[Pair]decimal.Decimal{}))
	})

	t.Run("plan zeroes every position within the transfer bound", func(t *testing.T) {
		balances := map[Pair]decimal.Decimal{
			{Debtor: "bob", Creditor: "alice"}:   d("17.25"),
			{Debtor: "carol", Creditor: "alice"}: d("4.50"),
			{Debtor: "carol", Creditor: "bob"}:   d("12.00"),
			{Debtor: "dave", Creditor: "carol"}:  d("3.75"),
			{Debtor: "dave", Creditor: "alice"}:  d("0.99"),
		}

		positions := make(map[string]decimal.Decimal)
		for pair, amount := range balances {
			positions[pair.Creditor] = positions[pair.Creditor].Add(amount)
			positions[pair.Debtor] = positions[pair.Debtor].Sub(amount)
		}
		nonZero := 0
		for _, pos := range positions {
			if !pos.IsZero() {
				nonZero++
			}
		}

		plan := PlanSettlement(balances)

		assert.LessOrEqual(t, len(plan), nonZero-1)
		for _, tr := range plan {
			assert.True(t, tr.Amount.IsPositive())
			positions[tr.From] = positions[tr.From].Add(tr.Amount)
			positions[tr.To] = positions[tr.To].Sub(tr.Amount)
		}
		for id, pos := range positions {
			assert.True(t, pos.IsZero(), "position for %s = %s after settling", id, pos)
		}
	})

	t.Run("settled members are excluded", func(t *testing.T) {
		// bob both owes and is owed 5: net zero, no transfer involves bob.
		balances := map[Pair]decimal.Decimal{
			{Debtor: "bob", Creditor: "alice"}: d("5"),
			{Debtor: "carol", Creditor: "bob"}: d("5"),
		}

		for _, tr := range PlanSettlement(balances) {
			assert.NotEqual(t, "bob", tr.From)
			assert.NotEqual(t, "bob", tr.To)
		}
	})
}

func TestAggregateThenPlan(t *testing.T) {
	// Full pipeline: history -> balances -> plan discharges everything.
	expenses := []ExpenseForBalance{
		expense("alice", "90", map[string]string{"alice": "30", "bob": "30", "carol": "30"}),
		expense("bob", "30", map[string]string{"bob": "10", "carol": "10", "alice": "10"}),
	}
	payments := []PaymentForBalance{
		payment("carol", "alice", "10", true),
	}

	balances, err := AggregateBalances(groupID, expenses, payments)
	require.NoError(t, err)

	positions := make(map[string]decimal.Decimal)
	for pair, amount := range balances {
		positions[pair.Creditor] = positions[pair.Creditor].Add(amount)
		positions[pair.Debtor] = positions[pair.Debtor].Sub(amount)
	}

	for _, tr := range PlanSettlement(balances) {
		positions[tr.From] = positions[tr.From].Add(tr.Amount)
		positions[tr.To] = positions[tr.To].Sub(tr.Amount)
	}
	for id, pos := range positions {
		assert.True(t, pos.IsZero(), "position for %s = %s", id, pos)
	}
}
