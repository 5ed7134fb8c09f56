package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Pair is a directed debtor→creditor edge in the balance map.
type Pair struct {
	Debtor   string
	Creditor string
}

// BalanceEntry is one netted debt: Debtor owes Creditor Amount.
type BalanceEntry struct {
	Debtor   string
	Creditor string
	Amount   decimal.Decimal
}

// ExpenseForBalance carries the minimal expense fields needed for
// aggregation. Reversal flips the direction of every share, cancelling the
// reversed record.
type ExpenseForBalance struct {
	GroupID  string
	PayerID  string
	Total    decimal.Decimal
	Shares   map[string]decimal.Decimal
	Reversal bool
}

// PaymentForBalance carries the minimal payment fields needed for
// aggregation. Only completed payments move balances; pending and cancelled
// payments are informational.
type PaymentForBalance struct {
	GroupID    string
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
	Completed  bool
}

// AggregateBalances folds a group's full expense and payment history into a
// net pairwise debt map. Each unordered member pair appears at most once,
// netted to a single positive amount in one direction; fully settled pairs
// are omitted.
//
// The fold is commutative: permuting the input slices never changes the
// result. Records referencing a different group, or expenses whose shares do
// not reconcile to their total, abort with ErrComputation.
func AggregateBalances(groupID string, expenses []ExpenseForBalance, payments []PaymentForBalance) (map[Pair]decimal.Decimal, error) {
	// Signed ledger keyed by lexicographically ordered pairs: a positive
	// value means the smaller ID owes the larger ID.
	net := make(map[[2]string]decimal.Decimal)
	add := func(debtor, creditor string, amount decimal.Decimal) {
		if debtor == creditor {
			return
		}
		if debtor < creditor {
			net[[2]string{debtor, creditor}] = net[[2]string{debtor, creditor}].Add(amount)
		} else {
			net[[2]string{creditor, debtor}] = net[[2]string{creditor, debtor}].Sub(amount)
		}
	}

	for _, e := range expenses {
		if e.GroupID != groupID {
			return nil, computationErrorf("expense belongs to group %q, not %q", e.GroupID, groupID)
		}
		sum := decimal.Zero
		for _, share := range e.Shares {
			sum = sum.Add(share)
		}
		if !sum.Equal(e.Total) {
			return nil, computationErrorf("expense shares sum to %s, expected %s", sum, e.Total)
		}
		for participant, share := range e.Shares {
			if participant == e.PayerID {
				continue
			}
			if e.Reversal {
				add(e.PayerID, participant, share)
			} else {
				add(participant, e.PayerID, share)
			}
		}
	}

	for _, p := range payments {
		if p.GroupID != groupID {
			return nil, computationErrorf("payment belongs to group %q, not %q", p.GroupID, groupID)
		}
		if !p.Completed {
			continue
		}
		// A completed payment reduces what the payer owes the payee; an
		// overshoot becomes a credit in the opposite direction.
		add(p.FromUserID, p.ToUserID, p.Amount.Neg())
	}

	balances := make(map[Pair]decimal.Decimal, len(net))
	for pair, amount := range net {
		switch {
		case amount.IsPositive():
			balances[Pair{Debtor: pair[0], Creditor: pair[1]}] = amount
		case amount.IsNegative():
			balances[Pair{Debtor: pair[1], Creditor: pair[0]}] = amount.Neg()
		}
	}
	return balances, nil
}

// Entries flattens a balance map into a slice sorted by debtor then creditor,
// for deterministic presentation.
func Entries(balances map[Pair]decimal.Decimal) []BalanceEntry {
	entries := make([]BalanceEntry, 0, len(balances))
	for pair, amount := range balances {
		entries = append(entries, BalanceEntry{Debtor: pair.Debtor, Creditor: pair.Creditor, Amount: amount})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Debtor != entries[j].Debtor {
			return entries[i].Debtor < entries[j].Debtor
		}
		return entries[i].Creditor < entries[j].Creditor
	})
	return entries
}
