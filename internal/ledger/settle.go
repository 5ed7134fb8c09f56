package ledger

import "github.com/shopspring/decimal"

// Transfer is one suggested settlement payment.
type Transfer struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// PlanSettlement reduces a balance map to a minimal list of transfers that,
// executed against the same snapshot, drives every member's net position to
// zero.
//
// Greedy debt simplification: repeatedly match the creditor owed the most
// with the debtor owing the most (ties broken by member ID, ascending) and
// transfer the smaller of the two magnitudes. At most one fewer transfers
// than members with a non-zero position are emitted.
func PlanSettlement(balances map[Pair]decimal.Decimal) []Transfer {
	// Collapse pairwise balances into one net position per member.
	positions := make(map[string]decimal.Decimal)
	for pair, amount := range balances {
		positions[pair.Creditor] = positions[pair.Creditor].Add(amount)
		positions[pair.Debtor] = positions[pair.Debtor].Sub(amount)
	}

	type party struct {
		id     string
		amount decimal.Decimal // always positive
	}
	var creditors, debtors []party
	for id, pos := range positions {
		switch {
		case pos.IsPositive():
			creditors = append(creditors, party{id, pos})
		case pos.IsNegative():
			debtors = append(debtors, party{id, pos.Neg()})
		}
	}

	// Index of the party with the largest outstanding amount, smallest ID
	// winning ties.
	largest := func(parties []party) int {
		best := 0
		for i := 1; i < len(parties); i++ {
			switch parties[i].amount.Cmp(parties[best].amount) {
			case 1:
				best = i
			case 0:
				if parties[i].id < parties[best].id {
					best = i
				}
			}
		}
		return best
	}

	remove := func(parties []party, i int) []party {
		return append(parties[:i], parties[i+1:]...)
	}

	var transfers []Transfer
	for len(creditors) > 0 && len(debtors) > 0 {
		ci := largest(creditors)
		di := largest(debtors)

		amount := creditors[ci].amount
		if debtors[di].amount.LessThan(amount) {
			amount = debtors[di].amount
		}

		transfers = append(transfers, Transfer{
			From:   debtors[di].id,
			To:     creditors[ci].id,
			Amount: amount,
		})

		creditors[ci].amount = creditors[ci].amount.Sub(amount)
		debtors[di].amount = debtors[di].amount.Sub(amount)
		if creditors[ci].amount.IsZero() {
			creditors = remove(creditors, ci)
		}
		if debtors[di].amount.IsZero() {
			debtors = remove(debtors, di)
		}
	}

	return transfers
}
