package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// cent is one minor unit of the ledger currency.
var cent = decimal.New(1, -2)

// Split divides total equally among participants.
//
// Each share is total/N truncated to two decimal places; the truncation
// remainder is handed out one cent at a time to the first participants in
// the supplied order. The shares therefore always sum to total exactly, and
// identical input always yields identical output.
func Split(total decimal.Decimal, participants []string) (map[string]decimal.Decimal, error) {
	return SplitWeighted(total, participants, nil)
}

// SplitWeighted divides total among participants proportionally to weights.
// A nil weights map means uniform weights, i.e. an equal split. Weights, when
// supplied, must cover every participant and sum to a positive value.
//
// This is the extension seam for custom splits; the service layer currently
// only exposes the equal split.
func SplitWeighted(total decimal.Decimal, participants []string, weights map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	if !total.IsPositive() {
		return nil, &ValidationError{Code: CodeInvalidAmount, Message: "amount must be greater than zero"}
	}
	if !total.Equal(total.Truncate(2)) {
		return nil, &ValidationError{Code: CodeInvalidAmount, Message: "amount must have at most two decimal places"}
	}
	if len(participants) == 0 {
		return nil, &ValidationError{Code: CodeEmptyParticipants, Message: "at least one participant is required"}
	}

	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if seen[p] {
			return nil, &ValidationError{
				Code:    CodeDuplicateParticipant,
				Message: fmt.Sprintf("participant %q appears more than once", p),
			}
		}
		seen[p] = true
	}

	totalWeight := decimal.Zero
	if weights != nil {
		for _, p := range participants {
			w, ok := weights[p]
			if !ok {
				return nil, fmt.Errorf("missing weight for participant %q", p)
			}
			if w.IsNegative() {
				return nil, fmt.Errorf("negative weight for participant %q", p)
			}
			totalWeight = totalWeight.Add(w)
		}
		if !totalWeight.IsPositive() {
			return nil, fmt.Errorf("weights must sum to a positive value")
		}
	}

	// Truncated base shares; truncation loses strictly less than one cent
	// per participant, so the remainder is a non-negative integer number of
	// cents smaller than len(participants).
	shares := make(map[string]decimal.Decimal, len(participants))
	assigned := decimal.Zero
	n := decimal.NewFromInt(int64(len(participants)))
	for _, p := range participants {
		var share decimal.Decimal
		if weights == nil {
			share = total.Div(n).Truncate(2)
		} else {
			share = total.Mul(weights[p]).Div(totalWeight).Truncate(2)
		}
		shares[p] = share
		assigned = assigned.Add(share)
	}

	remainderCents := total.Sub(assigned).Div(cent).IntPart()
	for _, p := range participants {
		if remainderCents == 0 {
			break
		}
		shares[p] = shares[p].Add(cent)
		remainderCents--
	}

	// Reconciliation guard: refuse to emit shares that do not add up.
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s)
	}
	if !sum.Equal(total) {
		return nil, computationErrorf("shares sum to %s, expected %s", sum, total)
	}

	return shares, nil
}
