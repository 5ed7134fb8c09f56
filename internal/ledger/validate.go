package ledger

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// minDescriptionLen is the minimum trimmed description length.
const minDescriptionLen = 3

// ExpenseDraft is an expense as submitted by a caller, before shares have
// been computed.
type ExpenseDraft struct {
	Description  string
	Amount       decimal.Decimal
	PayerID      string
	Participants []string
}

// ValidateExpense checks a draft against the group membership snapshot.
// Checks run in a fixed order and stop at the first failure, returning a
// *ValidationError. A nil return means the draft is acceptable.
//
// The function is pure: no side effects, no ambient state.
func ValidateExpense(draft ExpenseDraft, groupMembers []string) error {
	if utf8.RuneCountInString(strings.TrimSpace(draft.Description)) < minDescriptionLen {
		return &ValidationError{
			Code:    CodeDescriptionTooShort,
			Message: fmt.Sprintf("description must be at least %d characters", minDescriptionLen),
		}
	}

	if !draft.Amount.IsPositive() {
		return &ValidationError{
			Code:    CodeInvalidAmount,
			Message: "amount must be greater than zero",
		}
	}

	if draft.PayerID == "" {
		return &ValidationError{
			Code:    CodeMissingPayer,
			Message: "payer is required",
		}
	}

	if len(draft.Participants) == 0 {
		return &ValidationError{
			Code:    CodeEmptyParticipants,
			Message: "at least one participant is required",
		}
	}

	members := make(map[string]bool, len(groupMembers))
	for _, m := range groupMembers {
		members[m] = true
	}
	for _, p := range draft.Participants {
		if !members[p] {
			return &ValidationError{
				Code:    CodeUnknownParticipant,
				Message: fmt.Sprintf("participant %q is not a member of the group", p),
			}
		}
	}
	if !members[draft.PayerID] {
		return &ValidationError{
			Code:    CodeUnknownParticipant,
			Message: fmt.Sprintf("payer %q is not a member of the group", draft.PayerID),
		}
	}

	return nil
}
