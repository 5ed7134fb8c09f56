package api

import (
	"github.com/shopspring/decimal"

	"github.com/splitpot/splitpot/internal/ledger"
	"github.com/splitpot/splitpot/internal/models"
)

// Request and response bodies for the JSON API. Amounts travel as decimal
// strings (shopspring's default JSON form), never as binary floats.

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

type createGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type addMembersRequest struct {
	Members []string `json:"members"`
}

type groupResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedBy string   `json:"created_by"`
	CreatedAt int64    `json:"created_at"`
}

type createExpenseRequest struct {
	GroupID      string          `json:"group_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	PayerID      string          `json:"payer_id"`
	Participants []string        `json:"participants"`
}

type expenseResponse struct {
	ID           string                     `json:"id"`
	GroupID      string                     `json:"group_id"`
	Description  string                     `json:"description"`
	Amount       decimal.Decimal            `json:"amount"`
	PayerID      string                     `json:"payer_id"`
	Participants []string                   `json:"participants"`
	Shares       map[string]decimal.Decimal `json:"shares"`
	ReversalOf   string                     `json:"reversal_of,omitempty"`
	CreatedBy    string                     `json:"created_by"`
	CreatedAt    int64                      `json:"created_at"`
}

type recordPaymentRequest struct {
	GroupID    string          `json:"group_id"`
	ExpenseID  string          `json:"expense_id,omitempty"`
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
}

type paymentResponse struct {
	ID         string          `json:"id"`
	GroupID    string          `json:"group_id"`
	ExpenseID  string          `json:"expense_id,omitempty"`
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	Note       string          `json:"note,omitempty"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  int64           `json:"created_at"`
}

type balanceResponse struct {
	Debtor   string          `json:"debtor"`
	Creditor string          `json:"creditor"`
	Amount   decimal.Decimal `json:"amount"`
}

type transferResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{
		ID:        g.ID,
		Name:      g.Name,
		Members:   g.Members,
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt,
	}
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:           e.ID,
		GroupID:      e.GroupID,
		Description:  e.Description,
		Amount:       e.Total,
		PayerID:      e.PayerID,
		Participants: e.Participants,
		Shares:       e.Shares,
		ReversalOf:   e.ReversalOf,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    e.CreatedAt,
	}
}

func toPaymentResponse(p *models.Payment) paymentResponse {
	return paymentResponse{
		ID:         p.ID,
		GroupID:    p.GroupID,
		ExpenseID:  p.ExpenseID,
		FromUserID: p.FromUserID,
		ToUserID:   p.ToUserID,
		Amount:     p.Amount,
		Status:     string(p.Status),
		Note:       p.Note,
		CreatedBy:  p.CreatedBy,
		CreatedAt:  p.CreatedAt,
	}
}

func toBalanceResponses(entries []ledger.BalanceEntry) []balanceResponse {
	out := make([]balanceResponse, len(entries))
	for i, e := range entries {
		out[i] = balanceResponse{Debtor: e.Debtor, Creditor: e.Creditor, Amount: e.Amount}
	}
	return out
}

func toTransferResponses(transfers []ledger.Transfer) []transferResponse {
	out := make([]transferResponse, len(transfers))
	for i, t := range transfers {
		out[i] = transferResponse{From: t.From, To: t.To, Amount: t.Amount}
	}
	return out
}
