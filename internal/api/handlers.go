package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitpot/splitpot/internal/middleware"
	"github.com/splitpot/splitpot/internal/service"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	auth     *service.AuthService
	groups   *service.GroupService
	expenses *service.ExpenseService
	payments *service.PaymentService
}

// NewHandler creates the API handler.
func NewHandler(auth *service.AuthService, groups *service.GroupService, expenses *service.ExpenseService, payments *service.PaymentService) *Handler {
	return &Handler{auth: auth, groups: groups, expenses: expenses, payments: payments}
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.auth.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, authResponse{User: toUserResponse(user), Token: token})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, authResponse{User: toUserResponse(user), Token: token})
}

// CreateGroup handles POST /api/groups.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), req.Name, middleware.GetUserID(r.Context()), req.Members)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toGroupResponse(group))
}

// GetGroup handles GET /api/groups/{groupID}.
func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.GetGroup(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toGroupResponse(group))
}

// ListGroups handles GET /api/groups.
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.ListGroups(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]groupResponse, len(groups))
	for i, g := range groups {
		out[i] = toGroupResponse(g)
	}
	respondJSON(w, http.StatusOK, out)
}

// AddMembers handles POST /api/groups/{groupID}/members.
func (h *Handler) AddMembers(w http.ResponseWriter, r *http.Request) {
	var req addMembersRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := h.groups.AddMembers(r.Context(), chi.URLParam(r, "groupID"), req.Members, middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toGroupResponse(group))
}

// GetBalances handles GET /api/groups/{groupID}/balances.
func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	entries, err := h.groups.Balances(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toBalanceResponses(entries))
}

// GetSettlementPlan handles GET /api/groups/{groupID}/settlement.
func (h *Handler) GetSettlementPlan(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.groups.SettlementPlan(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toTransferResponses(transfers))
}

// CreateExpense handles POST /api/expenses.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := h.expenses.CreateExpense(r.Context(), service.CreateExpenseInput{
		GroupID:      req.GroupID,
		Description:  req.Description,
		Amount:       req.Amount,
		PayerID:      req.PayerID,
		Participants: req.Participants,
		ActorID:      middleware.GetUserID(r.Context()),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

// GetExpense handles GET /api/expenses/{expenseID}.
func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.expenses.GetExpense(r.Context(), chi.URLParam(r, "expenseID"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponse(expense))
}

// ListGroupExpenses handles GET /api/groups/{groupID}/expenses.
func (h *Handler) ListGroupExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.ListGroupExpenses(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseResponse(e)
	}
	respondJSON(w, http.StatusOK, out)
}

// AmendExpense handles POST /api/expenses/{expenseID}/amend.
func (h *Handler) AmendExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := h.expenses.AmendExpense(r.Context(), chi.URLParam(r, "expenseID"), service.CreateExpenseInput{
		Description:  req.Description,
		Amount:       req.Amount,
		PayerID:      req.PayerID,
		Participants: req.Participants,
		ActorID:      middleware.GetUserID(r.Context()),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

// RecordPayment handles POST /api/payments.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, err := h.payments.RecordPayment(r.Context(), service.RecordPaymentInput{
		GroupID:    req.GroupID,
		ExpenseID:  req.ExpenseID,
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount,
		Note:       req.Note,
		ActorID:    middleware.GetUserID(r.Context()),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toPaymentResponse(payment))
}

// CompletePayment handles POST /api/payments/{paymentID}/complete.
func (h *Handler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.CompletePayment(r.Context(), chi.URLParam(r, "paymentID"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPaymentResponse(payment))
}

// CancelPayment handles POST /api/payments/{paymentID}/cancel.
func (h *Handler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.CancelPayment(r.Context(), chi.URLParam(r, "paymentID"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPaymentResponse(payment))
}

// ListGroupPayments handles GET /api/groups/{groupID}/payments.
func (h *Handler) ListGroupPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListGroupPayments(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]paymentResponse, len(payments))
	for i, p := range payments {
		out[i] = toPaymentResponse(p)
	}
	respondJSON(w, http.StatusOK, out)
}
