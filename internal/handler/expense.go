package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kmadan/splitledger/internal/middleware"
	"github.com/kmadan/splitledger/internal/models"
	"github.com/kmadan/splitledger/internal/service"
)

// ExpenseHandler serves the expense lifecycle endpoints.
type ExpenseHandler struct {
	svc *service.ExpenseService
}

// NewExpenseHandler creates an ExpenseHandler.
func NewExpenseHandler(svc *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

type createExpenseResponse struct {
	Success bool            `json:"success"`
	Expense *models.Expense `json:"expense"`
	Summary struct {
		DebtsCreated      int `json:"debts_created"`
		NotificationsSent int `json:"notifications_sent"`
	} `json:"summary"`
}

// Create handles POST /api/expenses.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.CreateSplitExpense(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := createExpenseResponse{Success: true, Expense: result.Expense}
	resp.Summary.DebtsCreated = result.DebtsCreated
	resp.Summary.NotificationsSent = result.NotificationsSent
	respondJSON(w, http.StatusCreated, resp)
}

// List handles GET /api/expenses.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListExpenses(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"expenses": expenses,
	})
}

// Delete handles DELETE /api/expenses/{id}.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	expenseID := mux.Vars(r)["id"]
	if err := h.svc.DeleteExpense(r.Context(), middleware.GetUserID(r.Context()), expenseID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
