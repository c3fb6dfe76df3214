package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kmadan/splitledger/internal/middleware"
	"github.com/kmadan/splitledger/internal/models"
	"github.com/kmadan/splitledger/internal/service"
	"github.com/kmadan/splitledger/internal/storage"
)

// DebtHandler serves debt listings, settlement, and the ledger summary.
type DebtHandler struct {
	svc *service.ExpenseService
}

// NewDebtHandler creates a DebtHandler.
func NewDebtHandler(svc *service.ExpenseService) *DebtHandler {
	return &DebtHandler{svc: svc}
}

// OwedToMe handles GET /api/debts/owed-to-me.
func (h *DebtHandler) OwedToMe(w http.ResponseWriter, r *http.Request) {
	h.listDebts(w, r, storage.RoleCreditor)
}

// OwedByMe handles GET /api/debts/owed-by-me.
func (h *DebtHandler) OwedByMe(w http.ResponseWriter, r *http.Request) {
	h.listDebts(w, r, storage.RoleDebtor)
}

func (h *DebtHandler) listDebts(w http.ResponseWriter, r *http.Request, role storage.ObligationRole) {
	debts, err := h.svc.ListDebts(r.Context(), middleware.GetUserID(r.Context()), role)
	if err != nil {
		respondError(w, err)
		return
	}
	if debts == nil {
		debts = []models.DebtObligation{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"debts":   debts,
	})
}

// Summary handles GET /api/debts/summary.
func (h *DebtHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"summary": summary,
	})
}

// Settle handles POST /api/debts/{id}/settle.
func (h *DebtHandler) Settle(w http.ResponseWriter, r *http.Request) {
	debtID := mux.Vars(r)["id"]
	if err := h.svc.SettleDebt(r.Context(), middleware.GetUserID(r.Context()), debtID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
