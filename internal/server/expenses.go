package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jperaza/divvy/internal/middleware"
	"github.com/jperaza/divvy/internal/models"
)

type expenseRequest struct {
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	PaidByID     string          `json:"paid_by_id"`
	SplitBetween []string        `json:"split_between"`
}

// handleListExpenses handles GET /api/expenses.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.svc.ListExpenses(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expenses": expenses,
		"count":    len(expenses),
	})
}

// handleCreateExpense handles POST /api/expenses.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense := &models.Expense{
		Description:  req.Description,
		Amount:       req.Amount,
		PaidByID:     req.PaidByID,
		SplitBetween: req.SplitBetween,
	}
	if err := s.svc.AddExpense(r.Context(), expense); err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, expense)
}

// handleDeleteExpense handles DELETE /api/expenses/{id} (gated).
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
