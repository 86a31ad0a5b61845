package http

import (
	"errors"
	"log/slog"
	"net/http"

	"sharkhome/internal/core"
	"sharkhome/internal/slip"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.ledger.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category    string `json:"category"`
		Description string `json:"description"`
		Amount      string `json:"amount"`
	}
	if err := readJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := s.ledger.RecordExpense(r.Context(), sanitizeInput(req.Category), sanitizeInput(req.Description), req.Amount)
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		errorJSON(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	case errors.Is(err, core.ErrEmptyCategory):
		errorJSON(w, http.StatusUnprocessableEntity, "category is required")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Record expense error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to save expense")
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleEditExpense(w http.ResponseWriter, r *http.Request) {
	id := core.ID(r.PathValue("id"))
	var req struct {
		Description string `json:"description"`
		Amount      string `json:"amount"`
	}
	if err := readJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.ledger.EditExpense(r.Context(), id, sanitizeInput(req.Description), req.Amount)
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		errorJSON(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Edit expense error", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "failed to save expense")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := core.ID(r.PathValue("id"))
	if err := s.ledger.DeleteExpense(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete expense error", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "failed to save expenses")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExpenseSummary(w http.ResponseWriter, r *http.Request) {
	totals, err := s.ledger.CategoryTotals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Expense summary error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// handleScanSlip decodes a scanned payment slip payload and books it as an
// expense in one step.
func (s *Server) handleScanSlip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Payload string `json:"payload"`
	}
	if err := readJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, err := slip.Decode(req.Payload)
	if errors.Is(err, slip.ErrInvalidFormat) {
		errorJSON(w, http.StatusUnprocessableEntity, "not a payment slip")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Slip decode error", "error", err)
		errorJSON(w, http.StatusUnprocessableEntity, "failed to decode payment slip")
		return
	}

	expense, err := s.ledger.RecordSlip(r.Context(), payment)
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		errorJSON(w, http.StatusUnprocessableEntity, "slip carries no amount")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Record slip error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to save expense")
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}
