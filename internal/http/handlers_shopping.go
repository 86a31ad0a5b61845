package http

import (
	"log/slog"
	"net/http"

	"sharkhome/internal/core"
)

func (s *Server) handleListShopping(w http.ResponseWriter, r *http.Request) {
	items, err := s.shopping.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List shopping error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to load shopping list")
		return
	}
	if items == nil {
		items = []core.ShoppingItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddShopping(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := readJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := s.shopping.AddFreeText(r.Context(), sanitizeInput(req.Text))
	if err != nil {
		slog.ErrorContext(r.Context(), "Add shopping error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to save shopping list")
		return
	}
	if items == nil {
		items = []core.ShoppingItem{}
	}
	writeJSON(w, http.StatusCreated, items)
}

func (s *Server) handleToggleShopping(w http.ResponseWriter, r *http.Request) {
	id := core.ID(r.PathValue("id"))
	if err := s.shopping.Toggle(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Toggle shopping error", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "failed to save shopping list")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveShopping(w http.ResponseWriter, r *http.Request) {
	id := core.ID(r.PathValue("id"))
	if err := s.shopping.Remove(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Remove shopping error", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "failed to save shopping list")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.vocab.Suggestions())
}
