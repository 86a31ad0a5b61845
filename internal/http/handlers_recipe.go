package http

import (
	"errors"
	"log/slog"
	"net/http"

	"sharkhome/internal/core"
	"sharkhome/internal/services"
)

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.recipes.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List recipes error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to load recipes")
		return
	}
	if recipes == nil {
		recipes = []core.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string   `json:"name"`
		Ingredients []string `json:"ingredients"`
	}
	if err := readJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := &services.Draft{Name: sanitizeInput(req.Name)}
	for _, line := range req.Ingredients {
		draft.AddIngredient(sanitizeInput(line))
	}

	recipe, err := s.recipes.Commit(r.Context(), draft)
	switch {
	case errors.Is(err, core.ErrEmptyName):
		errorJSON(w, http.StatusUnprocessableEntity, "recipe name is required")
		return
	case errors.Is(err, core.ErrNoIngredients):
		errorJSON(w, http.StatusUnprocessableEntity, "at least one ingredient is required")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Commit recipe error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to save recipe")
		return
	}
	writeJSON(w, http.StatusCreated, recipe)
}

func (s *Server) handleRemoveRecipe(w http.ResponseWriter, r *http.Request) {
	id := core.ID(r.PathValue("id"))
	if err := s.recipes.Remove(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Remove recipe error", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "failed to save recipes")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
