package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sharkhome/internal/core"
	"sharkhome/internal/storage"
)

// Draft accumulates a recipe before it is committed. Drafts live in memory
// only; nothing is persisted until Commit succeeds as a whole.
type Draft struct {
	Name        string
	ingredients []string
}

// AddIngredient appends a line to the draft; blank lines are ignored.
func (d *Draft) AddIngredient(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	d.ingredients = append(d.ingredients, text)
}

// RemoveIngredient drops the line at index i; out-of-range indices are
// ignored.
func (d *Draft) RemoveIngredient(i int) {
	if i < 0 || i >= len(d.ingredients) {
		return
	}
	d.ingredients = append(d.ingredients[:i], d.ingredients[i+1:]...)
}

// Ingredients returns the accumulated lines in order.
func (d *Draft) Ingredients() []string {
	return append([]string(nil), d.ingredients...)
}

// Recipes manages the recipe book. Recipes are local-only; the remote
// protocol has no recipe verb.
type Recipes struct {
	store storage.Store
}

func NewRecipes(store storage.Store) *Recipes {
	return &Recipes{store: store}
}

// Commit turns a draft into a persisted recipe, atomically: a non-empty
// name and at least one ingredient are required, and a recipe is never
// partially persisted.
func (r *Recipes) Commit(ctx context.Context, d *Draft) (core.Recipe, error) {
	recipe := core.Recipe{
		ID:        core.NewID(),
		Name:      strings.TrimSpace(d.Name),
		CreatedAt: time.Now(),
	}
	for _, text := range d.ingredients {
		recipe.Ingredients = append(recipe.Ingredients, core.Ingredient{
			ID:   core.NewID(),
			Text: text,
		})
	}
	if err := recipe.Validate(); err != nil {
		return core.Recipe{}, err
	}

	state, err := r.store.Load(ctx)
	if err != nil {
		return core.Recipe{}, fmt.Errorf("load state: %w", err)
	}
	state.Recipes = append([]core.Recipe{recipe}, state.Recipes...)
	if err := r.store.Save(ctx, state); err != nil {
		return core.Recipe{}, fmt.Errorf("save recipes: %w", err)
	}

	slog.InfoContext(ctx, "Recipe committed",
		"name", recipe.Name,
		"ingredients", len(recipe.Ingredients))
	return recipe, nil
}

// Remove deletes a recipe; absent ids are a silent no-op.
func (r *Recipes) Remove(ctx context.Context, id core.ID) error {
	state, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	kept := state.Recipes[:0:0]
	for _, rec := range state.Recipes {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(state.Recipes) {
		slog.DebugContext(ctx, "Remove on unknown recipe", "id", id)
		return nil
	}
	state.Recipes = kept

	if err := r.store.Save(ctx, state); err != nil {
		return fmt.Errorf("save recipes: %w", err)
	}
	return nil
}

// List returns the recipe book, newest first.
func (r *Recipes) List(ctx context.Context) ([]core.Recipe, error) {
	state, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return state.Recipes, nil
}
