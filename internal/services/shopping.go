package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sharkhome/internal/core"
	"sharkhome/internal/normalize"
	"sharkhome/internal/remote"
	"sharkhome/internal/storage"
	"sharkhome/internal/vocab"
)

// Shopping manages the shopping list. Free-text input (typed or voice
// transcript) is segmented into items; every new name feeds the vocabulary.
type Shopping struct {
	store  storage.Store
	vocab  *vocab.Vocabulary
	pusher Pusher
}

func NewShopping(store storage.Store, v *vocab.Vocabulary, pusher Pusher) *Shopping {
	return &Shopping{store: store, vocab: v, pusher: pusher}
}

// AddFreeText segments raw input and inserts one item per resulting name,
// newest first. However many items the text yields, the whole bulk add is a
// single persistence event and a single push of the full list. Input that
// segments to nothing is a no-op, not an error.
func (s *Shopping) AddFreeText(ctx context.Context, raw string) ([]core.ShoppingItem, error) {
	names := normalize.Segment(raw)
	if len(names) == 0 {
		slog.DebugContext(ctx, "Free text segmented to nothing", "raw", raw)
		return nil, nil
	}

	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	now := time.Now()
	items := make([]core.ShoppingItem, 0, len(names))
	for _, name := range names {
		items = append(items, core.ShoppingItem{
			ID:        core.NewID(),
			Text:      name,
			CreatedAt: now,
		})
		s.vocab.Learn(name)
	}

	state.ShoppingList = append(items, state.ShoppingList...)
	state.CustomProducts = s.vocab.Learned()
	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save shopping list: %w", err)
	}
	s.pusher.Push(remote.ActionUpdateShopping, state.ShoppingList)

	slog.InfoContext(ctx, "Shopping items added",
		"count", len(items),
		"total", len(state.ShoppingList))
	return items, nil
}

// Toggle flips the completed flag. A stale id (item deleted from another
// view) is a silent no-op.
func (s *Shopping) Toggle(ctx context.Context, id core.ID) error {
	state, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	found := false
	for i := range state.ShoppingList {
		if state.ShoppingList[i].ID == id {
			state.ShoppingList[i].Completed = !state.ShoppingList[i].Completed
			found = true
			break
		}
	}
	if !found {
		slog.DebugContext(ctx, "Toggle on unknown shopping item", "id", id)
		return nil
	}

	if err := s.store.Save(ctx, state); err != nil {
		return fmt.Errorf("save shopping list: %w", err)
	}
	s.pusher.Push(remote.ActionUpdateShopping, state.ShoppingList)
	return nil
}

// Remove deletes an item; absent ids are a silent no-op.
func (s *Shopping) Remove(ctx context.Context, id core.ID) error {
	state, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	kept := state.ShoppingList[:0:0]
	for _, it := range state.ShoppingList {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(state.ShoppingList) {
		slog.DebugContext(ctx, "Remove on unknown shopping item", "id", id)
		return nil
	}
	state.ShoppingList = kept

	if err := s.store.Save(ctx, state); err != nil {
		return fmt.Errorf("save shopping list: %w", err)
	}
	s.pusher.Push(remote.ActionUpdateShopping, state.ShoppingList)
	return nil
}

// List returns the current shopping list, newest first.
func (s *Shopping) List(ctx context.Context) ([]core.ShoppingItem, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return state.ShoppingList, nil
}
