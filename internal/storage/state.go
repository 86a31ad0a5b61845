// Package storage is the single source of truth for persisted household
// state. Two backends implement the same contract: a JSON file (default)
// and SQLite. Only the Store writes durable data; services read a State,
// mutate a copy and write the whole thing back.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"sharkhome/internal/core"
)

// schemaVersion is the current on-disk shape of the file backend.
// Version 1 (implicit, no version field) kept expenses under "bills",
// amounts as locale strings and ids as raw numbers.
const schemaVersion = 2

// State is the full persisted household state.
type State struct {
	ShoppingList   []core.ShoppingItem `json:"shoppingList"`
	Expenses       []core.Expense      `json:"expenses"`
	Recipes        []core.Recipe       `json:"recipes"`
	CustomProducts []string            `json:"customProducts"`
}

// Store is the persistence contract shared by both backends.
type Store interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error

	// Remote sync configuration is persisted separately from domain data.
	LoadRemoteConfig(ctx context.Context) (core.RemoteConfig, error)
	SaveRemoteConfig(ctx context.Context, cfg core.RemoteConfig) error

	Close() error
}

// versionedState is the raw decode target for the file backend; it carries
// every key any schema version ever used.
type versionedState struct {
	SchemaVersion int `json:"schemaVersion,omitempty"`

	ShoppingList   []core.ShoppingItem `json:"shoppingList"`
	Expenses       []core.Expense      `json:"expenses"`
	Bills          []core.Expense      `json:"bills,omitempty"` // schema v1
	Recipes        []core.Recipe       `json:"recipes"`
	CustomProducts []string            `json:"customProducts"`
}

// migrateState lifts a raw persisted record to the current schema. The one
// explicit migration step replaces the scattered fallback reads the old
// client did on every access:
//   - v1 "bills" becomes "expenses" when "expenses" is absent or empty
//   - absent collections become empty, never nil propagated to consumers
//
// Locale-string amounts and numeric ids are already normalized by the
// core type decoders.
func migrateState(raw []byte) (State, error) {
	var vs versionedState
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &vs); err != nil {
			return State{}, fmt.Errorf("decode persisted state: %w", err)
		}
	}

	s := State{
		ShoppingList:   vs.ShoppingList,
		Expenses:       vs.Expenses,
		Recipes:        vs.Recipes,
		CustomProducts: vs.CustomProducts,
	}
	if len(s.Expenses) == 0 && len(vs.Bills) > 0 {
		s.Expenses = vs.Bills
	}
	if s.ShoppingList == nil {
		s.ShoppingList = []core.ShoppingItem{}
	}
	if s.Expenses == nil {
		s.Expenses = []core.Expense{}
	}
	if s.Recipes == nil {
		s.Recipes = []core.Recipe{}
	}
	if s.CustomProducts == nil {
		s.CustomProducts = []string{}
	}
	return s, nil
}
