package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sharkhome/internal/core"
	"sharkhome/internal/remote"
	"sharkhome/internal/slip"
	"sharkhome/internal/storage"
)

// SlipCategory is the default category for expenses ingested from a scanned
// payment slip.
const SlipCategory = "Režije"

// Ledger manages the expense collection. The remote has no update verb,
// only bulk replace, so every mutation re-sends the full collection.
type Ledger struct {
	store  storage.Store
	pusher Pusher
}

func NewLedger(store storage.Store, pusher Pusher) *Ledger {
	return &Ledger{store: store, pusher: pusher}
}

// RecordExpense validates user-typed amount text (comma or dot separator)
// and appends a new expense. On a validation failure nothing is persisted
// or pushed.
func (l *Ledger) RecordExpense(ctx context.Context, category, description, rawAmount string) (core.Expense, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return core.Expense{}, core.ErrEmptyCategory
	}
	cents, err := core.ParseDecimalToCents(rawAmount)
	if err != nil {
		return core.Expense{}, err
	}

	expense := core.Expense{
		ID:          core.NewID(),
		Category:    category,
		Description: strings.TrimSpace(description),
		Amount:      core.Money{Cents: cents},
		OccurredAt:  time.Now(),
	}

	state, err := l.store.Load(ctx)
	if err != nil {
		return core.Expense{}, fmt.Errorf("load state: %w", err)
	}
	state.Expenses = append([]core.Expense{expense}, state.Expenses...)
	if err := l.store.Save(ctx, state); err != nil {
		return core.Expense{}, fmt.Errorf("save expenses: %w", err)
	}
	l.pusher.Push(remote.ActionUpdateExpenses, state.Expenses)

	slog.InfoContext(ctx, "Expense recorded",
		"category", expense.Category,
		"amount_cents", expense.Amount.Cents)
	return expense, nil
}

// RecordSlip consumes a decoded payment slip directly into an expense; no
// separate bill entity exists. The description is synthesized from the payer
// name and the category is defaulted.
func (l *Ledger) RecordSlip(ctx context.Context, p slip.Payment) (core.Expense, error) {
	if p.Amount.Cents <= 0 {
		return core.Expense{}, core.ErrInvalidAmount
	}

	description := "Uplatnica"
	if payer := strings.TrimSpace(p.Payer); payer != "" {
		description = "Uplatnica " + payer
	}
	if ref := strings.TrimSpace(p.Reference); ref != "" {
		description += " (poziv " + ref + ")"
	}

	expense := core.Expense{
		ID:          core.NewID(),
		Category:    SlipCategory,
		Description: description,
		Amount:      p.Amount,
		OccurredAt:  time.Now(),
	}

	state, err := l.store.Load(ctx)
	if err != nil {
		return core.Expense{}, fmt.Errorf("load state: %w", err)
	}
	state.Expenses = append([]core.Expense{expense}, state.Expenses...)
	if err := l.store.Save(ctx, state); err != nil {
		return core.Expense{}, fmt.Errorf("save expenses: %w", err)
	}
	l.pusher.Push(remote.ActionUpdateExpenses, state.Expenses)

	slog.InfoContext(ctx, "Slip recorded as expense",
		"payer", p.Payer,
		"amount_cents", expense.Amount.Cents)
	return expense, nil
}

// EditExpense re-validates the amount before touching anything; a parse
// failure leaves the original record untouched. An absent id is a silent
// no-op.
func (l *Ledger) EditExpense(ctx context.Context, id core.ID, newDescription, newRawAmount string) error {
	cents, err := core.ParseDecimalToCents(newRawAmount)
	if err != nil {
		return err
	}

	state, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	found := false
	for i := range state.Expenses {
		if state.Expenses[i].ID == id {
			state.Expenses[i].Description = strings.TrimSpace(newDescription)
			state.Expenses[i].Amount = core.Money{Cents: cents}
			found = true
			break
		}
	}
	if !found {
		slog.DebugContext(ctx, "Edit on unknown expense", "id", id)
		return nil
	}

	if err := l.store.Save(ctx, state); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	l.pusher.Push(remote.ActionUpdateExpenses, state.Expenses)
	return nil
}

// DeleteExpense removes an expense; absent ids are a silent no-op.
func (l *Ledger) DeleteExpense(ctx context.Context, id core.ID) error {
	state, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	kept := state.Expenses[:0:0]
	for _, e := range state.Expenses {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(state.Expenses) {
		slog.DebugContext(ctx, "Delete on unknown expense", "id", id)
		return nil
	}
	state.Expenses = kept

	if err := l.store.Save(ctx, state); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	l.pusher.Push(remote.ActionUpdateExpenses, state.Expenses)
	return nil
}

// CategoryTotals sums the numeric amounts grouped by exact category string.
// Categories are free text and therefore case-sensitive. Legacy locale
// amounts were normalized to cents at load time, so summation never touches
// a display string.
func (l *Ledger) CategoryTotals(ctx context.Context) (map[string]core.Money, error) {
	state, err := l.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	totals := make(map[string]core.Money)
	for _, e := range state.Expenses {
		t := totals[e.Category]
		t.Cents += e.Amount.Cents
		totals[e.Category] = t
	}
	return totals, nil
}

// List returns the current expense collection, newest first.
func (l *Ledger) List(ctx context.Context) ([]core.Expense, error) {
	state, err := l.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return state.Expenses, nil
}
