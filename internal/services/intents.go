package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sharkhome/internal/amqp"
	"sharkhome/internal/core"
)

// IntentRouter dispatches queued intent messages to the domain services.
// Validation failures are logged and dropped rather than returned: requeuing
// a message the ledger will never accept only loops it forever. Only
// infrastructure errors propagate, so the broker redelivers them.
type IntentRouter struct {
	shopping *Shopping
	ledger   *Ledger
}

func NewIntentRouter(shopping *Shopping, ledger *Ledger) *IntentRouter {
	return &IntentRouter{shopping: shopping, ledger: ledger}
}

func (r *IntentRouter) Handle(ctx context.Context, msg *amqp.IntentMessage) error {
	switch msg.Kind {
	case amqp.KindShoppingText:
		if _, err := r.shopping.AddFreeText(ctx, msg.Text); err != nil {
			return fmt.Errorf("apply shopping intent: %w", err)
		}
		return nil

	case amqp.KindExpense:
		_, err := r.ledger.RecordExpense(ctx, msg.Category, msg.Description, msg.Amount)
		if errors.Is(err, core.ErrInvalidAmount) || errors.Is(err, core.ErrEmptyCategory) {
			slog.WarnContext(ctx, "Dropping invalid expense intent",
				"category", msg.Category,
				"amount", msg.Amount,
				"error", err)
			return nil
		}
		if err != nil {
			return fmt.Errorf("apply expense intent: %w", err)
		}
		return nil

	default:
		slog.WarnContext(ctx, "Dropping intent of unknown kind", "kind", msg.Kind)
		return nil
	}
}
