package services

import (
	"context"
	"errors"
	"testing"

	"sharkhome/internal/amqp"
	"sharkhome/internal/vocab"
)

func newIntentFixture() (*IntentRouter, *memStore) {
	store := &memStore{}
	shopping := NewShopping(store, vocab.New(nil), NopPusher{})
	ledger := NewLedger(store, NopPusher{})
	return NewIntentRouter(shopping, ledger), store
}

func TestHandleShoppingTextIntent(t *testing.T) {
	router, store := newIntentFixture()

	msg := amqp.NewShoppingTextMessage("mlijeko, kruh i jaja")
	if err := router.Handle(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(store.state.ShoppingList) != 3 {
		t.Fatalf("shopping list = %+v", store.state.ShoppingList)
	}
}

func TestHandleExpenseIntent(t *testing.T) {
	router, store := newIntentFixture()

	msg := amqp.NewExpenseMessage("Hrana", "dućan", "1,50")
	if err := router.Handle(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(store.state.Expenses) != 1 || store.state.Expenses[0].Amount.Cents != 150 {
		t.Fatalf("expenses = %+v", store.state.Expenses)
	}
}

func TestHandleInvalidExpenseIntentIsDropped(t *testing.T) {
	router, store := newIntentFixture()

	// Invalid amounts must not bounce back to the broker for redelivery.
	msg := amqp.NewExpenseMessage("Hrana", "", "abc")
	if err := router.Handle(context.Background(), msg); err != nil {
		t.Fatalf("invalid amount must be dropped, got %v", err)
	}
	if store.saves != 0 {
		t.Error("invalid intent mutated state")
	}
}

func TestHandleUnknownKindIsDropped(t *testing.T) {
	router, store := newIntentFixture()

	if err := router.Handle(context.Background(), &amqp.IntentMessage{Kind: "mystery"}); err != nil {
		t.Fatalf("unknown kind must be dropped, got %v", err)
	}
	if store.saves != 0 {
		t.Error("unknown intent mutated state")
	}
}

func TestHandlePropagatesStoreErrors(t *testing.T) {
	router, store := newIntentFixture()
	store.loadErr = errors.New("disk gone")

	err := router.Handle(context.Background(), amqp.NewShoppingTextMessage("mlijeko"))
	if err == nil {
		t.Fatal("store failure must propagate so the broker redelivers")
	}
}
