package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// ShoppingItem is a single entry on the shopping list.
	ShoppingItem struct {
		ID        ID        `json:"id"`
		Text      string    `json:"text"`
		Completed bool      `json:"completed"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Expense is a recorded household expense. Amount is always numeric
	// cents; legacy records that arrive as locale strings are normalized
	// during JSON decoding.
	Expense struct {
		ID          ID        `json:"id"`
		Category    string    `json:"category"`
		Description string    `json:"description,omitempty"`
		Amount      Money     `json:"amount"`
		OccurredAt  time.Time `json:"occurredAt"`
	}

	// Ingredient is one line of a recipe.
	Ingredient struct {
		ID   ID     `json:"id"`
		Text string `json:"text"`
	}

	// Recipe is committed atomically: a name plus at least one ingredient.
	Recipe struct {
		ID          ID           `json:"id"`
		Name        string       `json:"name"`
		Ingredients []Ingredient `json:"ingredients"`
		CreatedAt   time.Time    `json:"createdAt"`
	}

	// RemoteConfig is the user-editable sync endpoint configuration.
	// Persisted separately from domain data.
	RemoteConfig struct {
		Endpoint string `json:"endpoint"`
		Token    string `json:"token"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyText     = errors.New("empty text")
	ErrEmptyCategory = errors.New("empty category")
	ErrEmptyName     = errors.New("empty name")
	ErrNoIngredients = errors.New("recipe needs at least one ingredient")
)

func (i ShoppingItem) Validate() error {
	if strings.TrimSpace(i.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	return nil
}

func (r Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if len(r.Ingredients) == 0 {
		return ErrNoIngredients
	}
	for _, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Text) == "" {
			return ErrEmptyText
		}
	}
	return nil
}
