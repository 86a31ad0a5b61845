package amqp

import (
	"encoding/json"
	"time"
)

// Intent kinds understood by the worker.
const (
	KindShoppingText = "shopping_text"
	KindExpense      = "expense"
)

// IntentMessage is a user intent delivered out of band, e.g. by a Telegram
// bridge. Amount stays raw user text; the ledger owns its validation.
type IntentMessage struct {
	Kind        string    `json:"kind"`
	Text        string    `json:"text,omitempty"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Amount      string    `json:"amount,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewShoppingTextMessage wraps free text destined for the shopping list.
func NewShoppingTextMessage(text string) *IntentMessage {
	return &IntentMessage{
		Kind:      KindShoppingText,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewExpenseMessage wraps an expense entry with the amount still raw.
func NewExpenseMessage(category, description, amount string) *IntentMessage {
	return &IntentMessage{
		Kind:        KindExpense,
		Category:    category,
		Description: description,
		Amount:      amount,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *IntentMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// IntentMessageFromJSON creates a message from JSON bytes
func IntentMessageFromJSON(data []byte) (*IntentMessage, error) {
	var msg IntentMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
