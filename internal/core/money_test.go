package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{"1,50", 150, false},
		{"5", 500, false},
		{"12.344", 1234, false}, // third decimal below 5 is dropped
		{"12.345", 1235, false}, // half-up on the third decimal
		{"12.346", 1235, false},
		{"abc", 0, true},
		{"-1", 0, true},
		{"0", 0, true},
		{"0,00", 0, true},
		{"", 0, true},
		{"1.2.3", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDecimalToCents(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDecimalToCents(%q) expected error, got %d", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDecimalToCents(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMoneyJSONLegacyString(t *testing.T) {
	var e Expense
	legacy := []byte(`{"id":1712345678901,"category":"Režije","amount":"1,50"}`)
	if err := json.Unmarshal(legacy, &e); err != nil {
		t.Fatalf("unmarshal legacy expense: %v", err)
	}
	if e.Amount.Cents != 150 {
		t.Errorf("legacy amount = %d cents, want 150", e.Amount.Cents)
	}
	if e.ID != "1712345678901" {
		t.Errorf("legacy numeric id = %q, want 1712345678901", e.ID)
	}

	out, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal expense: %v", err)
	}
	// The re-encoded amount must be a bare number, not a string.
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("re-decode expense: %v", err)
	}
	if amt, ok := decoded["amount"].(float64); !ok || amt != 1.5 {
		t.Errorf("re-encoded amount = %v, want numeric 1.5", decoded["amount"])
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 1235, 123456} {
		m := Money{Cents: cents}
		out, err := json.Marshal(m)
		if err != nil {
			t.Fatalf("marshal %d: %v", cents, err)
		}
		var back Money
		if err := json.Unmarshal(out, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", out, err)
		}
		if back.Cents != cents {
			t.Errorf("round trip %d -> %s -> %d", cents, out, back.Cents)
		}
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[ID]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("empty id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q after %d iterations", id, i)
		}
		seen[id] = struct{}{}
	}
}
