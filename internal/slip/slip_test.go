package slip

import (
	"errors"
	"strings"
	"testing"
)

// samplePayload builds a well-formed payload with the given amount field.
func samplePayload(amount string) string {
	lines := make([]string, 16)
	lines[0] = "HUB3"
	lines[1] = "HRK"
	lines[4] = "PERO PERIĆ"
	lines[10] = "EUR"
	lines[11] = amount
	lines[13] = "HR1210010051863000160"
	lines[15] = "HR00 7269-68949-00001"
	return strings.Join(lines, "\n")
}

func TestDecodeFields(t *testing.T) {
	p, err := Decode(samplePayload("0000000001235"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Payer != "PERO PERIĆ" {
		t.Errorf("payer = %q", p.Payer)
	}
	if p.Currency != "EUR" {
		t.Errorf("currency = %q", p.Currency)
	}
	if p.Amount.Cents != 1235 {
		t.Errorf("amount = %d cents, want 1235", p.Amount.Cents)
	}
	if p.IBAN != "HR1210010051863000160" {
		t.Errorf("iban = %q", p.IBAN)
	}
	if p.Reference != "HR00 7269-68949-00001" {
		t.Errorf("reference = %q", p.Reference)
	}
}

func TestDecodeAmountVariants(t *testing.T) {
	tests := []struct {
		raw       string
		wantCents int64
		wantErr   bool
	}{
		{"0000000001235", 1235, false}, // minor-unit fixed width
		{"5", 500, false},              // short field, plain decimal
		{"12,50", 1250, false},         // punctuated decimal
		{"12.50", 1250, false},
		{"0,00", 0, false}, // legacy zero placeholder
		{"", 0, false},     // absent field
		{"abc", 0, true},
	}
	for _, tt := range tests {
		p, err := Decode(samplePayload(tt.raw))
		if tt.wantErr {
			if err == nil {
				t.Errorf("amount %q: expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("amount %q: unexpected error %v", tt.raw, err)
			continue
		}
		if p.Amount.Cents != tt.wantCents {
			t.Errorf("amount %q = %d cents, want %d", tt.raw, p.Amount.Cents, tt.wantCents)
		}
	}
}

func TestDecodeMissingMarker(t *testing.T) {
	for _, payload := range []string{"", "EAN1234567", "hub3\nlower case", "XHUB3"} {
		_, err := Decode(payload)
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("payload %q: got %v, want ErrInvalidFormat", payload, err)
		}
	}
}

func TestDecodeShortPayload(t *testing.T) {
	// Only five lines: everything past the payer defaults to empty/zero.
	payload := "HUB3\n\n\n\nPERO PERIĆ"
	p, err := Decode(payload)
	if err != nil {
		t.Fatalf("decode short payload: %v", err)
	}
	if p.Payer != "PERO PERIĆ" {
		t.Errorf("payer = %q", p.Payer)
	}
	if p.Amount.Cents != 0 || p.Currency != "" || p.IBAN != "" || p.Reference != "" {
		t.Errorf("trailing fields not defaulted: %+v", p)
	}
}

func TestDecodeCRLF(t *testing.T) {
	payload := strings.ReplaceAll(samplePayload("150"), "\n", "\r\n")
	p, err := Decode(payload)
	if err != nil {
		t.Fatalf("decode CRLF payload: %v", err)
	}
	if p.Amount.Cents != 150 {
		t.Errorf("amount = %d cents, want 150", p.Amount.Cents)
	}
}
