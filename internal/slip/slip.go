// Package slip decodes HUB 3.0 payment-slip payloads, the fixed-layout text
// records carried by Croatian payment barcodes.
//
// Field offsets are taken from the payloads we have seen in the wild and are
// not verified against the official HUB 3.0 specification; treat them as
// given. TODO: cross-check the line indices against the HUB 3.0 standard
// document before relying on fields beyond payer/amount.
package slip

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sharkhome/internal/core"
)

// marker is the literal the payload must start with.
const marker = "HUB3"

// Line indices of the fields we extract.
const (
	linePayer     = 4
	lineCurrency  = 10
	lineAmount    = 11
	lineIBAN      = 13
	lineReference = 15
)

// ErrInvalidFormat is returned for payloads that do not start with the HUB3
// marker or cannot be read as a slip. It is a typed failure, not a panic;
// scanning random barcodes is expected.
var ErrInvalidFormat = errors.New("not a HUB 3.0 payload")

// Payment is the structured record decoded from a slip.
type Payment struct {
	Payer     string
	Currency  string
	Amount    core.Money
	IBAN      string
	Reference string
}

// Decode parses a slip payload. Missing trailing lines degrade to empty
// fields rather than failing; a partially filled slip is still usable.
func Decode(payload string) (Payment, error) {
	if !strings.HasPrefix(payload, marker) {
		return Payment{}, ErrInvalidFormat
	}

	lines := strings.Split(payload, "\n")
	amount, err := decodeAmount(line(lines, lineAmount))
	if err != nil {
		return Payment{}, fmt.Errorf("amount field: %w", err)
	}

	return Payment{
		Payer:     line(lines, linePayer),
		Currency:  line(lines, lineCurrency),
		Amount:    amount,
		IBAN:      line(lines, lineIBAN),
		Reference: line(lines, lineReference),
	}, nil
}

// line returns the trimmed line at index i, or "" past the end.
func line(lines []string, i int) string {
	if i >= len(lines) {
		return ""
	}
	return strings.TrimSpace(strings.TrimSuffix(lines[i], "\r"))
}

// decodeAmount interprets the raw amount field. Fixed-width digit strings
// longer than two characters encode minor units ("0000000001235" is 12.35);
// shorter or punctuated values are plain decimals. An absent field is zero.
func decodeAmount(raw string) (core.Money, error) {
	if raw == "" {
		return core.Money{}, nil
	}
	if len(raw) > 2 && digitsOnly(raw) {
		cents, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return core.Money{}, ErrInvalidFormat
		}
		return core.Money{Cents: cents}, nil
	}
	cents, err := core.ParseDecimalToCents(raw)
	if err != nil {
		if isZeroDecimal(raw) {
			return core.Money{}, nil
		}
		return core.Money{}, ErrInvalidFormat
	}
	return core.Money{Cents: cents}, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isZeroDecimal accepts degenerate zero amounts like "0", "0,00" and "0.0",
// which older slips use as a placeholder.
func isZeroDecimal(s string) bool {
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f == 0
}
