// Package types provides common type aliases and utilities.
package types

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers, matching what clients submit.
	decimal.MarshalJSONWithoutQuotes = true
}

// Money represents a monetary value or quantity with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// maxExponent bounds the decimal exponent of parsed amounts. It lies past
// the float64 range, so every finite float64 still parses, and keeps
// products of two amounts far from the int32 exponent limit.
const maxExponent = 400

// ParseMoney converts a loosely typed JSON value into Money.
// Accepts JSON numbers (json.Number or float64), Go integers and numeric
// strings. Booleans, blank strings, NaN and values outside the float64
// range are rejected.
func ParseMoney(v any) (Money, bool) {
	d, ok := parseMoney(v)
	if !ok || !IsFinite(d) {
		return Money{}, false
	}
	return d, true
}

// IsFinite reports whether d is representable as a finite float64 and
// its exponent stays within maxExponent.
func IsFinite(d Money) bool {
	if e := d.Exponent(); e > maxExponent || e < -maxExponent {
		return false
	}
	return !math.IsInf(d.InexactFloat64(), 0)
}

func parseMoney(v any) (Money, bool) {
	switch n := v.(type) {
	case json.Number:
		return parseMoneyString(n.String())
	case string:
		return parseMoneyString(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return Money{}, false
		}
		return decimal.NewFromFloat(n), true
	case float32:
		return parseMoney(float64(n))
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case int32:
		return decimal.NewFromInt32(n), true
	case decimal.Decimal:
		return n, true
	default:
		return Money{}, false
	}
}

func parseMoneyString(s string) (Money, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, false
	}
	return d, true
}
