// Package money converts between wire values and decimal amounts.
package money

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// FromString parses decimal from string, accepting a comma decimal separator
func FromString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

// MustFromString parses decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Parse converts a decoded JSON value to a decimal.
func Parse(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case json.Number:
		return decimal.NewFromString(n.String())
	case string:
		return FromString(n)
	case float64:
		return decimal.NewFromFloat(n), nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	}
	return Zero, fmt.Errorf("cannot convert %T to decimal", v)
}

// Number renders d as a JSON number without losing precision.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// Round2 rounds to two decimal places (RSD para)
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
