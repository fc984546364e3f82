package utils

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// IsNumeric reports whether value is, or parses to, a finite number.
// Plain numbers, numeric strings and decimal.Decimal values are accepted.
func IsNumeric(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case float64:
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		f := float64(v)
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case decimal.Decimal:
		return finite(v)
	case *decimal.Decimal:
		return v != nil && finite(*v)
	case json.Number:
		return parseDecimal(string(v))
	case string:
		return parseDecimal(v)
	case []byte:
		return parseDecimal(string(v))
	}
	return false
}

func parseDecimal(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	d, err := decimal.NewFromString(s)
	return err == nil && finite(d)
}

// finite is false for decimals out of float64 range.
func finite(d decimal.Decimal) bool {
	f, _ := d.Float64()
	return !math.IsInf(f, 0)
}

// ToDecimal converts a numeric value to a decimal. ok is false when the
// value is not numeric.
func ToDecimal(value interface{}) (d decimal.Decimal, ok bool) {
	if !IsNumeric(value) {
		return decimal.Zero, false
	}

	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		return *v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case json.Number:
		d, err := decimal.NewFromString(strings.TrimSpace(string(v)))
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	case []byte:
		d, err := decimal.NewFromString(strings.TrimSpace(string(v)))
		return d, err == nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0), true
	}

	n, err := cast.ToInt64E(value)
	if err != nil {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(n), true
}

// ToFloat converts a numeric value to float64. ok is false when the value
// is not numeric.
func ToFloat(value interface{}) (f float64, ok bool) {
	switch v := value.(type) {
	case float64:
		return v, IsNumeric(v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32:
		f, err := cast.ToFloat64E(v)
		return f, err == nil
	}

	d, ok := ToDecimal(value)
	if !ok {
		return 0, false
	}
	f, _ = d.Float64()
	return f, true
}
