package estate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// ParseDecimal normalizes a loosely typed numeric value into a decimal.
//
// It is the one conversion applied wherever numbers enter the system: data
// files, database columns, JSON documents, command-line flags. It accepts
// numbers of any Go numeric type, json.Number, decimal.Decimal, Money and
// strings. Strings may carry surrounding spaces, a leading '$' and ','
// thousands separators. nil and the empty string are zero.
func ParseDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return x, nil
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, nil
		}
		return *x, nil
	case Money:
		return x.value, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, fmt.Errorf("invalid number %v", x)
		}
		return decimal.NewFromFloat(x), nil
	case float32:
		return ParseDecimal(float64(x))
	case int:
		return newDecimal(x), nil
	case int32:
		return newDecimal(x), nil
	case int64:
		return newDecimal(x), nil
	case uint:
		return newDecimal(x), nil
	case uint32:
		return newDecimal(x), nil
	case uint64:
		return newDecimal(x), nil
	case json.Number:
		return parseDecimalString(x.String())
	case []byte:
		return parseDecimalString(string(x))
	case string:
		return parseDecimalString(x)
	default:
		return decimal.Zero, fmt.Errorf("unsupported numeric value %v of type %T", v, v)
	}
}

func parseDecimalString(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")
	if clean == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return d, nil
}

// ParseMoney is ParseDecimal for an amount in the given currency.
func ParseMoney(v any, currency string) (Money, error) {
	d, err := ParseDecimal(v)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d, cur: currency}, nil
}

// unmarshalNumbers decodes data into v keeping JSON numbers as json.Number,
// so that they can go through ParseDecimal without a float64 detour.
func unmarshalNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
