package patch

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar date fields.
const DateLayout = time.DateOnly

// MaxDecimalDigits bounds the integer digits and the decimal places a decimal value may carry.
const MaxDecimalDigits = 38

// minuteLayout is an offset date-time without seconds.
const minuteLayout = "2006-01-02T15:04Z07:00"

func toString(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %s", kindOf(value))
	}
	return s, nil
}

func toBool(value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("expected boolean, got %s", kindOf(value))
	}
	return b, nil
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case json.Number:
		i, err := strconv.ParseInt(v.String(), 10, 0)
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %s", v.String())
		}
		return int(i), nil
	case float64:
		return intFromFloat(v)
	case float32:
		return intFromFloat(float64(v))
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return intFromInt64(v)
	case uint:
		return intFromUint64(uint64(v))
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return intFromUint64(uint64(v))
	case uint64:
		return intFromUint64(v)
	default:
		return 0, fmt.Errorf("expected integer, got %s", kindOf(value))
	}
}

func intFromFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("expected integer, got %v", f)
	}

	// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive
	if f < math.MinInt || f >= math.MaxInt {
		return 0, fmt.Errorf("integer %v is out of range", f)
	}

	return int(f), nil
}

func intFromInt64(i int64) (int, error) {
	if i < math.MinInt || i > math.MaxInt {
		return 0, fmt.Errorf("integer %d is out of range", i)
	}
	return int(i), nil
}

func intFromUint64(u uint64) (int, error) {
	if u > math.MaxInt {
		return 0, fmt.Errorf("integer %d is out of range", u)
	}
	return int(u), nil
}

func toDecimal(value any) (decimal.Decimal, error) {
	d, err := decimalOf(value)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if d.Exponent() < -MaxDecimalDigits || integerDigits(d) > MaxDecimalDigits {
		return decimal.Decimal{}, fmt.Errorf("expected number with at most %d integer digits and %d decimal places", MaxDecimalDigits, MaxDecimalDigits)
	}

	return d, nil
}

// integerDigits counts the digits left of the decimal point.
func integerDigits(d decimal.Decimal) int {
	if d.IsZero() {
		return 0
	}
	return d.NumDigits() + int(d.Exponent())
}

func decimalOf(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("expected number, got %s", v.String())
		}
		return d, nil
	case decimal.Decimal:
		return v, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Decimal{}, fmt.Errorf("expected finite number, got %v", v)
		}
		return decimal.NewFromFloat(v), nil
	case float32:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, fmt.Errorf("expected finite number, got %v", v)
		}
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int8:
		return decimal.NewFromInt(int64(v)), nil
	case int16:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(v)), 0), nil
	case uint8:
		return decimal.NewFromInt(int64(v)), nil
	case uint16:
		return decimal.NewFromInt(int64(v)), nil
	case uint32:
		return decimal.NewFromInt(int64(v)), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("expected number, got %s", kindOf(value))
	}
}

func toTimestamp(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC(), nil
	case string:
		for _, layout := range []string{time.RFC3339Nano, minuteLayout} {
			if t, err := time.Parse(layout, v); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("expected ISO-8601 offset date-time, got %q", v)
	default:
		return time.Time{}, fmt.Errorf("expected ISO-8601 offset date-time string, got %s", kindOf(value))
	}
}

func toDate(value any) (time.Time, error) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("expected date string in %s form, got %s", "yyyy-MM-dd", kindOf(value))
	}

	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected date in %s form, got %q", "yyyy-MM-dd", s)
	}

	return t, nil
}

// kindOf names the JSON kind of a transport value for error messages.
func kindOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", value)
	}
}
