package patch

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Type is the static type of a record field
type Type string

const (
	TypeString    Type = "string"
	TypeInteger   Type = "integer"
	TypeDecimal   Type = "decimal"
	TypeBoolean   Type = "boolean"
	TypeTimestamp Type = "timestamp"
	TypeDate      Type = "date"
)

// Constraint checks a coerced value against a domain rule and returns the reason it is rejected.
type Constraint[V any] func(V) error

// Positive rejects decimals that are zero or negative.
func Positive() Constraint[decimal.Decimal] {
	return func(v decimal.Decimal) error {
		if !v.IsPositive() {
			return errors.New("must be greater than zero")
		}
		return nil
	}
}

// Precision rejects decimals that do not fit a column of digits total digits with scale decimal places.
func Precision(digits, scale int) Constraint[decimal.Decimal] {
	limit := decimal.New(1, int32(digits-scale))
	return func(v decimal.Decimal) error {
		if !v.Equal(v.Truncate(int32(scale))) || v.Abs().Cmp(limit) >= 0 {
			return fmt.Errorf("must have at most %d digits with %d decimal places", digits, scale)
		}
		return nil
	}
}

// AtLeast rejects integers below minimum.
func AtLeast(minimum int) Constraint[int] {
	return func(v int) error {
		if v < minimum {
			return fmt.Errorf("must be at least %d", minimum)
		}
		return nil
	}
}

// AtMost rejects integers above maximum.
func AtMost(maximum int) Constraint[int] {
	return func(v int) error {
		if v > maximum {
			return fmt.Errorf("must be at most %d", maximum)
		}
		return nil
	}
}

// Field describes one patchable field of record type T: its wire name, its static type and
// how a coerced value is written into a record.
type Field[T any] struct {
	name     string
	typ      Type
	nullable bool
	set      func(rec *T, value any) error
	clear    func(rec *T)
	validate func(rec *T) error
}

// Name returns the wire name of the field.
func (f Field[T]) Name() string {
	return f.name
}

// Type returns the static type of the field.
func (f Field[T]) Type() Type {
	return f.typ
}

// Nullable returns a copy of the field that accepts null updates, which reset the field to its zero value.
func (f Field[T]) Nullable() Field[T] {
	f.nullable = true
	return f
}

// String declares a string field.
func String[T any](name string, ref func(*T) *string) Field[T] {
	return newField(name, TypeString, ref, toString, nil)
}

// Integer declares an integer field.
func Integer[T any](name string, ref func(*T) *int, constraints ...Constraint[int]) Field[T] {
	return newField(name, TypeInteger, ref, toInt, constraints)
}

// Decimal declares an exact decimal field, typically money.
func Decimal[T any](name string, ref func(*T) *decimal.Decimal, constraints ...Constraint[decimal.Decimal]) Field[T] {
	return newField(name, TypeDecimal, ref, toDecimal, constraints)
}

// Boolean declares a boolean field.
func Boolean[T any](name string, ref func(*T) *bool) Field[T] {
	return newField(name, TypeBoolean, ref, toBool, nil)
}

// Timestamp declares an absolute instant field, patched with an ISO-8601 offset date-time string.
func Timestamp[T any](name string, ref func(*T) *time.Time) Field[T] {
	return newField(name, TypeTimestamp, ref, toTimestamp, nil)
}

// Date declares a calendar date field, patched with a yyyy-MM-dd string interpreted in UTC.
func Date[T any](name string, ref func(*T) *time.Time) Field[T] {
	return newField(name, TypeDate, ref, toDate, nil)
}

func newField[T, V any](
	name string,
	typ Type,
	ref func(*T) *V,
	coerce func(any) (V, error),
	constraints []Constraint[V],
) Field[T] {
	check := func(v V) error {
		for _, constraint := range constraints {
			if err := constraint(v); err != nil {
				return err
			}
		}
		return nil
	}

	return Field[T]{
		name: name,
		typ:  typ,
		set: func(rec *T, value any) error {
			v, err := coerce(value)
			if err != nil {
				return &TypeCoercionError{Field: name, Type: typ, Value: value, Reason: err.Error()}
			}

			if err := check(v); err != nil {
				return &ConstraintError{Field: name, Value: value, Reason: err.Error()}
			}

			*ref(rec) = v
			return nil
		},
		clear: func(rec *T) {
			var zero V
			*ref(rec) = zero
		},
		validate: func(rec *T) error {
			v := *ref(rec)
			if err := check(v); err != nil {
				return &ConstraintError{Field: name, Value: v, Reason: err.Error()}
			}
			return nil
		},
	}
}
