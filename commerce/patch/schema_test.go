//nolint:lll // unit tests
package patch

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID         string
	Name       string
	Note       string
	CVV        int
	Quantity   int
	Amount     decimal.Decimal
	Active     bool
	LastUpdate time.Time
	Expires    time.Time
}

func newTestSchema(t *testing.T) *Schema[testRecord] {
	t.Helper()

	s, err := NewSchema(
		"test record",
		ID("id", func(r *testRecord) *string { return &r.ID }),
		String("name", func(r *testRecord) *string { return &r.Name }),
		String("note", func(r *testRecord) *string { return &r.Note }).Nullable(),
		Integer("cvv", func(r *testRecord) *int { return &r.CVV }),
		Integer("quantity", func(r *testRecord) *int { return &r.Quantity }, AtLeast(1), AtMost(99)),
		Decimal("amount", func(r *testRecord) *decimal.Decimal { return &r.Amount }, Positive(), Precision(12, 2)),
		Boolean("active", func(r *testRecord) *bool { return &r.Active }),
		Timestamp("lastUpdate", func(r *testRecord) *time.Time { return &r.LastUpdate }),
		Date("expires", func(r *testRecord) *time.Time { return &r.Expires }),
	)
	require.NoError(t, err)

	return s
}

func newTestRecord() testRecord {
	return testRecord{
		ID:         "C1",
		Name:       "Old Name",
		Note:       "fragile",
		CVV:        123,
		Quantity:   2,
		Amount:     decimal.RequireFromString("100.00"),
		Active:     true,
		LastUpdate: time.Date(2023, time.June, 1, 8, 0, 0, 0, time.UTC),
		Expires:    time.Date(2027, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewSchema(t *testing.T) {
	idField := ID("id", func(r *testRecord) *string { return &r.ID })
	nameField := String("name", func(r *testRecord) *string { return &r.Name })

	testCases := map[string]struct {
		resource      string
		id            Identifier[testRecord]
		fields        []Field[testRecord]
		expectedError string
	}{
		"should create schema with unique fields": {
			resource: "card",
			id:       idField,
			fields:   []Field[testRecord]{nameField},
		},
		"should reject empty resource name": {
			id:            idField,
			expectedError: "resource name cannot be empty",
		},
		"should reject identifier without accessor": {
			resource:      "card",
			id:            Identifier[testRecord]{name: "id"},
			expectedError: "identifier of card must have a name and an accessor",
		},
		"should reject duplicate field names": {
			resource:      "card",
			id:            idField,
			fields:        []Field[testRecord]{nameField, nameField},
			expectedError: `field "name" of card is declared more than once`,
		},
		"should reject identifier declared as patchable field": {
			resource:      "card",
			id:            idField,
			fields:        []Field[testRecord]{String("id", func(r *testRecord) *string { return &r.ID })},
			expectedError: `identifier "id" of card cannot be declared as a patchable field`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			s, err := NewSchema(tc.resource, tc.id, tc.fields...)

			if tc.expectedError != "" {
				require.Error(t, err)
				assert.Equal(t, tc.expectedError, err.Error())
				assert.Nil(t, s)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.resource, s.Resource())
			assert.Equal(t, "id", s.IDField())
		})
	}
}

func TestMustSchema_PanicsOnInvalidDeclaration(t *testing.T) {
	assert.Panics(t, func() {
		MustSchema("", ID("id", func(r *testRecord) *string { return &r.ID }))
	})
}

func TestSchema_Apply(t *testing.T) {
	s := newTestSchema(t)

	testCases := map[string]struct {
		updates  map[string]any
		expected func(r testRecord) testRecord
	}{
		"should update a single string field and keep the rest": {
			updates: map[string]any{"name": "New Name"},
			expected: func(r testRecord) testRecord {
				r.Name = "New Name"
				return r
			},
		},
		"should accept fractional decimal amounts": {
			updates: map[string]any{"amount": 150.25},
			expected: func(r testRecord) testRecord {
				r.Amount = decimal.NewFromFloat(150.25)
				return r
			},
		},
		"should parse json numbers exactly": {
			updates: map[string]any{"amount": json.Number("19.99"), "cvv": json.Number("456")},
			expected: func(r testRecord) testRecord {
				r.Amount = decimal.RequireFromString("19.99")
				r.CVV = 456
				return r
			},
		},
		"should accept integral floats for integer fields": {
			updates: map[string]any{"cvv": float64(999)},
			expected: func(r testRecord) testRecord {
				r.CVV = 999
				return r
			},
		},
		"should parse offset date-time into an UTC instant": {
			updates: map[string]any{"lastUpdate": "2024-01-15T12:00:00+02:00"},
			expected: func(r testRecord) testRecord {
				r.LastUpdate = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
				return r
			},
		},
		"should accept minute-precision offset date-time": {
			updates: map[string]any{"lastUpdate": "2024-01-15T10:00Z"},
			expected: func(r testRecord) testRecord {
				r.LastUpdate = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
				return r
			},
		},
		"should accept minute-precision date-time with a numeric offset": {
			updates: map[string]any{"lastUpdate": "2024-01-15T11:00+01:00"},
			expected: func(r testRecord) testRecord {
				r.LastUpdate = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
				return r
			},
		},
		"should parse calendar dates in UTC": {
			updates: map[string]any{"expires": "2030-12-01"},
			expected: func(r testRecord) testRecord {
				r.Expires = time.Date(2030, time.December, 1, 0, 0, 0, 0, time.UTC)
				return r
			},
		},
		"should set boolean fields": {
			updates: map[string]any{"active": false},
			expected: func(r testRecord) testRecord {
				r.Active = false
				return r
			},
		},
		"should clear nullable field on null": {
			updates: map[string]any{"note": nil},
			expected: func(r testRecord) testRecord {
				r.Note = ""
				return r
			},
		},
		"should return an unchanged copy for empty updates": {
			updates:  map[string]any{},
			expected: func(r testRecord) testRecord { return r },
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			current := newTestRecord()

			result, err := s.Apply(current, tc.updates)

			require.NoError(t, err)
			assert.Equal(t, tc.expected(newTestRecord()), result)
			assert.Equal(t, newTestRecord(), current)
		})
	}
}

func TestSchema_ApplyFailures(t *testing.T) {
	s := newTestSchema(t)

	testCases := map[string]struct {
		updates       map[string]any
		expectedError string
		assertError   func(t *testing.T, err error)
	}{
		"should reject unknown field": {
			updates:       map[string]any{"nonExistentField": "x"},
			expectedError: `unknown field "nonExistentField" for test record`,
			assertError: func(t *testing.T, err error) {
				var unknownErr *UnknownFieldError
				require.True(t, errors.As(err, &unknownErr))
				assert.Equal(t, "nonExistentField", unknownErr.Field)
				assert.False(t, unknownErr.Identifier)
			},
		},
		"should reject identifier updates": {
			updates:       map[string]any{"id": "C2"},
			expectedError: `field "id" of test record is the identifier and cannot be patched`,
			assertError: func(t *testing.T, err error) {
				var unknownErr *UnknownFieldError
				require.True(t, errors.As(err, &unknownErr))
				assert.True(t, unknownErr.Identifier)
			},
		},
		"should reject non ISO-8601 timestamps": {
			updates:       map[string]any{"lastUpdate": "15/01/2024 10:00"},
			expectedError: `invalid value for timestamp field "lastUpdate" of test record: expected ISO-8601 offset date-time, got "15/01/2024 10:00"`,
			assertError: func(t *testing.T, err error) {
				var coercionErr *TypeCoercionError
				require.True(t, errors.As(err, &coercionErr))
				assert.Equal(t, "lastUpdate", coercionErr.Field)
				assert.Equal(t, TypeTimestamp, coercionErr.Type)
				assert.Equal(t, "15/01/2024 10:00", coercionErr.Value)
			},
		},
		"should reject timestamps without offset": {
			updates:       map[string]any{"lastUpdate": "2024-01-15T10:00:00"},
			expectedError: `invalid value for timestamp field "lastUpdate" of test record: expected ISO-8601 offset date-time, got "2024-01-15T10:00:00"`,
		},
		"should reject decimal with an exponent beyond the supported range": {
			updates:       map[string]any{"amount": json.Number("1e2000000")},
			expectedError: `invalid value for decimal field "amount" of test record: expected number with at most 38 integer digits and 38 decimal places`,
			assertError: func(t *testing.T, err error) {
				var coercionErr *TypeCoercionError
				require.True(t, errors.As(err, &coercionErr))
				assert.Equal(t, TypeDecimal, coercionErr.Type)
			},
		},
		"should reject decimal with too many decimal places to coerce": {
			updates:       map[string]any{"amount": json.Number("1e-2000000")},
			expectedError: `invalid value for decimal field "amount" of test record: expected number with at most 38 integer digits and 38 decimal places`,
		},
		"should reject amount with more than two decimal places": {
			updates:       map[string]any{"amount": json.Number("19.999")},
			expectedError: `invalid value for field "amount" of test record: must have at most 12 digits with 2 decimal places`,
			assertError: func(t *testing.T, err error) {
				var constraintErr *ConstraintError
				require.True(t, errors.As(err, &constraintErr))
				assert.Equal(t, "amount", constraintErr.Field)
			},
		},
		"should reject amount wider than twelve digits": {
			updates:       map[string]any{"amount": json.Number("10000000000.00")},
			expectedError: `invalid value for field "amount" of test record: must have at most 12 digits with 2 decimal places`,
		},
		"should reject string for decimal field": {
			updates:       map[string]any{"amount": "abc"},
			expectedError: `invalid value for decimal field "amount" of test record: expected number, got string`,
		},
		"should reject fractional value for integer field": {
			updates:       map[string]any{"cvv": 12.5},
			expectedError: `invalid value for integer field "cvv" of test record: expected integer, got 12.5`,
		},
		"should reject fractional json number for integer field": {
			updates:       map[string]any{"cvv": json.Number("1.5")},
			expectedError: `invalid value for integer field "cvv" of test record: expected integer, got 1.5`,
		},
		"should reject number for string field": {
			updates:       map[string]any{"name": 42.0},
			expectedError: `invalid value for string field "name" of test record: expected string, got number`,
		},
		"should reject string for boolean field": {
			updates:       map[string]any{"active": "true"},
			expectedError: `invalid value for boolean field "active" of test record: expected boolean, got string`,
		},
		"should reject malformed date": {
			updates:       map[string]any{"expires": "2030-13-01"},
			expectedError: `invalid value for date field "expires" of test record: expected date in yyyy-MM-dd form, got "2030-13-01"`,
		},
		"should reject null for non nullable field": {
			updates:       map[string]any{"name": nil},
			expectedError: `invalid value for string field "name" of test record: null is not allowed`,
		},
		"should reject non positive amount": {
			updates:       map[string]any{"amount": -5},
			expectedError: `invalid value for field "amount" of test record: must be greater than zero`,
			assertError: func(t *testing.T, err error) {
				var constraintErr *ConstraintError
				require.True(t, errors.As(err, &constraintErr))
				assert.Equal(t, "test record", constraintErr.Resource)
			},
		},
		"should reject quantity below minimum": {
			updates:       map[string]any{"quantity": 0},
			expectedError: `invalid value for field "quantity" of test record: must be at least 1`,
		},
		"should reject quantity above maximum": {
			updates:       map[string]any{"quantity": 100},
			expectedError: `invalid value for field "quantity" of test record: must be at most 99`,
		},
		"should fail on first bad key in key order": {
			updates: map[string]any{
				"amount": "abc",
				"zzz":    "unknown",
			},
			expectedError: `invalid value for decimal field "amount" of test record: expected number, got string`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			current := newTestRecord()

			result, err := s.Apply(current, tc.updates)

			require.Error(t, err)
			assert.Equal(t, tc.expectedError, err.Error())
			assert.Equal(t, testRecord{}, result)
			assert.Equal(t, newTestRecord(), current)

			if tc.assertError != nil {
				tc.assertError(t, err)
			}
		})
	}
}

func TestSchema_ApplyDoesNotPartiallyMutate(t *testing.T) {
	s := newTestSchema(t)
	current := newTestRecord()

	// "name" sorts before "nonExistentField", so it is coerced before the failure
	_, err := s.Apply(current, map[string]any{
		"name":             "Changed",
		"nonExistentField": "x",
	})

	var unknownErr *UnknownFieldError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "Old Name", current.Name)
}

func TestSchema_ApplyIsIdempotent(t *testing.T) {
	s := newTestSchema(t)
	updates := map[string]any{
		"name":       "New Name",
		"amount":     json.Number("150.00"),
		"quantity":   3,
		"lastUpdate": "2024-01-15T10:00:00Z",
	}

	once, err := s.Apply(newTestRecord(), updates)
	require.NoError(t, err)

	twice, err := s.Apply(once, updates)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestSchema_Validate(t *testing.T) {
	s := newTestSchema(t)

	valid := newTestRecord()
	assert.NoError(t, s.Validate(&valid))

	invalid := newTestRecord()
	invalid.Amount = decimal.Zero
	err := s.Validate(&invalid)
	require.Error(t, err)
	assert.Equal(t, `invalid value for field "amount" of test record: must be greater than zero`, err.Error())
}

func TestSchema_IDAccessors(t *testing.T) {
	s := newTestSchema(t)
	rec := newTestRecord()

	assert.Equal(t, "C1", s.ID(&rec))

	s.SetID(&rec, "C9")
	assert.Equal(t, "C9", rec.ID)
}

func TestSchema_Fields(t *testing.T) {
	s := newTestSchema(t)

	fields := s.Fields()
	assert.Equal(t, []string{"active", "amount", "cvv", "expires", "lastUpdate", "name", "note", "quantity"}, fields)
	assert.NotContains(t, fields, "id")

	fields[0] = "mutated"
	assert.Equal(t, "active", s.Fields()[0])
}
