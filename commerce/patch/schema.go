// Package patch merges sparse key/value updates into typed records.
//
// Each record type declares a Schema: a table from wire field name to a typed setter. Apply looks
// updates up in that table, coerces transport values (as produced by a JSON decoder) to the field's
// static type, and returns a new record. The record passed in is never modified, so a failing patch
// has no partial effect.
package patch

import (
	"errors"
	"fmt"
	"slices"
)

// Identifier describes the primary key of record type T. It is never patchable.
type Identifier[T any] struct {
	name string
	ref  func(*T) *string
}

// ID declares the identifier field of a record type.
func ID[T any](name string, ref func(*T) *string) Identifier[T] {
	return Identifier[T]{name: name, ref: ref}
}

// Schema is the patch descriptor of record type T.
type Schema[T any] struct {
	resource string
	id       Identifier[T]
	fields   map[string]Field[T]
	names    []string
}

// NewSchema creates a schema for the resource. It fails if a field name is declared twice
// or if the identifier is also declared as a patchable field.
func NewSchema[T any](resource string, id Identifier[T], fields ...Field[T]) (*Schema[T], error) {
	if resource == "" {
		return nil, errors.New("resource name cannot be empty")
	}

	if id.name == "" || id.ref == nil {
		return nil, fmt.Errorf("identifier of %s must have a name and an accessor", resource)
	}

	s := &Schema[T]{
		resource: resource,
		id:       id,
		fields:   make(map[string]Field[T], len(fields)),
		names:    make([]string, 0, len(fields)),
	}

	for _, f := range fields {
		if f.name == id.name {
			return nil, fmt.Errorf("identifier %q of %s cannot be declared as a patchable field", f.name, resource)
		}

		if _, exists := s.fields[f.name]; exists {
			return nil, fmt.Errorf("field %q of %s is declared more than once", f.name, resource)
		}

		s.fields[f.name] = f
		s.names = append(s.names, f.name)
	}

	slices.Sort(s.names)
	return s, nil
}

// MustSchema is like NewSchema but panics on an invalid declaration.
// It is meant for package-level schema variables.
func MustSchema[T any](resource string, id Identifier[T], fields ...Field[T]) *Schema[T] {
	s, err := NewSchema(resource, id, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Resource returns the resource name used in error messages.
func (s *Schema[T]) Resource() string {
	return s.resource
}

// IDField returns the wire name of the identifier.
func (s *Schema[T]) IDField() string {
	return s.id.name
}

// Fields returns the sorted wire names of the patchable fields.
func (s *Schema[T]) Fields() []string {
	return slices.Clone(s.names)
}

// ID returns the identifier of rec.
func (s *Schema[T]) ID(rec *T) string {
	return *s.id.ref(rec)
}

// SetID assigns the identifier of rec.
func (s *Schema[T]) SetID(rec *T, id string) {
	*s.id.ref(rec) = id
}

// Apply merges updates into a copy of current and returns the copy.
//
// Updates are applied in key order and the first bad entry aborts the whole patch with an
// *UnknownFieldError, *TypeCoercionError or *ConstraintError. Fields absent from updates keep their
// current value. T is copied by value, so fields of T that are pointers, maps or slices are shared
// with current.
func (s *Schema[T]) Apply(current T, updates map[string]any) (T, error) {
	var zero T
	next := current

	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if key == s.id.name {
			return zero, &UnknownFieldError{Resource: s.resource, Field: key, Identifier: true}
		}

		f, ok := s.fields[key]
		if !ok {
			return zero, &UnknownFieldError{Resource: s.resource, Field: key}
		}

		value := updates[key]
		if value == nil {
			if !f.nullable {
				return zero, &TypeCoercionError{
					Resource: s.resource,
					Field:    key,
					Type:     f.typ,
					Value:    nil,
					Reason:   "null is not allowed",
				}
			}

			f.clear(&next)
			continue
		}

		if err := f.set(&next, value); err != nil {
			return zero, s.bind(err)
		}
	}

	return next, nil
}

// Validate checks every field constraint of rec, in field name order.
func (s *Schema[T]) Validate(rec *T) error {
	for _, name := range s.names {
		if err := s.fields[name].validate(rec); err != nil {
			return s.bind(err)
		}
	}
	return nil
}

// bind stamps the resource name onto field-level errors.
func (s *Schema[T]) bind(err error) error {
	var coercionErr *TypeCoercionError
	if errors.As(err, &coercionErr) {
		coercionErr.Resource = s.resource
		return coercionErr
	}

	var constraintErr *ConstraintError
	if errors.As(err, &constraintErr) {
		constraintErr.Resource = s.resource
		return constraintErr
	}

	return err
}
