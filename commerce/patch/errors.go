package patch

import "fmt"

// UnknownFieldError is returned when an update names a field that the record's schema does not allow to be patched.
// The identifier field is reported with Identifier set, because it exists on the record but is immutable.
type UnknownFieldError struct {
	Resource   string
	Field      string
	Identifier bool
}

// Error implements the error interface
func (e *UnknownFieldError) Error() string {
	if e.Identifier {
		return fmt.Sprintf("field %q of %s is the identifier and cannot be patched", e.Field, e.Resource)
	}

	return fmt.Sprintf("unknown field %q for %s", e.Field, e.Resource)
}

// TypeCoercionError is returned when an update value cannot be converted to the field's declared type
type TypeCoercionError struct {
	Resource string
	Field    string
	Type     Type
	Value    any
	Reason   string
}

// Error implements the error interface
func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("invalid value for %s field %q of %s: %s", e.Type, e.Field, e.Resource, e.Reason)
}

// ConstraintError is returned when a value has the right type but violates a domain rule of the field,
// such as a non-positive price.
type ConstraintError struct {
	Resource string
	Field    string
	Value    any
	Reason   string
}

// Error implements the error interface
func (e *ConstraintError) Error() string {
	return fmt.Sprintf("invalid value for field %q of %s: %s", e.Field, e.Resource, e.Reason)
}
