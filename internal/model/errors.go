package model

import "fmt"

// FieldError reports a present field whose value cannot be decoded into its Go type.
type FieldError struct {
	Type  string
	Field string
	Value interface{}
	Cause error
}

func (e *FieldError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: cannot decode %T (%v)", e.Type, e.Field, e.Value, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: cannot decode %T", e.Type, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Cause
}

// NewFieldError creates a new field error
func NewFieldError(typ, field string, value interface{}, cause error) *FieldError {
	return &FieldError{
		Type:  typ,
		Field: field,
		Value: value,
		Cause: cause,
	}
}
