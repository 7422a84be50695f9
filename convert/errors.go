package convert

import (
	"fmt"
	"reflect"
	"strings"

	"typecaster/typedesc"
)

// ErrorKind categorizes a conversion failure.
type ErrorKind int

const (
	_ ErrorKind = iota // skip zero value, use it as a default (invalid) value for ErrorKind

	// KindTypeMismatch means a value's runtime type does not match the
	// statically expected target type.
	KindTypeMismatch
	// KindNoConverter means every candidate converter for a union failed.
	KindNoConverter
	// KindMissingField means a record conversion is missing a field the
	// target declares as required.
	KindMissingField

	// ErrorKindTotal is a constant that represents the total number of error kinds defined
	ErrorKindTotal = int(iota)
)

// String returns a human-readable kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindTypeMismatch:
		return "type_mismatch"
	case KindNoConverter:
		return "no_converter"
	case KindMissingField:
		return "missing_field"
	default:
		return "unknown"
	}
}

// Error is the structured error type raised at conversion time. Resolution
// failure is never an Error: Registry.Resolve returns a nil converter to
// signal "no path exists".
type Error struct {
	Kind      ErrorKind
	Value     any
	ValueType reflect.Type
	Target    *typedesc.Type
	Field     string
	Detail    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.Kind.String())

	if e.Field != "" {
		b.WriteString(" at field ")
		b.WriteString(e.Field)
	}
	if e.Target != nil {
		b.WriteString(": expected ")
		b.WriteString(e.Target.String())
	}
	if e.ValueType != nil {
		b.WriteString(", got ")
		b.WriteString(e.ValueType.String())
		b.WriteString(fmt.Sprintf(" (value: %#v)", e.Value))
	}
	if e.Detail != "" {
		b.WriteString(" - ")
		b.WriteString(e.Detail)
	}

	return b.String()
}

func newTypeMismatch(value any, target *typedesc.Type) *Error {
	return &Error{
		Kind:      KindTypeMismatch,
		Value:     value,
		ValueType: reflect.TypeOf(value),
		Target:    target,
	}
}

func newNoConverter(value any, target *typedesc.Type) *Error {
	return &Error{
		Kind:      KindNoConverter,
		Value:     value,
		ValueType: reflect.TypeOf(value),
		Target:    target,
	}
}

func newMissingField(field string, target *typedesc.Type) *Error {
	return &Error{
		Kind:   KindMissingField,
		Target: target,
		Field:  field,
	}
}
