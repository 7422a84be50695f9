package convert

import (
	"reflect"

	"typecaster/typedesc"
)

// NoOpConverter passes values through unchanged after a runtime instance
// check against the target's origin type. Type parameters are erased at
// runtime, so for container targets only the container kind is checked.
// On success the value itself is returned: no-op means no allocation.
type NoOpConverter struct {
	target *typedesc.Type
	bare   *typedesc.Type
}

// NewNoOpConverter builds a passthrough converter validating against the
// given target type.
func NewNoOpConverter(target *typedesc.Type) *NoOpConverter {
	return &NoOpConverter{target: target, bare: typedesc.Unwrap(target)}
}

// Matches reports structural equality of the pair.
func (c *NoOpConverter) Matches(source, target *typedesc.Type) bool {
	return typedesc.StructurallyEqual(source, target)
}

// Convert validates the value's runtime type and returns it unchanged.
func (c *NoOpConverter) Convert(scope *Scope, v any) (any, error) {
	if !c.accepts(v) {
		return nil, newTypeMismatch(v, c.target)
	}
	return v, nil
}

// SafeConvert is identical to Convert: the no-op check is already
// validating.
func (c *NoOpConverter) SafeConvert(scope *Scope, v any) (any, error) {
	return c.Convert(scope, v)
}

func (c *NoOpConverter) accepts(v any) bool {
	switch c.bare.Kind() {
	case typedesc.KindAny:
		return true
	case typedesc.KindNil:
		return v == nil
	case typedesc.KindGo:
		// handled below
	default:
		return false
	}

	rt := reflect.TypeOf(v)
	if rt == nil {
		return false
	}

	origin := c.bare.GoType()
	if isCompositeKind(origin.Kind()) {
		return rt.Kind() == origin.Kind()
	}
	if rt == origin || rt.AssignableTo(origin) {
		return true
	}
	// a named leaf type passes a check against its canonical base type
	return canonicalOf(rt) == origin
}

// NoOpConverterFactory produces passthrough converters for no-op-compatible
// pairs. It is registered first in the registry as the fast path for the
// common case where no transformation is needed.
type NoOpConverterFactory struct{}

// Matches reports no-op compatibility, including the widening-to-Any case.
func (NoOpConverterFactory) Matches(source, target *typedesc.Type) bool {
	return typedesc.NoOpCompatible(source, target)
}

// Converter builds a NoOpConverter for the bare target type.
func (NoOpConverterFactory) Converter(source, target *typedesc.Type, reg *Registry) Converter {
	return NewNoOpConverter(typedesc.Unwrap(target))
}
