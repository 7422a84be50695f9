package convert

import (
	"fmt"
	"sort"
	"strings"

	"typecaster/typedesc"
)

func isLiteral(t *typedesc.Type) bool {
	return typedesc.Unwrap(t).Kind() == typedesc.KindLiteral
}

func literalValueSet(t *typedesc.Type) map[any]struct{} {
	values := typedesc.Unwrap(t).LiteralValues()
	set := make(map[any]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// literalSubset reports whether both sides are literal types and the
// source's allowed values are a subset of the target's. The check is
// structural and happens once at resolution time, not per value.
func literalSubset(source, target *typedesc.Type) bool {
	if !isLiteral(source) || !isLiteral(target) {
		return false
	}

	targetValues := literalValueSet(target)
	for v := range literalValueSet(source) {
		if _, ok := targetValues[v]; !ok {
			return false
		}
	}
	return true
}

// LiteralConverter passes literal values through; the validating variant
// additionally checks membership in the target's allowed value set.
type LiteralConverter struct {
	target  *typedesc.Type
	allowed map[any]struct{}
}

// NewLiteralConverter builds a converter validating against the target
// literal's allowed values.
func NewLiteralConverter(target *typedesc.Type) *LiteralConverter {
	return &LiteralConverter{target: target, allowed: literalValueSet(target)}
}

// Matches reports the literal subset relation for the pair.
func (c *LiteralConverter) Matches(source, target *typedesc.Type) bool {
	return literalSubset(source, target)
}

// Convert returns the value unchanged; the subset check at resolution time
// already guarantees validity for declared literal sources.
func (c *LiteralConverter) Convert(scope *Scope, v any) (any, error) {
	return v, nil
}

// SafeConvert additionally validates that the value is one of the target's
// allowed values.
func (c *LiteralConverter) SafeConvert(scope *Scope, v any) (any, error) {
	if _, ok := c.allowed[v]; !ok {
		err := newTypeMismatch(v, c.target)
		err.Detail = fmt.Sprintf("value %#v is not one of the allowed literal values: %s",
			v, formatAllowed(c.allowed))
		return nil, err
	}
	return v, nil
}

func formatAllowed(allowed map[any]struct{}) string {
	parts := make([]string, 0, len(allowed))
	for v := range allowed {
		parts = append(parts, fmt.Sprintf("%#v", v))
	}
	sort.Strings(parts)
	return "[" + strings.Join(parts, ", ") + "]"
}

// LiteralConverterFactory produces converters for literal pairs whose
// source values are a subset of the target values.
type LiteralConverterFactory struct{}

// Matches reports the literal subset relation for the pair.
func (LiteralConverterFactory) Matches(source, target *typedesc.Type) bool {
	return literalSubset(source, target)
}

// Converter builds a LiteralConverter for the bare target type.
func (LiteralConverterFactory) Converter(source, target *typedesc.Type, reg *Registry) Converter {
	return NewLiteralConverter(typedesc.Unwrap(target))
}
