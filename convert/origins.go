package convert

import "reflect"

// canonicalTypes maps primitive reflect kinds to their predeclared types.
// A named leaf type falls back to its kind's canonical type, the Go analog
// of walking a value's ancestor chain: type UserID int64 is dispatched and
// instance-checked against int64.
var canonicalTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:       reflect.TypeOf(false),
	reflect.Int:        reflect.TypeOf(int(0)),
	reflect.Int8:       reflect.TypeOf(int8(0)),
	reflect.Int16:      reflect.TypeOf(int16(0)),
	reflect.Int32:      reflect.TypeOf(int32(0)),
	reflect.Int64:      reflect.TypeOf(int64(0)),
	reflect.Uint:       reflect.TypeOf(uint(0)),
	reflect.Uint8:      reflect.TypeOf(uint8(0)),
	reflect.Uint16:     reflect.TypeOf(uint16(0)),
	reflect.Uint32:     reflect.TypeOf(uint32(0)),
	reflect.Uint64:     reflect.TypeOf(uint64(0)),
	reflect.Float32:    reflect.TypeOf(float32(0)),
	reflect.Float64:    reflect.TypeOf(float64(0)),
	reflect.Complex64:  reflect.TypeOf(complex64(0)),
	reflect.Complex128: reflect.TypeOf(complex128(0)),
	reflect.String:     reflect.TypeOf(""),
}

// canonicalOf returns the predeclared base type for a named leaf type, or
// nil when the type has no distinct canonical form.
func canonicalOf(rt reflect.Type) reflect.Type {
	base, ok := canonicalTypes[rt.Kind()]
	if !ok || base == rt {
		return nil
	}
	return base
}

// isCompositeKind reports whether a reflect kind is a parametrized container
// kind, whose type parameters are erased for dispatch and instance checks.
func isCompositeKind(k reflect.Kind) bool {
	switch k {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}
