package convert

import "typecaster/typedesc"

// ConvertFunc is a user-supplied single-argument conversion function.
type ConvertFunc func(v any) (any, error)

// FunctionConverter wraps a user-supplied function. It always reports a
// structural match: the function's own correctness is the caller's
// responsibility and is not checked statically.
type FunctionConverter struct {
	fn ConvertFunc
}

// NewFunctionConverter wraps a conversion function.
func NewFunctionConverter(fn ConvertFunc) *FunctionConverter {
	if fn == nil {
		panic("convert: NewFunctionConverter called with nil function")
	}
	return &FunctionConverter{fn: fn}
}

// Matches always reports true.
func (c *FunctionConverter) Matches(source, target *typedesc.Type) bool { return true }

// Convert invokes the wrapped function.
func (c *FunctionConverter) Convert(scope *Scope, v any) (any, error) {
	return c.fn(v)
}
