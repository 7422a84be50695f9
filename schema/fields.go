package schema

import (
	"typecaster/convert"
	"typecaster/typedesc"
)

// FieldDef describes one field participating in conversion: its declared
// name and type on each side, its required status, and optional
// user-supplied override functions for either direction. The engine
// consults the override first and falls back to registry resolution only
// when none is supplied.
type FieldDef struct {
	Name         string
	ExternalName string
	Type         *typedesc.Type
	ExternalType *typedesc.Type
	Required     bool

	ToExternalFn   convert.ConvertFunc
	FromExternalFn convert.ConvertFunc
}

// ToExternal returns the converter for the field's outbound direction, or
// nil when no override is supplied and no conversion path exists.
func (d *FieldDef) ToExternal(reg *convert.Registry) convert.Converter {
	if d.ToExternalFn != nil {
		return convert.NewFunctionConverter(d.ToExternalFn)
	}
	return reg.Resolve(d.Type, d.ExternalType)
}

// FromExternal returns the converter for the field's inbound direction, or
// nil when no override is supplied and no conversion path exists.
func (d *FieldDef) FromExternal(reg *convert.Registry) convert.Converter {
	if d.FromExternalFn != nil {
		return convert.NewFunctionConverter(d.FromExternalFn)
	}
	return reg.Resolve(d.ExternalType, d.Type)
}
