package convert

import (
	"reflect"

	"typecaster/typedesc"
)

// MappingConverter rebuilds a keyed map, converting every key and value
// pair independently. Key collisions after conversion follow ordinary
// last-write-wins map insertion semantics. The result is always a fresh
// allocation.
type MappingConverter struct {
	target   *typedesc.Type
	targetRT reflect.Type
	key      Converter
	value    Converter
}

// NewMappingConverter builds a map converter producing maps of the given
// target type.
func NewMappingConverter(target *typedesc.Type, key, value Converter) *MappingConverter {
	bare := typedesc.Unwrap(target)
	if !typedesc.IsMapping(bare) {
		panic("convert: NewMappingConverter target is not a mapping type: " + target.String())
	}
	return &MappingConverter{target: bare, targetRT: bare.GoType(), key: key, value: value}
}

// Matches always reports true: a produced mapping converter is specific to
// the pair it was resolved for.
func (c *MappingConverter) Matches(source, target *typedesc.Type) bool { return true }

// Convert rebuilds the map, converting every key/value pair.
func (c *MappingConverter) Convert(scope *Scope, v any) (any, error) {
	return c.convert(scope, v, false)
}

// SafeConvert rebuilds the map through the pairs' validating variants.
func (c *MappingConverter) SafeConvert(scope *Scope, v any) (any, error) {
	return c.convert(scope, v, true)
}

func (c *MappingConverter) convert(scope *Scope, v any, safe bool) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, newTypeMismatch(v, c.target)
	}

	out := reflect.MakeMapWithSize(c.targetRT, rv.Len())
	for it := rv.MapRange(); it.Next(); {
		k, err := c.convertOne(c.key, scope, it.Key().Interface(), safe)
		if err != nil {
			return nil, err
		}
		val, err := c.convertOne(c.value, scope, it.Value().Interface(), safe)
		if err != nil {
			return nil, err
		}

		outKey, err := asValue(k, c.targetRT.Key())
		if err != nil {
			return nil, err
		}
		outVal, err := asValue(val, c.targetRT.Elem())
		if err != nil {
			return nil, err
		}
		out.SetMapIndex(outKey, outVal)
	}

	return out.Interface(), nil
}

func (c *MappingConverter) convertOne(conv Converter, scope *Scope, v any, safe bool) (any, error) {
	if safe {
		return safeConvert(conv, scope, v)
	}
	return conv.Convert(scope, v)
}

// MappingConverterFactory produces converters for map-to-map
// transformations, resolving key and value converters independently.
type MappingConverterFactory struct{}

// Matches reports whether both sides are keyed map types.
func (MappingConverterFactory) Matches(source, target *typedesc.Type) bool {
	return typedesc.IsMapping(source) && typedesc.IsMapping(target)
}

// Converter declines unless both the key pair and the value pair resolve.
func (MappingConverterFactory) Converter(source, target *typedesc.Type, reg *Registry) Converter {
	key := reg.Resolve(typedesc.Key(source), typedesc.Key(target))
	value := reg.Resolve(typedesc.Value(source), typedesc.Value(target))
	if key == nil || value == nil {
		return nil
	}
	return NewMappingConverter(target, key, value)
}
