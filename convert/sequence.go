package convert

import (
	"reflect"

	"typecaster/typedesc"
)

// SequenceConverter transforms the contents of a sequence container (slice,
// array, or set spelled as map[T]struct{}) by applying an element converter
// to every member. The result is always a freshly allocated container, never
// an alias of the source; value-equal elements collapse per normal map
// semantics when the target is a set.
type SequenceConverter struct {
	target     *typedesc.Type
	targetKind typedesc.SeqKindEnum
	targetRT   reflect.Type
	elem       Converter
}

// NewSequenceConverter builds a sequence converter producing containers of
// the given target type.
func NewSequenceConverter(target *typedesc.Type, elem Converter) *SequenceConverter {
	bare := typedesc.Unwrap(target)
	kind := typedesc.SeqKindOf(bare)
	if kind == 0 {
		panic("convert: NewSequenceConverter target is not a sequence type: " + target.String())
	}
	return &SequenceConverter{
		target:     bare,
		targetKind: kind,
		targetRT:   bare.GoType(),
		elem:       elem,
	}
}

// Matches always reports true: a produced sequence converter is specific to
// the pair it was resolved for.
func (c *SequenceConverter) Matches(source, target *typedesc.Type) bool { return true }

// Convert rebuilds the container, converting every element.
func (c *SequenceConverter) Convert(scope *Scope, v any) (any, error) {
	return c.convert(scope, v, false)
}

// SafeConvert rebuilds the container through the elements' validating
// variants.
func (c *SequenceConverter) SafeConvert(scope *Scope, v any) (any, error) {
	return c.convert(scope, v, true)
}

func (c *SequenceConverter) convert(scope *Scope, v any, safe bool) (any, error) {
	elems, err := c.sourceElems(v)
	if err != nil {
		return nil, err
	}

	converted := make([]any, len(elems))
	for i, e := range elems {
		var out any
		if safe {
			out, err = safeConvert(c.elem, scope, e)
		} else {
			out, err = c.elem.Convert(scope, e)
		}
		if err != nil {
			return nil, err
		}
		converted[i] = out
	}

	return c.build(converted, v)
}

func (c *SequenceConverter) sourceElems(v any) ([]any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		elems := make([]any, rv.Len())
		for i := range elems {
			elems[i] = rv.Index(i).Interface()
		}
		return elems, nil
	case reflect.Map:
		if rv.Type().Elem() == reflect.TypeOf(struct{}{}) {
			elems := make([]any, 0, rv.Len())
			for it := rv.MapRange(); it.Next(); {
				elems = append(elems, it.Key().Interface())
			}
			return elems, nil
		}
	}
	return nil, newTypeMismatch(v, c.target)
}

func (c *SequenceConverter) build(elems []any, source any) (any, error) {
	switch c.targetKind {
	case typedesc.SeqSlice:
		out := reflect.MakeSlice(c.targetRT, 0, len(elems))
		for _, e := range elems {
			val, err := asValue(e, c.targetRT.Elem())
			if err != nil {
				return nil, err
			}
			out = reflect.Append(out, val)
		}
		return out.Interface(), nil

	case typedesc.SeqArray:
		if len(elems) != c.targetRT.Len() {
			err := newTypeMismatch(source, c.target)
			err.Detail = "source length does not match target array length"
			return nil, err
		}
		out := reflect.New(c.targetRT).Elem()
		for i, e := range elems {
			val, err := asValue(e, c.targetRT.Elem())
			if err != nil {
				return nil, err
			}
			out.Index(i).Set(val)
		}
		return out.Interface(), nil

	case typedesc.SeqSet:
		out := reflect.MakeMapWithSize(c.targetRT, len(elems))
		member := reflect.ValueOf(struct{}{})
		for _, e := range elems {
			key, err := asValue(e, c.targetRT.Key())
			if err != nil {
				return nil, err
			}
			out.SetMapIndex(key, member)
		}
		return out.Interface(), nil
	}

	return nil, newTypeMismatch(source, c.target)
}

// SequenceConverterFactory produces converters for sequence-to-sequence
// transformations across any combination of the three container kinds.
type SequenceConverterFactory struct{}

// Matches reports whether both sides are known sequence kinds.
func (SequenceConverterFactory) Matches(source, target *typedesc.Type) bool {
	return typedesc.SeqKindOf(source) != 0 && typedesc.SeqKindOf(target) != 0
}

// Converter resolves an element converter through the registry, declining
// when no element path exists.
func (SequenceConverterFactory) Converter(source, target *typedesc.Type, reg *Registry) Converter {
	elem := reg.Resolve(typedesc.Elem(source), typedesc.Elem(target))
	if elem == nil {
		return nil
	}
	return NewSequenceConverter(target, elem)
}
