package typedesc

import "reflect"

// SeqKindEnum classifies the container kinds handled by the sequence
// converter family.
type SeqKindEnum int

const (
	_ SeqKindEnum = iota // skip zero value, use it as a default (invalid) value for SeqKindEnum

	SeqSlice
	SeqArray
	SeqSet // a Go map with struct{} elements

	// SeqKindTotal is a constant that represents the total number of sequence kinds defined
	SeqKindTotal = int(iota)
)

// String returns a human-readable sequence kind name.
func (k SeqKindEnum) String() string {
	switch k {
	case SeqSlice:
		return "slice"
	case SeqArray:
		return "array"
	case SeqSet:
		return "set"
	default:
		return "unknown"
	}
}

var setElemType = reflect.TypeOf(struct{}{})

// SeqKindOf classifies a descriptor as a sequence kind, returning the zero
// value when the descriptor is not a known sequence type.
func SeqKindOf(t *Type) SeqKindEnum {
	bare := Unwrap(t)
	if bare == nil || bare.kind != KindGo {
		return 0
	}

	switch bare.rt.Kind() {
	default:
		return 0
	case reflect.Slice:
		return SeqSlice
	case reflect.Array:
		return SeqArray
	case reflect.Map:
		if bare.rt.Elem() == setElemType {
			return SeqSet
		}
		return 0
	}
}

// IsMapping reports whether the descriptor is a keyed Go map (sets spelled as
// map[T]struct{} are sequences, not mappings).
func IsMapping(t *Type) bool {
	bare := Unwrap(t)
	if bare == nil || bare.kind != KindGo || bare.rt.Kind() != reflect.Map {
		return false
	}
	return bare.rt.Elem() != setElemType
}

// Elem extracts the element type of a sequence descriptor, normalizing an
// empty-interface parameter to Any.
func Elem(t *Type) *Type {
	bare := Unwrap(t)
	switch SeqKindOf(bare) {
	case SeqSlice, SeqArray:
		return Go(bare.rt.Elem())
	case SeqSet:
		return Go(bare.rt.Key())
	default:
		panic("typedesc: element type requested for non-sequence type " + t.String())
	}
}

// Key extracts the key type of a mapping descriptor.
func Key(t *Type) *Type {
	bare := mustMapping(t)
	return Go(bare.rt.Key())
}

// Value extracts the value type of a mapping descriptor.
func Value(t *Type) *Type {
	bare := mustMapping(t)
	return Go(bare.rt.Elem())
}

func mustMapping(t *Type) *Type {
	bare := Unwrap(t)
	if !IsMapping(bare) {
		panic("typedesc: key/value type requested for non-mapping type " + t.String())
	}
	return bare
}
