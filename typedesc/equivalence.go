package typedesc

import "reflect"

// StructurallyEqual reports whether two descriptors denote the same leaf
// type after normalization. Composite types (containers, unions, records,
// literals) are deliberately excluded: they always require a dedicated
// converter family even when same-shaped.
func StructurallyEqual(source, target *Type) bool {
	s := Unwrap(source)
	t := Unwrap(target)
	if isComposite(s) {
		return false
	}
	return Equal(s, t)
}

// NoOpCompatible reports whether a value of the source type may pass through
// unchanged to the target type. Directionality matters: any type widens to
// an Any target, but an Any source never narrows to a concrete target: that
// cannot be proven safe statically, so an explicit validating converter is
// forced later. Record targets are excluded because they need field-by-field
// validation rather than a passthrough instance check.
func NoOpCompatible(source, target *Type) bool {
	s := Unwrap(source)
	t := Unwrap(target)

	if t.Kind() == KindRecord {
		return false
	}
	if t.Kind() == KindAny {
		return true
	}
	if s.Kind() == KindAny {
		return false
	}
	if isComposite(s) {
		return false
	}
	return Equal(s, t)
}

func isComposite(t *Type) bool {
	if t == nil {
		return false
	}
	switch t.kind {
	case KindUnion, KindRecord, KindLiteral:
		return true
	case KindGo:
		switch t.rt.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return true
		}
	}
	return false
}
