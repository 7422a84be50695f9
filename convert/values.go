package convert

import (
	"reflect"

	"typecaster/typedesc"
)

// asValue adapts a converted element to a container's declared slot type,
// reporting a type mismatch when the element cannot be stored there.
func asValue(x any, slot reflect.Type) (reflect.Value, error) {
	if x == nil {
		switch slot.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
			return reflect.Zero(slot), nil
		}
		return reflect.Value{}, newTypeMismatch(x, typedesc.Go(slot))
	}

	rv := reflect.ValueOf(x)
	if !rv.Type().AssignableTo(slot) {
		return reflect.Value{}, newTypeMismatch(x, typedesc.Go(slot))
	}
	return rv, nil
}
