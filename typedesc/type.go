package typedesc

import (
	"fmt"
	"reflect"
	"strings"
)

// Type is an immutable descriptor for a declared type. Descriptors are
// constructed once and shared; they are never mutated after construction.
type Type struct {
	kind    KindEnum
	rt      reflect.Type // KindGo
	values  []any        // KindLiteral
	members []*Type      // KindUnion
	record  *Record      // KindRecord
	inner   *Type        // KindAnnotated
	quals   []Qualifier  // KindAnnotated
	meta    []any        // KindAnnotated
}

// Any is the universal sentinel type. Every type widens to Any; Any never
// narrows to a concrete type.
var Any = &Type{kind: KindAny}

// Nil is the nil/none leaf type. It only matches the nil value and exists so
// unions such as Union(Go(int), Nil) can express optionality.
var Nil = &Type{kind: KindNil}

// Go wraps a reflect.Type as a descriptor. The empty interface type
// normalizes to Any.
func Go(rt reflect.Type) *Type {
	if rt == nil {
		panic("typedesc: Go called with nil reflect.Type")
	}
	if rt.Kind() == reflect.Interface && rt.NumMethod() == 0 {
		return Any
	}
	return &Type{kind: KindGo, rt: rt}
}

// Of is a convenience constructor for Go type descriptors.
func Of[T any]() *Type {
	return Go(reflect.TypeOf((*T)(nil)).Elem())
}

// Literal builds a descriptor for a closed set of allowed constant values.
func Literal(values ...any) *Type {
	if len(values) == 0 {
		panic("typedesc: Literal requires at least one value")
	}
	return &Type{kind: KindLiteral, values: append([]any(nil), values...)}
}

// Union builds a multi-branch descriptor. Nested unions are flattened and
// duplicate members are dropped; a single-member union collapses to the
// member itself.
func Union(members ...*Type) *Type {
	var flat []*Type
	for _, m := range members {
		if m == nil {
			panic("typedesc: Union called with nil member")
		}
		for _, f := range flatten(m) {
			if !containsType(flat, f) {
				flat = append(flat, f)
			}
		}
	}
	if len(flat) == 0 {
		panic("typedesc: Union requires at least one member")
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &Type{kind: KindUnion, members: flat}
}

func flatten(t *Type) []*Type {
	if t.kind != KindUnion {
		return []*Type{t}
	}
	var out []*Type
	for _, m := range t.members {
		out = append(out, flatten(m)...)
	}
	return out
}

func containsType(ts []*Type, t *Type) bool {
	for _, it := range ts {
		if Equal(it, t) {
			return true
		}
	}
	return false
}

// Kind reports the descriptor kind.
func (t *Type) Kind() KindEnum { return t.kind }

// GoType returns the wrapped reflect.Type for KindGo descriptors and nil
// for everything else.
func (t *Type) GoType() reflect.Type { return t.rt }

// LiteralValues returns a copy of the allowed value set for KindLiteral
// descriptors.
func (t *Type) LiteralValues() []any {
	return append([]any(nil), t.values...)
}

// Members returns a copy of the member list for KindUnion descriptors.
func (t *Type) Members() []*Type {
	return append([]*Type(nil), t.members...)
}

// Record returns the schema for KindRecord descriptors and nil otherwise.
func (t *Type) Record() *Record { return t.record }

func (t *Type) String() string {
	switch t.kind {
	case KindGo:
		return t.rt.String()
	case KindAny:
		return "any"
	case KindNil:
		return "nil"
	case KindLiteral:
		parts := make([]string, len(t.values))
		for i, v := range t.values {
			parts[i] = fmt.Sprintf("%v", v)
		}
		return "literal(" + strings.Join(parts, ", ") + ")"
	case KindUnion:
		parts := make([]string, len(t.members))
		for i, m := range t.members {
			parts[i] = m.String()
		}
		return "union(" + strings.Join(parts, " | ") + ")"
	case KindRecord:
		return "record " + t.record.name
	case KindAnnotated:
		return "annotated(" + t.inner.String() + ")"
	default:
		return "<invalid>"
	}
}

// Equal reports descriptor equality: reflect.Type equality for Go types,
// value-set equality for literals, order-insensitive member equality for
// unions, and schema identity for records.
func Equal(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindGo:
		return a.rt == b.rt
	case KindAny, KindNil:
		return true
	case KindLiteral:
		return literalSetEqual(a.values, b.values)
	case KindUnion:
		return unionMembersEqual(a.members, b.members)
	case KindRecord:
		return a.record == b.record
	case KindAnnotated:
		if !Equal(a.inner, b.inner) || len(a.quals) != len(b.quals) {
			return false
		}
		for i := range a.quals {
			if a.quals[i] != b.quals[i] {
				return false
			}
		}
		return len(a.meta) == len(b.meta)
	default:
		return false
	}
}

func literalSetEqual(a, b []any) bool {
	set := make(map[any]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	if len(set) != len(uniqueValues(b)) {
		return false
	}
	for _, v := range b {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}

func uniqueValues(vs []any) map[any]struct{} {
	set := make(map[any]struct{}, len(vs))
	for _, v := range vs {
		set[v] = struct{}{}
	}
	return set
}

func unionMembersEqual(a, b []*Type) bool {
	if len(a) != len(b) {
		return false
	}
	for _, m := range a {
		if !containsType(b, m) {
			return false
		}
	}
	return true
}
