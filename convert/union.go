package convert

import (
	"errors"
	"reflect"
	"sort"

	"typecaster/typedesc"
)

func isUnionType(t *typedesc.Type) bool {
	return typedesc.Unwrap(t).Kind() == typedesc.KindUnion
}

func unionMembersOf(t *typedesc.Type) []*typedesc.Type {
	bare := typedesc.Unwrap(t)
	if bare.Kind() == typedesc.KindUnion {
		return bare.Members()
	}
	return []*typedesc.Type{bare}
}

// originKey buckets converters by the erased origin of their source member:
// the reflect kind for parametrized container kinds, the reflect type for
// leaf types. Exactly one of the two fields is set.
type originKey struct {
	kind reflect.Kind
	rt   reflect.Type
}

// UnionConverter dispatches on the runtime type of the actual value.
// Candidate converters are collected by walking the value's ancestry
// (its concrete type, then the type's canonical base, then its container
// kind) most specific first, with the Any bucket appended last and no-op
// converters ordered first within each bucket. Candidates are tried through
// their validating variants; a conversion-typed failure means "try the next
// candidate".
type UnionConverter struct {
	target   *typedesc.Type
	byOrigin map[originKey][]Converter
	nilConvs []Converter
	anyConvs []Converter
}

// Matches reports whether either side of the pair is a union.
func (c *UnionConverter) Matches(source, target *typedesc.Type) bool {
	return isUnionType(source) || isUnionType(target)
}

// Convert tries each candidate for the value's runtime type in dispatch
// order, returning the first success.
func (c *UnionConverter) Convert(scope *Scope, v any) (any, error) {
	for _, cand := range c.candidates(v) {
		out, err := safeConvert(cand, scope, v)
		if err == nil {
			return out, nil
		}

		var cerr *Error
		if errors.As(err, &cerr) {
			continue
		}
		return nil, err
	}
	return nil, newNoConverter(v, c.target)
}

// SafeConvert is identical to Convert: union dispatch is already
// validating.
func (c *UnionConverter) SafeConvert(scope *Scope, v any) (any, error) {
	return c.Convert(scope, v)
}

func (c *UnionConverter) candidates(v any) []Converter {
	var out []Converter

	if v == nil {
		out = append(out, c.nilConvs...)
	} else {
		rt := reflect.TypeOf(v)
		out = append(out, c.byOrigin[originKey{rt: rt}]...)
		if base := canonicalOf(rt); base != nil {
			out = append(out, c.byOrigin[originKey{rt: base}]...)
		}
		if isCompositeKind(rt.Kind()) {
			out = append(out, c.byOrigin[originKey{kind: rt.Kind()}]...)
		}
	}

	return append(out, c.anyConvs...)
}

// UnionConverterFactory builds converters for union pairs. When the source
// members are a subset of the target members a plain no-op converter covers
// the widening; otherwise every source member must resolve to at least one
// target member, preferring the no-op path when several qualify, and any
// unresolvable member declines the whole factory.
type UnionConverterFactory struct{}

// Matches reports whether either side of the pair is a union.
func (UnionConverterFactory) Matches(source, target *typedesc.Type) bool {
	return isUnionType(source) || isUnionType(target)
}

// Converter builds the dispatch table for the pair, or nil when a source
// member has no conversion path.
func (UnionConverterFactory) Converter(source, target *typedesc.Type, reg *Registry) Converter {
	srcMembers := unionMembersOf(source)
	tgtMembers := unionMembersOf(target)

	if membersSubset(srcMembers, tgtMembers) {
		return NewNoOpConverter(typedesc.Any)
	}

	conv := &UnionConverter{
		target:   typedesc.Unwrap(target),
		byOrigin: make(map[originKey][]Converter),
	}

	for _, member := range srcMembers {
		best := bestConverter(member, tgtMembers, reg)
		if best == nil {
			return nil
		}

		bare := typedesc.Unwrap(member)
		switch bare.Kind() {
		case typedesc.KindAny:
			conv.anyConvs = append(conv.anyConvs, best)
		case typedesc.KindNil:
			conv.nilConvs = append(conv.nilConvs, best)
		default:
			for _, key := range bucketKeysOf(bare) {
				conv.byOrigin[key] = append(conv.byOrigin[key], best)
			}
		}
	}

	for key := range conv.byOrigin {
		sortNoOpFirst(conv.byOrigin[key])
	}
	sortNoOpFirst(conv.nilConvs)
	sortNoOpFirst(conv.anyConvs)

	return conv
}

func membersSubset(src, tgt []*typedesc.Type) bool {
	for _, sm := range src {
		found := false
		for _, tm := range tgt {
			if typedesc.Equal(typedesc.Unwrap(sm), typedesc.Unwrap(tm)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// bucketKeysOf computes the dispatch keys for a bare source member. Literal
// members bucket under the runtime types of their values, so that a literal
// branch is reachable from the values it declares.
func bucketKeysOf(bare *typedesc.Type) []originKey {
	switch bare.Kind() {
	case typedesc.KindGo:
		rt := bare.GoType()
		if isCompositeKind(rt.Kind()) {
			return []originKey{{kind: rt.Kind()}}
		}
		return []originKey{{rt: rt}}

	case typedesc.KindRecord:
		return []originKey{{kind: reflect.Map}}

	case typedesc.KindLiteral:
		var keys []originKey
		seen := make(map[originKey]struct{})
		for _, v := range bare.LiteralValues() {
			key := originKey{rt: reflect.TypeOf(v)}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
		return keys
	}

	return nil
}

func bestConverter(source *typedesc.Type, targets []*typedesc.Type, reg *Registry) Converter {
	var first Converter
	for _, tm := range targets {
		conv := reg.Resolve(source, tm)
		if conv == nil {
			continue
		}
		if isNoOp(conv) {
			return conv
		}
		if first == nil {
			first = conv
		}
	}
	return first
}

func isNoOp(c Converter) bool {
	_, ok := unwrapConverter(c).(*NoOpConverter)
	return ok
}

func sortNoOpFirst(convs []Converter) {
	sort.SliceStable(convs, func(i, j int) bool {
		return isNoOp(convs[i]) && !isNoOp(convs[j])
	})
}
