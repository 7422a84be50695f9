package convert

import "reflect"

// Scope is the identity map for one top-level conversion call tree. Within a
// scope, converting the same source object reference twice yields the same
// result object, which preserves reference identity across shared and cyclic
// object graphs.
//
// A scope is threaded explicitly through Convert calls; a nil *Scope means
// caching is disabled. Each top-level conversion creates its own scope, so
// concurrent conversions on different goroutines are isolated by
// construction.
type Scope struct {
	seen map[uintptr]any
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{seen: make(map[uintptr]any)}
}

// EnterScope returns the active scope when one exists, otherwise a fresh
// one. Reentrant conversion entrypoints use it so nested top-level calls
// reuse the innermost scope.
func EnterScope(active *Scope) *Scope {
	if active != nil {
		return active
	}
	return NewScope()
}

// Close discards the scope's contents. A closed scope behaves like an empty
// one.
func (s *Scope) Close() {
	if s != nil {
		s.seen = nil
	}
}

// Store records the converted result for a source object. Population is the
// responsibility of the conversion entrypoint at the top of the tree; the
// caching decorator only reads. Values without identity (non-pointer-shaped
// values) are ignored.
func (s *Scope) Store(source, result any) {
	if s == nil {
		return
	}

	key, ok := identityOf(source)
	if !ok {
		return
	}
	if s.seen == nil {
		s.seen = make(map[uintptr]any)
	}
	s.seen[key] = result
}

// Lookup returns the previously converted result for this exact source
// object, if any.
func (s *Scope) Lookup(source any) (any, bool) {
	if s == nil || s.seen == nil {
		return nil, false
	}

	key, ok := identityOf(source)
	if !ok {
		return nil, false
	}
	result, hit := s.seen[key]
	return result, hit
}

// identityOf derives an identity key for pointer-shaped values. Other values
// have no stable identity and are never cached.
func identityOf(v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	default:
		return 0, false
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	}
}
