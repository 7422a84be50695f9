package convert

import (
	"go.uber.org/zap"

	"typecaster/typedesc"
)

// Converter transforms one value. Matches is a structural predicate over a
// descriptor pair; it is stateless with respect to any particular value.
// Convert transforms one concrete value, returning a *Error on mismatch.
// The scope may be nil, meaning identity-map caching is disabled.
type Converter interface {
	Matches(source, target *typedesc.Type) bool
	Convert(scope *Scope, v any) (any, error)
}

// SafeConverter is the validating variant used when several candidate
// converters are tried in turn, so failures can be caught and the next
// candidate attempted.
type SafeConverter interface {
	SafeConvert(scope *Scope, v any) (any, error)
}

// safeConvert dispatches through SafeConvert when the converter implements
// it and falls back to Convert otherwise.
func safeConvert(c Converter, scope *Scope, v any) (any, error) {
	if sc, ok := c.(SafeConverter); ok {
		return sc.SafeConvert(scope, v)
	}
	return c.Convert(scope, v)
}

// Factory lazily builds a converter for a descriptor pair. Converter may
// return nil even after Matches reported true (for example when a union's
// member types cannot all be resolved); callers treat nil as "no further
// candidates", not as an error.
type Factory interface {
	Matches(source, target *typedesc.Type) bool
	Converter(source, target *typedesc.Type, reg *Registry) Converter
}

// Entry is a tagged registry entry: either a ready converter or a factory
// that must be invoked to obtain one.
type Entry struct {
	conv    Converter
	factory Factory
}

// ByConverter registers a ready converter.
func ByConverter(c Converter) Entry {
	if c == nil {
		panic("convert: ByConverter called with nil converter")
	}
	return Entry{conv: c}
}

// ByFactory registers a converter factory.
func ByFactory(f Factory) Entry {
	if f == nil {
		panic("convert: ByFactory called with nil factory")
	}
	return Entry{factory: f}
}

func (e Entry) matches(source, target *typedesc.Type) bool {
	if e.conv != nil {
		return e.conv.Matches(source, target)
	}
	return e.factory.Matches(source, target)
}

// Registry resolves converters for descriptor pairs. It holds an ordered,
// immutable sequence of entries consulted first-match-wins; registration
// order is a priority order, with the cheapest checks registered first.
// A Registry is constructed once and is safe for concurrent use.
type Registry struct {
	entries []Entry
}

// NewRegistry builds a registry from entries in priority order.
func NewRegistry(entries ...Entry) *Registry {
	return &Registry{entries: append([]Entry(nil), entries...)}
}

// DefaultRegistry assembles the standard entry order: no-op, literal,
// record, sequence, keyed mapping, union, each wrapped in the identity-map
// caching decorator. Domain-specific entries (bridge factories) are appended
// or prepended by consumers as needed.
func DefaultRegistry(extra ...Entry) *Registry {
	entries := []Entry{
		ByFactory(NewCachingFactory(NoOpConverterFactory{})),
		ByFactory(NewCachingFactory(LiteralConverterFactory{})),
		ByFactory(NewCachingFactory(RecordConverterFactory{})),
		ByFactory(NewCachingFactory(SequenceConverterFactory{})),
		ByFactory(NewCachingFactory(MappingConverterFactory{})),
		ByFactory(NewCachingFactory(UnionConverterFactory{})),
	}
	return NewRegistry(append(entries, extra...)...)
}

// Resolve finds a converter for the given descriptor pair, or nil when no
// entry matches or every matching factory declines. Factories consulted here
// recursively resolve their nested type parameters through this registry.
//
// Descriptors handed to Resolve must be fully constructed: forward-reference
// resolution is the caller's concern and happens before descriptors reach
// the engine.
func (r *Registry) Resolve(source, target *typedesc.Type) Converter {
	for _, entry := range r.entries {
		if !entry.matches(source, target) {
			continue
		}

		conv := entry.conv
		if conv == nil {
			conv = entry.factory.Converter(source, target, r)
		}
		if conv != nil {
			Logger().Debug("resolved converter",
				zap.String("source", source.String()),
				zap.String("target", target.String()))
			return conv
		}
	}

	Logger().Debug("no converter found",
		zap.String("source", source.String()),
		zap.String("target", target.String()))
	return nil
}

// Entries returns a copy of the registered entries in priority order.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}
