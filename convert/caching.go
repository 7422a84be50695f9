package convert

import "typecaster/typedesc"

// CachingConverter wraps an inner converter with an identity-map lookup.
// On a scope hit the cached result is returned directly, skipping the inner
// converter entirely; on a miss it delegates. It never populates the scope;
// that is the conversion entrypoint's job.
type CachingConverter struct {
	inner Converter
}

// NewCachingConverter wraps a converter with the identity-map check.
func NewCachingConverter(inner Converter) *CachingConverter {
	if inner == nil {
		panic("convert: NewCachingConverter called with nil converter")
	}
	return &CachingConverter{inner: inner}
}

// Unwrap returns the wrapped converter.
func (c *CachingConverter) Unwrap() Converter { return c.inner }

// Matches delegates to the wrapped converter.
func (c *CachingConverter) Matches(source, target *typedesc.Type) bool {
	return c.inner.Matches(source, target)
}

// Convert returns the cached result on a scope hit and delegates otherwise.
func (c *CachingConverter) Convert(scope *Scope, v any) (any, error) {
	if cached, hit := scope.Lookup(v); hit {
		return cached, nil
	}
	return c.inner.Convert(scope, v)
}

// SafeConvert is the validating variant of Convert.
func (c *CachingConverter) SafeConvert(scope *Scope, v any) (any, error) {
	if cached, hit := scope.Lookup(v); hit {
		return cached, nil
	}
	return safeConvert(c.inner, scope, v)
}

// CachingFactory wraps a factory so every converter it produces carries the
// identity-map check.
type CachingFactory struct {
	inner Factory
}

// NewCachingFactory wraps a factory with the caching decorator.
func NewCachingFactory(inner Factory) *CachingFactory {
	if inner == nil {
		panic("convert: NewCachingFactory called with nil factory")
	}
	return &CachingFactory{inner: inner}
}

// Matches delegates to the wrapped factory.
func (f *CachingFactory) Matches(source, target *typedesc.Type) bool {
	return f.inner.Matches(source, target)
}

// Converter wraps the produced converter, passing through a decline.
func (f *CachingFactory) Converter(source, target *typedesc.Type, reg *Registry) Converter {
	conv := f.inner.Converter(source, target, reg)
	if conv == nil {
		return nil
	}
	return NewCachingConverter(conv)
}

// unwrapConverter strips caching decorators, exposing the underlying
// converter for structural checks such as the union family's no-op
// preference.
func unwrapConverter(c Converter) Converter {
	for {
		cc, ok := c.(*CachingConverter)
		if !ok {
			return c
		}
		c = cc.Unwrap()
	}
}
