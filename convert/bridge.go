package convert

import "typecaster/typedesc"

// ModelBridge is implemented by the entity layer for each entity type that
// declares an external representation. The engine treats a bridge as just
// another leaf converter pair, which lets entity-typed positions nest inside
// sequences, unions, and mappings.
//
// ToExternal and FromExternal receive the active scope so the entity layer
// can populate the identity map at the top of its conversion tree.
type ModelBridge interface {
	Entity() *typedesc.Type
	External() *typedesc.Type
	ToExternal(scope *Scope, entity any) (any, error)
	FromExternal(scope *Scope, model any) (any, error)
}

// ToExternalFactory matches when the source type is the bridge's entity
// type and the target is its declared external representation.
type ToExternalFactory struct {
	bridge ModelBridge
}

// NewToExternalFactory builds the entity-to-external factory for a bridge.
func NewToExternalFactory(b ModelBridge) *ToExternalFactory {
	if b == nil {
		panic("convert: NewToExternalFactory called with nil bridge")
	}
	return &ToExternalFactory{bridge: b}
}

// Matches reports whether the pair is this bridge's entity-to-external
// direction.
func (f *ToExternalFactory) Matches(source, target *typedesc.Type) bool {
	return typedesc.StructurallyEqual(source, f.bridge.Entity()) &&
		typedesc.StructurallyEqual(f.bridge.External(), target)
}

// Converter builds the delegating converter.
func (f *ToExternalFactory) Converter(source, target *typedesc.Type, reg *Registry) Converter {
	return &toExternalConverter{bridge: f.bridge}
}

type toExternalConverter struct {
	bridge ModelBridge
}

func (c *toExternalConverter) Matches(source, target *typedesc.Type) bool {
	return typedesc.StructurallyEqual(source, c.bridge.Entity()) &&
		typedesc.StructurallyEqual(c.bridge.External(), target)
}

func (c *toExternalConverter) Convert(scope *Scope, v any) (any, error) {
	return c.bridge.ToExternal(scope, v)
}

func (c *toExternalConverter) SafeConvert(scope *Scope, v any) (any, error) {
	return c.Convert(scope, v)
}

// FromExternalFactory is the mirror direction: it matches when the target
// type is the bridge's entity type and the source is its declared external
// representation.
type FromExternalFactory struct {
	bridge ModelBridge
}

// NewFromExternalFactory builds the external-to-entity factory for a
// bridge.
func NewFromExternalFactory(b ModelBridge) *FromExternalFactory {
	if b == nil {
		panic("convert: NewFromExternalFactory called with nil bridge")
	}
	return &FromExternalFactory{bridge: b}
}

// Matches reports whether the pair is this bridge's external-to-entity
// direction.
func (f *FromExternalFactory) Matches(source, target *typedesc.Type) bool {
	return typedesc.StructurallyEqual(target, f.bridge.Entity()) &&
		typedesc.StructurallyEqual(f.bridge.External(), source)
}

// Converter builds the delegating converter.
func (f *FromExternalFactory) Converter(source, target *typedesc.Type, reg *Registry) Converter {
	return &fromExternalConverter{bridge: f.bridge}
}

type fromExternalConverter struct {
	bridge ModelBridge
}

func (c *fromExternalConverter) Matches(source, target *typedesc.Type) bool {
	return typedesc.StructurallyEqual(target, c.bridge.Entity()) &&
		typedesc.StructurallyEqual(c.bridge.External(), source)
}

func (c *fromExternalConverter) Convert(scope *Scope, v any) (any, error) {
	return c.bridge.FromExternal(scope, v)
}

func (c *fromExternalConverter) SafeConvert(scope *Scope, v any) (any, error) {
	return c.Convert(scope, v)
}
