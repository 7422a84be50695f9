// Package typedesc provides the type-descriptor algebra used by the
// conversion engine.
//
// A descriptor represents a declared type: a concrete Go type, the universal
// Any sentinel, the Nil leaf, a literal value set, a union, a schema-bearing
// record, or an annotated wrapper carrying qualifiers and metadata.
//
// Key functions:
//   - Normalize: strips annotation wrappers down to the bare type
//   - StructurallyEqual: leaf-type equality used by the no-op family
//   - NoOpCompatible: the relaxed predicate with Any-direction asymmetry
//   - Elem, Key, Value: type-parameter extraction for containers
package typedesc
