// Package convert implements the bidirectional type-conversion engine.
//
// The engine is built around an ordered Registry of converters and converter
// factories. Resolving a (source, target) descriptor pair walks the registry
// in declaration order and returns the first converter produced; factories
// recursively resolve converters for their nested type parameters through
// the same registry, bottoming out at the no-op and literal families.
//
// Key types:
//   - Converter, Factory: the two contract interfaces
//   - Registry: ordered first-match resolution, nil when no path exists
//   - Scope: the per-conversion-tree identity map
//   - Error: structured conversion errors with a Kind taxonomy
package convert
