// Package schema loads declarative record schemas and field mappings from
// YAML and turns them into type descriptors for the conversion engine.
//
// Key functions:
//   - Parse, Load: read a schema file
//   - ParseType: the type-expression parser (e.g. "map[string]int",
//     "union(int | nil)", "literal(a, b)")
//   - FieldDef: the per-field conversion contract, consulting a
//     user-supplied override before registry resolution
package schema
