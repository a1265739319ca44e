// Package field provides typed, nullable column values that double as
// expression operands.
//
// A field is created by its kind constructor and bound to a table and
// column:
//
//	age := field.Int("age").Bind("users", "age")
//	if err := age.Set(30); err != nil { ... }
//
// Fields distinguish never-set (empty) from SQL NULL, normalize incoming
// values to one canonical Go type per kind, and validate policy
// constraints (length, range, NOT NULL) on demand. Strict kinds such as
// uuid and inet reject malformed input at Set time; lenient kinds store
// the value and leave bounds to Validate.
//
// Every field implements sql.Columner, so it can stand directly in an
// expression tree:
//
//	sql.Compile(age.GTE(21).And(age.LT(65)))
//
// Array wraps an element field into a multi-dimensional list with
// in-place mutation helpers, and Enum restricts a string field to a
// fixed value set backed by a database enum type.
package field
