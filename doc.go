// Package cargo provides a typed SQL expression builder and object-relational
// mapping core for PostgreSQL-flavored databases.
//
// The module is organized into a small set of packages:
//
//   - cargo: the shared error taxonomy (validation, build, translation and
//     query errors) used across the module
//   - dialect: database driver contracts and dialect constants
//   - dialect/sql: the expression AST, its compiler, predicates and the
//     database/sql driver glue
//   - field: typed, nullable field containers that act as AST leaves
//   - codec: value codecs converting between Go values and database wire
//     representations, including arrays and enumerated types
//
// # Errors
//
// Every failure in the module maps to one of four error kinds:
//
//	ValidationError  a value failed a field's type or domain check
//	BuildError       an expression tree cannot compile to valid SQL
//	TranslationError a native database type has no known field kind
//	QueryError       the execution layer failed; carries SQL and params
//
// Each kind has an IsXError helper that unwraps through error chains:
//
//	if cargo.IsValidationError(err) {
//	    var verr *cargo.ValidationError
//	    errors.As(err, &verr)
//	    log.Printf("field %s failed with code %s", verr.Name, verr.Code)
//	}
package cargo
