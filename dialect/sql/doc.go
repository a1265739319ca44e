// Package sql provides SQL expression building primitives and database
// dialect abstraction.
//
// This package is the foundation for generating parametrized SQL across
// different database systems (PostgreSQL, MySQL, SQLite). Expressions are
// trees of nodes; every node compiles to a SQL fragment plus an ordered
// list of bind parameters, and the number of positional placeholders in the
// fragment always equals the number of parameters.
//
// # Node Types
//
// The package provides a small closed set of node kinds:
//
//   - Expr: binary, prefix and postfix operator expressions
//   - Clause: keyword phrases such as NOT (...) or EXISTS (...)
//   - Func: SQL function calls
//   - Case: CASE WHEN ... THEN ... ELSE ... END builders
//   - SetOp: UNION / INTERSECT / EXCEPT combinator chains
//
// Operands may be column references, typed fields (anything implementing
// Columner), literals, nested nodes, or pre-escaped Raw fragments.
//
// # Dialect Support
//
// SQL generation adapts to different database dialects:
//
//	// PostgreSQL: numbered placeholders
//	sql.Dialect(dialect.Postgres).Op(sql.C("age"), ">", 18).Query()
//	// "age > $1" [18]
//
//	// SQLite and MySQL: question marks
//	sql.Dialect(dialect.SQLite).Op(sql.C("age"), ">", 18).Query()
//	// "age > ?" [18]
//
// # Predicates
//
// The package provides predicate helpers over any operand:
//
//	sql.EQ(sql.C("name"), "john")            // name = $1
//	sql.In(sql.C("status"), "active", "new") // status IN ($1, $2)
//	sql.IsNull(sql.C("deleted_at"))          // deleted_at IS NULL
//	sql.And(sql.GT(age, 18), sql.LT(age, 65))
//
// # Safe Literals
//
// Raw fragments bypass parametrization entirely and must contain only
// trusted text:
//
//	sql.Op(sql.C("created_at"), ">", sql.Safe("now() - interval '1 day'"))
//
// # Compilation
//
// Query returns the text and parameters; Compile additionally reports any
// build error collected while the tree was constructed:
//
//	query, args, err := sql.Compile(expr)
//	if err != nil {
//	    // a malformed tree never reaches the database
//	}
//
// Mogrify returns a debug rendering with the parameters inlined.
package sql
