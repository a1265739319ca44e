// Package dialect provides database dialect abstraction for cargo.
//
// This package defines the interfaces and types used for database-specific
// operations, allowing cargo to emit SQL for multiple backends including
// PostgreSQL, MySQL, and SQLite.
//
// # Dialect Constants
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// The dialect selects the positional placeholder style during compilation:
// PostgreSQL uses numbered placeholders ($1, $2, ...), MySQL and SQLite
// use question marks.
//
// # Driver Interface
//
// The package defines the Driver interface for database operations:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// The Tx interface extends ExecQuerier with Commit and Rollback.
//
// # Debugging
//
// Debug wraps any Driver with structured logging of every statement:
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := NewClient(dialect.Debug(drv, slog.Default()))
//
// # Sub-packages
//
//   - dialect/sql: the expression builders, compiler, and driver implementation
package dialect
