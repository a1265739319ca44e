package sql

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/syssam/cargo/dialect"
)

// Querier wraps the Query method. Query returns the compiled SQL text and
// its ordered bind parameters. The number of positional placeholders in the
// text always equals the number of parameters; builders that cannot uphold
// that collect an error retrievable through Err.
type Querier interface {
	Query() (string, []any)
}

// errer is implemented by builders that may fail during construction.
type errer interface {
	Err() error
}

// state allows a parent builder to propagate its dialect and placeholder
// offset into nested queriers before compiling them.
type state interface {
	SetDialect(string)
	SetTotal(int)
}

// Compile compiles q and reports any error the builder collected. Use it at
// the boundary to the execution layer; a malformed tree must never reach the
// database.
func Compile(q Querier) (string, []any, error) {
	query, args := q.Query()
	if e, ok := q.(errer); ok {
		if err := e.Err(); err != nil {
			return "", nil, err
		}
	}
	return query, args, nil
}

// Raw is a pre-escaped SQL fragment. It compiles verbatim with zero
// parameters, bypassing placeholder generation. Reserve it for trusted
// DDL-adjacent fragments; anything user-supplied belongs in a parameter.
type Raw string

// Safe marks s as a pre-escaped raw fragment.
func Safe(s string) Raw { return Raw(s) }

// bareIdentRe matches identifiers that render safely without quoting.
var bareIdentRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Builder is the base accumulator shared by all node compilers. It tracks
// the output text, the ordered parameters, and the running placeholder
// count so nested builders stay aligned.
type Builder struct {
	sb      strings.Builder
	dialect string
	args    []any
	total   int
	errs    []error

	// bareColumns forces column references to render without their table
	// qualifier. Case enables it for its field-name mode.
	bareColumns bool
}

// NewBuilder returns a builder compiling for the given dialect.
func NewBuilder(dialect string) *Builder {
	return &Builder{dialect: dialect}
}

// SetDialect sets the builder dialect.
func (b *Builder) SetDialect(dialect string) { b.dialect = dialect }

// Dialect returns the builder dialect.
func (b *Builder) Dialect() string {
	if b.dialect == "" {
		return dialect.Postgres
	}
	return b.dialect
}

// SetTotal sets the placeholder offset, used when this builder continues a
// query started elsewhere.
func (b *Builder) SetTotal(total int) { b.total = total }

// Total returns the number of placeholders emitted so far.
func (b *Builder) Total() int { return b.total }

// WriteString appends s to the output.
func (b *Builder) WriteString(s string) { b.sb.WriteString(s) }

// WriteByte appends c to the output.
func (b *Builder) WriteByte(c byte) { b.sb.WriteByte(c) }

// Pad appends a single space.
func (b *Builder) Pad() { b.sb.WriteByte(' ') }

// Comma appends a comma separator.
func (b *Builder) Comma() { b.sb.WriteByte(',') }

// Ident appends the identifier s, quoting it only when it is not a plain
// lower-case identifier. Dotted paths quote each segment independently.
func (b *Builder) Ident(s string) {
	for i, part := range strings.Split(s, ".") {
		if i > 0 {
			b.WriteByte('.')
		}
		if bareIdentRe.MatchString(part) || part == "*" {
			b.WriteString(part)
		} else {
			b.WriteString(b.Quote(part))
		}
	}
}

// Quote quotes the given identifier for the builder dialect.
func (b *Builder) Quote(ident string) string {
	switch b.Dialect() {
	case dialect.MySQL:
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	}
}

// Arg appends an argument. Raw fragments render verbatim with no parameter;
// nested queriers compile in place; anything else becomes a placeholder and
// a bind parameter.
func (b *Builder) Arg(v any) {
	switch v := v.(type) {
	case Raw:
		b.WriteString(string(v))
	case Querier:
		b.Join(v)
	default:
		b.total++
		b.args = append(b.args, v)
		if b.Dialect() == dialect.Postgres {
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(b.total))
		} else {
			b.WriteByte('?')
		}
	}
}

// Args appends a comma-separated list of arguments.
func (b *Builder) Args(vs ...any) {
	for i, v := range vs {
		if i > 0 {
			b.Comma()
			b.Pad()
		}
		b.Arg(v)
	}
}

// Join compiles the given queriers into this builder, propagating the
// dialect and placeholder offset and concatenating their parameters in
// order.
func (b *Builder) Join(qs ...Querier) {
	for _, q := range qs {
		if st, ok := q.(state); ok {
			st.SetDialect(b.dialect)
			st.SetTotal(b.total)
		}
		query, args := q.Query()
		b.WriteString(query)
		b.args = append(b.args, args...)
		b.total += len(args)
		if e, ok := q.(errer); ok {
			if err := e.Err(); err != nil {
				b.AddError(err)
			}
		}
	}
}

// Wrap compiles q inside parentheses.
func (b *Builder) Wrap(q Querier) {
	b.WriteByte('(')
	b.Join(q)
	b.WriteByte(')')
}

// Nested runs f inside parentheses.
func (b *Builder) Nested(f func(*Builder)) {
	b.WriteByte('(')
	f(b)
	b.WriteByte(')')
}

// AddError records an error encountered during construction or compilation.
func (b *Builder) AddError(err error) {
	if err != nil {
		b.errs = append(b.errs, err)
	}
}

// Err returns the first recorded error.
func (b *Builder) Err() error {
	if len(b.errs) > 0 {
		return b.errs[0]
	}
	return nil
}

// String returns the accumulated SQL text.
func (b *Builder) String() string { return b.sb.String() }

// Query returns the accumulated SQL text and parameters.
func (b *Builder) Query() (string, []any) {
	return b.sb.String(), b.args
}

// DialectBuilder prefixes all root builders with the given dialect.
type DialectBuilder struct {
	dialect string
}

// Dialect creates a new DialectBuilder with the given dialect name.
func Dialect(name string) *DialectBuilder {
	return &DialectBuilder{dialect: name}
}

// Op creates an expression node for the configured dialect.
func (d *DialectBuilder) Op(left any, op string, right any) *Expr {
	e := Op(left, op, right)
	e.SetDialect(d.dialect)
	return e
}

// Fn creates a function call node for the configured dialect.
func (d *DialectBuilder) Fn(name string, args ...any) *Func {
	f := Fn(name, args...)
	f.SetDialect(d.dialect)
	return f
}

// Clause creates a keyword phrase node for the configured dialect.
func (d *DialectBuilder) Clause(keyword string, children ...any) *Clause {
	c := NewClause(keyword, children...)
	c.SetDialect(d.dialect)
	return c
}

// Case creates a case builder for the configured dialect.
func (d *DialectBuilder) Case(pairs ...any) *Case {
	c := NewCase(pairs...)
	c.SetDialect(d.dialect)
	return c
}

// Union combines the queries with UNION for the configured dialect.
func (d *DialectBuilder) Union(qs ...Querier) *SetOp {
	s := Union(qs...)
	s.SetDialect(d.dialect)
	return s
}
