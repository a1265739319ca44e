package sql

import (
	"fmt"

	"github.com/syssam/cargo"
)

// Column is a table-qualified column reference. The zero Table renders the
// name alone; Bare forces unqualified rendering even when a table is bound,
// which Case uses for its field-name mode.
type Column struct {
	Table string
	Name  string
	bare  bool
}

// C returns an unqualified column reference.
func C(name string) Column { return Column{Name: name} }

// TableColumn returns a column reference qualified with its table.
func TableColumn(table, name string) Column {
	return Column{Table: table, Name: name}
}

// Bare returns a copy of the column that renders without its table
// qualifier.
func (c Column) Bare() Column {
	c.bare = true
	return c
}

// write renders the column into b, honoring the builder's bare-column mode.
func (c Column) write(b *Builder) {
	if c.Table != "" && !c.bare && !b.bareColumns {
		b.Ident(c.Table)
		b.WriteByte('.')
	}
	b.Ident(c.Name)
}

// Columner is implemented by values that render as a column reference in
// expression trees. The field package's Field type implements it, letting
// typed fields participate as AST leaves.
type Columner interface {
	SQLColumn() Column
}

// opKind enumerates the closed set of operand variants. The compiler
// switches exhaustively over it; there is no runtime attribute probing.
type opKind uint8

const (
	opNone   opKind = iota // absent operand, renders nothing
	opColumn               // a column reference, zero parameters
	opValue                // a literal, one placeholder + one parameter
	opRaw                  // a pre-escaped fragment, rendered verbatim
	opNode                 // a nested node, compiled recursively
)

// Operand is one side of an expression: a column, a literal, a raw
// fragment, or a nested node.
type Operand struct {
	kind   opKind
	column Column
	value  any
	raw    Raw
	node   Querier
}

// toOperand classifies v into an operand variant.
func toOperand(v any) Operand {
	switch v := v.(type) {
	case nil:
		return Operand{kind: opNone}
	case Operand:
		return v
	case Column:
		return Operand{kind: opColumn, column: v}
	case Columner:
		return Operand{kind: opColumn, column: v.SQLColumn()}
	case Raw:
		return Operand{kind: opRaw, raw: v}
	case Querier:
		return Operand{kind: opNode, node: v}
	default:
		return Operand{kind: opValue, value: v}
	}
}

// write compiles the operand into b. Nested nodes render without their
// alias: an aliased sub-expression used as an operand must not leak its
// alias into the parent.
func (o Operand) write(b *Builder) {
	switch o.kind {
	case opNone:
	case opColumn:
		o.column.write(b)
	case opValue:
		b.Arg(o.value)
	case opRaw:
		b.WriteString(string(o.raw))
	case opNode:
		if n, ok := o.node.(interface{ writeTo(*Builder, bool) }); ok {
			n.writeTo(b, false)
			if e, ok := o.node.(errer); ok {
				b.AddError(e.Err())
			}
			return
		}
		b.Join(o.node)
	}
}

// isEmpty reports whether the operand is absent.
func (o Operand) isEmpty() bool { return o.kind == opNone }

// Expr is a binary or prefix expression node: <left> <operator> <right>.
// An absent left operand renders the operator-prefix form; an absent right
// operand renders the postfix form (for example "foo.bar ASC").
type Expr struct {
	dialect string
	total   int
	left    Operand
	op      string
	right   Operand
	alias   string
	group   bool
	errs    []error
}

// Op returns an expression node combining left and right with the given
// operator. Both sides may be a Column, a Columner (typed field), a nested
// node, a Raw fragment, a literal, or nil for the absent side.
func Op(left any, op string, right any) *Expr {
	e := &Expr{left: toOperand(left), op: op, right: toOperand(right)}
	if op == "" {
		e.errs = append(e.errs, cargo.NewBuildError("expression requires an operator"))
	}
	return e
}

// As sets the alias appended after the expression at the top level.
func (e *Expr) As(alias string) *Expr {
	e.alias = alias
	return e
}

// Group wraps the expression in parentheses.
func (e *Expr) Group() *Expr {
	e.group = true
	return e
}

// And combines e with other under AND, grouping both sides.
func (e *Expr) And(other any) *Expr {
	e.group = true
	if o, ok := other.(*Expr); ok {
		o.group = true
	}
	return Op(e, "AND", other)
}

// Or combines e with other under OR, grouping both sides.
func (e *Expr) Or(other any) *Expr {
	e.group = true
	if o, ok := other.(*Expr); ok {
		o.group = true
	}
	return Op(e, "OR", other)
}

// SetDialect sets the compilation dialect.
func (e *Expr) SetDialect(d string) { e.dialect = d }

// SetTotal sets the placeholder offset.
func (e *Expr) SetTotal(total int) { e.total = total }

// Err returns the first construction or compilation error.
func (e *Expr) Err() error {
	if len(e.errs) > 0 {
		return e.errs[0]
	}
	return nil
}

// Query compiles the expression.
func (e *Expr) Query() (string, []any) {
	b := NewBuilder(e.dialect)
	b.SetTotal(e.total)
	e.writeTo(b, true)
	e.errs = append(e.errs, b.errs...)
	return b.Query()
}

func (e *Expr) writeTo(b *Builder, withAlias bool) {
	if e.group {
		b.WriteByte('(')
	}
	if !e.left.isEmpty() {
		e.left.write(b)
		b.Pad()
	}
	b.WriteString(e.op)
	if !e.right.isEmpty() {
		b.Pad()
		e.right.write(b)
	}
	if e.group {
		b.WriteByte(')')
	}
	if withAlias && e.alias != "" {
		b.Pad()
		b.Ident(e.alias)
	}
}

// Clause is a keyword phrase node: the keyword followed by its children,
// joined by single spaces. An empty keyword joins the children alone, which
// serves argument forms like "x FROM 1 FOR 2".
type Clause struct {
	dialect  string
	total    int
	keyword  string
	children []Operand
	alias    string
	errs     []error
}

// NewClause returns a clause node with the given keyword and children.
func NewClause(keyword string, children ...any) *Clause {
	c := &Clause{keyword: keyword}
	for _, child := range children {
		c.children = append(c.children, toOperand(child))
	}
	if keyword == "" && len(children) == 0 {
		c.errs = append(c.errs, cargo.NewBuildError("clause requires a keyword or children"))
	}
	return c
}

// As sets the alias appended after the clause at the top level.
func (c *Clause) As(alias string) *Clause {
	c.alias = alias
	return c
}

// SetDialect sets the compilation dialect.
func (c *Clause) SetDialect(d string) { c.dialect = d }

// SetTotal sets the placeholder offset.
func (c *Clause) SetTotal(total int) { c.total = total }

// Err returns the first construction or compilation error.
func (c *Clause) Err() error {
	if len(c.errs) > 0 {
		return c.errs[0]
	}
	return nil
}

// Query compiles the clause.
func (c *Clause) Query() (string, []any) {
	b := NewBuilder(c.dialect)
	b.SetTotal(c.total)
	c.writeTo(b, true)
	c.errs = append(c.errs, b.errs...)
	return b.Query()
}

func (c *Clause) writeTo(b *Builder, withAlias bool) {
	wrote := false
	if c.keyword != "" {
		b.WriteString(c.keyword)
		wrote = true
	}
	for _, child := range c.children {
		if child.isEmpty() {
			continue
		}
		if wrote {
			b.Pad()
		}
		child.write(b)
		wrote = true
	}
	if withAlias && c.alias != "" {
		b.Pad()
		b.Ident(c.alias)
	}
}

// Func is a SQL function call node: name(arg1, arg2, ...). A call with no
// arguments renders name().
type Func struct {
	dialect string
	total   int
	name    string
	args    []Operand
	alias   string
	errs    []error
}

// Fn returns a function call node.
func Fn(name string, args ...any) *Func {
	f := &Func{name: name}
	for _, arg := range args {
		f.args = append(f.args, toOperand(arg))
	}
	if name == "" {
		f.errs = append(f.errs, cargo.NewBuildError("function requires a name"))
	}
	return f
}

// As sets the alias appended after the call at the top level.
func (f *Func) As(alias string) *Func {
	f.alias = alias
	return f
}

// SetDialect sets the compilation dialect.
func (f *Func) SetDialect(d string) { f.dialect = d }

// SetTotal sets the placeholder offset.
func (f *Func) SetTotal(total int) { f.total = total }

// Err returns the first construction or compilation error.
func (f *Func) Err() error {
	if len(f.errs) > 0 {
		return f.errs[0]
	}
	return nil
}

// Query compiles the call.
func (f *Func) Query() (string, []any) {
	b := NewBuilder(f.dialect)
	b.SetTotal(f.total)
	f.writeTo(b, true)
	f.errs = append(f.errs, b.errs...)
	return b.Query()
}

func (f *Func) writeTo(b *Builder, withAlias bool) {
	b.WriteString(f.name)
	b.WriteByte('(')
	for i, arg := range f.args {
		if i > 0 {
			b.Comma()
			b.Pad()
		}
		arg.write(b)
	}
	b.WriteByte(')')
	if withAlias && f.alias != "" {
		b.Pad()
		b.Ident(f.alias)
	}
}

// Common function call helpers.

// Count returns a count(x) call.
func Count(x any) *Func { return Fn("count", x) }

// Min returns a min(x) call.
func Min(x any) *Func { return Fn("min", x) }

// Max returns a max(x) call.
func Max(x any) *Func { return Fn("max", x) }

// Avg returns an avg(x) call.
func Avg(x any) *Func { return Fn("avg", x) }

// Sum returns a sum(x) call.
func Sum(x any) *Func { return Fn("sum", x) }

// Lower returns a lower(x) call.
func Lower(x any) *Func { return Fn("lower", x) }

// Upper returns an upper(x) call.
func Upper(x any) *Func { return Fn("upper", x) }

// Length returns a length(x) call.
func Length(x any) *Func { return Fn("length", x) }

// Coalesce returns a coalesce(...) call.
func Coalesce(xs ...any) *Func { return Fn("coalesce", xs...) }

// MD5 returns an md5(x) call.
func MD5(x any) *Func { return Fn("md5", x) }

// Position returns a position(sub in x) call.
func Position(sub, x any) *Func {
	return Fn("position", Op(sub, "in", x))
}

// Substring returns a substring(x FROM from [FOR for]) call using the
// clause argument form.
func Substring(x any, from, length any) *Func {
	children := []any{x, Op(nil, "FROM", from)}
	if length != nil {
		children = append(children, Op(nil, "FOR", length))
	}
	return Fn("substring", NewClause("", children...))
}

// Overlay returns an overlay(x PLACING sub FROM from [FOR for]) call.
func Overlay(x, sub, from, length any) *Func {
	children := []any{x, Op(nil, "PLACING", Op(sub, "FROM", from))}
	if length != nil {
		children = append(children, Op(nil, "FOR", length))
	}
	return Fn("overlay", NewClause("", children...))
}

// Distinct returns a DISTINCT x phrase.
func Distinct(x any) *Clause { return NewClause("DISTINCT", x) }

// Asc returns the ascending ordering form of x.
func Asc(x any) *Expr { return Op(x, "ASC", nil) }

// Desc returns the descending ordering form of x.
func Desc(x any) *Expr { return Op(x, "DESC", nil) }

// String implements fmt.Stringer for debugging.
func (e *Expr) String() string { return queryString(e) }

// String implements fmt.Stringer for debugging.
func (c *Clause) String() string { return queryString(c) }

// String implements fmt.Stringer for debugging.
func (f *Func) String() string { return queryString(f) }

func queryString(q Querier) string {
	query, args := q.Query()
	if len(args) == 0 {
		return query
	}
	return fmt.Sprintf("%s %v", query, args)
}
