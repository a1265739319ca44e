package sql

import (
	"strings"

	"github.com/syssam/cargo"
)

// EQ returns the x = v predicate.
func EQ(x, v any) *Expr { return Op(x, "=", v) }

// NEQ returns the x <> v predicate.
func NEQ(x, v any) *Expr { return Op(x, "<>", v) }

// GT returns the x > v predicate.
func GT(x, v any) *Expr { return Op(x, ">", v) }

// GTE returns the x >= v predicate.
func GTE(x, v any) *Expr { return Op(x, ">=", v) }

// LT returns the x < v predicate.
func LT(x, v any) *Expr { return Op(x, "<", v) }

// LTE returns the x <= v predicate.
func LTE(x, v any) *Expr { return Op(x, "<=", v) }

// Add returns the x + v expression.
func Add(x, v any) *Expr { return Op(x, "+", v) }

// Sub returns the x - v expression.
func Sub(x, v any) *Expr { return Op(x, "-", v) }

// Mul returns the x * v expression.
func Mul(x, v any) *Expr { return Op(x, "*", v) }

// Div returns the x / v expression.
func Div(x, v any) *Expr { return Op(x, "/", v) }

// Mod returns the x % v expression.
func Mod(x, v any) *Expr { return Op(x, "%", v) }

// Concat returns the x || v expression.
func Concat(x, v any) *Expr { return Op(x, "||", v) }

// IsNull returns the x IS NULL predicate.
func IsNull(x any) *Expr { return Op(x, "IS NULL", nil) }

// NotNull returns the x IS NOT NULL predicate.
func NotNull(x any) *Expr { return Op(x, "IS NOT NULL", nil) }

// Like returns the x LIKE pattern predicate.
func Like(x any, pattern string) *Expr { return Op(x, "LIKE", pattern) }

// ILike returns the case-insensitive x ILIKE pattern predicate.
func ILike(x any, pattern string) *Expr { return Op(x, "ILIKE", pattern) }

// escapeLike escapes the LIKE metacharacters in a literal substring.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Contains returns a predicate matching x containing the substring.
func Contains(x any, substr string) *Expr {
	return Like(x, "%"+escapeLike(substr)+"%")
}

// HasPrefix returns a predicate matching x starting with the prefix.
func HasPrefix(x any, prefix string) *Expr {
	return Like(x, escapeLike(prefix)+"%")
}

// HasSuffix returns a predicate matching x ending with the suffix.
func HasSuffix(x any, suffix string) *Expr {
	return Like(x, "%"+escapeLike(suffix))
}

// In returns the x IN (...) predicate. An empty value list is a build
// error: it cannot compile to valid SQL.
func In(x any, vs ...any) *Expr {
	if len(vs) == 0 {
		e := Op(x, "IN", nil)
		e.errs = append(e.errs, cargo.NewBuildError("IN requires at least one value"))
		return e
	}
	return Op(x, "IN", tuple(vs))
}

// NotIn returns the x NOT IN (...) predicate.
func NotIn(x any, vs ...any) *Expr {
	if len(vs) == 0 {
		e := Op(x, "NOT IN", nil)
		e.errs = append(e.errs, cargo.NewBuildError("NOT IN requires at least one value"))
		return e
	}
	return Op(x, "NOT IN", tuple(vs))
}

// tuple returns a parenthesized, comma-separated value list node.
func tuple(vs []any) *tupleNode {
	t := &tupleNode{}
	for _, v := range vs {
		t.items = append(t.items, toOperand(v))
	}
	return t
}

// tupleNode renders (a, b, c).
type tupleNode struct {
	dialect string
	total   int
	items   []Operand
	errs    []error
}

func (t *tupleNode) SetDialect(d string) { t.dialect = d }
func (t *tupleNode) SetTotal(n int)      { t.total = n }

func (t *tupleNode) Err() error {
	if len(t.errs) > 0 {
		return t.errs[0]
	}
	return nil
}

func (t *tupleNode) Query() (string, []any) {
	b := NewBuilder(t.dialect)
	b.SetTotal(t.total)
	t.writeTo(b, true)
	t.errs = append(t.errs, b.errs...)
	return b.Query()
}

func (t *tupleNode) writeTo(b *Builder, _ bool) {
	b.WriteByte('(')
	for i, item := range t.items {
		if i > 0 {
			b.Comma()
			b.Pad()
		}
		item.write(b)
	}
	b.WriteByte(')')
}

// Between returns the v <= x <= hi range predicate.
func Between(x, lo, hi any) *Expr {
	return Op(x, "BETWEEN", Op(lo, "AND", hi))
}

// And combines the predicates under AND, grouping each operand.
func And(ps ...*Expr) *Expr {
	switch len(ps) {
	case 0:
		e := Op(nil, "AND", nil)
		e.errs = append(e.errs, cargo.NewBuildError("AND requires at least one predicate"))
		return e
	case 1:
		return ps[0]
	}
	e := ps[0]
	for _, p := range ps[1:] {
		e = e.And(p)
	}
	return e
}

// Or combines the predicates under OR, grouping each operand.
func Or(ps ...*Expr) *Expr {
	switch len(ps) {
	case 0:
		e := Op(nil, "OR", nil)
		e.errs = append(e.errs, cargo.NewBuildError("OR requires at least one predicate"))
		return e
	case 1:
		return ps[0]
	}
	e := ps[0]
	for _, p := range ps[1:] {
		e = e.Or(p)
	}
	return e
}

// Not negates the predicate: NOT (x).
func Not(p *Expr) *Clause {
	p.group = true
	return NewClause("NOT", p)
}

// All wraps a sub-query with the ALL operator.
func All(q Querier) *Func { return Fn("ALL", q) }

// Any wraps a sub-query with the ANY operator.
func Any(q Querier) *Func { return Fn("ANY", q) }

// Exists wraps a sub-query with the EXISTS operator.
func Exists(q Querier) *Clause { return NewClause("EXISTS", q) }
