package field

import (
	"github.com/syssam/cargo/dialect/sql"
)

// Comparison and arithmetic methods make a field usable directly as an
// expression operand. Each returns a fresh node; the field renders as
// its table-qualified column and the argument as a bound parameter.

func (f *Field) EQ(v any) *sql.Expr  { return sql.EQ(f, v) }
func (f *Field) NEQ(v any) *sql.Expr { return sql.NEQ(f, v) }
func (f *Field) GT(v any) *sql.Expr  { return sql.GT(f, v) }
func (f *Field) GTE(v any) *sql.Expr { return sql.GTE(f, v) }
func (f *Field) LT(v any) *sql.Expr  { return sql.LT(f, v) }
func (f *Field) LTE(v any) *sql.Expr { return sql.LTE(f, v) }

func (f *Field) Add(v any) *sql.Expr    { return sql.Add(f, v) }
func (f *Field) Sub(v any) *sql.Expr    { return sql.Sub(f, v) }
func (f *Field) Mul(v any) *sql.Expr    { return sql.Mul(f, v) }
func (f *Field) Div(v any) *sql.Expr    { return sql.Div(f, v) }
func (f *Field) Mod(v any) *sql.Expr    { return sql.Mod(f, v) }
func (f *Field) Concat(v any) *sql.Expr { return sql.Concat(f, v) }

// Null renders an IS NULL predicate over the column.
func (f *Field) Null() *sql.Expr { return sql.IsNull(f) }

// NotNull renders an IS NOT NULL predicate over the column.
func (f *Field) NotNull() *sql.Expr { return sql.NotNull(f) }

func (f *Field) In(vs ...any) *sql.Expr    { return sql.In(f, vs...) }
func (f *Field) NotIn(vs ...any) *sql.Expr { return sql.NotIn(f, vs...) }

func (f *Field) Between(lo, hi any) *sql.Expr { return sql.Between(f, lo, hi) }

func (f *Field) Like(pattern string) *sql.Expr  { return sql.Like(f, pattern) }
func (f *Field) ILike(pattern string) *sql.Expr { return sql.ILike(f, pattern) }

func (f *Field) Contains(substr string) *sql.Expr  { return sql.Contains(f, substr) }
func (f *Field) HasPrefix(prefix string) *sql.Expr { return sql.HasPrefix(f, prefix) }
func (f *Field) HasSuffix(suffix string) *sql.Expr { return sql.HasSuffix(f, suffix) }

// Asc orders by the field ascending.
func (f *Field) Asc() *sql.Expr { return sql.Asc(f) }

// Desc orders by the field descending.
func (f *Field) Desc() *sql.Expr { return sql.Desc(f) }

func (f *Field) Count() *sql.Func { return sql.Count(f) }
func (f *Field) Min() *sql.Func   { return sql.Min(f) }
func (f *Field) Max() *sql.Func   { return sql.Max(f) }
func (f *Field) Avg() *sql.Func   { return sql.Avg(f) }
func (f *Field) Sum() *sql.Func   { return sql.Sum(f) }

// Distinct returns the DISTINCT column phrase, for use inside aggregates.
func (f *Field) Distinct() *sql.Clause { return sql.Distinct(f) }

func (f *Field) Lower() *sql.Func  { return sql.Lower(f) }
func (f *Field) Upper() *sql.Func  { return sql.Upper(f) }
func (f *Field) Length() *sql.Func { return sql.Length(f) }

// Coalesce falls back to v when the column is NULL.
func (f *Field) Coalesce(v any) *sql.Func { return sql.Coalesce(f, v) }

// As renders the column followed by an alias.
func (f *Field) As(alias string) *sql.Clause {
	return sql.NewClause("", f).As(alias)
}

// ArrayContains reports whether the column contains every element of v.
func (a *Array) ArrayContains(v any) *sql.Expr { return sql.Op(a, "@>", v) }

// ContainedBy reports whether every element of the column appears in v.
func (a *Array) ContainedBy(v any) *sql.Expr { return sql.Op(a, "<@", v) }

// Overlaps reports whether the column and v share any element.
func (a *Array) Overlaps(v any) *sql.Expr { return sql.Op(a, "&&", v) }
