package sql

import "github.com/syssam/cargo"

// Set-operation keywords.
const (
	opUnion             = "UNION"
	opUnionAll          = "UNION ALL"
	opUnionDistinct     = "UNION DISTINCT"
	opIntersect         = "INTERSECT"
	opIntersectAll      = "INTERSECT ALL"
	opIntersectDistinct = "INTERSECT DISTINCT"
	opExcept            = "EXCEPT"
	opExceptAll         = "EXCEPT ALL"
	opExceptDistinct    = "EXCEPT DISTINCT"
)

// SetOp combines compiled queries with a set-operation keyword between
// them. Chaining through the fluent methods flattens left-associatively, so
// N combined queries compile with exactly N-1 keyword occurrences; a SetOp
// of a different kind nested as an input keeps its own grouping
// parentheses. Parameters concatenate in textual order.
type SetOp struct {
	dialect string
	total   int
	kind    string
	queries []Querier
	errs    []error
}

func newSetOp(kind string, qs []Querier) *SetOp {
	s := &SetOp{kind: kind}
	for _, q := range qs {
		s.add(q)
	}
	return s
}

// Union combines the queries with UNION.
func Union(qs ...Querier) *SetOp { return newSetOp(opUnion, qs) }

// UnionAll combines the queries with UNION ALL.
func UnionAll(qs ...Querier) *SetOp { return newSetOp(opUnionAll, qs) }

// UnionDistinct combines the queries with UNION DISTINCT.
func UnionDistinct(qs ...Querier) *SetOp { return newSetOp(opUnionDistinct, qs) }

// Intersect combines the queries with INTERSECT.
func Intersect(qs ...Querier) *SetOp { return newSetOp(opIntersect, qs) }

// IntersectAll combines the queries with INTERSECT ALL.
func IntersectAll(qs ...Querier) *SetOp { return newSetOp(opIntersectAll, qs) }

// IntersectDistinct combines the queries with INTERSECT DISTINCT.
func IntersectDistinct(qs ...Querier) *SetOp { return newSetOp(opIntersectDistinct, qs) }

// Except combines the queries with EXCEPT.
func Except(qs ...Querier) *SetOp { return newSetOp(opExcept, qs) }

// ExceptAll combines the queries with EXCEPT ALL.
func ExceptAll(qs ...Querier) *SetOp { return newSetOp(opExceptAll, qs) }

// ExceptDistinct combines the queries with EXCEPT DISTINCT.
func ExceptDistinct(qs ...Querier) *SetOp { return newSetOp(opExceptDistinct, qs) }

// add appends q, flattening a same-kind SetOp into this chain.
func (s *SetOp) add(q Querier) {
	if o, ok := q.(*SetOp); ok && o.kind == s.kind {
		s.queries = append(s.queries, o.queries...)
		s.errs = append(s.errs, o.errs...)
		return
	}
	s.queries = append(s.queries, q)
}

// Union appends q to the chain with UNION, starting a new combinator when
// the current kind differs.
func (s *SetOp) Union(q Querier) *SetOp { return s.chain(opUnion, q) }

// UnionAll appends q to the chain with UNION ALL.
func (s *SetOp) UnionAll(q Querier) *SetOp { return s.chain(opUnionAll, q) }

// Intersect appends q to the chain with INTERSECT.
func (s *SetOp) Intersect(q Querier) *SetOp { return s.chain(opIntersect, q) }

// Except appends q to the chain with EXCEPT.
func (s *SetOp) Except(q Querier) *SetOp { return s.chain(opExcept, q) }

func (s *SetOp) chain(kind string, q Querier) *SetOp {
	if s.kind == kind {
		s.add(q)
		return s
	}
	return newSetOp(kind, []Querier{s, q})
}

// SetDialect sets the compilation dialect.
func (s *SetOp) SetDialect(d string) { s.dialect = d }

// SetTotal sets the placeholder offset.
func (s *SetOp) SetTotal(total int) { s.total = total }

// Err returns the first construction or compilation error.
func (s *SetOp) Err() error {
	if len(s.errs) > 0 {
		return s.errs[0]
	}
	return nil
}

// Query compiles the combinator chain.
func (s *SetOp) Query() (string, []any) {
	b := NewBuilder(s.dialect)
	b.SetTotal(s.total)
	s.writeTo(b, true)
	s.errs = append(s.errs, b.errs...)
	return b.Query()
}

func (s *SetOp) writeTo(b *Builder, _ bool) {
	if len(s.queries) < 2 {
		b.AddError(cargo.NewBuildError("set operation requires at least two queries"))
		return
	}
	for i, q := range s.queries {
		if i > 0 {
			b.Pad()
			b.WriteString(s.kind)
			b.Pad()
		}
		if nested, ok := q.(*SetOp); ok {
			b.Wrap(nested)
			continue
		}
		b.Join(q)
	}
}

// String implements fmt.Stringer for debugging.
func (s *SetOp) String() string { return queryString(s) }
