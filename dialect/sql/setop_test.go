package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sel(col string) Querier {
	return NewClause("SELECT", C(col))
}

func selEQ(col string, v any) Querier {
	return NewClause("SELECT", C("*"), NewClause("WHERE", EQ(C(col), v)))
}

func TestUnion(t *testing.T) {
	query, args, err := Compile(Union(sel("a"), sel("b")))
	require.NoError(t, err)
	assert.Equal(t, "SELECT a UNION SELECT b", query)
	assert.Empty(t, args)

	query, _, err = Compile(UnionAll(sel("a"), sel("b")))
	require.NoError(t, err)
	assert.Equal(t, "SELECT a UNION ALL SELECT b", query)

	query, _, err = Compile(IntersectDistinct(sel("a"), sel("b")))
	require.NoError(t, err)
	assert.Equal(t, "SELECT a INTERSECT DISTINCT SELECT b", query)

	query, _, err = Compile(ExceptAll(sel("a"), sel("b")))
	require.NoError(t, err)
	assert.Equal(t, "SELECT a EXCEPT ALL SELECT b", query)
}

func TestSetOpFlattening(t *testing.T) {
	// Chaining the same kind flattens: three queries, two keywords.
	query, _, err := Compile(Union(sel("a"), sel("b")).Union(sel("c")))
	require.NoError(t, err)
	assert.Equal(t, "SELECT a UNION SELECT b UNION SELECT c", query)

	// A same-kind SetOp passed as input flattens too.
	query, _, err = Compile(Union(Union(sel("a"), sel("b")), Union(sel("c"), sel("d"))))
	require.NoError(t, err)
	assert.Equal(t, "SELECT a UNION SELECT b UNION SELECT c UNION SELECT d", query)
}

func TestSetOpMixedKinds(t *testing.T) {
	// A different kind starts a new combinator and keeps its grouping.
	query, _, err := Compile(Union(sel("a"), sel("b")).Intersect(sel("c")))
	require.NoError(t, err)
	assert.Equal(t, "(SELECT a UNION SELECT b) INTERSECT SELECT c", query)

	// UNION and UNION ALL are distinct kinds.
	query, _, err = Compile(UnionAll(sel("a"), sel("b")).Union(sel("c")))
	require.NoError(t, err)
	assert.Equal(t, "(SELECT a UNION ALL SELECT b) UNION SELECT c", query)

	query, _, err = Compile(Except(Union(sel("a"), sel("b")), sel("c")))
	require.NoError(t, err)
	assert.Equal(t, "(SELECT a UNION SELECT b) EXCEPT SELECT c", query)
}

func TestSetOpParams(t *testing.T) {
	// Parameters concatenate in textual order and renumber across inputs.
	query, args, err := Compile(Union(selEQ("a", 1), selEQ("b", 2)).Union(selEQ("c", 3)))
	require.NoError(t, err)
	assert.Equal(t, "SELECT * WHERE a = $1 UNION SELECT * WHERE b = $2 UNION SELECT * WHERE c = $3", query)
	assert.Equal(t, []any{1, 2, 3}, args)
}

func TestSetOpTooFewQueries(t *testing.T) {
	_, _, err := Compile(Union(sel("a")))
	require.Error(t, err)
	assert.ErrorContains(t, err, "two queries")
}
