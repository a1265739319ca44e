package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/cargo"
)

func TestIn(t *testing.T) {
	query, args, err := Compile(In(TableColumn("users", "id"), 1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, "users.id IN ($1, $2, $3)", query)
	assert.Equal(t, []any{1, 2, 3}, args)

	query, args, err = Compile(NotIn(C("status"), "deleted"))
	require.NoError(t, err)
	assert.Equal(t, "status NOT IN ($1)", query)
	assert.Equal(t, []any{"deleted"}, args)
}

func TestInEmpty(t *testing.T) {
	// An empty IN list cannot compile to valid SQL.
	_, _, err := Compile(In(C("id")))
	require.Error(t, err)
	assert.True(t, cargo.IsBuildError(err))

	_, _, err = Compile(NotIn(C("id")))
	require.Error(t, err)
}

func TestBetween(t *testing.T) {
	query, args, err := Compile(Between(TableColumn("users", "age"), 18, 35))
	require.NoError(t, err)
	assert.Equal(t, "users.age BETWEEN $1 AND $2", query)
	assert.Equal(t, []any{18, 35}, args)
}

func TestLikeHelpers(t *testing.T) {
	query, args, err := Compile(Contains(C("name"), "a8m"))
	require.NoError(t, err)
	assert.Equal(t, "name LIKE $1", query)
	assert.Equal(t, []any{"%a8m%"}, args)

	_, args, err = Compile(HasPrefix(C("name"), "a"))
	require.NoError(t, err)
	assert.Equal(t, []any{"a%"}, args)

	_, args, err = Compile(HasSuffix(C("name"), "m"))
	require.NoError(t, err)
	assert.Equal(t, []any{"%m"}, args)

	// LIKE metacharacters in the literal are escaped.
	_, args, err = Compile(Contains(C("title"), "50%_off"))
	require.NoError(t, err)
	assert.Equal(t, []any{`%50\%\_off%`}, args)
}

func TestAndOr(t *testing.T) {
	query, args, err := Compile(And(EQ(C("a"), 1), EQ(C("b"), 2), EQ(C("c"), 3)))
	require.NoError(t, err)
	assert.Equal(t, "((a = $1) AND (b = $2)) AND (c = $3)", query)
	assert.Equal(t, []any{1, 2, 3}, args)

	// A single predicate passes through unwrapped.
	query, _, err = Compile(And(EQ(C("a"), 1)))
	require.NoError(t, err)
	assert.Equal(t, "a = $1", query)

	query, _, err = Compile(Or(EQ(C("a"), 1), EQ(C("b"), 2)))
	require.NoError(t, err)
	assert.Equal(t, "(a = $1) OR (b = $2)", query)

	_, _, err = Compile(And())
	require.Error(t, err)
}

func TestNot(t *testing.T) {
	query, args, err := Compile(Not(EQ(C("active"), true)))
	require.NoError(t, err)
	assert.Equal(t, "NOT (active = $1)", query)
	assert.Equal(t, []any{true}, args)
}

func TestSubqueryOperators(t *testing.T) {
	sub := NewClause("SELECT", C("id"), NewClause("FROM", C("blocked")))

	query, _, err := Compile(Exists(sub))
	require.NoError(t, err)
	assert.Equal(t, "EXISTS SELECT id FROM blocked", query)

	query, _, err = Compile(NEQ(C("id"), Any(sub)))
	require.NoError(t, err)
	assert.Equal(t, "id <> ANY(SELECT id FROM blocked)", query)

	query, _, err = Compile(GT(C("age"), All(sub)))
	require.NoError(t, err)
	assert.Equal(t, "age > ALL(SELECT id FROM blocked)", query)
}
