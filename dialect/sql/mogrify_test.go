package sql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/cargo/dialect"
)

func TestMogrifyString(t *testing.T) {
	got := MogrifyString("SELECT * FROM users WHERE name = $1 AND age > $2", []any{"a8m", 21})
	assert.Equal(t, "SELECT * FROM users WHERE name = 'a8m' AND age > 21", got)

	got = MogrifyString("name = ? AND age > ?", []any{"a8m", 21})
	assert.Equal(t, "name = 'a8m' AND age > 21", got)

	// Repeated numbered placeholders reuse the same parameter.
	got = MogrifyString("a = $1 OR b = $1", []any{5})
	assert.Equal(t, "a = 5 OR b = 5", got)

	// Out-of-range placeholders stay untouched.
	got = MogrifyString("a = $1 AND b = $2", []any{1})
	assert.Equal(t, "a = 1 AND b = $2", got)
}

func TestMogrifyQuoting(t *testing.T) {
	got := MogrifyString("v = $1", []any{"it's"})
	assert.Equal(t, "v = 'it''s'", got)

	got = MogrifyString("v = $1", []any{nil})
	assert.Equal(t, "v = NULL", got)

	got = MogrifyString("v = $1 AND w = $2", []any{true, false})
	assert.Equal(t, "v = TRUE AND w = FALSE", got)

	got = MogrifyString("v = $1", []any{3.14})
	assert.Equal(t, "v = 3.14", got)

	ts := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	got = MogrifyString("v = $1", []any{ts})
	assert.Equal(t, "v = '2024-06-01 12:30:00+00'", got)
}

func TestMogrifyQuerier(t *testing.T) {
	c := NewCase(
		EQ(TableColumn("foo", "bar"), 1), "one",
		EQ(TableColumn("foo", "bar"), 2), "two",
	).Else("three")
	assert.Equal(t,
		"CASE WHEN foo.bar = 1 THEN 'one' WHEN foo.bar = 2 THEN 'two' ELSE 'three' END",
		Mogrify(c))

	p := Contains(C("name"), "a8m")
	p.SetDialect(dialect.MySQL)
	assert.Equal(t, "name LIKE '%a8m%'", Mogrify(p))
}
