package sql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/cargo/dialect"
)

// The sqlite round-trip exercises the whole chain: node compilation with
// question-mark placeholders, the driver, and row scanning against a real
// database.
func TestSQLiteRoundTrip(t *testing.T) {
	drv, err := Open(dialect.SQLite, ":memory:")
	require.NoError(t, err)
	defer drv.Close()
	drv.DB().SetMaxOpenConns(1)
	ctx := context.Background()

	err = drv.Exec(ctx, "CREATE TABLE users (name TEXT NOT NULL, age INTEGER NOT NULL)", []any{}, nil)
	require.NoError(t, err)
	for _, u := range []struct {
		name string
		age  int
	}{
		{"ariel", 30},
		{"alex", 17},
		{"nati", 42},
	} {
		err = drv.Exec(ctx, "INSERT INTO users (name, age) VALUES (?, ?)", []any{u.name, u.age}, nil)
		require.NoError(t, err)
	}

	p := GTE(C("age"), 18).And(HasPrefix(C("name"), "a"))
	p.SetDialect(dialect.SQLite)
	pred, args, err := Compile(p)
	require.NoError(t, err)
	assert.Equal(t, "(age >= ?) AND (name LIKE ?)", pred)

	rows := &Rows{}
	err = drv.Query(ctx, "SELECT name FROM users WHERE "+pred+" ORDER BY name", args, rows)
	require.NoError(t, err)
	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	require.NoError(t, rows.Close())
	assert.Equal(t, []string{"ariel"}, names)

	// A CASE expression evaluated by the database.
	c := NewCase(LT(C("age"), 18), "minor").Else("adult")
	c.SetDialect(dialect.SQLite)
	caseSQL, caseArgs, err := Compile(c)
	require.NoError(t, err)
	err = drv.Query(ctx, "SELECT "+caseSQL+" FROM users WHERE name = ?", append(caseArgs, "alex"), rows)
	require.NoError(t, err)
	require.True(t, rows.Next())
	var bucket string
	require.NoError(t, rows.Scan(&bucket))
	require.NoError(t, rows.Close())
	assert.Equal(t, "minor", bucket)

	// A set operation evaluated by the database.
	u := Union(
		NewClause("SELECT", C("name"), NewClause("FROM", C("users")), NewClause("WHERE", GT(C("age"), 40))),
		NewClause("SELECT", C("name"), NewClause("FROM", C("users")), NewClause("WHERE", LT(C("age"), 18))),
	)
	u.SetDialect(dialect.SQLite)
	unionSQL, unionArgs, err := Compile(u)
	require.NoError(t, err)
	err = drv.Query(ctx, unionSQL+" ORDER BY name", unionArgs, rows)
	require.NoError(t, err)
	names = names[:0]
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Close())
	assert.Equal(t, []string{"alex", "nati"}, names)
}

// The stats wrapper counts operations against a live connection and fires
// the slow hook past the threshold.
func TestSQLiteStatsDriver(t *testing.T) {
	drv, err := Open(dialect.SQLite, ":memory:")
	require.NoError(t, err)
	defer drv.Close()
	drv.DB().SetMaxOpenConns(1)
	ctx := context.Background()

	var slow []string
	sdrv := NewStatsDriver(drv,
		WithSlowThreshold(0), // every statement trips the hook
		WithSlowQueryHook(func(_ context.Context, query string, _ []any, _ time.Duration) {
			slow = append(slow, query)
		}),
	)

	require.NoError(t, sdrv.Exec(ctx, "CREATE TABLE pets (name TEXT NOT NULL)", []any{}, nil))
	require.NoError(t, sdrv.Exec(ctx, "INSERT INTO pets (name) VALUES (?)", []any{"rex"}, nil))

	rows := &Rows{}
	require.NoError(t, sdrv.Query(ctx, "SELECT name FROM pets", []any{}, rows))
	require.True(t, rows.Next())
	var name string
	require.NoError(t, rows.Scan(&name))
	require.NoError(t, rows.Close())
	assert.Equal(t, "rex", name)

	snap := sdrv.QueryStats().Stats()
	assert.Equal(t, int64(1), snap.TotalQueries)
	assert.Equal(t, int64(2), snap.TotalExecs)
	assert.Equal(t, int64(0), snap.Errors)
	assert.Greater(t, snap.TotalDuration, time.Duration(0))
	assert.Greater(t, snap.AvgQueryDuration(), time.Duration(0))
	assert.Equal(t, int64(3), snap.SlowQueries)
	assert.Len(t, slow, 3)

	// A failing statement counts as an error.
	require.Error(t, sdrv.Exec(ctx, "INSERT INTO missing VALUES (1)", []any{}, nil))
	assert.Equal(t, int64(1), sdrv.QueryStats().Stats().Errors)

	// Transaction statements record through the same counters.
	tx, err := sdrv.Tx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Exec(ctx, "INSERT INTO pets (name) VALUES (?)", []any{"bo"}, nil))
	require.NoError(t, tx.Commit())
	assert.Equal(t, int64(4), sdrv.QueryStats().Stats().TotalExecs)

	sdrv.QueryStats().Reset()
	assert.Equal(t, int64(0), sdrv.QueryStats().Stats().TotalQueries)
}
