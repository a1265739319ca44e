package field

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/cargo"
	"github.com/syssam/cargo/codec"
	"github.com/syssam/cargo/dialect/sql"
)

func TestEnumMembership(t *testing.T) {
	e := OneOf("active", "blocked", "deleted").Bind("users", "status")
	require.NoError(t, e.Set("active"))
	assert.Equal(t, "active", e.Get())

	err := e.Set("archived")
	require.Error(t, err)
	var verr *cargo.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Name)
	assert.Equal(t, cargo.CodeValue, verr.Code)
	// The failure names both the value and the allowed set.
	assert.ErrorContains(t, err, "archived")
	assert.ErrorContains(t, err, "active, blocked, deleted")

	require.NoError(t, e.Set(nil))
	assert.True(t, e.IsNull())
}

func TestEnumIndexOf(t *testing.T) {
	e := OneOf("a", "b", "c")
	assert.Equal(t, 1, e.IndexOf("b"))
	assert.Equal(t, -1, e.IndexOf("z"))
	assert.Equal(t, []string{"a", "b", "c"}, e.Values())
}

func TestEnumTypeName(t *testing.T) {
	e := OneOf("x").Bind("users", "status")
	assert.Equal(t, "users_status_enumtype", e.TypeName())

	e = OneOf("x").Bind("UserOrders", "ShipState")
	assert.Equal(t, "user_orders_ship_state_enumtype", e.TypeName())

	e = OneOf("x").Named("custom_enum")
	assert.Equal(t, "custom_enum", e.TypeName())
}

// mapResolver resolves type names from a fixed table and counts lookups.
type mapResolver struct {
	types map[string]codec.OID
	calls int
}

func (r *mapResolver) ResolveType(_ context.Context, name string) (codec.OID, codec.OID, error) {
	r.calls++
	oid, ok := r.types[name]
	if !ok {
		return 0, 0, fmt.Errorf("type %q: %w", name, codec.ErrTypeNotFound)
	}
	return oid, oid + 1, nil
}

func TestEnumRegister(t *testing.T) {
	e := OneOf("active", "blocked").Bind("users", "status")
	r := codec.NewRegistry()
	res := &mapResolver{types: map[string]codec.OID{"users_status_enumtype": 16400}}

	require.NoError(t, e.Register(context.Background(), r, res))
	assert.Equal(t, codec.OID(16400), e.OID())
	assert.Equal(t, codec.OID(16401), e.ArrayOID())

	// Registration is idempotent.
	require.NoError(t, e.Register(context.Background(), r, res))
	assert.Equal(t, 1, res.calls)

	// The registered codecs serve the enum's wire form.
	require.NoError(t, e.Set("blocked"))
	data, err := r.Encode(e.OID(), e.Get())
	require.NoError(t, err)
	assert.Equal(t, "blocked", string(data))
}

func TestEnumRegisterMissing(t *testing.T) {
	e := OneOf("a").Bind("gone", "kind")
	r := codec.NewRegistry()
	res := &mapResolver{types: map[string]codec.OID{}}
	err := e.Register(context.Background(), r, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrTypeNotFound)
	assert.Zero(t, e.OID())

	// The field keeps working as plain text.
	require.NoError(t, e.Set("a"))
}

func TestEnumCopy(t *testing.T) {
	e := OneOf("a", "b").Bind("users", "status").Required()
	require.NoError(t, e.Set("a"))

	c := e.Copy()
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Name())
	assert.True(t, c.IsRequired())
	assert.Equal(t, []string{"a", "b"}, c.Values())
	require.Error(t, c.Set("z"), "the copy still enforces membership")
}

func TestEnumPredicates(t *testing.T) {
	e := OneOf("active", "blocked").Bind("users", "status")
	query, args, err := sql.Compile(e.EQ("active"))
	require.NoError(t, err)
	assert.Equal(t, "users.status = $1", query)
	assert.Equal(t, []any{"active"}, args)

	query, args, err = sql.Compile(e.In("active", "blocked"))
	require.NoError(t, err)
	assert.Equal(t, "users.status IN ($1, $2)", query)
	assert.Equal(t, []any{"active", "blocked"}, args)
}

func TestEnumRequired(t *testing.T) {
	e := OneOf("a").Bind("users", "kind").Required()
	assert.False(t, e.Validate())
	require.NoError(t, e.Set("a"))
	assert.True(t, e.Validate())
}
