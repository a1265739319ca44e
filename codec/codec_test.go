package codec

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()
	for _, oid := range []OID{
		TypeBool, TypeBytea, TypeInt2, TypeInt4, TypeInt8, TypeText,
		TypeVarchar, TypeFloat8, TypeDate, TypeTimestamp, TypeTimestampTZ,
		TypeUUID, TypeInet, TypeTextArray, TypeInt4Array,
	} {
		_, ok := r.Lookup(oid)
		assert.True(t, ok, "missing builtin codec for oid %d", oid)
	}
	_, ok := r.Lookup(OID(999999))
	assert.False(t, ok)
}

func TestRegistryOverwrite(t *testing.T) {
	r := NewRegistry()
	r.Register(TypeText, EnumCodec{})
	c, ok := r.Lookup(TypeText)
	require.True(t, ok)
	assert.IsType(t, EnumCodec{}, c)
}

func TestRegistryEncodeDecode(t *testing.T) {
	r := NewRegistry()
	data, err := r.Encode(TypeInt8, int64(42))
	require.NoError(t, err)
	assert.Equal(t, "42", string(data))
	v, err := r.Decode(TypeInt8, data)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	_, err = r.Encode(OID(999999), "x")
	require.Error(t, err)
	assert.ErrorContains(t, err, "no codec registered")
}

func TestScalarCodecs(t *testing.T) {
	// bool uses the single-letter wire form.
	data, err := BoolCodec{}.Encode(true)
	require.NoError(t, err)
	assert.Equal(t, "t", string(data))
	v, err := BoolCodec{}.Decode([]byte("f"))
	require.NoError(t, err)
	assert.Equal(t, false, v)

	// timestamps round-trip through the fixed layout.
	ts := time.Date(2024, 6, 1, 12, 30, 45, 123456000, time.UTC)
	c := TimeCodec{Layout: TimestampTZLayout}
	data, err = c.Encode(ts)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01 12:30:45.123456+00", string(data))
	got, err := c.Decode(data)
	require.NoError(t, err)
	assert.True(t, ts.Equal(got.(time.Time)))

	// uuid round-trips through canonical text.
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	data, err = UUIDCodec{}.Encode(id)
	require.NoError(t, err)
	got, err = UUIDCodec{}.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	// inet keeps a prefix length when present.
	got, err = InetCodec{}.Decode([]byte("192.168.0.0/24"))
	require.NoError(t, err)
	assert.Equal(t, "192.168.0.0/24", fmt.Sprint(got))
	got, err = InetCodec{}.Decode([]byte("10.0.0.1"))
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", fmt.Sprint(got))

	// A decoded prefixed inet value encodes back to the same text.
	got, err = InetCodec{}.Decode([]byte("192.168.0.0/24"))
	require.NoError(t, err)
	data, err = InetCodec{}.Encode(got)
	require.NoError(t, err)
	assert.Equal(t, "192.168.0.0/24", string(data))
	data, err = InetCodec{}.Encode("10.1.0.0/16")
	require.NoError(t, err)
	assert.Equal(t, "10.1.0.0/16", string(data))
}

func TestArrayCodec(t *testing.T) {
	c := &ArrayCodec{Elem: TextCodec{}, ElemName: "text"}

	data, err := c.Encode([]any{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "{a,b}::text[]", string(data))

	// Elements containing literal metacharacters are quoted and escaped.
	data, err = c.Encode([]any{`he said "hi"`, "with space", "a,b", ""})
	require.NoError(t, err)
	assert.Equal(t, `{"he said \"hi\"","with space","a,b",""}::text[]`, string(data))

	// NULL elements and nested dimensions.
	data, err = c.Encode([]any{[]any{"a", nil}, []any{"b"}})
	require.NoError(t, err)
	assert.Equal(t, "{{a,NULL},{b}}::text[]", string(data))

	// Decode reverses all of it, with or without the cast suffix.
	v, err := c.Decode([]byte(`{"he said \"hi\"","with space",NULL}`))
	require.NoError(t, err)
	assert.Equal(t, []any{`he said "hi"`, "with space", nil}, v)

	v, err = c.Decode([]byte("{{a,NULL},{b}}::text[]"))
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{"a", nil}, []any{"b"}}, v)

	v, err = c.Decode([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, []any{}, v)

	// A quoted "NULL" is the literal string, a bare NULL is nil.
	v, err = c.Decode([]byte(`{NULL,"NULL"}`))
	require.NoError(t, err)
	assert.Equal(t, []any{nil, "NULL"}, v)

	_, err = c.Decode([]byte("not an array"))
	require.Error(t, err)
	_, err = c.Decode([]byte("{a,b"))
	require.Error(t, err)
}

func TestArrayCodecInts(t *testing.T) {
	c := &ArrayCodec{Elem: IntCodec{}, ElemName: "int4"}
	data, err := c.Encode([]any{int64(1), int64(2), nil})
	require.NoError(t, err)
	assert.Equal(t, "{1,2,NULL}::int4[]", string(data))
	v, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), nil}, v)
}

func TestBinaryCodec(t *testing.T) {
	raw := []byte{0x00, 0xff, 0x10, 0x42}
	data, err := BinaryCodec{}.Encode(raw)
	require.NoError(t, err)
	v, err := BinaryCodec{}.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, raw, v)

	// Payloads that predate the codec are returned as raw bytes.
	v, err = BinaryCodec{}.Decode([]byte("not base64 !!"))
	require.NoError(t, err)
	assert.Equal(t, []byte("not base64 !!"), v)
}

func TestTypeTranslation(t *testing.T) {
	oid, err := TypeOID("varchar")
	require.NoError(t, err)
	assert.Equal(t, TypeVarchar, oid)

	// Length modifiers and case are ignored.
	oid, err = TypeOID("VARCHAR(255)")
	require.NoError(t, err)
	assert.Equal(t, TypeVarchar, oid)

	// The bracket and underscore array spellings are equivalent.
	oid, err = TypeOID("text[]")
	require.NoError(t, err)
	assert.Equal(t, TypeTextArray, oid)
	oid, err = TypeOID("_text")
	require.NoError(t, err)
	assert.Equal(t, TypeTextArray, oid)

	name, err := TypeName(TypeInt8)
	require.NoError(t, err)
	assert.Equal(t, "int8", name)

	_, err = TypeOID("no_such_type")
	require.Error(t, err)
	_, err = TypeName(OID(999999))
	require.Error(t, err)
}

// staticResolver resolves a fixed OID pair and counts round trips.
type staticResolver struct {
	oid     OID
	noArray bool
	calls   atomic.Int32
}

func (r *staticResolver) ResolveType(ctx context.Context, name string) (OID, OID, error) {
	r.calls.Add(1)
	if r.oid == 0 {
		return 0, 0, fmt.Errorf("codec: type %q: %w", name, ErrTypeNotFound)
	}
	if r.noArray {
		return r.oid, 0, nil
	}
	return r.oid, r.oid + 1, nil
}

func TestRegisterEnum(t *testing.T) {
	r := NewRegistry()
	res := &staticResolver{oid: 16400}
	oid, arrayOID, err := r.RegisterEnum(context.Background(), res, "users_status_enumtype")
	require.NoError(t, err)
	assert.Equal(t, OID(16400), oid)
	assert.Equal(t, OID(16401), arrayOID)

	// Both the scalar and the array codec are installed.
	data, err := r.Encode(oid, "active")
	require.NoError(t, err)
	assert.Equal(t, "active", string(data))
	data, err = r.Encode(arrayOID, []any{"active", "blocked"})
	require.NoError(t, err)
	assert.Equal(t, "{active,blocked}::users_status_enumtype[]", string(data))

	// Missing types surface ErrTypeNotFound and register nothing.
	missing := &staticResolver{}
	_, _, err = r.RegisterEnum(context.Background(), missing, "gone_enumtype")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeNotFound)
}

func TestRegisterEnumNoArrayType(t *testing.T) {
	// A type without an array companion registers only the scalar codec.
	r := NewRegistry()
	res := &staticResolver{oid: 16600, noArray: true}
	oid, arrayOID, err := r.RegisterEnum(context.Background(), res, "jobs_state_enumtype")
	require.NoError(t, err)
	assert.Equal(t, OID(16600), oid)
	assert.Equal(t, OID(0), arrayOID)

	_, ok := r.Lookup(oid)
	assert.True(t, ok)
	_, ok = r.Lookup(0)
	assert.False(t, ok)
}

func TestRegisterEnumConcurrent(t *testing.T) {
	r := NewRegistry()
	res := &staticResolver{oid: 16500}
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			oid, _, err := r.RegisterEnum(context.Background(), res, "pets_kind_enumtype")
			assert.NoError(t, err)
			assert.Equal(t, OID(16500), oid)
		}()
	}
	close(start)
	wg.Wait()
	// Concurrent registrations collapse into few round trips, and later
	// calls are cache hits.
	calls := res.calls.Load()
	assert.Less(t, calls, int32(16))
	_, _, err := r.RegisterEnum(context.Background(), res, "pets_kind_enumtype")
	require.NoError(t, err)
	assert.Equal(t, calls, res.calls.Load())
}
