package codec

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrTypeNotFound is returned when a database-side type name cannot be
// resolved to an OID. Registration treats it as a warning condition: the
// caller may log and continue, the registry is left untouched.
var ErrTypeNotFound = errors.New("codec: type not found in the database")

// OID identifies a logical database type. The constants below mirror the
// built-in PostgreSQL catalog OIDs; enumerated types receive their OIDs at
// runtime through a TypeResolver.
type OID uint32

// Built-in scalar type OIDs.
const (
	TypeBool        OID = 16
	TypeBytea       OID = 17
	TypeInt8        OID = 20
	TypeInt2        OID = 21
	TypeInt4        OID = 23
	TypeText        OID = 25
	TypeJSON        OID = 114
	TypeFloat4      OID = 700
	TypeFloat8      OID = 701
	TypeCidr        OID = 650
	TypeMacaddr     OID = 829
	TypeInet        OID = 869
	TypeVarchar     OID = 1043
	TypeDate        OID = 1082
	TypeTimestamp   OID = 1114
	TypeTimestampTZ OID = 1184
	TypeBit         OID = 1560
	TypeVarbit      OID = 1562
	TypeNumeric     OID = 1700
	TypeUUID        OID = 2950
	TypeJSONB       OID = 3802
)

// Built-in array type OIDs.
const (
	TypeBoolArray        OID = 1000
	TypeByteaArray       OID = 1001
	TypeInt2Array        OID = 1005
	TypeInt4Array        OID = 1007
	TypeTextArray        OID = 1009
	TypeVarcharArray     OID = 1015
	TypeInt8Array        OID = 1016
	TypeFloat8Array      OID = 1022
	TypeInetArray        OID = 1041
	TypeTimestampArray   OID = 1115
	TypeTimestampTZArray OID = 1185
	TypeBitArray         OID = 1561
	TypeVarbitArray      OID = 1563
	TypeNumericArray     OID = 1231
	TypeUUIDArray        OID = 2951
	TypeJSONBArray       OID = 3807
)

// Codec converts between a native Go value and the database's textual wire
// representation for one logical type.
type Codec interface {
	// Encode renders v as wire bytes.
	Encode(v any) ([]byte, error)
	// Decode parses wire bytes back into a native value.
	Decode(data []byte) (any, error)
}

// TypeResolver resolves a database-side type name to its scalar and array
// OIDs. The dialect/sql package provides an implementation backed by a
// pg_catalog.pg_type lookup; tests may stub it.
type TypeResolver interface {
	ResolveType(ctx context.Context, name string) (oid, arrayOID OID, err error)
}

// Registry maps OIDs to codecs. The zero value is not usable; construct one
// with NewRegistry, which seeds the built-in scalar and array codecs.
//
// Registration overwrites silently so that late-bound types (enums resolved
// after connect) can be registered redundantly from multiple call sites.
// All paths are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[OID]Codec
	oids   map[string]OID // resolved type name -> scalar OID
	group  singleflight.Group
}

// NewRegistry returns a registry populated with codecs for the built-in
// scalar and array types.
func NewRegistry() *Registry {
	r := &Registry{
		codecs: make(map[OID]Codec),
		oids:   make(map[string]OID),
	}
	for oid, c := range builtins() {
		r.codecs[oid] = c
	}
	return r
}

// Register installs c as the codec for oid, replacing any existing codec.
func (r *Registry) Register(oid OID, c Codec) {
	r.mu.Lock()
	r.codecs[oid] = c
	r.mu.Unlock()
}

// Lookup returns the codec registered for oid.
func (r *Registry) Lookup(oid OID) (Codec, bool) {
	r.mu.RLock()
	c, ok := r.codecs[oid]
	r.mu.RUnlock()
	return c, ok
}

// Encode renders v through the codec registered for oid.
func (r *Registry) Encode(oid OID, v any) ([]byte, error) {
	c, ok := r.Lookup(oid)
	if !ok {
		return nil, fmt.Errorf("codec: no codec registered for oid %d", oid)
	}
	return c.Encode(v)
}

// Decode parses data through the codec registered for oid.
func (r *Registry) Decode(oid OID, data []byte) (any, error) {
	c, ok := r.Lookup(oid)
	if !ok {
		return nil, fmt.Errorf("codec: no codec registered for oid %d", oid)
	}
	return c.Decode(data)
}

// RegisterEnum resolves the database OIDs for the enumerated type name and
// registers the enum codec and its array codec. The resolution round-trip is
// deduplicated across goroutines and cached, so repeated calls are cheap
// no-ops. A missing database type returns ErrTypeNotFound without touching
// the registry.
func (r *Registry) RegisterEnum(ctx context.Context, resolver TypeResolver, name string) (OID, OID, error) {
	r.mu.RLock()
	oid, ok := r.oids[name]
	r.mu.RUnlock()
	if ok {
		return oid, r.arrayOIDFor(oid), nil
	}
	v, err, _ := r.group.Do(name, func() (any, error) {
		oid, arrayOID, err := resolver.ResolveType(ctx, name)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.oids[name] = oid
		r.codecs[oid] = EnumCodec{}
		// The catalog may lack an array companion for the type.
		if arrayOID != 0 {
			r.codecs[arrayOID] = &ArrayCodec{Elem: EnumCodec{}, ElemName: name}
		}
		r.mu.Unlock()
		return [2]OID{oid, arrayOID}, nil
	})
	if err != nil {
		return 0, 0, err
	}
	oids := v.([2]OID)
	return oids[0], oids[1], nil
}

// arrayOIDFor finds the array OID registered alongside the scalar oid.
func (r *Registry) arrayOIDFor(oid OID) OID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for aoid, c := range r.codecs {
		if ac, ok := c.(*ArrayCodec); ok && aoid != oid {
			if _, ok := ac.Elem.(EnumCodec); ok && r.oids[ac.ElemName] == oid {
				return aoid
			}
		}
	}
	return 0
}

// builtins returns the default codec set for the built-in types.
func builtins() map[OID]Codec {
	text := TextCodec{}
	scalars := map[OID]Codec{
		TypeBool:        BoolCodec{},
		TypeBytea:       BinaryCodec{},
		TypeInt2:        IntCodec{},
		TypeInt4:        IntCodec{},
		TypeInt8:        IntCodec{},
		TypeText:        text,
		TypeVarchar:     text,
		TypeJSON:        text,
		TypeJSONB:       text,
		TypeNumeric:     text,
		TypeFloat4:      FloatCodec{},
		TypeFloat8:      FloatCodec{},
		TypeInet:        InetCodec{},
		TypeCidr:        CidrCodec{},
		TypeMacaddr:     MacCodec{},
		TypeDate:        TimeCodec{Layout: DateLayout},
		TypeTimestamp:   TimeCodec{Layout: TimestampLayout},
		TypeTimestampTZ: TimeCodec{Layout: TimestampTZLayout},
		TypeBit:         BitCodec{},
		TypeVarbit:      BitCodec{},
		TypeUUID:        UUIDCodec{},
	}
	arrays := map[OID][2]any{
		TypeBoolArray:        {TypeBool, "bool"},
		TypeByteaArray:       {TypeBytea, "bytea"},
		TypeInt2Array:        {TypeInt2, "int2"},
		TypeInt4Array:        {TypeInt4, "int4"},
		TypeInt8Array:        {TypeInt8, "int8"},
		TypeTextArray:        {TypeText, "text"},
		TypeVarcharArray:     {TypeVarchar, "varchar"},
		TypeFloat8Array:      {TypeFloat8, "float8"},
		TypeInetArray:        {TypeInet, "inet"},
		TypeTimestampArray:   {TypeTimestamp, "timestamp"},
		TypeTimestampTZArray: {TypeTimestampTZ, "timestamptz"},
		TypeBitArray:         {TypeBit, "bit"},
		TypeVarbitArray:      {TypeVarbit, "varbit"},
		TypeNumericArray:     {TypeNumeric, "numeric"},
		TypeUUIDArray:        {TypeUUID, "uuid"},
		TypeJSONBArray:       {TypeJSONB, "jsonb"},
	}
	all := make(map[OID]Codec, len(scalars)+len(arrays))
	for oid, c := range scalars {
		all[oid] = c
	}
	for oid, def := range arrays {
		all[oid] = &ArrayCodec{Elem: scalars[def[0].(OID)], ElemName: def[1].(string)}
	}
	return all
}
