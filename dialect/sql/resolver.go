package sql

import (
	"context"
	"fmt"

	"github.com/syssam/cargo/codec"
)

// typeOIDQuery resolves a type name and its array companion in one round
// trip. The array type sorts first under DESC ordering because of its
// leading underscore.
const typeOIDQuery = `SELECT t.oid, t.typname FROM pg_catalog.pg_type t WHERE t.typname IN ($1, $2) ORDER BY t.typname DESC`

// Resolver resolves database type names to OIDs through a live connection.
// It implements codec.TypeResolver.
type Resolver struct {
	conn ExecQuerier
}

// NewResolver returns a resolver querying pg_catalog through conn.
func NewResolver(conn ExecQuerier) *Resolver {
	return &Resolver{conn: conn}
}

// ResolveType looks up the scalar and array OIDs for the given type name.
// A name with no catalog entry reports codec.ErrTypeNotFound.
func (r *Resolver) ResolveType(ctx context.Context, name string) (codec.OID, codec.OID, error) {
	rows, err := r.conn.QueryContext(ctx, typeOIDQuery, name, "_"+name)
	if err != nil {
		return 0, 0, fmt.Errorf("dialect/sql: resolve type %q: %w", name, err)
	}
	defer rows.Close()
	var oid, arrayOID codec.OID
	for rows.Next() {
		var (
			id      uint32
			typname string
		)
		if err := rows.Scan(&id, &typname); err != nil {
			return 0, 0, fmt.Errorf("dialect/sql: resolve type %q: %w", name, err)
		}
		if typname == name {
			oid = codec.OID(id)
		} else {
			arrayOID = codec.OID(id)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("dialect/sql: resolve type %q: %w", name, err)
	}
	if oid == 0 {
		return 0, 0, fmt.Errorf("dialect/sql: type %q: %w", name, codec.ErrTypeNotFound)
	}
	return oid, arrayOID, nil
}

var _ codec.TypeResolver = (*Resolver)(nil)

// DecodedRows applies a codec registry to scanned column values. Columns
// whose OID has a registered codec come back as decoded native values;
// everything else passes through untouched.
type DecodedRows struct {
	Rows     *Rows
	Registry *codec.Registry
	OIDs     []codec.OID // per-column OIDs, zero for pass-through
}

// DecodeRows wraps rows so that Values returns codec-decoded columns.
func DecodeRows(rows *Rows, reg *codec.Registry, oids []codec.OID) *DecodedRows {
	return &DecodedRows{Rows: rows, Registry: reg, OIDs: oids}
}

// Next advances to the next row.
func (r *DecodedRows) Next() bool { return r.Rows.Next() }

// Err returns the iteration error, if any.
func (r *DecodedRows) Err() error { return r.Rows.Err() }

// Close closes the underlying rows.
func (r *DecodedRows) Close() error { return r.Rows.Close() }

// Values scans the current row and decodes every column that has a
// registered codec. Wire values arrive as raw bytes and leave as native
// values.
func (r *DecodedRows) Values() ([]any, error) {
	cols, err := r.Rows.Columns()
	if err != nil {
		return nil, err
	}
	raw := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}
	if err := r.Rows.Scan(dest...); err != nil {
		return nil, err
	}
	out := make([]any, len(cols))
	for i, v := range raw {
		oid := codec.OID(0)
		if i < len(r.OIDs) {
			oid = r.OIDs[i]
		}
		if oid == 0 || v == nil {
			out[i] = v
			continue
		}
		data, ok := toBytes(v)
		if !ok {
			out[i] = v
			continue
		}
		decoded, err := r.Registry.Decode(oid, data)
		if err != nil {
			return nil, fmt.Errorf("dialect/sql: decode column %q: %w", cols[i], err)
		}
		out[i] = decoded
	}
	return out, nil
}

func toBytes(v any) ([]byte, bool) {
	switch v := v.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
