package field

import (
	"context"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/cargo"
	"github.com/syssam/cargo/codec"
	"github.com/syssam/cargo/dialect/sql"
)

// Enum is a string field restricted to a fixed set of values. Membership
// is checked at Set time; a violation names both the rejected value and
// the allowed set.
//
// Enum types are created in the database per table and column, so their
// OIDs are not known until resolved. Register looks the type up through
// a resolver and installs codecs for the scalar and array forms.
type Enum struct {
	Field
	values   []string
	typeName string
	oid      codec.OID
	arrayOID codec.OID
}

// OneOf returns an enum field allowing exactly the given values.
func OneOf(values ...string) *Enum {
	e := &Enum{values: values}
	e.Field = Field{kind: KindEnum}
	e.Field.normalize = func(f *Field, v any) (any, error) {
		s, err := normalizeString(f, v)
		if err != nil {
			return nil, err
		}
		if e.IndexOf(s.(string)) < 0 {
			return nil, cargo.Validationf(f.name, cargo.CodeValue,
				"%q is not one of (%s)", s, strings.Join(e.values, ", "))
		}
		return s, nil
	}
	return e
}

// Values returns the allowed values in declaration order.
func (e *Enum) Values() []string {
	vs := make([]string, len(e.values))
	copy(vs, e.values)
	return vs
}

// IndexOf returns the position of v in the allowed set, or -1.
func (e *Enum) IndexOf(v string) int {
	for i, s := range e.values {
		if s == v {
			return i
		}
	}
	return -1
}

// Bind sets the owning table and column name.
func (e *Enum) Bind(table, name string) *Enum {
	e.Field.Bind(table, name)
	return e
}

// Required marks the enum as NOT NULL.
func (e *Enum) Required() *Enum {
	e.Field.Required()
	return e
}

// Named overrides the derived database type name.
func (e *Enum) Named(typeName string) *Enum {
	e.typeName = typeName
	return e
}

// TypeName returns the database-side type name. Unless overridden with
// Named it derives from the binding as <table>_<column>_enumtype.
func (e *Enum) TypeName() string {
	if e.typeName != "" {
		return e.typeName
	}
	return inflect.Underscore(e.table) + "_" + inflect.Underscore(e.name) + "_enumtype"
}

// OID returns the resolved type OID, or zero before Register succeeds.
func (e *Enum) OID() codec.OID { return e.oid }

// ArrayOID returns the resolved array type OID, or zero before Register
// succeeds.
func (e *Enum) ArrayOID() codec.OID { return e.arrayOID }

// Register resolves the enum's database type and installs its codecs in
// the registry. Registration is idempotent; a type missing from the
// catalog surfaces as codec.ErrTypeNotFound and leaves the field usable
// as plain text.
func (e *Enum) Register(ctx context.Context, r *codec.Registry, resolver codec.TypeResolver) error {
	if e.oid != 0 {
		return nil
	}
	oid, arrayOID, err := r.RegisterEnum(ctx, resolver, e.TypeName())
	if err != nil {
		return err
	}
	e.oid, e.arrayOID = oid, arrayOID
	return nil
}

// Copy returns a new enum with the same allowed set, unbound and empty.
// Resolved OIDs carry over only under an explicit type name; a derived
// name depends on the binding, which the copy no longer has.
func (e *Enum) Copy() *Enum {
	c := OneOf(e.values...)
	c.typeName = e.typeName
	if e.typeName != "" {
		c.oid, c.arrayOID = e.oid, e.arrayOID
	}
	c.Field.required = e.Field.required
	c.Field.def = e.Field.def
	return c
}

// In returns a membership predicate over a subset of the allowed values.
func (e *Enum) In(vs ...string) *sql.Expr {
	args := make([]any, len(vs))
	for i, v := range vs {
		args[i] = v
	}
	return sql.In(e, args...)
}
