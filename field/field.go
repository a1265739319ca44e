package field

import (
	"fmt"

	"github.com/syssam/cargo"
	"github.com/syssam/cargo/codec"
	"github.com/syssam/cargo/dialect/sql"
)

// Normalizer converts an incoming value into the field's canonical form.
// Strict kinds reject structurally invalid input with a ValidationError;
// lenient kinds store the canonical form and leave policy checks (length,
// range) to the field's validator.
type Normalizer func(f *Field, v any) (any, error)

// Field is a typed, nullable column value. It is both a mutable value
// container and an AST leaf: comparison methods return expression nodes
// that render the field as a table-qualified column.
//
// A field distinguishes three value states: empty (never set), NULL
// (explicitly set to nil), and a value of its kind's canonical Go type.
type Field struct {
	name  string
	table string
	kind  Kind

	value any
	set   bool

	required bool
	primary bool
	unique  bool
	index   bool
	def     any

	// length bounds the value size for character, bit and array kinds.
	// Zero means unbounded.
	length int

	normalize Normalizer
	validator Validator

	// verr records a constraint failure found by Validate itself, as
	// opposed to one reported by the attached validator.
	verr error
}

// New returns a field of the given kind with its default normalizer and
// validator. Most callers use the kind constructors (String, Int, ...)
// instead.
func New(kind Kind, name string) *Field {
	f := &Field{name: name, kind: kind}
	f.normalize = kind.normalizer()
	return f
}

// Name returns the bound column name, or the empty string.
func (f *Field) Name() string { return f.name }

// Table returns the owning table name, or the empty string.
func (f *Field) Table() string { return f.table }

// Kind returns the field kind.
func (f *Field) Kind() Kind { return f.kind }

// OID returns the logical type identifier used to select a codec.
func (f *Field) OID() codec.OID { return f.kind.OID() }

// Bind sets the owning table and column name.
func (f *Field) Bind(table, name string) *Field {
	f.table = table
	f.name = name
	return f
}

// Required marks the field as NOT NULL.
func (f *Field) Required() *Field {
	f.required = true
	return f
}

// Primary marks the field as a primary key. Schema metadata only.
func (f *Field) Primary() *Field {
	f.primary = true
	return f
}

// Unique marks the field as unique. Schema metadata only.
func (f *Field) Unique() *Field {
	f.unique = true
	return f
}

// Index marks the field as indexed. Schema metadata only.
func (f *Field) Index() *Field {
	f.index = true
	return f
}

// Default sets the default value. A sql.Raw default renders as a SQL
// expression rather than a literal.
func (f *Field) Default(v any) *Field {
	f.def = v
	return f
}

// MaxLen bounds the value size for character and bit kinds. For string
// kinds it also adjusts the attached length validator.
func (f *Field) MaxLen(n int) *Field {
	f.length = n
	if v, ok := f.validator.(*LengthValidator); ok {
		v.Max = n
	}
	return f
}

// MinLen sets a lower bound on string length, checked at Validate time.
func (f *Field) MinLen(n int) *Field {
	if v, ok := f.validator.(*LengthValidator); ok {
		v.Min = n
	} else {
		f.validator = &LengthValidator{Min: n, Max: f.length}
	}
	return f
}

// Validator replaces the field's validator.
func (f *Field) Validator(v Validator) *Field {
	f.validator = v
	return f
}

// IsRequired reports the NOT NULL flag.
func (f *Field) IsRequired() bool { return f.required }

// IsPrimary reports the primary key flag.
func (f *Field) IsPrimary() bool { return f.primary }

// IsUnique reports the unique flag.
func (f *Field) IsUnique() bool { return f.unique }

// IsIndexed reports the index flag.
func (f *Field) IsIndexed() bool { return f.index }

// DefaultValue returns the configured default, or nil.
func (f *Field) DefaultValue() any { return f.def }

// MaxLength returns the configured length bound, zero when unbounded.
func (f *Field) MaxLength() int { return f.length }

// Set assigns a value to the field. A nil value always means SQL NULL and
// bypasses normalization; anything else runs through the kind's
// normalizer. Strict kinds fail here with a ValidationError; lenient kinds
// defer policy checks to Validate.
func (f *Field) Set(v any) error {
	if v == nil {
		f.value = nil
		f.set = true
		return nil
	}
	nv, err := f.normalize(f, v)
	if err != nil {
		return err
	}
	f.value = nv
	f.set = true
	return nil
}

// MustSet is like Set but panics on a validation error. Reserve it for
// literals known valid at compile time.
func (f *Field) MustSet(v any) *Field {
	if err := f.Set(v); err != nil {
		panic(err)
	}
	return f
}

// Get returns the current value. An empty or NULL field returns nil;
// distinguish the two with IsEmpty and IsNull.
func (f *Field) Get() any {
	if !f.set {
		return nil
	}
	return f.value
}

// IsEmpty reports whether the field was never set. Empty is distinct from
// SQL NULL.
func (f *Field) IsEmpty() bool { return !f.set }

// IsNull reports whether the field holds SQL NULL.
func (f *Field) IsNull() bool { return f.set && f.value == nil }

// Clear resets the field to the empty state.
func (f *Field) Clear() {
	f.value = nil
	f.set = false
}

// Validate runs the field's checks. The NOT NULL constraint is checked
// first, then the attached validator. Failure detail stays on the
// validator for retrieval after the call.
func (f *Field) Validate() bool {
	f.verr = nil
	if f.required && (f.IsNull() || f.IsEmpty()) {
		f.verr = cargo.Validationf(f.name, cargo.CodeNull, "value must not be null")
		return false
	}
	if f.validator == nil {
		return true
	}
	return f.validator.Validate(f)
}

// ValidationErr returns the last validation failure, or nil.
func (f *Field) ValidationErr() error {
	if f.verr != nil {
		return f.verr
	}
	if f.validator == nil {
		return nil
	}
	return f.validator.Err()
}

// Copy returns a new field with identical configuration but an unbound
// table and column name and an empty value.
func (f *Field) Copy() *Field {
	c := *f
	c.name = ""
	c.table = ""
	c.value = nil
	c.set = false
	c.verr = nil
	if f.validator != nil {
		c.validator = f.validator.Copy()
	}
	return &c
}

// CopyValue is like Copy but preserves the current value.
func (f *Field) CopyValue() *Field {
	c := f.Copy()
	c.value = f.value
	c.set = f.set
	return c
}

// normalizeValue runs v through the field's normalizer without mutating
// the field. The array field uses it to normalize leaf elements.
func (f *Field) normalizeValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return f.normalize(f, v)
}

// TypeName returns the database-side type name for the field.
func (f *Field) TypeName() string {
	name, err := codec.TypeName(f.kind.OID())
	if err != nil {
		return f.kind.String()
	}
	if f.length > 0 {
		switch f.kind {
		case KindString, KindBit, KindVarbit:
			return fmt.Sprintf("%s(%d)", name, f.length)
		}
	}
	return name
}

// String implements fmt.Stringer for debugging.
func (f *Field) String() string {
	switch {
	case f.IsEmpty():
		return fmt.Sprintf("%s<%s>", f.kind, f.qualifiedName())
	case f.IsNull():
		return fmt.Sprintf("%s<%s>=NULL", f.kind, f.qualifiedName())
	default:
		return fmt.Sprintf("%s<%s>=%v", f.kind, f.qualifiedName(), f.value)
	}
}

func (f *Field) qualifiedName() string {
	if f.table == "" {
		return f.name
	}
	return f.table + "." + f.name
}

// SQLColumn implements sql.Columner: the field renders as its
// table-qualified column reference in expression trees.
func (f *Field) SQLColumn() sql.Column {
	return sql.TableColumn(f.table, f.name)
}

var _ sql.Columner = (*Field)(nil)
