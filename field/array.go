package field

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/syssam/cargo"
	"github.com/syssam/cargo/codec"
)

// Array is a field holding a (possibly nested) list of element values.
// The element field supplies normalization and the database type; the
// array itself tracks dimensionality and list-level constraints.
//
// Whole-value assignment through Set casts from the outermost dimension
// inward. Plain elements normalize at any dimension, so ragged arrays
// are accepted; only a slice nested deeper than the configured
// dimensions is rejected. List mutations (Append, Insert, Extend)
// operate one level below the outermost dimension: a slice argument
// becomes a nested array, anything else becomes an element.
type Array struct {
	Field
	elem       *Field
	dimensions int
}

// NewArray returns a one-dimensional array field over elem. The element
// field's name and table follow the array's binding.
func NewArray(elem *Field) *Array {
	a := &Array{elem: elem, dimensions: 1}
	a.Field = Field{name: elem.name, table: elem.table, kind: KindArray}
	a.Field.normalize = func(_ *Field, v any) (any, error) {
		return a.castArray(v)
	}
	a.Field.validator = &ArrayValidator{Elem: elem}
	return a
}

// Dimensions sets the number of array dimensions. Zero disables the
// depth check, accepting nesting of any depth.
func (a *Array) Dimensions(n int) *Array {
	if n >= 0 {
		a.dimensions = n
	}
	return a
}

// Elem returns the element field.
func (a *Array) Elem() *Field { return a.elem }

// Bind sets the owning table and column name on the array and its
// element field.
func (a *Array) Bind(table, name string) *Array {
	a.Field.Bind(table, name)
	a.elem.Bind(table, name)
	return a
}

// Required marks the array as NOT NULL.
func (a *Array) Required() *Array {
	a.Field.Required()
	return a
}

// Items sets lower and upper bounds on the number of items in the
// outermost dimension. A zero bound is not enforced.
func (a *Array) Items(min, max int) *Array {
	if v, ok := a.Field.validator.(*ArrayValidator); ok {
		v.MinItems, v.MaxItems = min, max
	} else {
		a.Field.validator = &ArrayValidator{Elem: a.elem, MinItems: min, MaxItems: max}
	}
	return a
}

// castArray normalizes a whole-array assignment, which must be a slice
// occupying the outermost dimension.
func (a *Array) castArray(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if !isList(v) {
		return nil, cargo.Validationf(a.name, cargo.CodeDepth,
			"expected a slice, got %T", v)
	}
	return a.cast(v, 1)
}

// cast normalizes the slice v occupying the given dimension. Non-slice
// items normalize through the element field at any dimension, so ragged
// arrays are accepted; a slice nested deeper than the configured
// dimensions is rejected. Zero dimensions disables the depth check.
// NULL elements are allowed at any depth.
func (a *Array) cast(v any, depth int) (any, error) {
	if a.dimensions > 0 && depth > a.dimensions {
		return nil, cargo.Validationf(a.name, cargo.CodeDepth,
			"invalid dimensions (%d): max depth is set to %d", depth, a.dimensions)
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		x := rv.Index(i).Interface()
		var (
			nv  any
			err error
		)
		switch {
		case x == nil:
		case isList(x):
			nv, err = a.cast(x, depth+1)
		default:
			nv, err = a.elem.normalizeValue(x)
		}
		if err != nil {
			return nil, err
		}
		out[i] = nv
	}
	return out, nil
}

// castItem normalizes a single mutation argument, which lives one level
// below the outermost dimension. Scalars become elements, slices become
// nested arrays.
func (a *Array) castItem(v any) (any, error) {
	switch {
	case v == nil:
		return nil, nil
	case isList(v):
		return a.cast(v, 2)
	default:
		return a.elem.normalizeValue(v)
	}
}

// isList reports whether v renders as an array dimension. Byte slices
// are element values, not dimensions.
func isList(v any) bool {
	if _, ok := v.([]byte); ok {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// items returns the current list, or nil when the array is empty or NULL.
func (a *Array) items() []any {
	if vs, ok := a.value.([]any); ok {
		return vs
	}
	return nil
}

// Len returns the number of items in the outermost dimension.
func (a *Array) Len() int { return len(a.items()) }

// At returns the item at index i, or nil when out of range.
func (a *Array) At(i int) any {
	vs := a.items()
	if i < 0 || i >= len(vs) {
		return nil
	}
	return vs[i]
}

// SetAt normalizes v and replaces the item at index i. An out-of-range
// index is an error.
func (a *Array) SetAt(i int, v any) error {
	vs := a.items()
	if i < 0 || i >= len(vs) {
		return cargo.Validationf(a.name, cargo.CodeValue, "index %d out of range [0:%d]", i, len(vs))
	}
	nv, err := a.castItem(v)
	if err != nil {
		return err
	}
	vs[i] = nv
	return nil
}

// Delete removes the item at index i. An out-of-range index is an error.
func (a *Array) Delete(i int) error {
	vs := a.items()
	if i < 0 || i >= len(vs) {
		return cargo.Validationf(a.name, cargo.CodeValue, "index %d out of range [0:%d]", i, len(vs))
	}
	a.value = append(vs[:i], vs[i+1:]...)
	return nil
}

// Append normalizes v and appends it. Appending to an empty or NULL
// array starts a new list.
func (a *Array) Append(v any) error {
	nv, err := a.castItem(v)
	if err != nil {
		return err
	}
	a.value = append(a.items(), nv)
	a.set = true
	return nil
}

// Insert normalizes v and inserts it at index i. Out-of-range indexes
// clamp to the nearest end.
func (a *Array) Insert(i int, v any) error {
	nv, err := a.castItem(v)
	if err != nil {
		return err
	}
	vs := a.items()
	if i < 0 {
		i = 0
	}
	if i > len(vs) {
		i = len(vs)
	}
	vs = append(vs, nil)
	copy(vs[i+1:], vs[i:])
	vs[i] = nv
	a.value = vs
	a.set = true
	return nil
}

// Extend appends each value in order. It stops at the first
// normalization failure, leaving earlier values appended.
func (a *Array) Extend(vs ...any) error {
	for _, v := range vs {
		if err := a.Append(v); err != nil {
			return err
		}
	}
	return nil
}

// Pop removes and returns the last item. Popping an empty array is an
// error.
func (a *Array) Pop() (any, error) {
	vs := a.items()
	if len(vs) == 0 {
		return nil, cargo.Validationf(a.name, cargo.CodeValue, "pop from an empty array")
	}
	v := vs[len(vs)-1]
	a.value = vs[:len(vs)-1]
	return v, nil
}

// Remove deletes the first item equal to v. Equality is checked against
// the normalized form of v.
func (a *Array) Remove(v any) error {
	i := a.IndexOf(v)
	if i < 0 {
		return cargo.Validationf(a.name, cargo.CodeValue, "%v not in array", v)
	}
	vs := a.items()
	a.value = append(vs[:i], vs[i+1:]...)
	return nil
}

// IndexOf returns the index of the first item equal to v, or -1.
// Equality is checked against the normalized form of v.
func (a *Array) IndexOf(v any) int {
	nv, err := a.castItem(v)
	if err != nil {
		return -1
	}
	for i, item := range a.items() {
		if reflect.DeepEqual(item, nv) {
			return i
		}
	}
	return -1
}

// Reverse reverses the items in place.
func (a *Array) Reverse() {
	vs := a.items()
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}

// Sort orders the items ascending. NULL items sort first; items of mixed
// types order by their string form.
func (a *Array) Sort() {
	vs := a.items()
	sort.SliceStable(vs, func(i, j int) bool { return lessValue(vs[i], vs[j]) })
}

// Copy returns a new array with the same element configuration and
// dimensionality, unbound and empty.
func (a *Array) Copy() *Array {
	c := NewArray(a.elem.Copy()).Dimensions(a.dimensions)
	c.Field.required = a.Field.required
	c.Field.def = a.Field.def
	if v, ok := a.Field.validator.(*ArrayValidator); ok {
		c.Field.validator = &ArrayValidator{Elem: c.elem, MinItems: v.MinItems, MaxItems: v.MaxItems}
	}
	return c
}

// ToFields returns the items with each leaf wrapped in a copy of the
// element field carrying that leaf's value. Nested dimensions come back
// as nested []any.
func (a *Array) ToFields() []any {
	return a.toFields(a.items(), 1)
}

func (a *Array) toFields(vs []any, depth int) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		if child, ok := v.([]any); ok {
			out[i] = a.toFields(child, depth+1)
			continue
		}
		f := a.elem.Copy().Bind(a.table, a.name)
		f.value = v
		f.set = true
		out[i] = f
	}
	return out
}

// TypeName returns the database-side type name, the element type with
// one [] suffix per dimension.
func (a *Array) TypeName() string {
	name, err := codec.TypeName(a.elem.kind.OID())
	if err != nil {
		name = a.elem.kind.String()
	}
	for i := 0; i < a.dimensions; i++ {
		name += "[]"
	}
	return name
}

// OID returns the element type's array OID, or zero when the catalog has
// no array type for it.
func (a *Array) OID() codec.OID {
	name, err := codec.TypeName(a.elem.kind.OID())
	if err != nil {
		return 0
	}
	oid, err := codec.TypeOID(name + "[]")
	if err != nil {
		return 0
	}
	return oid
}

func lessValue(x, y any) bool {
	if x == nil {
		return y != nil
	}
	if y == nil {
		return false
	}
	switch xv := x.(type) {
	case int64:
		if yv, ok := y.(int64); ok {
			return xv < yv
		}
	case float64:
		if yv, ok := y.(float64); ok {
			return xv < yv
		}
	case string:
		if yv, ok := y.(string); ok {
			return xv < yv
		}
	}
	return fmt.Sprint(x) < fmt.Sprint(y)
}

// ArrayValidator bounds the item count of the outermost dimension and
// runs the element field's validator over every leaf.
type ArrayValidator struct {
	baseValidator
	Elem     *Field
	MinItems int
	MaxItems int
}

func (v *ArrayValidator) Validate(f *Field) bool {
	if f.IsEmpty() || f.IsNull() {
		return v.ok()
	}
	vs, vok := f.Get().([]any)
	if !vok {
		return v.fail(f.name, cargo.CodeType, "expected a slice value, got %T", f.Get())
	}
	if v.MinItems > 0 && len(vs) < v.MinItems {
		return v.fail(f.name, cargo.CodeMinLength, "array must have at least %d items, got %d", v.MinItems, len(vs))
	}
	if v.MaxItems > 0 && len(vs) > v.MaxItems {
		return v.fail(f.name, cargo.CodeMaxLength, "array must have at most %d items, got %d", v.MaxItems, len(vs))
	}
	if v.Elem == nil || v.Elem.validator == nil {
		return v.ok()
	}
	return v.validateLeaves(f, vs)
}

func (v *ArrayValidator) validateLeaves(f *Field, vs []any) bool {
	for _, item := range vs {
		if child, ok := item.([]any); ok {
			if !v.validateLeaves(f, child) {
				return false
			}
			continue
		}
		scratch := v.Elem.Copy().Bind(f.table, f.name)
		scratch.value = item
		scratch.set = true
		if !scratch.Validate() {
			v.err = scratch.ValidationErr()
			return false
		}
	}
	return v.ok()
}

func (v *ArrayValidator) Copy() Validator {
	return &ArrayValidator{Elem: v.Elem, MinItems: v.MinItems, MaxItems: v.MaxItems}
}
