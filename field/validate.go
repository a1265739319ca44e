package field

import (
	"github.com/syssam/cargo"
)

// A Validator checks a field's current value. Validate reports success;
// on failure the cause stays on the validator until the next call, where
// Err returns it as a *cargo.ValidationError.
type Validator interface {
	Validate(f *Field) bool
	Err() error
	// Copy returns an independent validator with the same configuration.
	// Field.Copy uses it so clones do not share failure state.
	Copy() Validator
}

// baseValidator carries the failure state shared by the built-in
// validators.
type baseValidator struct {
	err error
}

func (v *baseValidator) Err() error { return v.err }

func (v *baseValidator) fail(name string, code cargo.Code, format string, args ...any) bool {
	v.err = cargo.Validationf(name, code, format, args...)
	return false
}

func (v *baseValidator) ok() bool {
	v.err = nil
	return true
}

// LengthValidator bounds the length of string values. A zero bound is
// not enforced.
type LengthValidator struct {
	baseValidator
	Min int
	Max int
}

func (v *LengthValidator) Validate(f *Field) bool {
	if f.IsEmpty() || f.IsNull() {
		return v.ok()
	}
	s, sok := f.Get().(string)
	if !sok {
		return v.fail(f.name, cargo.CodeType, "expected a string value, got %T", f.Get())
	}
	if v.Min > 0 && len(s) < v.Min {
		return v.fail(f.name, cargo.CodeMinLength, "value must be at least %d characters, got %d", v.Min, len(s))
	}
	if v.Max > 0 && len(s) > v.Max {
		return v.fail(f.name, cargo.CodeMaxLength, "value must be at most %d characters, got %d", v.Max, len(s))
	}
	return v.ok()
}

func (v *LengthValidator) Copy() Validator {
	return &LengthValidator{Min: v.Min, Max: v.Max}
}

// RangeValidator bounds integer values. Nil bounds are not enforced.
type RangeValidator struct {
	baseValidator
	Min *int64
	Max *int64
}

func (v *RangeValidator) Validate(f *Field) bool {
	if f.IsEmpty() || f.IsNull() {
		return v.ok()
	}
	n, nok := f.Get().(int64)
	if !nok {
		return v.fail(f.name, cargo.CodeType, "expected an integer value, got %T", f.Get())
	}
	if v.Min != nil && n < *v.Min {
		return v.fail(f.name, cargo.CodeMinValue, "value must be at least %d, got %d", *v.Min, n)
	}
	if v.Max != nil && n > *v.Max {
		return v.fail(f.name, cargo.CodeMaxValue, "value must be at most %d, got %d", *v.Max, n)
	}
	return v.ok()
}

func (v *RangeValidator) Copy() Validator {
	return &RangeValidator{Min: v.Min, Max: v.Max}
}

// FloatRangeValidator bounds float values. Nil bounds are not enforced.
type FloatRangeValidator struct {
	baseValidator
	Min *float64
	Max *float64
}

func (v *FloatRangeValidator) Validate(f *Field) bool {
	if f.IsEmpty() || f.IsNull() {
		return v.ok()
	}
	n, nok := f.Get().(float64)
	if !nok {
		return v.fail(f.name, cargo.CodeType, "expected a float value, got %T", f.Get())
	}
	if v.Min != nil && n < *v.Min {
		return v.fail(f.name, cargo.CodeMinValue, "value must be at least %v, got %v", *v.Min, n)
	}
	if v.Max != nil && n > *v.Max {
		return v.fail(f.name, cargo.CodeMaxValue, "value must be at most %v, got %v", *v.Max, n)
	}
	return v.ok()
}

func (v *FloatRangeValidator) Copy() Validator {
	return &FloatRangeValidator{Min: v.Min, Max: v.Max}
}

// BitValidator bounds the length of a bit string. With Exact set the
// length must match exactly, otherwise Length is an upper bound.
type BitValidator struct {
	baseValidator
	Length int
	Exact  bool
}

func (v *BitValidator) Validate(f *Field) bool {
	if f.IsEmpty() || f.IsNull() {
		return v.ok()
	}
	s, sok := f.Get().(string)
	if !sok {
		return v.fail(f.name, cargo.CodeType, "expected a bit string, got %T", f.Get())
	}
	switch {
	case v.Exact && len(s) != v.Length:
		return v.fail(f.name, cargo.CodeMaxLength, "bit string must be exactly %d bits, got %d", v.Length, len(s))
	case !v.Exact && v.Length > 0 && len(s) > v.Length:
		return v.fail(f.name, cargo.CodeMaxLength, "bit string must be at most %d bits, got %d", v.Length, len(s))
	}
	return v.ok()
}

func (v *BitValidator) Copy() Validator {
	return &BitValidator{Length: v.Length, Exact: v.Exact}
}

// ValidatorFunc adapts a function to the Validator interface. The
// function returns nil on success or a describing error on failure.
type ValidatorFunc struct {
	baseValidator
	Func func(f *Field) error
}

func (v *ValidatorFunc) Validate(f *Field) bool {
	if err := v.Func(f); err != nil {
		v.err = err
		return false
	}
	return v.ok()
}

func (v *ValidatorFunc) Copy() Validator {
	return &ValidatorFunc{Func: v.Func}
}

// MultiValidator runs validators in order and stops at the first failure.
type MultiValidator struct {
	baseValidator
	Validators []Validator
}

func (v *MultiValidator) Validate(f *Field) bool {
	for _, c := range v.Validators {
		if !c.Validate(f) {
			v.err = c.Err()
			return false
		}
	}
	return v.ok()
}

func (v *MultiValidator) Copy() Validator {
	vs := make([]Validator, len(v.Validators))
	for i, c := range v.Validators {
		vs[i] = c.Copy()
	}
	return &MultiValidator{Validators: vs}
}
