package cargo

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common operations.
var (
	// ErrEmptyField is returned when an operation requires a field value
	// but the field was never set.
	ErrEmptyField = errors.New("cargo: field value is empty")

	// ErrUnboundField is returned when an operation requires a field bound
	// to a table and column, but the field has no name.
	ErrUnboundField = errors.New("cargo: field is not bound to a column")
)

// Code is a machine-readable validation error code. Validators attach a Code
// to every failure so that multi-field checks can report structured results.
type Code string

// Validation error codes.
const (
	CodeType      Code = "type"       // value has the wrong type for the field
	CodeValue     Code = "value"      // value is outside the allowed domain
	CodeNull      Code = "null"       // NULL assigned to a NOT NULL field
	CodeMinLength Code = "min_length" // value is shorter than the minimum
	CodeMaxLength Code = "max_length" // value is longer than the maximum
	CodeMinValue  Code = "min_value"  // value is below the minimum
	CodeMaxValue  Code = "max_value"  // value exceeds the maximum
	CodeDepth     Code = "depth"      // array nesting exceeds the dimension bound
)

// ValidationError represents a failed type or domain check on a field value.
// Strict field kinds return it directly from Set; lenient kinds surface it
// through the field's validator after an explicit Validate call.
type ValidationError struct {
	Name string // field or column name, may be empty for unbound fields
	Code Code   // machine-readable failure code
	Err  error  // underlying validation error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("cargo: validation failed for field %q: %s", e.Name, e.Err)
	}
	return fmt.Sprintf("cargo: validation failed: %s", e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError returns a new ValidationError for the given field.
func NewValidationError(name string, code Code, err error) *ValidationError {
	return &ValidationError{Name: name, Code: code, Err: err}
}

// Validationf returns a new ValidationError with a formatted message.
func Validationf(name string, code Code, format string, args ...any) *ValidationError {
	return &ValidationError{Name: name, Code: code, Err: fmt.Errorf(format, args...)}
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}

// BuildError represents an expression tree that cannot be compiled into
// valid SQL. A malformed query is never silently executed; builders collect
// the error and every terminal call reports it.
type BuildError struct {
	msg string
}

// Error returns the error string.
func (e *BuildError) Error() string {
	return fmt.Sprintf("cargo: build failed: %s", e.msg)
}

// NewBuildError returns a new BuildError with the given message.
func NewBuildError(msg string) *BuildError {
	return &BuildError{msg: msg}
}

// Buildf returns a new BuildError with a formatted message.
func Buildf(format string, args ...any) *BuildError {
	return &BuildError{msg: fmt.Sprintf(format, args...)}
}

// IsBuildError returns true if the error is a BuildError.
func IsBuildError(err error) bool {
	if err == nil {
		return false
	}
	var e *BuildError
	return errors.As(err, &e)
}

// TranslationError represents a database-native type that could not be
// mapped to a known field kind during schema introspection.
type TranslationError struct {
	TypeName string // the native type name that failed to translate
}

// Error returns the error string.
func (e *TranslationError) Error() string {
	return fmt.Sprintf("cargo: no field kind for database type %q", e.TypeName)
}

// NewTranslationError returns a new TranslationError for the given type name.
func NewTranslationError(typeName string) *TranslationError {
	return &TranslationError{TypeName: typeName}
}

// IsTranslationError returns true if the error is a TranslationError.
func IsTranslationError(err error) bool {
	if err == nil {
		return false
	}
	var e *TranslationError
	return errors.As(err, &e)
}

// QueryError wraps an execution-layer failure together with the compiled
// query, so callers can report exactly what was sent to the database.
type QueryError struct {
	SQL    string // compiled parametrized SQL text
	Params []any  // ordered bind parameters
	Err    error  // underlying driver error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	if len(e.Params) > 0 {
		return fmt.Sprintf("cargo: query failed: %v: %q %v", e.Err, e.SQL, e.Params)
	}
	return fmt.Sprintf("cargo: query failed: %v: %q", e.Err, e.SQL)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError returns a new QueryError carrying the compiled query.
func NewQueryError(sql string, params []any, err error) *QueryError {
	return &QueryError{SQL: sql, Params: params, Err: err}
}

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during an operation,
// such as validating every field of a record.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "cargo: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("cargo: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
