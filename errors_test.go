package cargo_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/cargo"
)

func TestValidationError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := cargo.NewValidationError("age", cargo.CodeType, errors.New("not an integer"))
		assert.Equal(t, `cargo: validation failed for field "age": not an integer`, err.Error())
	})

	t.Run("ErrorUnnamed", func(t *testing.T) {
		err := cargo.NewValidationError("", cargo.CodeValue, errors.New("out of range"))
		assert.Equal(t, "cargo: validation failed: out of range", err.Error())
	})

	t.Run("Validationf", func(t *testing.T) {
		err := cargo.Validationf("name", cargo.CodeMaxLength, "length %d exceeds %d", 300, 255)
		assert.Equal(t, cargo.CodeMaxLength, err.Code)
		assert.Equal(t, "name", err.Name)
		assert.Contains(t, err.Error(), "length 300 exceeds 255")
	})

	t.Run("Unwrap", func(t *testing.T) {
		inner := errors.New("boom")
		err := cargo.NewValidationError("x", cargo.CodeValue, inner)
		assert.True(t, errors.Is(err, inner))
	})

	t.Run("IsValidationError", func(t *testing.T) {
		err := cargo.Validationf("x", cargo.CodeNull, "value must not be null")
		assert.True(t, cargo.IsValidationError(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, cargo.IsValidationError(wrapped))

		// Non-matching error
		assert.False(t, cargo.IsValidationError(errors.New("other error")))
		assert.False(t, cargo.IsValidationError(nil))
	})
}

func TestBuildError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := cargo.NewBuildError("empty operator")
		assert.Equal(t, "cargo: build failed: empty operator", err.Error())
	})

	t.Run("Buildf", func(t *testing.T) {
		err := cargo.Buildf("case requires %d operands, got %d", 2, 1)
		assert.Equal(t, "cargo: build failed: case requires 2 operands, got 1", err.Error())
	})

	t.Run("IsBuildError", func(t *testing.T) {
		err := cargo.NewBuildError("empty IN list")
		assert.True(t, cargo.IsBuildError(err))

		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, cargo.IsBuildError(wrapped))

		assert.False(t, cargo.IsBuildError(errors.New("other error")))
		assert.False(t, cargo.IsBuildError(nil))
	})
}

func TestTranslationError(t *testing.T) {
	err := cargo.NewTranslationError("hstore")
	assert.Equal(t, `cargo: no field kind for database type "hstore"`, err.Error())
	assert.Equal(t, "hstore", err.TypeName)
	assert.True(t, cargo.IsTranslationError(err))
	assert.True(t, cargo.IsTranslationError(fmt.Errorf("scan: %w", err)))
	assert.False(t, cargo.IsTranslationError(errors.New("other error")))
	assert.False(t, cargo.IsTranslationError(nil))
}

func TestQueryError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		inner := errors.New("connection reset")
		err := cargo.NewQueryError("SELECT * FROM users WHERE id = $1", []any{7}, inner)
		assert.Equal(t, `cargo: query failed: connection reset: "SELECT * FROM users WHERE id = $1" [7]`, err.Error())
	})

	t.Run("ErrorNoParams", func(t *testing.T) {
		err := cargo.NewQueryError("SELECT 1", nil, errors.New("timeout"))
		assert.Equal(t, `cargo: query failed: timeout: "SELECT 1"`, err.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		inner := errors.New("deadlock detected")
		err := cargo.NewQueryError("UPDATE users SET name = $1", []any{"a"}, inner)
		require.True(t, errors.Is(err, inner))
		assert.True(t, cargo.IsQueryError(err))
		assert.False(t, cargo.IsQueryError(inner))
		assert.False(t, cargo.IsQueryError(nil))
	})
}

func TestAggregateError(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, cargo.NewAggregateError())
		assert.NoError(t, cargo.NewAggregateError(nil, nil))
	})

	t.Run("Single", func(t *testing.T) {
		// A single error is returned as-is, not wrapped.
		inner := errors.New("only one")
		err := cargo.NewAggregateError(nil, inner, nil)
		assert.Same(t, inner, err)
	})

	t.Run("Multiple", func(t *testing.T) {
		err := cargo.NewAggregateError(errors.New("first"), errors.New("second"))
		require.Error(t, err)
		var agg *cargo.AggregateError
		require.ErrorAs(t, err, &agg)
		assert.Len(t, agg.Errors, 2)
		assert.Contains(t, err.Error(), "cargo: multiple errors:")
		assert.Contains(t, err.Error(), "[1] first")
		assert.Contains(t, err.Error(), "[2] second")
	})
}
