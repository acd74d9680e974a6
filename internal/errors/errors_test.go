package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := NewAppError(ErrTypeStorage, "failed to open database", errors.New("disk full"))
	assert.Equal(t, "[STORAGE] failed to open database: disk full", err.Error())

	bare := NewAppError(ErrTypeEmptyInput, "input contains no data rows", nil)
	assert.Equal(t, "[EMPTY_INPUT] input contains no data rows", bare.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewStorageError("commit failed", cause)

	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("batch failed: %w", err)
	var appErr *AppError
	require.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestIsType(t *testing.T) {
	err := NewNoInputFilesError()

	assert.True(t, IsType(err, ErrTypeNoInputFiles))
	assert.False(t, IsType(err, ErrTypeStorage))
	assert.True(t, IsType(fmt.Errorf("run failed: %w", err), ErrTypeNoInputFiles))
	assert.False(t, IsType(errors.New("plain"), ErrTypeNoInputFiles))
	assert.False(t, IsType(nil, ErrTypeNoInputFiles))
}

func TestConstructorTypes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		typ  ErrorType
	}{
		{"unsupported format", NewUnsupportedFormatError("data.txt"), ErrTypeUnsupportedFormat},
		{"empty input", NewEmptyInputError(), ErrTypeEmptyInput},
		{"no input files", NewNoInputFilesError(), ErrTypeNoInputFiles},
		{"parsing", NewParsingError("bad csv", nil), ErrTypeParsing},
		{"storage", NewStorageError("bad db", nil), ErrTypeStorage},
		{"config", NewConfigError("bad config", nil), ErrTypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsType(tt.err, tt.typ))
		})
	}
}

func TestAppError_WithContext(t *testing.T) {
	err := NewParsingError("bad row", nil).
		WithContext("file", "march.csv").
		WithContext("row", 7)

	assert.Equal(t, "march.csv", err.Context["file"])
	assert.Equal(t, 7, err.Context["row"])
}

func TestMissingColumnsError(t *testing.T) {
	err := NewMissingColumnsError([]string{"Department", "Pay Date"})

	assert.Equal(t, "[MISSING_COLUMNS] missing required columns: Department, Pay Date", err.Error())
	assert.True(t, IsMissingColumns(err))
	assert.True(t, IsMissingColumns(fmt.Errorf("clean failed: %w", err)))
	assert.False(t, IsMissingColumns(NewEmptyInputError()))

	var mc *MissingColumnsError
	require.ErrorAs(t, error(err), &mc)
	assert.Equal(t, []string{"Department", "Pay Date"}, mc.Columns)
}
