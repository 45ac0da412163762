package errors

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewQueryExecutionError("search query failed", sql.ErrConnDone)
	assert.Equal(t, "QUERY_EXECUTION: search query failed: sql: connection is already closed", err.Error())

	plain := NewValidationError("at least one search filter is required")
	assert.Equal(t, "VALIDATION: at least one search filter is required", plain.Error())
}

func TestAppError_UnwrapsCause(t *testing.T) {
	err := NewQueryExecutionError("search query failed", sql.ErrConnDone)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestIsType_FollowsWrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("event not found"))

	assert.True(t, IsType(wrapped, ErrorTypeNotFound))
	assert.False(t, IsType(wrapped, ErrorTypeValidation))
	assert.False(t, IsType(sql.ErrNoRows, ErrorTypeNotFound))

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "event not found", appErr.Message)
}
