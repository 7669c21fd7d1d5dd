package errors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectError_IsByCode(t *testing.T) {
	err := WrapDialectError(ErrMalformedLiteral, fmt.Errorf("boom"))

	assert.True(t, errors.Is(err, ErrMalformedLiteral))
	assert.False(t, errors.Is(err, ErrInvalidPattern))
	assert.Equal(t, "Malformed literal: boom", err.Error())
}

func TestNewMalformedLiteralError(t *testing.T) {
	err := NewMalformedLiteralError("DATE", "not-a-date")

	require.Error(t, err)
	assert.True(t, IsMalformedLiteral(err))
	assert.Contains(t, err.Error(), "not-a-date")
	assert.Contains(t, err.Error(), "DATE")
}

func TestNewMalformedLiteralError_ProductionHidesValue(t *testing.T) {
	prev := ProductionMode
	ProductionMode = true
	defer func() { ProductionMode = prev }()

	err := NewMalformedLiteralError("DATE", "secret-value")
	assert.True(t, IsMalformedLiteral(err))
	assert.NotContains(t, err.Error(), "secret-value")
}

func TestMapDriverError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want *DialectError
	}{
		{"no rows", sql.ErrNoRows, ErrNoMetadata},
		{"deadline", context.DeadlineExceeded, ErrTimeout},
		{"refused", fmt.Errorf("dial tcp: connection refused"), ErrConnectionFailed},
		{"other", fmt.Errorf("weird"), ErrConnectionFailed},
		{"already classified", NewUnsupportedOperationError("probe"), ErrUnsupportedOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapDriverError(tt.err)
			assert.True(t, errors.Is(got, tt.want), "got %v", got)
		})
	}

	assert.NoError(t, MapDriverError(nil))
}

func TestSanitizeError(t *testing.T) {
	err := fmt.Errorf("dial postgres://user:pw@host: refused")
	assert.Equal(t, err, SanitizeError(err))

	prev := ProductionMode
	ProductionMode = true
	defer func() { ProductionMode = prev }()

	assert.Equal(t, "database operation failed", SanitizeError(err).Error())
	assert.Nil(t, SanitizeError(nil))
}
