package contextkeys

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := ContextWithTraceID(context.Background(), "abc")
	assert.Equal(t, "abc", TraceIDFromContext(ctx))
	assert.Equal(t, "", TraceIDFromContext(context.Background()))
}

func TestLoggerFromContext_DefaultsToNoop(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	require.NotNil(t, logger)

	// must not panic
	logger.WithFields(nil).Error("ignored", nil, nil)
}

func TestNewOperationContext(t *testing.T) {
	ctx, logger := NewOperationContext(context.Background(), NoopLogger(), "load")

	require.NotNil(t, logger)
	_, err := uuid.Parse(TraceIDFromContext(ctx))
	assert.NoError(t, err)
	assert.Equal(t, logger, LoggerFromContext(ctx))
}
