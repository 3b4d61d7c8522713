package contextkeys

import (
	"context"
	"property-viewer/internal/core/port"

	"github.com/google/uuid"
)

type traceIDKeyType struct{}

var traceIDKey = traceIDKeyType{}

// ContextWithTraceID stores traceID in ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext returns the trace id from ctx, or "" if none is set.
func TraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// NewOperationContext starts a traced operation: it assigns a fresh trace id
// and stores a logger enriched with it and the operation name.
func NewOperationContext(ctx context.Context, logger port.LoggerPort, operation string) (context.Context, port.LoggerPort) {
	traceID := uuid.New().String()
	opLogger := logger.WithFields(port.Fields{
		"trace_id":  traceID,
		"operation": operation,
	})
	ctx = ContextWithTraceID(ctx, traceID)
	ctx = ContextWithLogger(ctx, opLogger)
	return ctx, opLogger
}
