package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

// NewCorrelationID returns a fresh UUID v4 for request and trace IDs
func NewCorrelationID() string {
	return uuid.NewString()
}

// EnsureTraceID returns ctx carrying a trace ID, generating one when absent.
// Command line runs use it where no request ID exists.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) == "" {
		return WithTraceID(ctx, NewCorrelationID())
	}
	return ctx
}
