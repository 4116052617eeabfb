// Package appctx provides request-scoped context values.
package appctx

import (
	"context"
)

// TraceContext carries request correlation identifiers.
type TraceContext struct {
	TraceID   string
	RequestID string
}

type traceKey struct{}

// WithTrace adds trace information to the context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceKey{}, trace)
}

// GetTrace returns trace information from the context, or nil.
func GetTrace(ctx context.Context) *TraceContext {
	if t, ok := ctx.Value(traceKey{}).(*TraceContext); ok {
		return t
	}
	return nil
}
