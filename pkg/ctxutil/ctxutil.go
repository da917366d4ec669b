// Package ctxutil carries request-scoped identifiers through context.Context.
package ctxutil

import "context"

type ctxKey string

const requestIDKey ctxKey = "request_id"

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// LogAttrs returns slog-ready key/value pairs for the identifiers found in ctx.
func LogAttrs(ctx context.Context) []any {
	if id := RequestIDFromCtx(ctx); id != "" {
		return []any{"request_id", id}
	}
	return nil
}
