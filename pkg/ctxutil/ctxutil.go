// Package ctxutil provides helpers for storing and retrieving values in context.
package ctxutil

import "context"

// key is an unexported type to avoid collisions.
type key int

const (
	requestIDKey key = iota
	commandKey
)

// WithRequestID returns a new context with the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID extracts the request ID from the context, if set.
func RequestID(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithCommand returns a new context tagged with the CLI command being run.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// Command extracts the CLI command name from the context, if set.
func Command(ctx context.Context) string {
	if v := ctx.Value(commandKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
