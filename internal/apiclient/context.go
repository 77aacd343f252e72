package apiclient

import "context"

type ctxKey int

const (
	currentPathKey ctxKey = iota
	correlationIDKey
)

// WithCurrentPath records the path the user is on; it becomes the return
// target when a 401 sends them to the login route.
func WithCurrentPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, currentPathKey, path)
}

// CurrentPath returns the recorded path, or "/".
func CurrentPath(ctx context.Context) string {
	if p, ok := ctx.Value(currentPathKey).(string); ok && p != "" {
		return p
	}
	return "/"
}

// WithCorrelationID makes outgoing requests carry id as X-Correlation-Id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationID returns the id set by WithCorrelationID.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}
