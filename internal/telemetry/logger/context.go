package logger

import "context"

type contextKey string

const sessionIDKey contextKey = "triemap.session_id"

// SessionIDKey is the attribute key for interactive session IDs.
const SessionIDKey = "session_id"

// WithSessionID tags the context with an interactive session ID.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext extracts the session ID from context.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// ForContext binds l to ctx and tags it with the context's session ID,
// if any.
func ForContext(ctx context.Context, l Logger) Logger {
	if id := SessionIDFromContext(ctx); id != "" {
		l = l.With(SessionIDKey, id)
	}
	return l.WithContext(ctx)
}
