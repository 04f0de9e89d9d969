package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	clientIDKey  contextKey = "clientID"
	requestIDKey contextKey = "requestID"
)

// ClientIDFrom retrieves the authenticated client id from the request context.
func ClientIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(clientIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithClient returns a new context carrying the client id.
func ContextWithClient(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}

// RequestIDFrom retrieves the request id set by RequestIDMiddleware.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
