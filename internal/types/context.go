package types

import "context"

type ContextKey string

const (
	CtxUserID    ContextKey = "ctx_user_id"
	CtxRequestID ContextKey = "ctx_request_id"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderRequestID = "X-Request-ID"
)

// DefaultUserID is the user identity assumed in tests and local
// single-user deployments.
const DefaultUserID = "00000000-0000-0000-0000-000000000000"

// GetUserID returns the authenticated user ID from the context
// or an empty string when the request is unauthenticated.
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(CtxUserID).(string); ok {
		return id
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(CtxRequestID).(string); ok {
		return id
	}
	return ""
}
