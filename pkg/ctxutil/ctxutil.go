package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	userIDKey    ctxKey = "user_id"
	tokenKey     ctxKey = "session_token"
	cartIDKey    ctxKey = "cart_id"
	requestIDKey ctxKey = "request_id"
)

// WithUserID stores the backend user ID in the context.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx extracts the backend user ID from the context.
// Returns "" and false if the value is missing, empty, or wrong type.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithToken stores the raw session bearer token in the context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromCtx extracts the raw session bearer token from the context.
// Returns an empty string if absent.
func TokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// WithCartID stores the cart ID in the context.
func WithCartID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, cartIDKey, id)
}

// CartIDFromCtx extracts the cart ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func CartIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(cartIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

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
