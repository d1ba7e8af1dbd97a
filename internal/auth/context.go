package auth

import (
	"context"

	"github.com/garyjia/finance-console/internal/domain/entity"
)

type contextKey string

const (
	tokenKey    = contextKey("bearer_token")
	identityKey = contextKey("identity")
)

// WithToken stores the caller's bearer token for forwarding to the platform
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the bearer token stored by WithToken
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

// WithIdentity stores the decoded current user
func WithIdentity(ctx context.Context, identity entity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the current user, or the zero Identity
func IdentityFromContext(ctx context.Context) entity.Identity {
	identity, _ := ctx.Value(identityKey).(entity.Identity)
	return identity
}
