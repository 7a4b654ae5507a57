package middleware

import (
	"context"

	"sonervous/app/models"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const userKey contextKey = "user"

// WithUser returns a copy of ctx carrying the authenticated principal.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated principal, or nil when the
// request is anonymous.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}
