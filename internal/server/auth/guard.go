package auth

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophid/internal/common"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	claimsKey
)

// AccessTokenValidator is the part of TokenValidator the guard needs.
type AccessTokenValidator interface {
	ValidateAccessToken(raw string) (*Claims, error)
}

// Guard resolves the caller of a protected operation from its access token.
// Transports call Authenticate and hand the returned context to the handler.
type Guard struct {
	validator AccessTokenValidator
}

func NewGuard(v AccessTokenValidator) *Guard {
	return &Guard{validator: v}
}

// Authenticate validates rawToken and returns ctx carrying the caller's
// user id and claims. Every error wraps common.ErrUnauthenticated.
func (g *Guard) Authenticate(ctx context.Context, rawToken string) (context.Context, error) {
	if rawToken == "" {
		return ctx, common.ErrMissingToken
	}

	claims, err := g.validator.ValidateAccessToken(rawToken)
	if err != nil {
		return ctx, err
	}

	ctx = context.WithValue(ctx, userIDKey, claims.UserID)
	ctx = context.WithValue(ctx, claimsKey, claims)
	return ctx, nil
}

// ContextWithUserID attaches a user id without claims.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}

// BearerToken strips an optional, case-insensitive "Bearer " prefix.
func BearerToken(headerValue string) string {
	v := strings.TrimSpace(headerValue)
	const prefix = "bearer "
	if len(v) >= len(prefix) && strings.EqualFold(v[:len(prefix)], prefix) {
		return strings.TrimSpace(v[len(prefix):])
	}
	return v
}
