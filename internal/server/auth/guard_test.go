package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophid/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_Authenticate(t *testing.T) {
	t.Parallel()

	iss, val := newPair("secret")
	g := NewGuard(val)

	access, err := iss.IssueAccessToken("u1", "u1@example.com")
	require.NoError(t, err)
	identity, err := iss.IssueIdentityToken("u1", "u1@example.com", "A", "B")
	require.NoError(t, err)

	t.Run("valid access token", func(t *testing.T) {
		ctx, err := g.Authenticate(context.Background(), access)
		require.NoError(t, err)

		id, ok := UserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "u1", id)

		claims, ok := ClaimsFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "u1@example.com", claims.Email)
	})

	t.Run("missing token", func(t *testing.T) {
		ctx, err := g.Authenticate(context.Background(), "")
		assert.ErrorIs(t, err, common.ErrMissingToken)
		assert.ErrorIs(t, err, common.ErrUnauthenticated)
		_, ok := UserIDFromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("identity token", func(t *testing.T) {
		_, err := g.Authenticate(context.Background(), identity)
		assert.ErrorIs(t, err, common.ErrWrongTokenType)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewGuard(NewTokenValidator([]byte("secret"), "gophid").WithClock(fixedClock(testNow.Add(2 * time.Hour))))
		_, err := late.Authenticate(context.Background(), access)
		assert.ErrorIs(t, err, common.ErrTokenExpired)
	})
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)
	_, ok = ClaimsFromContext(context.Background())
	assert.False(t, ok)

	id, ok := UserIDFromContext(ContextWithUserID(context.Background(), "u9"))
	assert.True(t, ok)
	assert.Equal(t, "u9", id)

	_, ok = UserIDFromContext(ContextWithUserID(context.Background(), ""))
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"BEARER  abc ", "abc"},
		{"abc", "abc"},
		{"", ""},
		{"Bearer", "Bearer"},
		{"  Bearer x.y.z", "x.y.z"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BearerToken(tt.in), "input %q", tt.in)
	}
}
