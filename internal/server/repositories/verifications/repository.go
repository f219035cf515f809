package verifications

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophid/internal/server/models"
)

// Repository stores email verification tokens by the hash of their raw value.
type Repository interface {
	Create(ctx context.Context, token *models.VerificationToken) (*models.VerificationToken, error)
	// FindByHash returns common.ErrNotFound when no token has that hash.
	FindByHash(ctx context.Context, tokenHash string) (*models.VerificationToken, error)
	// MarkConsumed sets consumed_at if it is still unset and reports whether
	// this call did so.
	MarkConsumed(ctx context.Context, id string, at time.Time) (bool, error)
}
