package users

import (
	"context"

	"github.com/dmitrijs2005/gophid/internal/server/models"
)

// Repository stores user accounts. Lookups return common.ErrNotFound for
// absent rows; Create returns common.ErrAlreadyExists on a duplicate email.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// MarkEmailVerified flips email_verified from false to true and reports
	// whether this call changed the row.
	MarkEmailVerified(ctx context.Context, id string) (bool, error)
}
