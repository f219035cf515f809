package services

import (
	"time"

	"github.com/dmitrijs2005/gophid/internal/identitypb"
	"github.com/dmitrijs2005/gophid/internal/server/models"
)

// NewUserResponse is the public view of user shared by both transports.
func NewUserResponse(user *models.User) identitypb.UserResponse {
	return identitypb.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		CreatedAt:     user.CreatedAt.UTC().Format(time.RFC3339),
		EmailVerified: user.EmailVerified,
	}
}
