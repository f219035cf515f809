package client

import (
	"context"

	"github.com/dmitrijs2005/gophid/internal/identitypb"
)

// Client is the identity API as the CLI sees it.
type Client interface {
	Close() error
	SetAccessToken(token string)
	Ping(ctx context.Context) error
	Register(ctx context.Context, req identitypb.RegisterUserRequest) error
	VerifyEmail(ctx context.Context, token string) (*identitypb.VerifyEmailResponse, error)
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, email string, password []byte) (*identitypb.LoginResponse, error)
	CurrentUser(ctx context.Context) (*identitypb.UserResponse, error)
}
