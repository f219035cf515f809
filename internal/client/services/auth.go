// Package services contains application services for the gophid client.
// This file defines the authentication service: register, email
// verification, login, and the locally persisted session.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophid/internal/client/client"
	"github.com/dmitrijs2005/gophid/internal/client/repositories/session"
	"github.com/dmitrijs2005/gophid/internal/identitypb"
)

// ErrNotLoggedIn is returned by calls that need a session when there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService defines authentication operations for the CLI.
//
// All methods honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, req identitypb.RegisterUserRequest) error
	Verify(ctx context.Context, tokenOrLink string) (*identitypb.VerifyEmailResponse, error)
	Resend(ctx context.Context, email string) error
	Login(ctx context.Context, email string, password []byte) error
	Restore(ctx context.Context) (*session.Session, error)
	WhoAmI(ctx context.Context) (*identitypb.UserResponse, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and the
// local session store.
type authService struct {
	client   client.Client
	sessions session.Repository
	now      func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(c client.Client, sessions session.Repository) AuthService {
	return &authService{client: c, sessions: sessions, now: time.Now}
}

func (a *authService) Register(ctx context.Context, req identitypb.RegisterUserRequest) error {
	return a.client.Register(ctx, req)
}

// Verify accepts either the bare token or the whole link from the mail.
func (a *authService) Verify(ctx context.Context, tokenOrLink string) (*identitypb.VerifyEmailResponse, error) {
	token, err := client.ExtractVerificationToken(tokenOrLink)
	if err != nil {
		return nil, err
	}
	return a.client.VerifyEmail(ctx, token)
}

func (a *authService) Resend(ctx context.Context, email string) error {
	return a.client.ResendVerification(ctx, email)
}

// Login authenticates against the server and persists the token pair so the
// next run starts signed in.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	tokens, err := a.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	s := &session.Session{
		Email:       email,
		AccessToken: tokens.AccessToken,
		IDToken:     tokens.IDToken,
		SavedAt:     a.now(),
	}
	if err := a.sessions.Save(ctx, s); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}

	a.client.SetAccessToken(tokens.AccessToken)
	return nil
}

// Restore reattaches a saved session, if there is one. A nil session means
// nobody is signed in.
func (a *authService) Restore(ctx context.Context) (*session.Session, error) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s != nil {
		a.client.SetAccessToken(s.AccessToken)
	}
	return s, nil
}

// WhoAmI asks the server who the saved access token belongs to. A rejected
// token drops the session.
func (a *authService) WhoAmI(ctx context.Context) (*identitypb.UserResponse, error) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNotLoggedIn
	}

	user, err := a.client.CurrentUser(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		if cerr := a.Logout(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("session expired, log in again: %w", err)
	}
	return user, err
}

// Logout forgets the session locally. Access tokens are stateless, so there is
// nothing to revoke on the server.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return err
	}
	a.client.SetAccessToken("")
	return nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
