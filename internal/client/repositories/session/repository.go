// Package session keeps the signed-in CLI session in the local SQLite
// key/value table, so a restarted client stays signed in.
package session

import (
	"context"
	"time"
)

// Session is what Login leaves behind.
type Session struct {
	Email       string
	AccessToken string
	IDToken     string
	SavedAt     time.Time
}

type Repository interface {
	// Load returns (nil, nil) when nobody is signed in.
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}
