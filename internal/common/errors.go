// Package common defines shared constants and sentinel errors used across
// the client and server layers of gophid. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrInternal   = errors.New("internal error")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("email already registered")

	// Credential errors. ErrInvalidCredentials is returned both for an unknown
	// email and for a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrMalformedHash      = errors.New("malformed password hash")

	// ErrUnauthenticated is the root of every token failure.
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrMissingToken   = fmt.Errorf("%w: missing token", ErrUnauthenticated)
	ErrInvalidToken   = fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	ErrTokenExpired   = fmt.Errorf("%w: token expired", ErrUnauthenticated)
	ErrWrongTokenType = fmt.Errorf("%w: wrong token type", ErrUnauthenticated)
)
