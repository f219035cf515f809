// Package auth holds the credential primitives of the identity service:
// password hashing, signed token issuance and validation, and the access
// guard that resolves a caller from a bearer token.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophid/internal/common"
	"github.com/dmitrijs2005/gophid/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenType tells access tokens and identity tokens apart.
type TokenType string

const (
	AccessTokenType   TokenType = "accessToken"
	IdentityTokenType TokenType = "idToken"
)

// Claims is the payload of both token kinds. FirstName and LastName are set
// on identity tokens only.
type Claims struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	TokenType TokenType `json:"tokenType"`
	jwt.RegisteredClaims
}

// TokenPair is what a successful login returns.
type TokenPair struct {
	AccessToken string `json:"accessToken"`
	IDToken     string `json:"idToken"`
}

// TokenIssuer signs access and identity tokens with HS256.
type TokenIssuer struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
}

func NewTokenIssuer(secret []byte, issuer string, accessTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, issuer: issuer, accessTTL: accessTTL, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

func (i *TokenIssuer) IssueAccessToken(userID, email string) (string, error) {
	now := i.now()
	return i.sign(Claims{
		UserID:    userID,
		Email:     email,
		TokenType: AccessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	})
}

// IssueIdentityToken signs a token describing the user. It has no expiry
// and is never accepted as an access token.
func (i *TokenIssuer) IssueIdentityToken(userID, email, firstName, lastName string) (string, error) {
	return i.sign(Claims{
		UserID:    userID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		TokenType: IdentityTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			Issuer:   i.issuer,
			IssuedAt: jwt.NewNumericDate(i.now()),
		},
	})
}

func (i *TokenIssuer) IssueTokenPair(user *models.User) (*TokenPair, error) {
	access, err := i.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	id, err := i.IssueIdentityToken(user.ID, user.Email, user.FirstName, user.LastName)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, IDToken: id}, nil
}

func (i *TokenIssuer) sign(claims Claims) (string, error) {
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// TokenValidator checks access tokens signed by a TokenIssuer with the same secret.
type TokenValidator struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenValidator creates a validator. An empty issuer disables the iss check.
func NewTokenValidator(secret []byte, issuer string) *TokenValidator {
	return &TokenValidator{secret: secret, issuer: issuer, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (v *TokenValidator) WithClock(now func() time.Time) *TokenValidator {
	v.now = now
	return v
}

// ValidateAccessToken verifies signature, expiry, issuer and token type,
// in that order. Every error wraps common.ErrUnauthenticated.
func (v *TokenValidator) ValidateAccessToken(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if claims.TokenType != AccessTokenType {
		return nil, common.ErrWrongTokenType
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp", common.ErrInvalidToken)
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing subject", common.ErrInvalidToken)
	}

	return claims, nil
}
