// Package services holds the business logic of the identity server:
// registration, login and email verification.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophid/internal/common"
	"github.com/dmitrijs2005/gophid/internal/dbx"
	"github.com/dmitrijs2005/gophid/internal/logging"
	"github.com/dmitrijs2005/gophid/internal/server/auth"
	"github.com/dmitrijs2005/gophid/internal/server/models"
	"github.com/dmitrijs2005/gophid/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenPairIssuer is the part of auth.TokenIssuer the user service needs.
type TokenPairIssuer interface {
	IssueTokenPair(user *models.User) (*auth.TokenPair, error)
}

type UserService struct {
	db            dbx.DBTX
	tx            dbx.TxRunner
	repomanager   repomanager.RepositoryManager
	hasher        auth.PasswordHasher
	issuer        TokenPairIssuer
	verifications *VerificationService
	logger        logging.Logger
	// dummyHash is compared against on unknown emails so that they cost
	// as much as a wrong password.
	dummyHash func() (string, error)
}

func NewUserService(db dbx.DBTX, tx dbx.TxRunner, m repomanager.RepositoryManager,
	hasher auth.PasswordHasher, issuer TokenPairIssuer, verifications *VerificationService,
	logger logging.Logger) *UserService {
	return &UserService{
		db:            db,
		tx:            tx,
		repomanager:   m,
		hasher:        hasher,
		issuer:        issuer,
		verifications: verifications,
		logger:        logger.With("module", "users"),
		dummyHash: sync.OnceValues(func() (string, error) {
			return hasher.Hash(context.Background(), "gophid-unknown-account")
		}),
	}
}

// Register creates an unverified account and mails its verification link.
// A failed mail is logged; the account still exists and the user can ask
// for a new link.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*models.User, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	_, err := s.repomanager.Users(s.db).GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, common.ErrConflict
	case !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:            uuid.NewString(),
		Email:         in.Email,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		PasswordHash:  hash,
		StreetAddress: in.StreetAddress,
		City:          in.City,
		State:         in.State,
		Zip:           in.Zip,
	}

	var raw string
	err = s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			if errors.Is(err, common.ErrAlreadyExists) {
				return common.ErrConflict
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		user = created

		raw, err = s.verifications.issue(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)

	if err := s.verifications.SendVerification(ctx, user, raw); err != nil {
		s.logger.Error(ctx, "verification mail not sent", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// Login checks credentials and returns an access/identity token pair.
// Unknown email and wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	email = strings.TrimSpace(email)

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "login failed: unknown email", "email", email)
			s.compareDummy(ctx, password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		s.logger.Warn(ctx, "login failed: wrong password", "user_id", user.ID, "email", email)
		return nil, common.ErrInvalidCredentials
	}

	if !user.EmailVerified {
		s.logger.Info(ctx, "login refused: email not verified", "user_id", user.ID)
		return nil, common.ErrEmailNotVerified
	}

	pair, err := s.issuer.IssueTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error issuing tokens: %w", err)
	}
	return pair, nil
}

func (s *UserService) compareDummy(ctx context.Context, password string) {
	hash, err := s.dummyHash()
	if err != nil {
		s.logger.Error(ctx, "dummy password hash unavailable", "error", err)
		return
	}
	_, _ = s.hasher.Verify(password, hash)
}

// GetUserByIDOrFail returns the user or common.ErrNotFound.
func (s *UserService) GetUserByIDOrFail(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	return user, nil
}
