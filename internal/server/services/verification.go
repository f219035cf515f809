package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophid/internal/common"
	"github.com/dmitrijs2005/gophid/internal/dbx"
	"github.com/dmitrijs2005/gophid/internal/logging"
	"github.com/dmitrijs2005/gophid/internal/server/mailer"
	"github.com/dmitrijs2005/gophid/internal/server/models"
	"github.com/dmitrijs2005/gophid/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// verificationTokenBytes is the entropy of a raw verification token.
const verificationTokenBytes = 32

// VerificationOutcome is the result of consuming a verification token.
type VerificationOutcome int

const (
	VerificationNotFound VerificationOutcome = iota
	VerificationVerified
	VerificationAlreadyVerified
	VerificationExpired
)

func (o VerificationOutcome) String() string {
	switch o {
	case VerificationVerified:
		return "verified"
	case VerificationAlreadyVerified:
		return "already_verified"
	case VerificationExpired:
		return "expired"
	default:
		return "not_found"
	}
}

// EmailVerified reports whether the account is verified after the call.
func (o VerificationOutcome) EmailVerified() bool {
	return o == VerificationVerified || o == VerificationAlreadyVerified
}

// VerificationOptions configure VerificationService.
type VerificationOptions struct {
	TTL        time.Duration
	APIBaseURL string
	MailFrom   string
}

// VerificationService issues, mails and consumes email verification tokens.
// Raw tokens only ever leave the service inside the mailed link; the store
// keeps their SHA-256.
type VerificationService struct {
	db          dbx.DBTX
	tx          dbx.TxRunner
	repomanager repomanager.RepositoryManager
	mailer      mailer.Mailer
	logger      logging.Logger
	opts        VerificationOptions
	now         func() time.Time
}

func NewVerificationService(db dbx.DBTX, tx dbx.TxRunner, m repomanager.RepositoryManager,
	ml mailer.Mailer, logger logging.Logger, opts VerificationOptions) *VerificationService {
	return &VerificationService{
		db:          db,
		tx:          tx,
		repomanager: m,
		mailer:      ml,
		logger:      logger.With("module", "verification"),
		opts:        opts,
		now:         time.Now,
	}
}

func hashVerificationToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Issue stores a fresh token for userID and returns its raw value.
func (s *VerificationService) Issue(ctx context.Context, userID string) (string, error) {
	return s.issue(ctx, s.db, userID)
}

func (s *VerificationService) issue(ctx context.Context, db dbx.DBTX, userID string) (string, error) {
	raw, err := common.MakeRandURLToken(verificationTokenBytes)
	if err != nil {
		return "", fmt.Errorf("error generating verification token: %w", err)
	}

	_, err = s.repomanager.Verifications(db).Create(ctx, &models.VerificationToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: hashVerificationToken(raw),
		ExpiresAt: s.now().Add(s.opts.TTL),
	})
	if err != nil {
		return "", fmt.Errorf("error storing verification token: %w", err)
	}
	return raw, nil
}

// Link builds the URL mailed to the user.
func (s *VerificationService) Link(raw string) string {
	return strings.TrimRight(s.opts.APIBaseURL, "/") + "/email/verify/" + raw
}

// SendVerification mails the link for raw to user.
func (s *VerificationService) SendVerification(ctx context.Context, user *models.User, raw string) error {
	msg, err := mailer.NewVerificationMessage(s.opts.MailFrom, user.Email, mailer.VerificationParams{
		FirstName: user.FirstName,
		Link:      s.Link(raw),
		ValidFor:  s.opts.TTL,
	})
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("error sending verification mail: %w", err)
	}
	return nil
}

// Consume redeems a raw token. Unknown, expired and reused tokens are
// outcomes, not errors; only store failures return an error.
func (s *VerificationService) Consume(ctx context.Context, raw string) (VerificationOutcome, error) {
	if raw == "" {
		s.logger.Warn(ctx, "email verification: empty token")
		return VerificationNotFound, nil
	}

	token, err := s.repomanager.Verifications(s.db).FindByHash(ctx, hashVerificationToken(raw))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "email verification: unknown token")
			return VerificationNotFound, nil
		}
		return VerificationNotFound, fmt.Errorf("error looking up verification token: %w", err)
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "email verification: account gone", "user_id", token.UserID)
			return VerificationNotFound, nil
		}
		return VerificationNotFound, fmt.Errorf("error looking up user: %w", err)
	}

	if token.Consumed() {
		return VerificationAlreadyVerified, nil
	}

	now := s.now()
	if !user.EmailVerified && token.Expired(now) {
		s.logger.Warn(ctx, "email verification: token expired", "user_id", user.ID)
		return VerificationExpired, nil
	}

	outcome := VerificationAlreadyVerified
	err = s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		consumed, err := s.repomanager.Verifications(tx).MarkConsumed(ctx, token.ID, now)
		if err != nil {
			return err
		}
		if !consumed {
			// a concurrent request got there first
			return nil
		}

		changed, err := s.repomanager.Users(tx).MarkEmailVerified(ctx, user.ID)
		if err != nil {
			return err
		}
		if changed {
			outcome = VerificationVerified
		}
		return nil
	})
	if err != nil {
		return VerificationNotFound, fmt.Errorf("error consuming verification token: %w", err)
	}

	if outcome == VerificationVerified {
		s.logger.Info(ctx, "email verified", "user_id", user.ID)
	}
	return outcome, nil
}

// Resend mails a fresh link if email belongs to an unverified account.
// Unknown and verified addresses are silently accepted so the endpoint
// cannot be used to probe for accounts.
func (s *VerificationService) Resend(ctx context.Context, email string) error {
	in := emailInput{Email: strings.TrimSpace(email)}
	if err := in.Validate(); err != nil {
		return err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Debug(ctx, "verification resend for unknown email")
			return nil
		}
		return fmt.Errorf("error looking up user: %w", err)
	}
	if user.EmailVerified {
		return nil
	}

	raw, err := s.Issue(ctx, user.ID)
	if err != nil {
		return err
	}

	if err := s.SendVerification(ctx, user, raw); err != nil {
		s.logger.Error(ctx, "verification mail not sent", "user_id", user.ID, "error", err)
	}
	return nil
}
