package services

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophid/internal/dbx"
	"github.com/dmitrijs2005/gophid/internal/logging"
	"github.com/dmitrijs2005/gophid/internal/server/auth"
	"github.com/dmitrijs2005/gophid/internal/server/mailer"
	"github.com/dmitrijs2005/gophid/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophid/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type captureMailer struct {
	mu   sync.Mutex
	msgs []mailer.Message
	err  error
}

func (m *captureMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *captureMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.msgs)
}

var linkRe = regexp.MustCompile(`/email/verify/([A-Za-z0-9_-]+)`)

// lastToken extracts the raw token from the most recent mail.
func (m *captureMailer) lastToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.msgs) == 0 {
		t.Fatal("no mail sent")
	}
	match := linkRe.FindStringSubmatch(m.msgs[len(m.msgs)-1].Body)
	if match == nil {
		t.Fatalf("no verification link in mail: %q", m.msgs[len(m.msgs)-1].Body)
	}
	return match[1]
}

// failingUsersManager wraps a manager and replaces its users repository.
type failingUsersManager struct {
	repomanager.RepositoryManager
	users users.Repository
}

func (m failingUsersManager) Users(dbx.DBTX) users.Repository { return m.users }

func withUsers(r users.Repository) failingUsersManager {
	return failingUsersManager{RepositoryManager: repomanager.NewMemoryRepositoryManager(), users: r}
}

type fixture struct {
	users         *UserService
	verifications *VerificationService
	mail          *captureMailer
	manager       repomanager.RepositoryManager
	validator     *auth.TokenValidator
}

func newFixture(t *testing.T, m repomanager.RepositoryManager) *fixture {
	t.Helper()
	if m == nil {
		m = repomanager.NewMemoryRepositoryManager()
	}
	mail := &captureMailer{}
	vs := NewVerificationService(nil, dbx.NoTxRunner{}, m, mail, logging.Nop{}, VerificationOptions{
		TTL:        24 * time.Hour,
		APIBaseURL: "http://api.local/",
		MailFrom:   "no-reply@gophid.local",
	})
	issuer := auth.NewTokenIssuer([]byte(testSecret), "gophid", time.Hour)
	us := NewUserService(nil, dbx.NoTxRunner{}, m, auth.NewBcryptHasher(bcrypt.MinCost, 2), issuer, vs, logging.Nop{})
	return &fixture{
		users:         us,
		verifications: vs,
		mail:          mail,
		manager:       m,
		validator:     auth.NewTokenValidator([]byte(testSecret), "gophid"),
	}
}

func validInput() RegisterUserInput {
	return RegisterUserInput{
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "analytical-engine",
	}
}
