// Package httpapi exposes the identity services over HTTP with fiber.
package httpapi

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophid/internal/logging"
	"github.com/dmitrijs2005/gophid/internal/server/auth"
	"github.com/dmitrijs2005/gophid/internal/server/models"
	"github.com/dmitrijs2005/gophid/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, in services.RegisterUserInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*auth.TokenPair, error)
	GetUserByIDOrFail(ctx context.Context, id string) (*models.User, error)
}

type VerificationService interface {
	Consume(ctx context.Context, raw string) (services.VerificationOutcome, error)
	Resend(ctx context.Context, email string) error
}

type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (context.Context, error)
}

type HTTPServer struct {
	address       string
	publicURL     string
	app           *fiber.App
	users         UserService
	verifications VerificationService
	guard         Authenticator
	logger        logging.Logger
}

// NewHTTPServer builds the fiber app. publicURL is the front-end base the
// verification endpoint redirects to.
func NewHTTPServer(a, publicURL string, l logging.Logger, us UserService, vs VerificationService, g Authenticator) *HTTPServer {
	s := &HTTPServer{
		address:       a,
		publicURL:     strings.TrimRight(publicURL, "/"),
		users:         us,
		verifications: vs,
		guard:         g,
		logger:        l.With("module", "http_server"),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "gophid",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})
	s.routes()

	return s
}

// App returns the fiber app, for tests.
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

func (s *HTTPServer) routes() {
	s.app.Get("/health", s.health)
	s.app.Post("/user", s.registerUser)
	s.app.Get("/user", s.requireAuth, s.currentUser)
	s.app.Get("/email/verify/:emailVerificationToken", s.verifyEmail)
	s.app.Post("/email/verify", s.resendVerification)
	s.app.Post("/auth/login", s.login)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- s.app.Listen(s.address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		return s.app.ShutdownWithTimeout(shutdownTimeout)
	}
}
