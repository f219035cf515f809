// Package server wires configuration, storage, mail delivery and the
// identity services together and runs the gRPC and HTTP endpoints.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophid/internal/dbx"
	"github.com/dmitrijs2005/gophid/internal/logging"
	"github.com/dmitrijs2005/gophid/internal/server/auth"
	"github.com/dmitrijs2005/gophid/internal/server/config"
	"github.com/dmitrijs2005/gophid/internal/server/httpapi"
	"github.com/dmitrijs2005/gophid/internal/server/mailer"
	"github.com/dmitrijs2005/gophid/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophid/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/gophid/internal/server/grpc"
)

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// runner is one long-lived endpoint.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	userService   *services.UserService
	verifications *services.VerificationService
	guard         *auth.Guard
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	db, tx, manager, err := openStorage(ctx, c)
	if err != nil {
		return nil, err
	}

	ml, err := newMailer(ctx, c, logger)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	vs := services.NewVerificationService(db, tx, manager, ml, logger, services.VerificationOptions{
		TTL:        c.VerificationTokenValidityDuration,
		APIBaseURL: c.APIBaseURL,
		MailFrom:   c.MailFrom,
	})

	secret := []byte(c.SecretKey)
	us := services.NewUserService(db, tx, manager,
		auth.NewBcryptHasher(c.PasswordHashCost, c.PasswordHashConcurrency),
		auth.NewTokenIssuer(secret, c.TokenIssuer, c.AccessTokenValidityDuration),
		vs, logger)

	guard := auth.NewGuard(auth.NewTokenValidator(secret, c.TokenIssuer))

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		userService:   us,
		verifications: vs,
		guard:         guard,
	}, nil
}

// openStorage returns a nil *sql.DB for the in-memory store.
func openStorage(ctx context.Context, c *config.Config) (*sql.DB, dbx.TxRunner, repomanager.RepositoryManager, error) {
	if c.Storage == config.StorageMemory {
		return nil, dbx.NoTxRunner{}, repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		closeDB(db)
		return nil, nil, nil, fmt.Errorf("migrations error: %w", err)
	}

	return db, dbx.NewSQLTxRunner(db), m, nil
}

func newMailer(ctx context.Context, c *config.Config, logger logging.Logger) (mailer.Mailer, error) {
	if c.MailTransport != config.MailTransportS3 {
		return mailer.NewLogMailer(logger), nil
	}

	client, err := mailer.NewS3Client(ctx, mailer.S3Options{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		BaseEndpoint: c.S3BaseEndpoint,
		Bucket:       c.S3Bucket,
	})
	if err != nil {
		return nil, fmt.Errorf("mail transport init error: %w", err)
	}
	return mailer.NewS3Mailer(client, c.S3Bucket), nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

func (app *App) runners() []runner {
	return []runner{
		gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.verifications, app.guard),
		httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.config.PublicURL, app.logger,
			app.userService, app.verifications, app.guard),
	}
}

// Run serves until ctx is cancelled, SIGINT/SIGTERM arrives or any endpoint
// fails. A failing endpoint brings the others down with it.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.serve(ctx, app.runners())
}

func (app *App) serve(ctx context.Context, rs []runner) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer closeDB(app.db)

	app.logger.Info(ctx, "Starting app...")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, r := range rs {
		wg.Add(1)
		go func(r runner) {
			defer wg.Done()
			if err := r.Run(ctx); err != nil {
				app.logger.Error(ctx, "endpoint stopped", "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				cancelFunc()
			}
		}(r)
	}

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")

	return firstErr
}
