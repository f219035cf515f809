package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophid/internal/dbx"
	"github.com/dmitrijs2005/gophid/internal/logging"
	"github.com/dmitrijs2005/gophid/internal/server/config"
	"github.com/dmitrijs2005/gophid/internal/server/mailer"
	"github.com/dmitrijs2005/gophid/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	return c
}

func memoryConfig() *config.Config {
	c := defaultConfig()
	c.Storage = config.StorageMemory
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	return c
}

func TestNewApp_Memory(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig(), logging.Nop{})
	require.NoError(t, err)

	assert.Nil(t, app.db)
	assert.NotNil(t, app.userService)
	assert.NotNil(t, app.verifications)
	assert.NotNil(t, app.guard)
	assert.Len(t, app.runners(), 2)
}

func TestNewApp_InvalidConfig(t *testing.T) {
	c := memoryConfig()
	c.SecretKey = ""

	_, err := NewApp(context.Background(), c, logging.Nop{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestOpenStorage_Memory(t *testing.T) {
	db, tx, m, err := openStorage(context.Background(), memoryConfig())
	require.NoError(t, err)
	assert.Nil(t, db)
	assert.IsType(t, dbx.NoTxRunner{}, tx)
	assert.IsType(t, &repomanager.MemoryRepositoryManager{}, m)
}

func TestOpenStorage_OpenError(t *testing.T) {
	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })
	sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("no driver") }

	_, _, _, err := openStorage(context.Background(), defaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestOpenStorage_MigrationError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.MatchExpectationsInOrder(false)
	mock.ExpectClose()

	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })
	var gotDriver string
	sqlOpen = func(driver, _ string) (*sql.DB, error) {
		gotDriver = driver
		return db, nil
	}

	_, _, _, err = openStorage(context.Background(), defaultConfig())
	require.Error(t, err)
	assert.Equal(t, "pgx", gotDriver)
	assert.Contains(t, err.Error(), "migrations error")
}

func TestNewMailer(t *testing.T) {
	c := memoryConfig()

	m, err := newMailer(context.Background(), c, logging.Nop{})
	require.NoError(t, err)
	assert.IsType(t, &mailer.LogMailer{}, m)

	c.MailTransport = config.MailTransportS3
	m, err = newMailer(context.Background(), c, logging.Nop{})
	require.NoError(t, err)
	assert.IsType(t, &mailer.S3Mailer{}, m)
}

type stubRunner struct {
	err     error
	stopped chan struct{}
}

func (r *stubRunner) Run(ctx context.Context) error {
	if r.err != nil {
		return r.err
	}
	<-ctx.Done()
	close(r.stopped)
	return nil
}

func TestServe_FailingEndpointStopsOthers(t *testing.T) {
	app := &App{logger: logging.Nop{}}
	healthy := &stubRunner{stopped: make(chan struct{})}
	boom := errors.New("bind failed")

	done := make(chan error, 1)
	go func() { done <- app.serve(context.Background(), []runner{healthy, &stubRunner{err: boom}}) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return")
	}
	<-healthy.stopped
}

func TestServe_StopsOnCancel(t *testing.T) {
	app := &App{logger: logging.Nop{}}
	r := &stubRunner{stopped: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, []runner{r}) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return")
	}
}
