// Package server initializes and runs the portal server. It wires the
// configuration, storage backends, the account service, and the HTTP
// interaction endpoint, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/getcareer/portal/internal/logging"
	"github.com/getcareer/portal/internal/server/config"
	"github.com/getcareer/portal/internal/server/cvstore"
	"github.com/getcareer/portal/internal/server/httpapi"
	"github.com/getcareer/portal/internal/server/jobs"
	"github.com/getcareer/portal/internal/server/repositories/repomanager"
	"github.com/getcareer/portal/internal/server/users"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *users.Service
	jobSource   *jobs.Source
	cvStore     cvstore.Store
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	ctx := context.Background()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := users.NewService(db, m)
	if err := us.Bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("admin bootstrap error: %w", err)
	}

	cvs, err := newCVStore(c)
	if err != nil {
		return nil, fmt.Errorf("cv store init error: %w", err)
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		userService: us,
		jobSource:   jobs.NewSource(0),
		cvStore:     cvs,
	}, nil
}

// newCVStore picks the CV backend: an S3-compatible bucket when a base
// endpoint is configured, the local upload directory otherwise.
func newCVStore(c *config.Config) (cvstore.Store, error) {
	if c.S3BaseEndpoint != "" {
		return cvstore.NewS3Store(cvstore.S3Config{
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		}), nil
	}
	return cvstore.NewDiskStore(c.UploadDir)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(
		app.config.EndpointAddrHTTP,
		app.logger,
		app.userService,
		app.jobSource,
		app.cvStore,
		app.config.SecretKey,
		app.config.SessionTokenValidityDuration,
	)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing db", "error", err.Error())
	}
}
