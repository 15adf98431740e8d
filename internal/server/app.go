// Package server initializes and runs the filestash server.
// It wires the database, migrations, blob storage backend and the HTTP API,
// and handles graceful shutdown on OS signals.
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

	"github.com/dkrasnovs/filestash/internal/logging"
	"github.com/dkrasnovs/filestash/internal/server/api"
	"github.com/dkrasnovs/filestash/internal/server/auth"
	"github.com/dkrasnovs/filestash/internal/server/blobstore"
	"github.com/dkrasnovs/filestash/internal/server/config"
	"github.com/dkrasnovs/filestash/internal/server/repositories/repomanager"
	"github.com/dkrasnovs/filestash/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	fileService *services.FileService
	tokens      *auth.TokenIssuer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	tokens, err := auth.NewTokenIssuer(c.SecretKey, c.TokenValidityDuration, c.TokenIssuer, c.TokenAudience)
	if err != nil {
		return nil, fmt.Errorf("token issuer init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	blobs, err := newBlobStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("blob storage init error: %w", err)
	}

	us := services.NewUserService(db, rm, tokens)
	fs := services.NewFileService(db, rm, blobs, logger)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		userService: us,
		fileService: fs,
		tokens:      tokens,
	}, nil
}

func newBlobStore(ctx context.Context, c *config.Config) (blobstore.BlobStore, error) {
	switch c.StorageBackend {
	case config.StorageS3:
		return blobstore.NewS3Store(ctx, blobstore.S3Config{
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	case config.StorageLocal:
		return blobstore.NewLocalStore(c.StoragePath)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", c.StorageBackend)
	}
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

	s := api.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.fileService, app.tokens)

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
		app.logger.Error(ctx, err.Error())
	}
}
