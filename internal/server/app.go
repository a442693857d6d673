// Package server wires configuration, storage, services and transports into
// a running rentals server and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/rentals/internal/logging"
	"github.com/dmitrijs2005/rentals/internal/server/auth"
	"github.com/dmitrijs2005/rentals/internal/server/config"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/rentals/internal/server/rest"
	"github.com/dmitrijs2005/rentals/internal/server/services"
	"github.com/dmitrijs2005/rentals/internal/server/storage"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/rentals/internal/server/grpc"
)

// healthInterval is how often the gRPC health probe pings the database.
const healthInterval = 5 * time.Second

var (
	openDB               = repomanager.Open
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
)

var newImageStore = func(ctx context.Context, c *config.Config) (storage.ImageStore, error) {
	return storage.NewS3Store(ctx, c)
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

// NewApp opens the database, applies migrations and builds the HTTP handler.
// The signing key is checked first so a missing secret fails before any I/O.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	key, err := auth.NewSigningKey(c.SecretKey)
	if err != nil {
		return nil, err
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	images, err := newImageStore(ctx, c)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("object storage init error: %w", err)
	}

	as, err := services.NewAuthService(db, rm, auth.NewBcryptHasher(c.BcryptCost), auth.NewIssuer(key))
	if err != nil {
		db.Close()
		return nil, err
	}

	h := &rest.Handlers{
		Auth:           as,
		Users:          services.NewUserService(db, rm),
		Rentals:        services.NewRentalService(db, rm, images),
		Messages:       services.NewMessageService(db, rm),
		Health:         db,
		Logger:         logger.With("module", "rest"),
		MaxUploadBytes: c.MaxUploadBytes,
	}
	handler := rest.NewRouter(h, auth.NewVerifier(key), rest.NewMetrics(), logger.With("module", "rest"))

	return &App{config: c, logger: logger, db: db, handler: handler}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the JSON API and the gRPC health probe until ctx is cancelled,
// a termination signal arrives or one of them fails. The database is closed
// once both have stopped.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	httpServer := rest.NewHTTPServer(app.config.HTTPAddr, app.handler, app.logger, app.config.ShutdownTimeout)
	healthServer := gs.NewHealthServer(app.config.GRPCHealthAddr, app.logger, app.db, healthInterval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpServer.Run(gctx) })
	g.Go(func() error { return healthServer.Run(gctx) })

	err := g.Wait()
	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "closing database", "error", cerr)
	}
	if err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
