// Package server wires the row-store service together: database, migrations,
// domain services and the HTTP API, plus graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/obelousov/pixelboard/internal/logging"
	"github.com/obelousov/pixelboard/internal/server/config"
	"github.com/obelousov/pixelboard/internal/server/httpapi"
	"github.com/obelousov/pixelboard/internal/server/repositories/repomanager"
	"github.com/obelousov/pixelboard/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager

	tokenService  *services.TokenService
	userService   *services.UserService
	eventService  *services.EventService
	exportService *services.ExportService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	repos, err := repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := repos.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &App{
		config:        cfg,
		logger:        logger,
		repos:         repos,
		tokenService:  services.NewTokenService(repos, cfg),
		userService:   services.NewUserService(repos),
		eventService:  services.NewEventService(repos),
		exportService: services.NewExportService(repos, cfg),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(
		app.config.EndpointAddr,
		app.logger,
		app.tokenService,
		app.userService,
		app.eventService,
		app.exportService,
		app.repos.Credentials(),
		app.repos.Webhooks(),
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

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
