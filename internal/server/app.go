// Package server initializes and runs the crypto-service server. It opens
// the database, runs migrations, connects to NATS and starts the request
// handlers and the expiry sweeper, shutting everything down on OS signals.
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

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/agency/cryptoservice/internal/cryptox"
	"github.com/agency/cryptoservice/internal/logging"
	"github.com/agency/cryptoservice/internal/server/config"
	ns "github.com/agency/cryptoservice/internal/server/nats"
	"github.com/agency/cryptoservice/internal/server/repositories/repomanager"
	"github.com/agency/cryptoservice/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	service *services.MessageService
}

func NewApp(cfg *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	generator := cryptox.NewGenerator(cfg.PasswordLength, cfg.KeyLength)
	service := services.NewMessageService(db, rm, generator, cfg, logger)

	return &App{config: cfg, logger: logger, db: db, service: service}, nil
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

func (app *App) startNatsServer(ctx context.Context, cancelFunc context.CancelFunc) {

	conn, err := ns.Connect(app.config, app.logger)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	s := ns.NewServer(conn, app.service, app.config.RequestTimeout, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startSweeper(ctx context.Context) {
	sweeper := services.NewSweeper(app.service, app.config.CleanupInterval, app.config.CleanupMaxAge, app.logger)
	sweeper.Run(ctx)
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startNatsServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startSweeper(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}
}
