package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/authgate/internal/authgate/http"
	"github.com/aussiebroadwan/authgate/internal/authgate/service"
	"github.com/aussiebroadwan/authgate/internal/authgate/store"
	"github.com/aussiebroadwan/authgate/internal/authgate/store/drivers/postgres"
	"github.com/aussiebroadwan/authgate/internal/authgate/store/drivers/sqlite"
	"github.com/aussiebroadwan/authgate/pkg/jwtx"
	"github.com/aussiebroadwan/authgate/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application wires the store, the token signer, the services and the HTTP
// server together.
type Application struct {
	cfg    *Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.HS256

	userService *service.UserService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg *Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "authgate",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSigner(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.userService = &service.UserService{Store: app.db, Signer: app.signer}

	if cfg.SeedDemoUsers {
		ctx := slogx.WithContext(context.Background(), app.logger)
		if _, err := app.userService.SeedDemoUsers(ctx); err != nil {
			_ = app.db.Close()
			return nil, fmt.Errorf("failed to seed demo users: %w", err)
		}
	}

	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wired router.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("authgate starting", "port", app.cfg.Port, "version", BuildVersion, "driver", app.cfg.Driver)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests for at most ShutdownGracePeriod and then
// closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down authgate...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("authgate stopped")
	return nil
}

func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.Driver {
	case DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err = postgres.NewStore(ctx, app.cfg.DSN)
	default:
		// Transactions take the write lock at BEGIN so busy_timeout covers
		// concurrent writers.
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite&_txlock=immediate", app.cfg.DBFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.Driver)
	return nil
}

func (app *Application) initSigner() error {
	secret, fallback := app.cfg.Secret()
	if fallback {
		app.logger.Warn("SECRET_KEY not set, signing tokens with the built-in default secret")
	}

	signer, err := jwtx.NewHS256(secret, app.cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		strconv.Itoa(app.cfg.Port),
		BuildVersion,
		app.db,
		app.logger,
	)
	router.UserService = app.userService
	router.SwaggerEnabled = app.cfg.SwaggerEnabled
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
