package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/project-showcase/backend/internal/handlers"
	"github.com/anonto42/project-showcase/backend/internal/logger"
	"github.com/anonto42/project-showcase/backend/internal/mailer"
	"github.com/anonto42/project-showcase/backend/internal/router"
	"github.com/anonto42/project-showcase/backend/internal/validators"
	"github.com/anonto42/project-showcase/backend/pkg/config"
	"github.com/anonto42/project-showcase/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func main() {
	if err := run(); err != nil {
		logger.New("showcase", false).Error("server stopped", err)
		logger.Flush()
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	console := logger.New("showcase", cfg.Debug)
	var log logger.Logger = console
	if cfg.RollbarToken != "" {
		log = logger.NewRollbar(console, logger.RollbarOptions{Token: cfg.RollbarToken, Environment: cfg.Env})
		defer logger.Flush()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	var stores *router.Stores
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn("Using in-memory stores; data is lost on restart.")
		if stores, err = router.MemoryStores(cfg.SeedFile); err != nil {
			return err
		}
	default:
		db, err := config.InitDB(ctx, cfg, log)
		if err != nil {
			return errors.Wrap(err, "failed to initialize databases")
		}
		defer db.CloseDB()
		if stores, err = router.PersistentStores(ctx, db.Postgres, db.MongoDatabase()); err != nil {
			return err
		}
	}

	opts := router.Options{
		JWTSecret:         cfg.JWTSecret,
		FanOutConcurrency: cfg.FanOutConcurrency,
		RequestTimeout:    cfg.RequestTimeout,
	}

	// Initialize Firebase
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		return errors.Wrap(err, "failed to initialize Firebase")
	}
	if firebaseApp != nil {
		opts.Firebase = firebaseApp.AuthClient
		log.Info("Firebase ID tokens accepted.")
	}

	if cfg.NotifyEmail {
		if cfg.SendgridAPIKey != "" {
			if opts.Mailer, err = mailer.NewSendgridMailer(cfg.SendgridAPIKey, cfg.MailFrom, cfg.AppName, log); err != nil {
				return err
			}
		} else {
			opts.Mailer = mailer.NewConsoleMailer(log)
		}
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug
	e.Logger = console.Gommon()
	validator := validators.NewValidator()
	e.Validator = validator
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(log, validator)

	router.SetupMiddleware(e, log)
	router.SetupRoutes(e, stores, opts, log)

	// Start server
	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening on :" + cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
