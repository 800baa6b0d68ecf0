// Package main initializes and starts the GophForms HTTP server,
// setting up configuration, logging, the credential store, services,
// handlers, and optional TLS.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/GophForms/internal/config"
	"github.com/atinyakov/GophForms/internal/db"
	"github.com/atinyakov/GophForms/internal/logger"
	"github.com/atinyakov/GophForms/internal/models"
	"github.com/atinyakov/GophForms/internal/repository"
	"github.com/atinyakov/GophForms/internal/server/handler/http"
	"github.com/atinyakov/GophForms/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// Parse command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		// Log is still a no-op here.
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	// Pick the credential store.
	repo, closeStore, err := openStore(ctx, options.DatabaseDSN, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init credential store", zap.Error(err))
	}
	defer closeStore()

	authService := service.NewAuthService(repo, zapLogger)

	// Create HTTP handlers for the form pages and the JSON API.
	pageHandler := &http.PageHandler{AuthService: authService, Logger: zapLogger}
	authHandler := &http.AuthHandler{AuthService: authService, Logger: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(pageHandler, authHandler, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if options.EnableHTTPS {
			server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
			zapLogger.Info("starting HTTPS server", zap.String("addr", options.Port))
			serveErr <- server.ListenAndServeTLS(options.CertFile, options.KeyFile)
			return
		}
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("failed to start server", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("received interruption signal, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("error during server shutdown", zap.Error(err))
	}
	zapLogger.Info("shutdown complete")
}

// openStore returns the in-memory store when dsn is empty, otherwise a
// PostgreSQL store. Both start with the seed accounts.
func openStore(ctx context.Context, dsn string, log *zap.Logger) (service.CredentialRepository, func(), error) {
	if dsn == "" {
		log.Info("using in-memory credential store")
		return repository.NewMemoryCredentialRepository(models.SeedCredentials()...), func() {}, nil
	}

	postgresDB, err := db.InitPostgres(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}

	repo := repository.NewPostgresCredentialRepository(postgresDB)
	if err := repo.Seed(ctx, models.SeedCredentials()); err != nil {
		postgresDB.Close()
		return nil, nil, fmt.Errorf("seed credentials: %w", err)
	}

	log.Info("using postgres credential store")
	return repo, func() { _ = postgresDB.Close() }, nil
}
