package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/takeoffbot/takeoff/internal/adapter/driven/github"
	slackadapter "github.com/takeoffbot/takeoff/internal/adapter/driven/slack"
	sqliteadapter "github.com/takeoffbot/takeoff/internal/adapter/driven/sqlite"
	httphandler "github.com/takeoffbot/takeoff/internal/adapter/driving/http"
	"github.com/takeoffbot/takeoff/internal/application"
	"github.com/takeoffbot/takeoff/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"authorized_users", len(cfg.AuthorizedUserIDs),
	)
	if len(cfg.AuthorizedUserIDs) == 0 {
		slog.Warn("authorized user list is empty, all merge triggers will be denied")
	}

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database and run migrations.
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("database ready", "path", cfg.DBPath)

	// 4. Wire driven adapters.
	attemptStore := sqliteadapter.NewAttemptRepo(db)
	merger := githubadapter.NewClient(cfg.GitHubToken)
	notifier := slackadapter.NewNotifier(cfg.SlackBotToken)

	// 5. Create the merge pipeline and start its worker.
	mergeSvc := application.NewMergeService(merger, notifier, attemptStore, cfg.AuthorizedUserIDs)
	go mergeSvc.Start(ctx)

	// 6. Create HTTP handler and server.
	handler := httphandler.NewHandler(mergeSvc, attemptStore, cfg.SlackSigningSecret, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.NewServeMux(handler, slog.Default()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("takeoff started", "listen_addr", cfg.ListenAddr)

	// 7. Wait for shutdown signal, then drain the HTTP server.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
