// @title Bridge API
// @version 1.0
// @description Translate and summarize official documents, cross-reference actions with the translation, and chat about the document.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"bridge/internal/auth"
	"bridge/internal/config"
	"bridge/internal/encoder"
	"bridge/internal/handler"
	"bridge/internal/language"
	"bridge/internal/logger"
	"bridge/internal/middleware"
	"bridge/internal/parser"
	_ "bridge/internal/parser/gemini"
	"bridge/internal/preference"
	"bridge/internal/router"
	"bridge/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Preference store
	store, closeStore, err := preference.OpenStore(&cfg.Preference)
	if err != nil {
		return fmt.Errorf("failed to open preference store: %w", err)
	}
	defer func() { _ = closeStore() }()

	settings := preference.NewSettings(store)
	if err := settings.Load(ctx); err != nil {
		log.Warnf("Preference store unavailable, using default language: %v", err)
	}
	log.Infof("Preference store: %s, default target language: %s", cfg.Preference.Driver, settings.TargetLanguage())

	// Collaborator
	translator, err := parser.NewTranslator(&cfg.Collaborator)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}
	chatModel, err := parser.NewChatModel(&cfg.Collaborator)
	if err != nil {
		return fmt.Errorf("failed to create chat model: %w", err)
	}
	if cfg.Collaborator.APIKey == "" {
		log.Warn("No collaborator API key configured; document processing will fail until one is set")
	}

	// Services
	catalog := language.Default()
	tokens := auth.NewTokens(cfg.Auth)
	workspaceSvc := service.NewWorkspaceService(
		encoder.New(cfg.Upload.MaxBytes()), translator, chatModel, settings, catalog, tokens,
	)

	reaper := service.NewSessionReaper(workspaceSvc, service.SessionReaperConfig{
		Interval: cfg.Session.ReapInterval,
		IdleTTL:  cfg.Session.IdleTTL,
	})
	go reaper.Start(ctx)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	// Handlers
	r := router.Setup(tokens, router.Handlers{
		Workspace: handler.NewWorkspaceHandler(workspaceSvc),
		Highlight: handler.NewHighlightHandler(workspaceSvc),
		Chat:      handler.NewChatHandler(workspaceSvc).WithTurnLimiter(limiter),
		Language:  handler.NewLanguageHandler(catalog, settings),
		Export:    handler.NewExportHandler(workspaceSvc),
		Health:    handler.NewHealthHandler(settings),
	}, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Limiter:        limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
