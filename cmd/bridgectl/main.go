package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"bridge/internal/auth"
	"bridge/internal/cli"
	"bridge/internal/config"
	"bridge/internal/encoder"
	"bridge/internal/language"
	"bridge/internal/logger"
	"bridge/internal/parser"
	_ "bridge/internal/parser/gemini"
	"bridge/internal/preference"
	"bridge/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// Keep the terminal for answers; only problems are logged.
	logger.Init("warn", cfg.Log.Format)

	store, closeStore, err := preference.OpenStore(&cfg.Preference)
	if err != nil {
		return fmt.Errorf("failed to open preference store: %w", err)
	}
	defer func() { _ = closeStore() }()

	settings := preference.NewSettings(store)
	if err := settings.Load(context.Background()); err != nil {
		log.Warnf("bridgectl: using default language: %v", err)
	}

	translator, err := parser.NewTranslator(&cfg.Collaborator)
	if err != nil {
		return err
	}
	chatModel, err := parser.NewChatModel(&cfg.Collaborator)
	if err != nil {
		return err
	}

	catalog := language.Default()
	cli.Configure(&cli.Deps{
		Workspaces: service.NewWorkspaceService(
			encoder.New(cfg.Upload.MaxBytes()), translator, chatModel, settings, catalog, auth.NewTokens(cfg.Auth),
		),
		Settings: settings,
		Catalog:  catalog,
	})
	return cli.Execute()
}
