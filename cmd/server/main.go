// Package main implements the entry point for the FlashAI API server,
// which turns uploaded study material into AI-generated flashcard decks.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/flashai/flashai-api/internal/config"
	"github.com/flashai/flashai-api/internal/platform/logger"
)

// main loads configuration, wires the application dependencies, runs
// migrations, and starts the HTTP server.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.ModelName)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to build application: %w", err)
	}

	if err := app.runMigrations(); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return app, nil
}
