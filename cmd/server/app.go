package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/flashai/flashai-api/internal/config"
	"github.com/flashai/flashai-api/internal/generation"
	"github.com/flashai/flashai-api/internal/platform/gemini"
	"github.com/flashai/flashai-api/internal/platform/groq"
	"github.com/flashai/flashai-api/internal/service"
	"github.com/flashai/flashai-api/internal/service/auth"
	"github.com/flashai/flashai-api/internal/store"

	"github.com/flashai/flashai-api/internal/platform/postgres"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	deckStore      store.DeckStore
	flashcardStore store.FlashcardStore
	historyStore   store.HistoryStore

	tokenVerifier     auth.TokenVerifier
	generator         generation.Generator
	generationService service.GenerationService
	deckService       service.DeckService
}

// newApplication wires all application dependencies from the configuration.
func newApplication(cfg *config.Config, appLogger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	deckStore := postgres.NewPostgresDeckStore(db, appLogger)
	flashcardStore := postgres.NewPostgresFlashcardStore(db, appLogger)
	historyStore := postgres.NewPostgresHistoryStore(db, appLogger)

	tokenVerifier, err := auth.NewTokenVerifier(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}

	generator, err := setupGenerator(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	generationService, err := service.NewGenerationService(
		store.NewSQLTxRunner(db),
		deckStore,
		flashcardStore,
		historyStore,
		generator,
		cfg.LLM.ModelName,
		time.Duration(cfg.LLM.RequestTimeoutSeconds)*time.Second,
		appLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	deckService, err := service.NewDeckService(deckStore, flashcardStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck service: %w", err)
	}

	return &application{
		config:            cfg,
		logger:            appLogger,
		db:                db,
		deckStore:         deckStore,
		flashcardStore:    flashcardStore,
		historyStore:      historyStore,
		tokenVerifier:     tokenVerifier,
		generator:         generator,
		generationService: generationService,
		deckService:       deckService,
	}, nil
}

// setupGenerator selects the flashcard generation backend from the
// configured provider.
func setupGenerator(cfg *config.Config, appLogger *slog.Logger) (generation.Generator, error) {
	switch cfg.LLM.Provider {
	case config.ProviderGroq:
		return groq.NewGenerator(appLogger, cfg.LLM)
	case config.ProviderGemini:
		return gemini.NewGenerator(context.Background(), appLogger, cfg.LLM)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

// cleanup releases application resources on shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
