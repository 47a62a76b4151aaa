package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flashai/flashai-api/internal/api"
	apiMiddleware "github.com/flashai/flashai-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenVerifier)
	flashcardHandler := api.NewFlashcardHandler(
		app.generationService,
		app.config.Upload.MaxFileSizeBytes,
	)
	deckHandler := api.NewDeckHandler(app.deckService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// All API routes require authentication
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Generation endpoints
			r.Post("/flashcards/generate", flashcardHandler.Generate)
			r.Post("/flashcards/upload", flashcardHandler.Upload)

			// Deck endpoints
			r.Get("/decks", deckHandler.ListDecks)
			r.Get("/decks/{deckID}", deckHandler.GetDeck)
			r.Post("/decks/{deckID}/share", deckHandler.ShareDeck)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
