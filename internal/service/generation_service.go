package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flashai/flashai-api/internal/domain"
	"github.com/flashai/flashai-api/internal/generation"
	"github.com/flashai/flashai-api/internal/platform/logger"
	"github.com/flashai/flashai-api/internal/store"
)

// Common sentinel errors for the generation service.
var (
	// ErrDeckNotFound indicates the target deck does not exist or is not
	// owned by the requesting user.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrEmptyDocument indicates the source text was blank after trimming,
	// e.g. a scanned PDF with no extractable text. Reported to callers as a
	// distinct validation failure; blank text is never sent to the provider.
	ErrEmptyDocument = errors.New("document contains no extractable text")
)

// GenerationOutcome reports what one generation call stored.
type GenerationOutcome struct {
	// Deck is the deck the cards were stored into, freshly created when the
	// request named no target.
	Deck *domain.Deck

	// CardsStored is the number of flashcards written.
	CardsStored int

	// Summary is the model-provided summary, empty if none was requested
	// or returned.
	Summary string
}

// GenerationService runs the flashcard generation pipeline: prompt the
// provider with the request's source text, then persist the parsed result
// atomically alongside a new or existing deck.
type GenerationService interface {
	// GenerateAndStore executes one generation call for the given user.
	// On success every generated card has been committed; on failure
	// nothing has been, including the deck.
	GenerateAndStore(
		ctx context.Context,
		userID uuid.UUID,
		req *domain.GenerationRequest,
	) (*GenerationOutcome, error)
}

// GenerationServiceError wraps errors from the generation service with context.
type GenerationServiceError struct {
	// Operation is the step that failed (e.g. "generate_cards", "persist_result")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for GenerationServiceError.
func (e *GenerationServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("generation service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GenerationServiceError) Unwrap() error {
	return e.Err
}

// newGenerationServiceError wraps an error with operation context.
// Known sentinels pass through directly so callers can match on them;
// errors from the generation package are likewise preserved unwrapped
// because the API layer translates each kind to a distinct status.
func newGenerationServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, store.ErrDeckNotFound) {
		return ErrDeckNotFound
	}

	switch {
	case errors.Is(err, ErrDeckNotFound),
		errors.Is(err, ErrEmptyDocument),
		errors.Is(err, generation.ErrInvalidResponseFormat),
		errors.Is(err, generation.ErrMissingCardsField),
		errors.Is(err, generation.ErrInputTooLarge),
		errors.Is(err, generation.ErrProviderUnavailable):
		return err
	}

	return &GenerationServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// generationServiceImpl implements the GenerationService interface.
type generationServiceImpl struct {
	txRunner       store.TxRunner
	deckStore      store.DeckStore
	flashcardStore store.FlashcardStore
	historyStore   store.HistoryStore
	generator      generation.Generator
	modelName      string
	callTimeout    time.Duration
	logger         *slog.Logger
}

// NewGenerationService creates a new GenerationService.
// callTimeout bounds the single provider call per request; the database
// work runs under the caller's context. Returns an error if any required
// dependency is nil.
func NewGenerationService(
	txRunner store.TxRunner,
	deckStore store.DeckStore,
	flashcardStore store.FlashcardStore,
	historyStore store.HistoryStore,
	generator generation.Generator,
	modelName string,
	callTimeout time.Duration,
	logger *slog.Logger,
) (GenerationService, error) {
	if txRunner == nil {
		return nil, errors.New("txRunner cannot be nil")
	}
	if deckStore == nil {
		return nil, errors.New("deckStore cannot be nil")
	}
	if flashcardStore == nil {
		return nil, errors.New("flashcardStore cannot be nil")
	}
	if historyStore == nil {
		return nil, errors.New("historyStore cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if callTimeout <= 0 {
		return nil, errors.New("callTimeout must be positive")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &generationServiceImpl{
		txRunner:       txRunner,
		deckStore:      deckStore,
		flashcardStore: flashcardStore,
		historyStore:   historyStore,
		generator:      generator,
		modelName:      modelName,
		callTimeout:    callTimeout,
		logger:         logger.With(slog.String("component", "generation_service")),
	}, nil
}

// GenerateAndStore implements GenerationService.GenerateAndStore.
func (s *generationServiceImpl) GenerateAndStore(
	ctx context.Context,
	userID uuid.UUID,
	req *domain.GenerationRequest,
) (*GenerationOutcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, newGenerationServiceError("generate_and_store", "invalid input",
			errors.New("user ID cannot be nil"))
	}
	if req == nil {
		return nil, newGenerationServiceError("generate_and_store", "invalid input",
			errors.New("request cannot be nil"))
	}

	log.Info("starting flashcard generation",
		slog.String("user_id", userID.String()),
		slog.String("mode", string(req.Mode)),
		slog.Int("count", req.Count),
		slog.Int("input_chars", len(req.Text)),
		slog.Bool("target_deck", req.TargetDeckID != nil))

	// The provider call is the one blocking point per request; bound it so
	// a stalled provider cannot hold the request open indefinitely.
	genCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	result, err := s.generator.GenerateCards(genCtx, req)
	if err != nil {
		return nil, newGenerationServiceError("generate_cards",
			"provider call failed", err)
	}

	outcome, err := s.persistResult(ctx, userID, req, result)
	if err != nil {
		return nil, err
	}

	log.Info("flashcard generation completed",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", outcome.Deck.ID.String()),
		slog.Int("cards_stored", outcome.CardsStored))
	return outcome, nil
}

// persistResult is the persistence coordinator: it resolves or creates the
// deck and writes all flashcards plus the audit record in one transaction.
// Deck creation and every insert commit together; any failure rolls the
// whole operation back, so no deck is ever left with a partial card set.
func (s *generationServiceImpl) persistResult(
	ctx context.Context,
	userID uuid.UUID,
	req *domain.GenerationRequest,
	result *domain.GenerationResult,
) (*GenerationOutcome, error) {
	var outcome *GenerationOutcome

	err := s.txRunner(ctx, func(ctx context.Context, tx *sql.Tx) error {
		deckStore := s.deckStore.WithTx(tx)
		flashcardStore := s.flashcardStore.WithTx(tx)
		historyStore := s.historyStore.WithTx(tx)

		var deck *domain.Deck
		var err error

		if req.TargetDeckID != nil {
			deck, err = deckStore.GetByIDAndOwner(ctx, *req.TargetDeckID, userID)
			if err != nil {
				return err
			}
		} else {
			deck, err = domain.NewGeneratedDeck(userID, result.Summary)
			if err != nil {
				return err
			}
			if err := deckStore.Create(ctx, deck); err != nil {
				return err
			}
		}

		cards := make([]*domain.Flashcard, 0, len(result.Cards))
		for _, draft := range result.Cards {
			card, err := domain.NewFlashcardFromDraft(userID, deck.ID, draft)
			if err != nil {
				return err
			}
			cards = append(cards, card)
		}

		if err := flashcardStore.CreateMultiple(ctx, cards); err != nil {
			return err
		}

		record := &store.GenerationRecord{
			ID:             uuid.New(),
			UserID:         userID,
			InputChars:     len(req.Text),
			ModelUsed:      s.modelName,
			GeneratedCards: len(cards),
			CreatedAt:      time.Now().UTC(),
		}
		if err := historyStore.Create(ctx, record); err != nil {
			return err
		}

		outcome = &GenerationOutcome{
			Deck:        deck,
			CardsStored: len(cards),
			Summary:     result.Summary,
		}
		return nil
	})
	if err != nil {
		return nil, newGenerationServiceError("persist_result",
			"failed to store generation result", err)
	}

	return outcome, nil
}
