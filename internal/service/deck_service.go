package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/flashai/flashai-api/internal/domain"
	"github.com/flashai/flashai-api/internal/platform/logger"
	"github.com/flashai/flashai-api/internal/store"
)

// DeckWithCount pairs a deck with its flashcard count for listings.
type DeckWithCount struct {
	Deck      *domain.Deck
	CardCount int
}

// DeckWithCards is a deck together with all of its flashcards.
type DeckWithCards struct {
	Deck  *domain.Deck
	Cards []*domain.Flashcard
}

// DeckService exposes read and sharing operations on a user's decks.
type DeckService interface {
	// ListDecks returns the user's decks, newest first, with card counts.
	ListDecks(ctx context.Context, userID uuid.UUID) ([]DeckWithCount, error)

	// GetDeckWithCards returns one owned deck and its cards.
	// Returns ErrDeckNotFound if the deck does not exist or is not owned
	// by the user.
	GetDeckWithCards(ctx context.Context, userID, deckID uuid.UUID) (*DeckWithCards, error)

	// ShareDeck marks an owned deck as shared and returns it with its
	// share link set. Sharing an already-shared deck is a no-op that
	// returns the existing link.
	ShareDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error)
}

// deckServiceImpl implements the DeckService interface.
type deckServiceImpl struct {
	deckStore      store.DeckStore
	flashcardStore store.FlashcardStore
	logger         *slog.Logger
}

// NewDeckService creates a new DeckService.
// Returns an error if any required dependency is nil.
func NewDeckService(
	deckStore store.DeckStore,
	flashcardStore store.FlashcardStore,
	logger *slog.Logger,
) (DeckService, error) {
	if deckStore == nil {
		return nil, errors.New("deckStore cannot be nil")
	}
	if flashcardStore == nil {
		return nil, errors.New("flashcardStore cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &deckServiceImpl{
		deckStore:      deckStore,
		flashcardStore: flashcardStore,
		logger:         logger.With(slog.String("component", "deck_service")),
	}, nil
}

// ListDecks implements DeckService.ListDecks.
func (s *deckServiceImpl) ListDecks(
	ctx context.Context,
	userID uuid.UUID,
) ([]DeckWithCount, error) {
	decks, err := s.deckStore.ListByOwner(ctx, userID)
	if err != nil {
		return nil, newGenerationServiceError("list_decks", "failed to list decks", err)
	}

	result := make([]DeckWithCount, 0, len(decks))
	for _, deck := range decks {
		count, err := s.flashcardStore.CountByDeck(ctx, deck.ID)
		if err != nil {
			return nil, newGenerationServiceError("list_decks",
				"failed to count deck cards", err)
		}
		result = append(result, DeckWithCount{Deck: deck, CardCount: count})
	}

	return result, nil
}

// GetDeckWithCards implements DeckService.GetDeckWithCards.
func (s *deckServiceImpl) GetDeckWithCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
) (*DeckWithCards, error) {
	deck, err := s.deckStore.GetByIDAndOwner(ctx, deckID, userID)
	if err != nil {
		return nil, newGenerationServiceError("get_deck", "failed to load deck", err)
	}

	cards, err := s.flashcardStore.ListByDeck(ctx, deck.ID)
	if err != nil {
		return nil, newGenerationServiceError("get_deck", "failed to load deck cards", err)
	}

	return &DeckWithCards{Deck: deck, Cards: cards}, nil
}

// ShareDeck implements DeckService.ShareDeck.
func (s *deckServiceImpl) ShareDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.deckStore.GetByIDAndOwner(ctx, deckID, userID)
	if err != nil {
		return nil, newGenerationServiceError("share_deck", "failed to load deck", err)
	}

	if deck.IsShared {
		return deck, nil
	}

	deck.Share()
	if err := s.deckStore.UpdateSharing(ctx, deck); err != nil {
		return nil, newGenerationServiceError("share_deck",
			"failed to persist sharing state", err)
	}

	log.Info("deck shared",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", userID.String()))
	return deck, nil
}
