package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/flashai/flashai-api/internal/domain"
)

// FlashcardStore defines the interface for flashcard data persistence.
type FlashcardStore interface {
	// CreateMultiple saves a batch of flashcards. Callers who need the batch
	// to be atomic with other writes run it inside RunInTransaction via
	// WithTx; the method itself issues one insert per card against whatever
	// DBTX it was built with.
	CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error

	// CountByDeck returns the number of flashcards stored in the given deck.
	CountByDeck(ctx context.Context, deckID uuid.UUID) (int, error)

	// ListByDeck retrieves all flashcards in a deck in creation order.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Flashcard, error)

	// WithTx returns a new FlashcardStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) FlashcardStore
}
