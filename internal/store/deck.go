package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/flashai/flashai-api/internal/domain"
)

// DeckStore defines the interface for deck data persistence.
type DeckStore interface {
	// Create saves a new deck to the store.
	// Returns validation errors from the domain Deck if data is invalid,
	// or ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByIDAndOwner retrieves a deck by its ID, constrained to the given
	// owner. Returns ErrDeckNotFound if the deck does not exist or belongs
	// to a different user. Ownership is checked in the query itself so a
	// foreign deck is indistinguishable from a missing one.
	GetByIDAndOwner(ctx context.Context, id, userID uuid.UUID) (*domain.Deck, error)

	// ListByOwner retrieves all decks owned by the given user,
	// newest first.
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)

	// UpdateSharing persists the deck's sharing flag and link.
	// Returns ErrDeckNotFound if the deck does not exist.
	UpdateSharing(ctx context.Context, deck *domain.Deck) error

	// WithTx returns a new DeckStore instance that uses the provided
	// transaction. Used with RunInTransaction for atomic multi-store writes.
	WithTx(tx *sql.Tx) DeckStore
}
