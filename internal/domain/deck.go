package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Deck-specific validation errors
var (
	// ErrDeckIDEmpty is returned when a deck ID is empty or nil.
	ErrDeckIDEmpty = errors.New("deck ID cannot be empty")

	// ErrDeckUserIDEmpty is returned when a deck's user ID is empty or nil.
	ErrDeckUserIDEmpty = errors.New("deck user ID cannot be empty")

	// ErrDeckNameEmpty is returned when a deck's name is empty.
	ErrDeckNameEmpty = errors.New("deck name cannot be empty")
)

// Deck represents a named, owned collection of flashcards.
type Deck struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	IsShared    bool      `json:"is_shared"`
	SharedLink  string    `json:"shared_link,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDeck creates a new Deck owned by the given user.
// It generates a new UUID for the deck ID and sets the timestamps.
// Returns an error if validation fails.
func NewDeck(userID uuid.UUID, name string) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// NewGeneratedDeck creates a Deck to hold AI-generated flashcards.
// The name is Deck_<UTC date as YYYYMMDD>_<8 hex chars of a fresh random id>,
// so two decks created on the same day still get distinct names.
// The summary comes from the generation result and may be empty.
func NewGeneratedDeck(userID uuid.UUID, summary string) (*Deck, error) {
	name := fmt.Sprintf("Deck_%s_%s",
		time.Now().UTC().Format("20060102"),
		uuid.New().String()[:8])

	deck, err := NewDeck(userID, name)
	if err != nil {
		return nil, err
	}
	deck.Summary = summary
	return deck, nil
}

// Validate checks if the Deck has valid data.
// Returns an error if any field fails validation.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if d.UserID == uuid.Nil {
		return ErrDeckUserIDEmpty
	}

	if strings.TrimSpace(d.Name) == "" {
		return ErrDeckNameEmpty
	}

	return nil
}

// Share marks the deck as shared, generating a share link identifier on
// first use. Re-sharing an already shared deck keeps the existing link.
func (d *Deck) Share() {
	if d.IsShared {
		return
	}
	d.SharedLink = uuid.New().String()
	d.IsShared = true
	d.UpdatedAt = time.Now().UTC()
}
