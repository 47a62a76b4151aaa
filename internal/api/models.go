package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// GenerateRequest defines the payload for the raw-text generation endpoint.
type GenerateRequest struct {
	// Text is the source material the flashcards are generated from.
	Text string `json:"text" validate:"required,min=1"`

	// Count is the number of cards to generate; zero means the default.
	Count int `json:"count" validate:"omitempty,min=1,max=50"`

	// Mode is the question format. Unrecognized values fall back to
	// open-ended rather than failing the request.
	Mode string `json:"mode"`

	// Difficulty is easy, intermediate, or advanced. Empty means intermediate.
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy intermediate advanced"`

	// IncludeSummary asks the model for a short summary of the source text.
	IncludeSummary bool `json:"include_summary"`

	// DeckID, when set, stores the cards into an existing deck instead of
	// creating a new one.
	DeckID *uuid.UUID `json:"deck_id,omitempty"`
}

// GenerateResponse defines the successful response for generation endpoints.
type GenerateResponse struct {
	DeckID      uuid.UUID `json:"deck_id"`
	DeckName    string    `json:"deck_name"`
	CardsStored int       `json:"cards_stored"`
	Summary     string    `json:"summary,omitempty"`
}

// DeckResponse represents the response data for a deck.
type DeckResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	IsShared    bool      `json:"is_shared"`
	SharedLink  string    `json:"shared_link,omitempty"`
	CardCount   int       `json:"card_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FlashcardResponse represents the response data for a single flashcard.
type FlashcardResponse struct {
	ID        uuid.UUID         `json:"id"`
	Question  string            `json:"question"`
	Answer    *string           `json:"answer"`
	Options   map[string]string `json:"options,omitempty"`
	Source    string            `json:"source,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ShareDeckResponse defines the successful response for the share endpoint.
type ShareDeckResponse struct {
	ID         uuid.UUID `json:"id"`
	IsShared   bool      `json:"is_shared"`
	SharedLink string    `json:"shared_link"`
}

// DeckWithCardsResponse is a deck together with its flashcards.
type DeckWithCardsResponse struct {
	DeckResponse
	Cards []FlashcardResponse `json:"cards"`
}
