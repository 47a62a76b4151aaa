package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Flashcard-specific validation errors
var (
	// ErrFlashcardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrFlashcardIDEmpty = errors.New("flashcard ID cannot be empty")

	// ErrFlashcardUserIDEmpty is returned when a flashcard's user ID is empty or nil.
	ErrFlashcardUserIDEmpty = errors.New("flashcard user ID cannot be empty")

	// ErrFlashcardDeckIDEmpty is returned when a flashcard's deck ID is empty or nil.
	ErrFlashcardDeckIDEmpty = errors.New("flashcard deck ID cannot be empty")

	// ErrFlashcardQuestionEmpty is returned when a flashcard's question is empty.
	ErrFlashcardQuestionEmpty = errors.New("flashcard question cannot be empty")
)

// SourceAI labels flashcards created by the generation pipeline.
const SourceAI = "ai"

// Flashcard represents a stored flashcard owned by a user within a deck.
// Answer is nil for cards whose mode carries no single answer string;
// Options is nil for everything but multiple choice. Rows are never updated
// by the generation subsystem after creation.
type Flashcard struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	DeckID    uuid.UUID         `json:"deck_id"`
	Question  string            `json:"question"`
	Answer    *string           `json:"answer"`
	Options   map[string]string `json:"options"`
	Source    string            `json:"source,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewFlashcardFromDraft materializes a draft into a Flashcard owned by the
// given user and deck. The stored answer follows the draft's derivation rule
// (label only for multiple choice) and options are carried verbatim.
func NewFlashcardFromDraft(userID, deckID uuid.UUID, draft FlashcardDraft) (*Flashcard, error) {
	card := &Flashcard{
		ID:        uuid.New(),
		UserID:    userID,
		DeckID:    deckID,
		Question:  draft.Question,
		Options:   draft.Options,
		Source:    SourceAI,
		CreatedAt: time.Now().UTC(),
	}

	if answer := draft.StoredAnswer(); answer != "" {
		card.Answer = &answer
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}

	if f.UserID == uuid.Nil {
		return ErrFlashcardUserIDEmpty
	}

	if f.DeckID == uuid.Nil {
		return ErrFlashcardDeckIDEmpty
	}

	if strings.TrimSpace(f.Question) == "" {
		return ErrFlashcardQuestionEmpty
	}

	return nil
}

// OptionsJSON returns the options serialized for the JSONB column,
// or nil when the card has no options.
func (f *Flashcard) OptionsJSON() (json.RawMessage, error) {
	if len(f.Options) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(f.Options)
	if err != nil {
		return nil, err
	}
	return data, nil
}
