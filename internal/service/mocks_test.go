package service_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/flashai/flashai-api/internal/domain"
	"github.com/flashai/flashai-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxRunner invokes the callback directly and records whether the
// work "committed" (callback returned nil). The stores it pairs with are
// in-memory, so rollback is modeled as commit-never-happened.
type fakeTxRunner struct {
	calls     int
	committed bool
}

func (r *fakeTxRunner) run(ctx context.Context, fn store.TxFn) error {
	r.calls++
	err := fn(ctx, nil)
	if err == nil {
		r.committed = true
	}
	return err
}

// fakeDeckStore is an in-memory store.DeckStore.
type fakeDeckStore struct {
	decks map[uuid.UUID]*domain.Deck

	failCreate error
	created    []*domain.Deck
}

func newFakeDeckStore() *fakeDeckStore {
	return &fakeDeckStore{decks: make(map[uuid.UUID]*domain.Deck)}
}

func (s *fakeDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	if s.failCreate != nil {
		return s.failCreate
	}
	s.decks[deck.ID] = deck
	s.created = append(s.created, deck)
	return nil
}

func (s *fakeDeckStore) GetByIDAndOwner(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.Deck, error) {
	deck, ok := s.decks[id]
	if !ok || deck.UserID != userID {
		return nil, store.ErrDeckNotFound
	}
	return deck, nil
}

func (s *fakeDeckStore) ListByOwner(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Deck, error) {
	var result []*domain.Deck
	for _, deck := range s.decks {
		if deck.UserID == userID {
			result = append(result, deck)
		}
	}
	return result, nil
}

func (s *fakeDeckStore) UpdateSharing(ctx context.Context, deck *domain.Deck) error {
	if _, ok := s.decks[deck.ID]; !ok {
		return store.ErrDeckNotFound
	}
	s.decks[deck.ID] = deck
	return nil
}

func (s *fakeDeckStore) WithTx(tx *sql.Tx) store.DeckStore { return s }

// fakeFlashcardStore is an in-memory store.FlashcardStore.
type fakeFlashcardStore struct {
	cards map[uuid.UUID][]*domain.Flashcard

	failCreate error
}

func newFakeFlashcardStore() *fakeFlashcardStore {
	return &fakeFlashcardStore{cards: make(map[uuid.UUID][]*domain.Flashcard)}
}

func (s *fakeFlashcardStore) CreateMultiple(
	ctx context.Context,
	cards []*domain.Flashcard,
) error {
	if s.failCreate != nil {
		return s.failCreate
	}
	for _, card := range cards {
		s.cards[card.DeckID] = append(s.cards[card.DeckID], card)
	}
	return nil
}

func (s *fakeFlashcardStore) CountByDeck(ctx context.Context, deckID uuid.UUID) (int, error) {
	return len(s.cards[deckID]), nil
}

func (s *fakeFlashcardStore) ListByDeck(
	ctx context.Context,
	deckID uuid.UUID,
) ([]*domain.Flashcard, error) {
	return s.cards[deckID], nil
}

func (s *fakeFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore { return s }

// fakeHistoryStore is an in-memory store.HistoryStore.
type fakeHistoryStore struct {
	records []*store.GenerationRecord

	failCreate error
}

func (s *fakeHistoryStore) Create(ctx context.Context, record *store.GenerationRecord) error {
	if s.failCreate != nil {
		return s.failCreate
	}
	s.records = append(s.records, record)
	return nil
}

func (s *fakeHistoryStore) WithTx(tx *sql.Tx) store.HistoryStore { return s }

// stubGenerator returns a fixed result or error and counts invocations.
type stubGenerator struct {
	result *domain.GenerationResult
	err    error
	calls  int
}

func (g *stubGenerator) GenerateCards(
	ctx context.Context,
	req *domain.GenerationRequest,
) (*domain.GenerationResult, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

var errSimulated = errors.New("simulated store failure")
