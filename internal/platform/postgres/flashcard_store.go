package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/flashai/flashai-api/internal/domain"
	"github.com/flashai/flashai-api/internal/platform/logger"
	"github.com/flashai/flashai-api/internal/store"
)

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the
// FlashcardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

// WithTx returns a new FlashcardStore bound to the provided transaction.
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{
		db:     tx,
		logger: s.logger,
	}
}

// CreateMultiple implements store.FlashcardStore.CreateMultiple
// It inserts one row per flashcard against the store's DBTX. Run it via
// WithTx inside store.RunInTransaction when the batch must be atomic with
// other writes; the deck and user must already exist or the insert fails
// with store.ErrInvalidEntity.
func (s *PostgresFlashcardStore) CreateMultiple(
	ctx context.Context,
	cards []*domain.Flashcard,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO flashcards (id, user_id, deck_id, question, answer, options, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			log.Warn("flashcard validation failed during create",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", card.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		optionsJSON, err := card.OptionsJSON()
		if err != nil {
			return fmt.Errorf("%w: failed to serialize options: %v",
				store.ErrInvalidEntity, err)
		}

		var answer sql.NullString
		if card.Answer != nil {
			answer = sql.NullString{String: *card.Answer, Valid: true}
		}

		_, err = s.db.ExecContext(
			ctx,
			query,
			card.ID,
			card.UserID,
			card.DeckID,
			card.Question,
			answer,
			nullableJSON(optionsJSON),
			nullableString(card.Source),
			card.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode {
				log.Warn("foreign key violation during flashcard creation",
					slog.String("error", err.Error()),
					slog.String("flashcard_id", card.ID.String()),
					slog.String("deck_id", card.DeckID.String()))
				return fmt.Errorf("%w: deck or user for flashcard %s not found",
					store.ErrInvalidEntity, card.ID)
			}

			log.Error("failed to create flashcard",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", card.ID.String()))
			return store.NewStoreError("flashcard", "create", "database error", err)
		}
	}

	log.Info("flashcards created successfully",
		slog.Int("count", len(cards)))
	return nil
}

// CountByDeck implements store.FlashcardStore.CountByDeck
func (s *PostgresFlashcardStore) CountByDeck(ctx context.Context, deckID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM flashcards WHERE deck_id = $1`, deckID).Scan(&count)
	if err != nil {
		return 0, store.NewStoreError("flashcard", "count", "database error", err)
	}
	return count, nil
}

// ListByDeck implements store.FlashcardStore.ListByDeck
// It retrieves all flashcards in a deck in creation order.
func (s *PostgresFlashcardStore) ListByDeck(
	ctx context.Context,
	deckID uuid.UUID,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, deck_id, question, answer, options, source, created_at
		FROM flashcards
		WHERE deck_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		log.Error("failed to list flashcards",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, store.NewStoreError("flashcard", "list", "database error", err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.Flashcard
	for rows.Next() {
		var card domain.Flashcard
		var answer, source sql.NullString
		var optionsJSON []byte

		err := rows.Scan(
			&card.ID,
			&card.UserID,
			&card.DeckID,
			&card.Question,
			&answer,
			&optionsJSON,
			&source,
			&card.CreatedAt,
		)
		if err != nil {
			return nil, store.NewStoreError("flashcard", "list", "row scan failed", err)
		}

		if answer.Valid {
			card.Answer = &answer.String
		}
		card.Source = source.String
		if len(optionsJSON) > 0 {
			if err := json.Unmarshal(optionsJSON, &card.Options); err != nil {
				return nil, fmt.Errorf("failed to decode options for flashcard %s: %w",
					card.ID, err)
			}
		}

		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("flashcard", "list", "row iteration failed", err)
	}

	return cards, nil
}

// nullableJSON maps empty JSON payloads to SQL NULL.
func nullableJSON(data json.RawMessage) any {
	if len(data) == 0 {
		return nil
	}
	return []byte(data)
}
