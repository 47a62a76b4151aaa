package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/flashai/flashai-api/internal/domain"
	"github.com/flashai/flashai-api/internal/platform/logger"
	"github.com/flashai/flashai-api/internal/store"
)

// PostgreSQL error codes
const (
	pgForeignKeyViolationCode = "23503"
	pgUniqueViolationCode     = "23505"
)

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the
// DeckStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// WithTx returns a new DeckStore bound to the provided transaction.
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.DeckStore.Create
// It saves a new deck to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the owning user doesn't exist
// (foreign key violation).
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during create",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO decks (id, user_id, name, description, summary, is_shared, shared_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		deck.ID,
		deck.UserID,
		deck.Name,
		nullableString(deck.Description),
		nullableString(deck.Summary),
		deck.IsShared,
		nullableString(deck.SharedLink),
		deck.CreatedAt,
		deck.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode {
			log.Warn("foreign key violation during deck creation",
				slog.String("error", err.Error()),
				slog.String("deck_id", deck.ID.String()),
				slog.String("user_id", deck.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, deck.UserID)
		}

		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()),
			slog.String("user_id", deck.UserID.String()))
		return store.NewStoreError("deck", "create", "database error", err)
	}

	log.Info("deck created successfully",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", deck.UserID.String()),
		slog.String("name", deck.Name))
	return nil
}

// GetByIDAndOwner implements store.DeckStore.GetByIDAndOwner
// It retrieves a deck by its unique ID, constrained to the given owner.
// Returns store.ErrDeckNotFound if no matching deck exists.
func (s *PostgresDeckStore) GetByIDAndOwner(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving deck by ID and owner",
		slog.String("deck_id", id.String()),
		slog.String("user_id", userID.String()))

	query := `
		SELECT id, user_id, name, description, summary, is_shared, shared_link, created_at, updated_at
		FROM decks
		WHERE id = $1 AND user_id = $2
	`

	deck, err := scanDeck(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck by ID",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, store.NewStoreError("deck", "get", "database error", err)
	}

	return deck, nil
}

// ListByOwner implements store.DeckStore.ListByOwner
// It retrieves all decks owned by the given user, newest first.
func (s *PostgresDeckStore) ListByOwner(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, description, summary, is_shared, shared_link, created_at, updated_at
		FROM decks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list decks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("deck", "list", "database error", err)
	}
	defer func() { _ = rows.Close() }()

	var decks []*domain.Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, store.NewStoreError("deck", "list", "row scan failed", err)
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("deck", "list", "row iteration failed", err)
	}

	return decks, nil
}

// UpdateSharing implements store.DeckStore.UpdateSharing
// It persists the deck's sharing flag and link.
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) UpdateSharing(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE decks
		SET is_shared = $1, shared_link = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		deck.IsShared,
		nullableString(deck.SharedLink),
		deck.UpdatedAt,
		deck.ID,
		deck.UserID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return fmt.Errorf("%w: shared link already in use", store.ErrDuplicate)
		}
		log.Error("failed to update deck sharing",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return store.NewStoreError("deck", "update_sharing", "database error", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("deck", "update_sharing", "rows affected unavailable", err)
	}
	if affected == 0 {
		return store.ErrDeckNotFound
	}

	log.Info("deck sharing updated",
		slog.String("deck_id", deck.ID.String()),
		slog.Bool("is_shared", deck.IsShared))
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanDeck.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDeck reads one deck row, converting nullable columns back to
// empty-string fields on the domain entity.
func scanDeck(row rowScanner) (*domain.Deck, error) {
	var deck domain.Deck
	var description, summary, sharedLink sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&deck.ID,
		&deck.UserID,
		&deck.Name,
		&description,
		&summary,
		&deck.IsShared,
		&sharedLink,
		&deck.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	deck.Description = description.String
	deck.Summary = summary.String
	deck.SharedLink = sharedLink.String
	if updatedAt.Valid {
		deck.UpdatedAt = updatedAt.Time
	}

	return &deck, nil
}

// nullableString maps empty strings to SQL NULL.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
