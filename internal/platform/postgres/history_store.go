package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/flashai/flashai-api/internal/platform/logger"
	"github.com/flashai/flashai-api/internal/store"
)

// PostgresHistoryStore implements the store.HistoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresHistoryStore creates a new PostgreSQL implementation of the
// HistoryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresHistoryStore(db store.DBTX, logger *slog.Logger) *PostgresHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "history_store")),
	}
}

// Ensure PostgresHistoryStore implements store.HistoryStore interface
var _ store.HistoryStore = (*PostgresHistoryStore)(nil)

// WithTx returns a new HistoryStore bound to the provided transaction.
func (s *PostgresHistoryStore) WithTx(tx *sql.Tx) store.HistoryStore {
	return &PostgresHistoryStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.HistoryStore.Create
func (s *PostgresHistoryStore) Create(ctx context.Context, record *store.GenerationRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO ai_history (id, user_id, input_chars, model_used, generated_flashcards, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		record.ID,
		record.UserID,
		record.InputChars,
		record.ModelUsed,
		record.GeneratedCards,
		record.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create generation record",
			slog.String("error", err.Error()),
			slog.String("record_id", record.ID.String()))
		return store.NewStoreError("generation_record", "create", "database error", err)
	}

	log.Debug("generation record created",
		slog.String("record_id", record.ID.String()),
		slog.Int("generated_flashcards", record.GeneratedCards))
	return nil
}
