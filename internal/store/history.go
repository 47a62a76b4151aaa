package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// GenerationRecord is one audit row describing a completed generation call.
type GenerationRecord struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	InputChars     int
	ModelUsed      string
	GeneratedCards int
	CreatedAt      time.Time
}

// HistoryStore records an audit trail of generation calls.
type HistoryStore interface {
	// Create saves a generation record. Written in the same transaction as
	// the cards it describes.
	Create(ctx context.Context, record *GenerationRecord) error

	// WithTx returns a new HistoryStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) HistoryStore
}
