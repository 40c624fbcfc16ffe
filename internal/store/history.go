package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
)

// HistoryStore persists play records.
type HistoryStore interface {
	// Create saves a play record.
	// Returns ErrInvalidEntity if the activity or user does not exist.
	Create(ctx context.Context, history *domain.History) error

	// ListByUser returns userID's plays, newest first, each joined with the
	// activity's current name and type.
	ListByUser(ctx context.Context, userID uuid.UUID, page Page) ([]*domain.HistoryEntry, error)

	// WithTx returns a HistoryStore bound to tx.
	WithTx(tx *sql.Tx) HistoryStore
}
