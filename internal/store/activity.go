package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
)

// ActivityStore defines the interface for activity persistence.
type ActivityStore interface {
	// Create saves a new activity.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, activity *domain.Activity) error

	// GetByID returns ErrActivityNotFound if the activity does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error)

	// ListByUser returns the activities owned by userID, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, page Page) ([]*domain.Activity, error)

	// ListPublic returns activities whose privado flag is false, newest first.
	ListPublic(ctx context.Context, page Page) ([]*domain.Activity, error)

	// RecordPlay bumps the play count, raises the max score to correct when
	// higher and marks the activity completed, in one statement.
	RecordPlay(ctx context.Context, id uuid.UUID, correct int) error

	// Delete removes the activity; favorites, ratings and history cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns an ActivityStore bound to tx.
	WithTx(tx *sql.Tx) ActivityStore
}
