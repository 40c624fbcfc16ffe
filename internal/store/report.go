package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
)

// ErrorReportStore persists client error reports.
type ErrorReportStore interface {
	Create(ctx context.Context, report *domain.ErrorReport) error

	// ListByUser returns the reports filed by userID, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, page Page) ([]*domain.ErrorReport, error)
}

// FileStore persists uploaded file metadata. The bytes themselves live in
// a blob directory managed by the file service.
type FileStore interface {
	Create(ctx context.Context, file *domain.File) error

	// GetByID returns ErrFileNotFound if the file does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error)

	ListByUser(ctx context.Context, userID uuid.UUID, page Page) ([]*domain.File, error)
}
