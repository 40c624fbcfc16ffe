package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// MockErrorReportStore implements store.ErrorReportStore for testing
type MockErrorReportStore struct {
	CreateFn func(ctx context.Context, report *domain.ErrorReport) error
	Reports  []*domain.ErrorReport
}

var _ store.ErrorReportStore = (*MockErrorReportStore)(nil)

// Create implements store.ErrorReportStore
func (m *MockErrorReportStore) Create(ctx context.Context, report *domain.ErrorReport) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, report)
	}
	m.Reports = append(m.Reports, report)
	return nil
}

// ListByUser implements store.ErrorReportStore
func (m *MockErrorReportStore) ListByUser(_ context.Context, userID uuid.UUID, _ store.Page) ([]*domain.ErrorReport, error) {
	out := make([]*domain.ErrorReport, 0)
	for _, r := range m.Reports {
		if r.UserID != nil && *r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// MockFileStore implements store.FileStore for testing
type MockFileStore struct {
	CreateFn func(ctx context.Context, file *domain.File) error
	Files    map[uuid.UUID]*domain.File
}

// NewMockFileStore creates an empty mock store.
func NewMockFileStore() *MockFileStore {
	return &MockFileStore{Files: make(map[uuid.UUID]*domain.File)}
}

var _ store.FileStore = (*MockFileStore)(nil)

// Create implements store.FileStore
func (m *MockFileStore) Create(ctx context.Context, file *domain.File) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, file)
	}
	m.Files[file.ID] = file
	return nil
}

// GetByID implements store.FileStore
func (m *MockFileStore) GetByID(_ context.Context, id uuid.UUID) (*domain.File, error) {
	f, ok := m.Files[id]
	if !ok {
		return nil, store.ErrFileNotFound
	}
	return f, nil
}

// ListByUser implements store.FileStore
func (m *MockFileStore) ListByUser(_ context.Context, userID uuid.UUID, _ store.Page) ([]*domain.File, error) {
	out := make([]*domain.File, 0)
	for _, f := range m.Files {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}
