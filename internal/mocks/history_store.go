package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// MockHistoryStore implements store.HistoryStore for testing. ListByUser
// joins against Activities like the real store does.
type MockHistoryStore struct {
	CreateFn func(ctx context.Context, history *domain.History) error

	Records    []*domain.History
	Activities *MockActivityStore
}

// NewMockHistoryStore creates a history mock that reads activity names from activities.
func NewMockHistoryStore(activities *MockActivityStore) *MockHistoryStore {
	return &MockHistoryStore{Activities: activities}
}

var _ store.HistoryStore = (*MockHistoryStore)(nil)

// Create implements store.HistoryStore
func (m *MockHistoryStore) Create(ctx context.Context, history *domain.History) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, history)
	}
	if m.Activities != nil {
		if _, ok := m.Activities.Activities[history.ActivityID]; !ok {
			return store.ErrInvalidEntity
		}
	}
	m.Records = append(m.Records, history)
	return nil
}

// ListByUser implements store.HistoryStore
func (m *MockHistoryStore) ListByUser(_ context.Context, userID uuid.UUID, _ store.Page) ([]*domain.HistoryEntry, error) {
	out := make([]*domain.HistoryEntry, 0)
	for i := len(m.Records) - 1; i >= 0; i-- {
		h := m.Records[i]
		if h.UserID != userID {
			continue
		}
		entry := &domain.HistoryEntry{History: *h}
		if m.Activities != nil {
			a, ok := m.Activities.Activities[h.ActivityID]
			if !ok {
				continue
			}
			entry.NombreActividad = a.Nombre
			entry.TipoActividad = a.TipoActividad
		}
		out = append(out, entry)
	}
	return out, nil
}

// WithTx returns the same mock.
func (m *MockHistoryStore) WithTx(_ *sql.Tx) store.HistoryStore {
	return m
}
