package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// MockActivityStore implements store.ActivityStore for testing
type MockActivityStore struct {
	CreateFn     func(ctx context.Context, activity *domain.Activity) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	RecordPlayFn func(ctx context.Context, id uuid.UUID, correct int) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	Activities map[uuid.UUID]*domain.Activity
}

// NewMockActivityStore creates an empty mock store.
func NewMockActivityStore() *MockActivityStore {
	return &MockActivityStore{Activities: make(map[uuid.UUID]*domain.Activity)}
}

var _ store.ActivityStore = (*MockActivityStore)(nil)

// Create implements store.ActivityStore
func (m *MockActivityStore) Create(ctx context.Context, activity *domain.Activity) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, activity)
	}
	m.Activities[activity.ID] = activity
	return nil
}

// GetByID implements store.ActivityStore
func (m *MockActivityStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	a, ok := m.Activities[id]
	if !ok {
		return nil, store.ErrActivityNotFound
	}
	return clone(a), nil
}

// ListByUser implements store.ActivityStore
func (m *MockActivityStore) ListByUser(_ context.Context, userID uuid.UUID, page store.Page) ([]*domain.Activity, error) {
	return m.filter(page, func(a *domain.Activity) bool { return a.UserID == userID }), nil
}

// ListPublic implements store.ActivityStore
func (m *MockActivityStore) ListPublic(_ context.Context, page store.Page) ([]*domain.Activity, error) {
	return m.filter(page, func(a *domain.Activity) bool { return !a.Privado }), nil
}

func (m *MockActivityStore) filter(page store.Page, keep func(*domain.Activity) bool) []*domain.Activity {
	page = page.Normalize()
	out := make([]*domain.Activity, 0)
	for _, a := range m.Activities {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if page.Offset >= len(out) {
		return []*domain.Activity{}
	}
	out = out[page.Offset:]
	if len(out) > page.Limit {
		out = out[:page.Limit]
	}
	return out
}

// RecordPlay implements store.ActivityStore
func (m *MockActivityStore) RecordPlay(ctx context.Context, id uuid.UUID, correct int) error {
	if m.RecordPlayFn != nil {
		return m.RecordPlayFn(ctx, id, correct)
	}
	a, ok := m.Activities[id]
	if !ok {
		return store.ErrActivityNotFound
	}
	a.RecordPlay(correct)
	return nil
}

// Delete implements store.ActivityStore
func (m *MockActivityStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Activities[id]; !ok {
		return store.ErrActivityNotFound
	}
	delete(m.Activities, id)
	return nil
}

// WithTx returns the same mock.
func (m *MockActivityStore) WithTx(_ *sql.Tx) store.ActivityStore {
	return m
}
