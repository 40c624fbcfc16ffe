package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	CreateFn         func(ctx context.Context, user *domain.User) error
	GetByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateFn         func(ctx context.Context, user *domain.User) error
	UpdatePointsFn   func(ctx context.Context, id uuid.UUID, puntos int) error
	UpdatePasswordFn func(ctx context.Context, id uuid.UUID, hashedPassword string) error

	// Users is keyed by email.
	Users      map[string]*domain.User
	LastUserID uuid.UUID
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Add stores user directly, bypassing Create.
func (m *MockUserStore) Add(user *domain.User) {
	m.Users[user.Email] = user
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}
	m.Users[user.Email] = user
	m.LastUserID = user.ID
	return nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	user, exists := m.Users[domain.NormalizeEmail(email)]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return clone(user), nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	user, ok := m.find(id)
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return clone(user), nil
}

func (m *MockUserStore) find(id uuid.UUID) (*domain.User, bool) {
	for _, user := range m.Users {
		if user.ID == id {
			return user, true
		}
	}
	return nil, false
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	for email, existing := range m.Users {
		if existing.ID == user.ID {
			m.Users[email] = user
			return nil
		}
	}
	return store.ErrUserNotFound
}

// UpdatePoints implements the UserStore interface
func (m *MockUserStore) UpdatePoints(ctx context.Context, id uuid.UUID, puntos int) error {
	if m.UpdatePointsFn != nil {
		return m.UpdatePointsFn(ctx, id, puntos)
	}
	user, ok := m.find(id)
	if !ok {
		return store.ErrUserNotFound
	}
	user.Puntos = puntos
	return nil
}

// UpdatePassword implements the UserStore interface
func (m *MockUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, id, hashedPassword)
	}
	user, ok := m.find(id)
	if !ok {
		return store.ErrUserNotFound
	}
	user.HashedPassword = hashedPassword
	return nil
}

// WithTx returns the same mock.
func (m *MockUserStore) WithTx(_ *sql.Tx) store.UserStore {
	return m
}
