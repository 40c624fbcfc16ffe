package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/quickrecap/quickrecap-api/internal/store"
)

// MockRevokedTokenStore implements store.RevokedTokenStore for testing.
// It is safe for concurrent use.
type MockRevokedTokenStore struct {
	IsRevokedFn func(ctx context.Context, jti string) (bool, error)
	RevokeErr   error

	mu      sync.Mutex
	Revoked map[string]time.Time
}

// NewMockRevokedTokenStore creates an empty revocation list.
func NewMockRevokedTokenStore() *MockRevokedTokenStore {
	return &MockRevokedTokenStore{Revoked: make(map[string]time.Time)}
}

var _ store.RevokedTokenStore = (*MockRevokedTokenStore)(nil)

// Revoke implements store.RevokedTokenStore
func (m *MockRevokedTokenStore) Revoke(_ context.Context, jti string, expiresAt time.Time) (bool, error) {
	if m.RevokeErr != nil {
		return false, m.RevokeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Revoked[jti]; ok {
		return false, nil
	}
	m.Revoked[jti] = expiresAt
	return true, nil
}

// IsRevoked implements store.RevokedTokenStore
func (m *MockRevokedTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if m.IsRevokedFn != nil {
		return m.IsRevokedFn(ctx, jti)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Revoked[jti]
	return ok, nil
}
