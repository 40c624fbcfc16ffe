package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/quickrecap/quickrecap-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "quickrecap:revoked:"

// commands is the subset of the go-redis API the token store uses.
type commands interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
	Exists(ctx context.Context, keys ...string) *goredis.IntCmd
}

// RevokedTokenStore keeps revoked refresh token IDs as Redis keys that
// expire together with the token.
type RevokedTokenStore struct {
	client commands
	logger *slog.Logger
	now    func() time.Time
}

// NewRevokedTokenStore creates a revocation list on client.
func NewRevokedTokenStore(client goredis.Cmdable, logger *slog.Logger) *RevokedTokenStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return newRevokedTokenStore(client, logger)
}

func newRevokedTokenStore(client commands, logger *slog.Logger) *RevokedTokenStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RevokedTokenStore{
		client: client,
		logger: logger.With(slog.String("component", "redis_token_store")),
		now:    time.Now,
	}
}

var _ store.RevokedTokenStore = (*RevokedTokenStore)(nil)

// Revoke implements store.RevokedTokenStore.Revoke
func (s *RevokedTokenStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		// Already expired; validation rejects it anyway.
		return false, nil
	}

	first, err := s.client.SetNX(ctx, revokedKeyPrefix+jti, 1, ttl).Result()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to revoke token", slog.String("error", err.Error()))
		return false, store.NewStoreError("revoked_token", "revoke", "redis SETNX failed", err)
	}
	return first, nil
}

// IsRevoked implements store.RevokedTokenStore.IsRevoked
func (s *RevokedTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, store.NewStoreError("revoked_token", "check", "redis EXISTS failed", err)
	}
	return n > 0, nil
}
