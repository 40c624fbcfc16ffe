package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/quickrecap/quickrecap-api/internal/store"
)

// PostgresRevokedTokenStore implements store.RevokedTokenStore on PostgreSQL.
// It is used when no Redis instance is configured.
type PostgresRevokedTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRevokedTokenStore creates a revocation list on db.
func NewPostgresRevokedTokenStore(db store.DBTX, logger *slog.Logger) *PostgresRevokedTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRevokedTokenStore{
		db:     db,
		logger: logger.With(slog.String("component", "revoked_token_store")),
	}
}

var _ store.RevokedTokenStore = (*PostgresRevokedTokenStore)(nil)

// Revoke implements store.RevokedTokenStore.Revoke
func (s *PostgresRevokedTokenStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO revoked_tokens (jti, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (jti) DO NOTHING
	`, jti, expiresAt.UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to revoke token", slog.String("error", err.Error()))
		return false, store.NewStoreError("revoked_token", "revoke", "insert failed", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, store.NewStoreError("revoked_token", "revoke", "rows affected unavailable", err)
	}
	return n == 1, nil
}

// IsRevoked implements store.RevokedTokenStore.IsRevoked
func (s *PostgresRevokedTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1 AND expires_at > NOW())`, jti,
	).Scan(&revoked)
	if err != nil {
		return false, store.NewStoreError("revoked_token", "check", "query failed", err)
	}
	return revoked, nil
}

// PurgeExpired deletes revocations whose tokens have expired.
func (s *PostgresRevokedTokenStore) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, store.NewStoreError("revoked_token", "purge", "delete failed", err)
	}
	return result.RowsAffected()
}
