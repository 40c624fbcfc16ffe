package store

import (
	"context"
	"time"
)

// RevokedTokenStore records revoked refresh tokens by their JWT ID until
// the token would have expired anyway.
type RevokedTokenStore interface {
	// Revoke marks jti as revoked until expiresAt. It reports true only for
	// the call that revoked the token first; revoking twice is not an error.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) (bool, error)

	// IsRevoked reports whether jti has been revoked and has not yet expired.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
