package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user. The user must already carry a password hash.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their (normalized) email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update writes the profile fields and points of an existing user.
	// Email and password are not touched.
	Update(ctx context.Context, user *domain.User) error

	// UpdatePoints sets only the points balance.
	UpdatePoints(ctx context.Context, id uuid.UUID, puntos int) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error

	// WithTx returns a UserStore bound to tx.
	WithTx(tx *sql.Tx) UserStore
}
