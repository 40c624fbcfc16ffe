package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// UserLookup finds a stored user by normalized email.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CredentialValidator checks email/password pairs against stored users.
type CredentialValidator struct {
	users  UserLookup
	hasher PasswordHasher
	logger *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewCredentialValidator creates a validator.
func NewCredentialValidator(users UserLookup, hasher PasswordHasher, logger *slog.Logger) *CredentialValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialValidator{
		users:  users,
		hasher: hasher,
		logger: logger.With(slog.String("component", "credential_validator")),
	}
}

// Validate returns the stored user when email and password match.
// A missing field yields a *domain.ValidationError; an unknown email and a
// wrong password both yield ErrInvalidCredentials.
func (v *CredentialValidator) Validate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, v.logger)

	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.MissingField("email")
	}
	if password == "" {
		return nil, domain.MissingField("password")
	}

	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Burn a comparison so response time does not reveal whether the account exists.
			_ = v.hasher.Compare(v.placeholderHash(), password)
			log.Debug("login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := v.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login attempt with wrong password", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (v *CredentialValidator) placeholderHash() string {
	v.dummyOnce.Do(func() {
		hash, err := v.hasher.Hash("quickrecap-placeholder-password")
		if err != nil {
			v.logger.Warn("failed to prepare placeholder hash", slog.String("error", err.Error()))
			return
		}
		v.dummyHash = hash
	})
	return v.dummyHash
}
