package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/events"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// TokenPair is the result of a successful login, registration or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Service implements registration, login, token refresh, logout and
// password change on top of the stores and the token subsystem.
type Service struct {
	users       store.UserStore
	hasher      PasswordHasher
	credentials *CredentialValidator
	tokens      JWTService
	revoked     store.RevokedTokenStore
	emitter     events.EventEmitter
	db          store.TxBeginner
	logger      *slog.Logger
}

// Deps groups the collaborators of Service.
type Deps struct {
	Users   store.UserStore
	Hasher  PasswordHasher
	Tokens  JWTService
	Revoked store.RevokedTokenStore
	Emitter events.EventEmitter

	// DB, when set, wraps password changes in a transaction.
	DB     store.TxBeginner
	Logger *slog.Logger
}

// NewService creates the auth service. Users, Hasher, Tokens and Revoked are required.
func NewService(deps Deps) (*Service, error) {
	if deps.Users == nil {
		return nil, errors.New("user store cannot be nil")
	}
	if deps.Hasher == nil {
		return nil, errors.New("password hasher cannot be nil")
	}
	if deps.Tokens == nil {
		return nil, errors.New("jwt service cannot be nil")
	}
	if deps.Revoked == nil {
		return nil, errors.New("revoked token store cannot be nil")
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		users:       deps.Users,
		hasher:      deps.Hasher,
		credentials: NewCredentialValidator(deps.Users, deps.Hasher, log),
		tokens:      deps.Tokens,
		revoked:     deps.Revoked,
		emitter:     deps.Emitter,
		db:          deps.DB,
		logger:      log.With(slog.String("component", "auth_service")),
	}, nil
}

// Register creates an account and signs the new user in.
// Returns store.ErrEmailExists when the email is taken.
func (s *Service) Register(ctx context.Context, reg domain.Registration) (*domain.User, *TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	reg = reg.Normalize()
	if err := reg.Validate(); err != nil {
		return nil, nil, err
	}

	hashed, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, nil, err
	}

	user, err := domain.NewUser(reg, hashed)
	if err != nil {
		return nil, nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	if err := events.Emit(ctx, s.emitter, events.TypeUserRegistered,
		events.UserRegisteredPayload{UserID: user.ID}); err != nil {
		log.Warn("failed to emit registration event", slog.String("error", err.Error()))
	}

	pair, err := s.issue(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, pair, nil
}

// Login checks credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.credentials.Validate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.issue(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair. The presented
// token is revoked before the new pair is issued; when a concurrent
// request revoked it first, ErrRevokedToken is returned.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.checkRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	first, err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if !first {
		return nil, ErrRevokedToken
	}
	log.Debug("refresh token rotated", slog.String("user_id", claims.UserID.String()))

	return s.issue(ctx, claims.UserID)
}

// Logout revokes refreshToken. It must belong to userID.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.checkRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRevokedToken) {
			return nil
		}
		return err
	}
	if claims.UserID != userID {
		return ErrInvalidRefreshToken
	}

	if _, err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
		return err
	}
	log.Info("user logged out", slog.String("user_id", userID.String()))
	return nil
}

// ChangePassword replaces the password after verifying the current one.
// A wrong old password yields ErrInvalidCredentials.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if oldPassword == "" {
		return domain.MissingField("old_password")
	}
	if err := domain.ValidatePassword("new_password", newPassword); err != nil {
		return err
	}

	change := func(ctx context.Context, users store.UserStore) error {
		user, err := users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.hasher.Compare(user.HashedPassword, oldPassword); err != nil {
			return ErrInvalidCredentials
		}
		hashed, err := s.hasher.Hash(newPassword)
		if err != nil {
			return err
		}
		return users.UpdatePassword(ctx, userID, hashed)
	}

	var err error
	if s.db == nil {
		err = change(ctx, s.users)
	} else {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return change(ctx, s.users.WithTx(tx))
		})
	}
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("password changed", slog.String("user_id", userID.String()))
	return nil
}

func (s *Service) checkRefreshToken(ctx context.Context, refreshToken string) (*Claims, error) {
	if refreshToken == "" {
		return nil, domain.MissingField("refresh")
	}
	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

func (s *Service) issue(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	access, err := s.tokens.GenerateToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().UTC().Add(s.tokens.AccessTokenLifetime()),
	}, nil
}
