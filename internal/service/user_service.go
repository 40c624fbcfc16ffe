package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// UserService reads and updates the caller's profile.
type UserService interface {
	// GetProfile returns the user with the given ID.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile replaces the mutable profile fields. Email and password
	// are not touched. A nil Puntos keeps the current balance.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) (*domain.User, error)

	// UpdatePoints sets the point balance without touching other fields.
	UpdatePoints(ctx context.Context, userID uuid.UUID, puntos int) (*domain.User, error)
}

type userServiceImpl struct {
	users  store.UserStore
	db     store.TxBeginner
	logger *slog.Logger
}

// NewUserService creates a UserService. db may be nil, in which case
// profile updates run without a transaction.
func NewUserService(users store.UserStore, db store.TxBeginner, logger *slog.Logger) (UserService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &userServiceImpl{
		users:  users,
		db:     db,
		logger: logger.With(slog.String("component", "user_service")),
	}, nil
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile reads the full user, applies the update and writes it back
// inside one transaction.
func (s *userServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	update domain.ProfileUpdate,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.User
	err := inTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		users := s.users
		if tx != nil {
			users = users.WithTx(tx)
		}

		user, err := users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := update.Apply(user); err != nil {
			return err
		}
		if err := users.Update(ctx, user); err != nil {
			return NewServiceError("user", "update_profile", "failed to save profile", err)
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("profile updated", slog.String("user_id", userID.String()))
	return updated, nil
}

func (s *userServiceImpl) UpdatePoints(ctx context.Context, userID uuid.UUID, puntos int) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.users.UpdatePoints(ctx, userID, puntos); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	log.Debug("points updated",
		slog.String("user_id", userID.String()),
		slog.Int("puntos", puntos))
	return user, nil
}
