package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// FavoriteService marks activities as favorites. Add and Remove are idempotent.
type FavoriteService interface {
	Add(ctx context.Context, userID, activityID uuid.UUID) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, activityID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, page store.Page) ([]*domain.Favorite, error)
}

type favoriteServiceImpl struct {
	favorites  store.FavoriteStore
	activities store.ActivityStore
	logger     *slog.Logger
}

// NewFavoriteService creates a FavoriteService.
func NewFavoriteService(
	favorites store.FavoriteStore,
	activities store.ActivityStore,
	logger *slog.Logger,
) (FavoriteService, error) {
	if favorites == nil {
		return nil, domain.NewValidationError("favorites", "cannot be nil", domain.ErrValidation)
	}
	if activities == nil {
		return nil, domain.NewValidationError("activities", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &favoriteServiceImpl{
		favorites:  favorites,
		activities: activities,
		logger:     logger.With(slog.String("component", "favorite_service")),
	}, nil
}

// Add returns the existing favorite when the pair is already marked.
func (s *favoriteServiceImpl) Add(ctx context.Context, userID, activityID uuid.UUID) (*domain.Favorite, error) {
	if _, err := visibleActivity(ctx, s.activities, userID, activityID); err != nil {
		return nil, err
	}
	fav, err := domain.NewFavorite(userID, activityID)
	if err != nil {
		return nil, err
	}
	if err := s.favorites.Add(ctx, fav); err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("favorite added",
		slog.String("user_id", userID.String()),
		slog.String("activity_id", activityID.String()))
	return fav, nil
}

func (s *favoriteServiceImpl) Remove(ctx context.Context, userID, activityID uuid.UUID) error {
	err := s.favorites.Remove(ctx, userID, activityID)
	if err != nil && !errors.Is(err, store.ErrFavoriteNotFound) {
		return err
	}
	return nil
}

func (s *favoriteServiceImpl) List(ctx context.Context, userID uuid.UUID, page store.Page) ([]*domain.Favorite, error) {
	return s.favorites.ListByUser(ctx, userID, page)
}
