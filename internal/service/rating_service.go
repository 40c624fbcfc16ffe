package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// RatingService records 1..5 scores. Rating the same activity again
// replaces the previous score.
type RatingService interface {
	Rate(ctx context.Context, userID, activityID uuid.UUID, puntuacion int) (*domain.Rating, error)

	// ListByActivity requires the activity to be visible to callerID.
	ListByActivity(ctx context.Context, callerID, activityID uuid.UUID, page store.Page) ([]*domain.Rating, error)

	ListByUser(ctx context.Context, userID uuid.UUID, page store.Page) ([]*domain.Rating, error)
}

type ratingServiceImpl struct {
	ratings    store.RatingStore
	activities store.ActivityStore
	logger     *slog.Logger
}

// NewRatingService creates a RatingService.
func NewRatingService(
	ratings store.RatingStore,
	activities store.ActivityStore,
	logger *slog.Logger,
) (RatingService, error) {
	if ratings == nil {
		return nil, domain.NewValidationError("ratings", "cannot be nil", domain.ErrValidation)
	}
	if activities == nil {
		return nil, domain.NewValidationError("activities", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ratingServiceImpl{
		ratings:    ratings,
		activities: activities,
		logger:     logger.With(slog.String("component", "rating_service")),
	}, nil
}

func (s *ratingServiceImpl) Rate(
	ctx context.Context,
	userID, activityID uuid.UUID,
	puntuacion int,
) (*domain.Rating, error) {
	rating, err := domain.NewRating(userID, activityID, puntuacion)
	if err != nil {
		return nil, err
	}
	if _, err := visibleActivity(ctx, s.activities, userID, activityID); err != nil {
		return nil, err
	}
	if err := s.ratings.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("activity rated",
		slog.String("user_id", userID.String()),
		slog.String("activity_id", activityID.String()),
		slog.Int("puntuacion", puntuacion))
	return rating, nil
}

func (s *ratingServiceImpl) ListByActivity(
	ctx context.Context,
	callerID, activityID uuid.UUID,
	page store.Page,
) ([]*domain.Rating, error) {
	if _, err := visibleActivity(ctx, s.activities, callerID, activityID); err != nil {
		return nil, err
	}
	return s.ratings.ListByActivity(ctx, activityID, page)
}

func (s *ratingServiceImpl) ListByUser(ctx context.Context, userID uuid.UUID, page store.Page) ([]*domain.Rating, error) {
	return s.ratings.ListByUser(ctx, userID, page)
}
