package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
)

// FavoriteStore persists favorite links between users and activities.
type FavoriteStore interface {
	// Add stores the favorite. Adding an existing pair is a no-op and
	// fav is filled with the stored row.
	Add(ctx context.Context, fav *domain.Favorite) error

	// Remove deletes the pair. Returns ErrFavoriteNotFound if absent.
	Remove(ctx context.Context, userID, activityID uuid.UUID) error

	// Exists reports whether userID has favorited activityID.
	Exists(ctx context.Context, userID, activityID uuid.UUID) (bool, error)

	// FavoritedActivityIDs returns the subset of activityIDs favorited by userID.
	FavoritedActivityIDs(ctx context.Context, userID uuid.UUID, activityIDs []uuid.UUID) (map[uuid.UUID]bool, error)

	// ListByUser returns userID's favorites, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, page Page) ([]*domain.Favorite, error)
}

// RatingStore persists activity ratings.
type RatingStore interface {
	// Upsert stores the rating, replacing the score of an existing
	// (user, activity) pair. rating is filled with the stored row.
	Upsert(ctx context.Context, rating *domain.Rating) error

	ListByActivity(ctx context.Context, activityID uuid.UUID, page Page) ([]*domain.Rating, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page Page) ([]*domain.Rating, error)
}
