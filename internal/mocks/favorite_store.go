package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

type pairKey struct {
	user     uuid.UUID
	activity uuid.UUID
}

// MockFavoriteStore implements store.FavoriteStore for testing
type MockFavoriteStore struct {
	AddFn                  func(ctx context.Context, fav *domain.Favorite) error
	FavoritedActivityIDsFn func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	Favorites map[pairKey]*domain.Favorite
	// Order keeps insertion order for ListByUser.
	Order []pairKey
}

// NewMockFavoriteStore creates an empty mock store.
func NewMockFavoriteStore() *MockFavoriteStore {
	return &MockFavoriteStore{Favorites: make(map[pairKey]*domain.Favorite)}
}

var _ store.FavoriteStore = (*MockFavoriteStore)(nil)

// Add implements store.FavoriteStore
func (m *MockFavoriteStore) Add(ctx context.Context, fav *domain.Favorite) error {
	if m.AddFn != nil {
		return m.AddFn(ctx, fav)
	}
	key := pairKey{fav.UserID, fav.ActivityID}
	if existing, ok := m.Favorites[key]; ok {
		*fav = *existing
		return nil
	}
	stored := *fav
	m.Favorites[key] = &stored
	m.Order = append(m.Order, key)
	return nil
}

// Remove implements store.FavoriteStore
func (m *MockFavoriteStore) Remove(_ context.Context, userID, activityID uuid.UUID) error {
	key := pairKey{userID, activityID}
	if _, ok := m.Favorites[key]; !ok {
		return store.ErrFavoriteNotFound
	}
	delete(m.Favorites, key)
	return nil
}

// Exists implements store.FavoriteStore
func (m *MockFavoriteStore) Exists(_ context.Context, userID, activityID uuid.UUID) (bool, error) {
	_, ok := m.Favorites[pairKey{userID, activityID}]
	return ok, nil
}

// FavoritedActivityIDs implements store.FavoriteStore
func (m *MockFavoriteStore) FavoritedActivityIDs(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
) (map[uuid.UUID]bool, error) {
	if m.FavoritedActivityIDsFn != nil {
		return m.FavoritedActivityIDsFn(ctx, userID, ids)
	}
	out := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if _, ok := m.Favorites[pairKey{userID, id}]; ok {
			out[id] = true
		}
	}
	return out, nil
}

// ListByUser implements store.FavoriteStore
func (m *MockFavoriteStore) ListByUser(_ context.Context, userID uuid.UUID, _ store.Page) ([]*domain.Favorite, error) {
	out := make([]*domain.Favorite, 0)
	for i := len(m.Order) - 1; i >= 0; i-- {
		key := m.Order[i]
		if fav, ok := m.Favorites[key]; ok && key.user == userID {
			out = append(out, fav)
		}
	}
	return out, nil
}

// MockRatingStore implements store.RatingStore for testing
type MockRatingStore struct {
	UpsertFn func(ctx context.Context, rating *domain.Rating) error

	Ratings map[pairKey]*domain.Rating
}

// NewMockRatingStore creates an empty mock store.
func NewMockRatingStore() *MockRatingStore {
	return &MockRatingStore{Ratings: make(map[pairKey]*domain.Rating)}
}

var _ store.RatingStore = (*MockRatingStore)(nil)

// Upsert implements store.RatingStore
func (m *MockRatingStore) Upsert(ctx context.Context, rating *domain.Rating) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, rating)
	}
	key := pairKey{rating.UserID, rating.ActivityID}
	if existing, ok := m.Ratings[key]; ok {
		existing.Puntuacion = rating.Puntuacion
		*rating = *existing
		return nil
	}
	stored := *rating
	m.Ratings[key] = &stored
	return nil
}

// ListByActivity implements store.RatingStore
func (m *MockRatingStore) ListByActivity(_ context.Context, activityID uuid.UUID, _ store.Page) ([]*domain.Rating, error) {
	out := make([]*domain.Rating, 0)
	for key, r := range m.Ratings {
		if key.activity == activityID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListByUser implements store.RatingStore
func (m *MockRatingStore) ListByUser(_ context.Context, userID uuid.UUID, _ store.Page) ([]*domain.Rating, error) {
	out := make([]*domain.Rating, 0)
	for key, r := range m.Ratings {
		if key.user == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
