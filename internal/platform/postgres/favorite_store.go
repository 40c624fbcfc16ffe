package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// PostgresFavoriteStore implements store.FavoriteStore on PostgreSQL.
type PostgresFavoriteStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFavoriteStore creates a favorite store on db.
func NewPostgresFavoriteStore(db store.DBTX, logger *slog.Logger) *PostgresFavoriteStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresFavoriteStore{
		db:     db,
		logger: logger.With(slog.String("component", "favorite_store")),
	}
}

var _ store.FavoriteStore = (*PostgresFavoriteStore)(nil)

// Add implements store.FavoriteStore.Add
func (s *PostgresFavoriteStore) Add(ctx context.Context, fav *domain.Favorite) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// The no-op update makes RETURNING yield the existing row on conflict.
	query := `
		INSERT INTO favorites (id, user_id, activity_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, activity_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query, fav.ID, fav.UserID, fav.ActivityID, fav.CreatedAt).
		Scan(&fav.ID, &fav.CreatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: activity with ID %s not found", store.ErrInvalidEntity, fav.ActivityID)
		}
		log.Error("failed to add favorite",
			slog.String("error", err.Error()),
			slog.String("user_id", fav.UserID.String()),
			slog.String("activity_id", fav.ActivityID.String()))
		return store.NewStoreError("favorite", "add", "insert failed", err)
	}
	return nil
}

// Remove implements store.FavoriteStore.Remove
func (s *PostgresFavoriteStore) Remove(ctx context.Context, userID, activityID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND activity_id = $2`, userID, activityID)
	if err != nil {
		log.Error("failed to remove favorite", slog.String("error", err.Error()))
		return store.NewStoreError("favorite", "remove", "delete failed", err)
	}
	return CheckRowsAffected(result, store.ErrFavoriteNotFound)
}

// Exists implements store.FavoriteStore.Exists
func (s *PostgresFavoriteStore) Exists(ctx context.Context, userID, activityID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND activity_id = $2)`,
		userID, activityID,
	).Scan(&exists)
	if err != nil {
		return false, store.NewStoreError("favorite", "exists", "query failed", err)
	}
	return exists, nil
}

// FavoritedActivityIDs implements store.FavoriteStore.FavoritedActivityIDs
func (s *PostgresFavoriteStore) FavoritedActivityIDs(
	ctx context.Context,
	userID uuid.UUID,
	activityIDs []uuid.UUID,
) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(activityIDs))
	if len(activityIDs) == 0 {
		return result, nil
	}

	ids := make([]string, len(activityIDs))
	for i, id := range activityIDs {
		ids[i] = id.String()
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT activity_id FROM favorites
		WHERE user_id = $1 AND activity_id = ANY($2::uuid[])
	`, userID, ids)
	if err != nil {
		return nil, store.NewStoreError("favorite", "lookup", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, store.NewStoreError("favorite", "lookup", "scan failed", err)
		}
		result[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("favorite", "lookup", "row iteration failed", err)
	}
	return result, nil
}

// ListByUser implements store.FavoriteStore.ListByUser
func (s *PostgresFavoriteStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) ([]*domain.Favorite, error) {
	page = page.Normalize()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, activity_id, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, store.NewStoreError("favorite", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	favorites := make([]*domain.Favorite, 0)
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.ActivityID, &f.CreatedAt); err != nil {
			return nil, store.NewStoreError("favorite", "list", "scan failed", err)
		}
		favorites = append(favorites, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("favorite", "list", "row iteration failed", err)
	}
	return favorites, nil
}

// PostgresRatingStore implements store.RatingStore on PostgreSQL.
type PostgresRatingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRatingStore creates a rating store on db.
func NewPostgresRatingStore(db store.DBTX, logger *slog.Logger) *PostgresRatingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRatingStore{
		db:     db,
		logger: logger.With(slog.String("component", "rating_store")),
	}
}

var _ store.RatingStore = (*PostgresRatingStore)(nil)

// Upsert implements store.RatingStore.Upsert
func (s *PostgresRatingStore) Upsert(ctx context.Context, rating *domain.Rating) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO ratings (id, user_id, activity_id, puntuacion, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, activity_id) DO UPDATE SET puntuacion = EXCLUDED.puntuacion
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		rating.ID, rating.UserID, rating.ActivityID, rating.Puntuacion, rating.CreatedAt,
	).Scan(&rating.ID, &rating.CreatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: activity with ID %s not found", store.ErrInvalidEntity, rating.ActivityID)
		}
		log.Error("failed to upsert rating",
			slog.String("error", err.Error()),
			slog.String("activity_id", rating.ActivityID.String()))
		return store.NewStoreError("rating", "upsert", "insert failed", MapError(err, nil))
	}
	return nil
}

// ListByActivity implements store.RatingStore.ListByActivity
func (s *PostgresRatingStore) ListByActivity(
	ctx context.Context,
	activityID uuid.UUID,
	page store.Page,
) ([]*domain.Rating, error) {
	page = page.Normalize()
	return s.list(ctx, `
		SELECT id, user_id, activity_id, puntuacion, created_at
		FROM ratings
		WHERE activity_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, activityID, page.Limit, page.Offset)
}

// ListByUser implements store.RatingStore.ListByUser
func (s *PostgresRatingStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) ([]*domain.Rating, error) {
	page = page.Normalize()
	return s.list(ctx, `
		SELECT id, user_id, activity_id, puntuacion, created_at
		FROM ratings
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, userID, page.Limit, page.Offset)
}

func (s *PostgresRatingStore) list(ctx context.Context, query string, args ...any) ([]*domain.Rating, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("rating", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	ratings := make([]*domain.Rating, 0)
	for rows.Next() {
		var r domain.Rating
		if err := rows.Scan(&r.ID, &r.UserID, &r.ActivityID, &r.Puntuacion, &r.CreatedAt); err != nil {
			return nil, store.NewStoreError("rating", "list", "scan failed", err)
		}
		ratings = append(ratings, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("rating", "list", "row iteration failed", err)
	}
	return ratings, nil
}
