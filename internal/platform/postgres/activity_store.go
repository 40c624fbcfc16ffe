package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

const activityColumns = `id, tipo_actividad, tiempo_por_pregunta, numero_preguntas, veces_jugado,
		puntuacion_maxima, completado, privado, nombre, user_id, flashcard_id, created_at, updated_at`

// PostgresActivityStore implements store.ActivityStore on PostgreSQL.
type PostgresActivityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresActivityStore creates an activity store on db.
func NewPostgresActivityStore(db store.DBTX, logger *slog.Logger) *PostgresActivityStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresActivityStore{
		db:     db,
		logger: logger.With(slog.String("component", "activity_store")),
	}
}

var _ store.ActivityStore = (*PostgresActivityStore)(nil)

// WithTx implements store.ActivityStore.WithTx
func (s *PostgresActivityStore) WithTx(tx *sql.Tx) store.ActivityStore {
	return &PostgresActivityStore{db: tx, logger: s.logger}
}

// Create implements store.ActivityStore.Create
func (s *PostgresActivityStore) Create(ctx context.Context, activity *domain.Activity) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := activity.Validate(); err != nil {
		log.Warn("activity validation failed during create",
			slog.String("error", err.Error()),
			slog.String("activity_id", activity.ID.String()))
		return err
	}

	query := `
		INSERT INTO activities (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.db.ExecContext(ctx, query,
		activity.ID,
		activity.TipoActividad,
		activity.TiempoPorPregunta,
		activity.NumeroPreguntas,
		activity.VecesJugado,
		activity.PuntuacionMaxima,
		activity.Completado,
		activity.Privado,
		activity.Nombre,
		activity.UserID,
		activity.FlashcardID,
		activity.CreatedAt,
		activity.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("activity owner does not exist",
				slog.String("activity_id", activity.ID.String()),
				slog.String("user_id", activity.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, activity.UserID)
		}
		log.Error("failed to create activity",
			slog.String("error", err.Error()),
			slog.String("activity_id", activity.ID.String()))
		return store.NewStoreError("activity", "create", "insert failed", MapError(err, nil))
	}

	log.Info("activity created",
		slog.String("activity_id", activity.ID.String()),
		slog.String("user_id", activity.UserID.String()))
	return nil
}

// GetByID implements store.ActivityStore.GetByID
func (s *PostgresActivityStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`
	activity, err := scanActivity(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("activity not found", slog.String("activity_id", id.String()))
			return nil, store.ErrActivityNotFound
		}
		log.Error("failed to get activity",
			slog.String("error", err.Error()),
			slog.String("activity_id", id.String()))
		return nil, store.NewStoreError("activity", "get", "query failed", err)
	}
	return activity, nil
}

// ListByUser implements store.ActivityStore.ListByUser
func (s *PostgresActivityStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) ([]*domain.Activity, error) {
	page = page.Normalize()
	query := `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`
	return s.list(ctx, query, userID, page.Limit, page.Offset)
}

// ListPublic implements store.ActivityStore.ListPublic
func (s *PostgresActivityStore) ListPublic(ctx context.Context, page store.Page) ([]*domain.Activity, error) {
	page = page.Normalize()
	query := `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE NOT privado
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`
	return s.list(ctx, query, page.Limit, page.Offset)
}

func (s *PostgresActivityStore) list(ctx context.Context, query string, args ...any) ([]*domain.Activity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list activities", slog.String("error", err.Error()))
		return nil, store.NewStoreError("activity", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			log.Error("failed to scan activity row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("activity", "list", "scan failed", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("activity", "list", "row iteration failed", err)
	}
	return activities, nil
}

// RecordPlay implements store.ActivityStore.RecordPlay
func (s *PostgresActivityStore) RecordPlay(ctx context.Context, id uuid.UUID, correct int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE activities
		SET veces_jugado = veces_jugado + 1,
			puntuacion_maxima = GREATEST(puntuacion_maxima, $1),
			completado = TRUE,
			updated_at = NOW()
		WHERE id = $2
	`
	result, err := s.db.ExecContext(ctx, query, correct, id)
	if err != nil {
		log.Error("failed to record play",
			slog.String("error", err.Error()),
			slog.String("activity_id", id.String()))
		return store.NewStoreError("activity", "record_play", "update failed", err)
	}
	return CheckRowsAffected(result, store.ErrActivityNotFound)
}

// Delete implements store.ActivityStore.Delete
func (s *PostgresActivityStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete activity",
			slog.String("error", err.Error()),
			slog.String("activity_id", id.String()))
		return store.NewStoreError("activity", "delete", "delete failed", err)
	}
	if err := CheckRowsAffected(result, store.ErrActivityNotFound); err != nil {
		return err
	}

	log.Info("activity deleted", slog.String("activity_id", id.String()))
	return nil
}

func scanActivity(row scanner) (*domain.Activity, error) {
	var a domain.Activity
	err := row.Scan(
		&a.ID,
		&a.TipoActividad,
		&a.TiempoPorPregunta,
		&a.NumeroPreguntas,
		&a.VecesJugado,
		&a.PuntuacionMaxima,
		&a.Completado,
		&a.Privado,
		&a.Nombre,
		&a.UserID,
		&a.FlashcardID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
