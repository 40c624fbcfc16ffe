package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// PostgresHistoryStore implements store.HistoryStore on PostgreSQL.
// Activity name and type are joined at read time, never copied into history.
type PostgresHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresHistoryStore creates a history store on db.
func NewPostgresHistoryStore(db store.DBTX, logger *slog.Logger) *PostgresHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "history_store")),
	}
}

var _ store.HistoryStore = (*PostgresHistoryStore)(nil)

// WithTx implements store.HistoryStore.WithTx
func (s *PostgresHistoryStore) WithTx(tx *sql.Tx) store.HistoryStore {
	return &PostgresHistoryStore{db: tx, logger: s.logger}
}

// Create implements store.HistoryStore.Create
func (s *PostgresHistoryStore) Create(ctx context.Context, history *domain.History) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := history.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, activity_id, user_id, numero_preguntas, respuestas_correctas, fecha)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		history.ID,
		history.ActivityID,
		history.UserID,
		history.NumeroPreguntas,
		history.RespuestasCorrectas,
		history.Fecha,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("history references a missing activity or user",
				slog.String("activity_id", history.ActivityID.String()),
				slog.String("user_id", history.UserID.String()))
			return fmt.Errorf("%w: activity %s or user %s not found",
				store.ErrInvalidEntity, history.ActivityID, history.UserID)
		}
		log.Error("failed to create history",
			slog.String("error", err.Error()),
			slog.String("history_id", history.ID.String()))
		return store.NewStoreError("history", "create", "insert failed", MapError(err, nil))
	}

	log.Debug("history recorded",
		slog.String("history_id", history.ID.String()),
		slog.String("activity_id", history.ActivityID.String()))
	return nil
}

// ListByUser implements store.HistoryStore.ListByUser
func (s *PostgresHistoryStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) ([]*domain.HistoryEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	page = page.Normalize()

	rows, err := s.db.QueryContext(ctx, `
		SELECT h.id, h.activity_id, h.user_id, h.numero_preguntas, h.respuestas_correctas, h.fecha,
			a.nombre, a.tipo_actividad
		FROM history h
		JOIN activities a ON a.id = h.activity_id
		WHERE h.user_id = $1
		ORDER BY h.fecha DESC, h.id
		LIMIT $2 OFFSET $3
	`, userID, page.Limit, page.Offset)
	if err != nil {
		log.Error("failed to list history", slog.String("error", err.Error()))
		return nil, store.NewStoreError("history", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*domain.HistoryEntry, 0)
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(
			&e.ID,
			&e.ActivityID,
			&e.UserID,
			&e.NumeroPreguntas,
			&e.RespuestasCorrectas,
			&e.Fecha,
			&e.NombreActividad,
			&e.TipoActividad,
		); err != nil {
			return nil, store.NewStoreError("history", "list", "scan failed", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("history", "list", "row iteration failed", err)
	}
	return entries, nil
}
