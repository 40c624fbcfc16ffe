package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/events"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// HistoryInput is a play result reported by a client. A nil UserID means
// the caller.
type HistoryInput struct {
	ActivityID          uuid.UUID
	UserID              uuid.UUID
	NumeroPreguntas     int
	RespuestasCorrectas int
	Fecha               time.Time
}

// HistoryService records plays and lists a user's history.
type HistoryService interface {
	// Record stores the play and updates the activity's play statistics in
	// the same transaction.
	Record(ctx context.Context, callerID uuid.UUID, input HistoryInput) (*domain.History, error)

	// List returns the user's plays, newest first, with the current name
	// and type of each activity.
	List(ctx context.Context, userID uuid.UUID, page store.Page) ([]*domain.HistoryEntry, error)
}

type historyServiceImpl struct {
	history    store.HistoryStore
	activities store.ActivityStore
	emitter    events.EventEmitter
	db         store.TxBeginner
	logger     *slog.Logger
}

// HistoryDeps groups the collaborators of the history service. Emitter and
// DB are optional.
type HistoryDeps struct {
	History    store.HistoryStore
	Activities store.ActivityStore
	Emitter    events.EventEmitter
	DB         store.TxBeginner
	Logger     *slog.Logger
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(deps HistoryDeps) (HistoryService, error) {
	if deps.History == nil {
		return nil, domain.NewValidationError("history", "cannot be nil", domain.ErrValidation)
	}
	if deps.Activities == nil {
		return nil, domain.NewValidationError("activities", "cannot be nil", domain.ErrValidation)
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &historyServiceImpl{
		history:    deps.History,
		activities: deps.Activities,
		emitter:    deps.Emitter,
		db:         deps.DB,
		logger:     log.With(slog.String("component", "history_service")),
	}, nil
}

func (s *historyServiceImpl) Record(
	ctx context.Context,
	callerID uuid.UUID,
	input HistoryInput,
) (*domain.History, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if input.UserID == uuid.Nil {
		input.UserID = callerID
	}
	if input.UserID != callerID {
		log.Warn("attempt to record history for another user",
			slog.String("caller_id", callerID.String()),
			slog.String("user", input.UserID.String()))
		return nil, ErrNotOwned
	}

	record, err := domain.NewHistory(
		input.ActivityID,
		input.UserID,
		input.NumeroPreguntas,
		input.RespuestasCorrectas,
		input.Fecha,
	)
	if err != nil {
		return nil, err
	}
	if _, err := visibleActivity(ctx, s.activities, callerID, input.ActivityID); err != nil {
		return nil, err
	}

	err = inTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		history, activities := s.history, s.activities
		if tx != nil {
			history, activities = history.WithTx(tx), activities.WithTx(tx)
		}

		if err := history.Create(ctx, record); err != nil {
			return NewServiceError("history", "record", "failed to save history", err)
		}
		if err := activities.RecordPlay(ctx, record.ActivityID, record.RespuestasCorrectas); err != nil {
			return NewServiceError("history", "record", "failed to update activity stats", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to record play",
			slog.String("error", err.Error()),
			slog.String("activity_id", input.ActivityID.String()))
		return nil, err
	}

	if err := events.Emit(ctx, s.emitter, events.TypeHistoryRecorded, events.HistoryRecordedPayload{
		HistoryID:           record.ID,
		ActivityID:          record.ActivityID,
		UserID:              record.UserID,
		NumeroPreguntas:     record.NumeroPreguntas,
		RespuestasCorrectas: record.RespuestasCorrectas,
	}); err != nil {
		log.Warn("failed to emit history event", slog.String("error", err.Error()))
	}

	log.Info("play recorded",
		slog.String("history_id", record.ID.String()),
		slog.String("activity_id", record.ActivityID.String()))
	return record, nil
}

func (s *historyServiceImpl) List(ctx context.Context, userID uuid.UUID, page store.Page) ([]*domain.HistoryEntry, error) {
	return s.history.ListByUser(ctx, userID, page)
}
