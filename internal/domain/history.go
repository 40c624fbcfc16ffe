package domain

import (
	"time"

	"github.com/google/uuid"
)

// History is one recorded play of an activity.
type History struct {
	ID                  uuid.UUID `json:"id"`
	ActivityID          uuid.UUID `json:"activity"`
	UserID              uuid.UUID `json:"user"`
	NumeroPreguntas     int       `json:"numero_preguntas"`
	RespuestasCorrectas int       `json:"respuestas_correctas"`
	Fecha               time.Time `json:"fecha"`
}

// HistoryEntry is a History joined with the current name and type of
// its activity.
type HistoryEntry struct {
	History
	NombreActividad string
	TipoActividad   string
}

// NewHistory creates a play record. A zero fecha defaults to now.
func NewHistory(activityID, userID uuid.UUID, questions, correct int, fecha time.Time) (*History, error) {
	if fecha.IsZero() {
		fecha = time.Now()
	}
	h := &History{
		ID:                  uuid.New(),
		ActivityID:          activityID,
		UserID:              userID,
		NumeroPreguntas:     questions,
		RespuestasCorrectas: correct,
		Fecha:               fecha.UTC(),
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// Validate checks the record's shape. It does not recompute the score.
func (h *History) Validate() error {
	switch {
	case h.ActivityID == uuid.Nil:
		return MissingField("activity")
	case h.UserID == uuid.Nil:
		return MissingField("user")
	case h.NumeroPreguntas < 0:
		return NewValidationError("numero_preguntas", "cannot be negative", nil)
	case h.RespuestasCorrectas < 0:
		return NewValidationError("respuestas_correctas", "cannot be negative", nil)
	case h.RespuestasCorrectas > h.NumeroPreguntas:
		return NewValidationError("respuestas_correctas", "cannot exceed numero_preguntas", nil)
	}
	return nil
}
