package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Activity is a quiz built by a user, optionally from a flashcard set.
// VecesJugado, PuntuacionMaxima and Completado are maintained by the
// system when plays are recorded; clients never set them directly.
type Activity struct {
	ID                uuid.UUID  `json:"id"`
	TipoActividad     string     `json:"tipo_actividad"`
	TiempoPorPregunta int        `json:"tiempo_por_pregunta"`
	NumeroPreguntas   int        `json:"numero_preguntas"`
	VecesJugado       int        `json:"veces_jugado"`
	PuntuacionMaxima  int        `json:"puntuacion_maxima"`
	Completado        bool       `json:"completado"`
	Privado           bool       `json:"privado"`
	Nombre            string     `json:"nombre"`
	UserID            uuid.UUID  `json:"usuario"`
	FlashcardID       *uuid.UUID `json:"flashcard_id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// NewActivity is the input accepted when creating an activity.
type NewActivity struct {
	TipoActividad     string
	TiempoPorPregunta int
	NumeroPreguntas   int
	Nombre            string
	UserID            uuid.UUID
	FlashcardID       *uuid.UUID
	Privado           bool
}

// Build validates the input and produces a fresh Activity with zeroed
// play statistics.
func (n NewActivity) Build() (*Activity, error) {
	now := time.Now().UTC()
	a := &Activity{
		ID:                uuid.New(),
		TipoActividad:     strings.TrimSpace(n.TipoActividad),
		TiempoPorPregunta: n.TiempoPorPregunta,
		NumeroPreguntas:   n.NumeroPreguntas,
		Privado:           n.Privado,
		Nombre:            strings.TrimSpace(n.Nombre),
		UserID:            n.UserID,
		FlashcardID:       n.FlashcardID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the activity's invariants.
func (a *Activity) Validate() error {
	switch {
	case a.ID == uuid.Nil:
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	case a.UserID == uuid.Nil:
		return MissingField("usuario")
	case a.Nombre == "":
		return MissingField("nombre")
	case a.TipoActividad == "":
		return MissingField("tipo_actividad")
	case a.TiempoPorPregunta <= 0:
		return NewValidationError("tiempo_por_pregunta", "must be greater than zero", nil)
	case a.NumeroPreguntas <= 0:
		return NewValidationError("numero_preguntas", "must be greater than zero", nil)
	case a.VecesJugado < 0:
		return NewValidationError("veces_jugado", "cannot be negative", nil)
	case a.PuntuacionMaxima < 0:
		return NewValidationError("puntuacion_maxima", "cannot be negative", nil)
	}
	return nil
}

// VisibleTo reports whether userID may read the activity.
func (a *Activity) VisibleTo(userID uuid.UUID) bool {
	return !a.Privado || a.UserID == userID
}

// RecordPlay folds one play result into the activity statistics.
func (a *Activity) RecordPlay(correct int) {
	a.VecesJugado++
	if correct > a.PuntuacionMaxima {
		a.PuntuacionMaxima = correct
	}
	a.Completado = true
	a.UpdatedAt = time.Now().UTC()
}
