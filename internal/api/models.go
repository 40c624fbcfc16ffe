package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/service"
)

// dateLayout is the wire format of fecha_nacimiento.
const dateLayout = "2006-01-02"

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email     string  `json:"email"     validate:"required,email"`
	Password  string  `json:"password"  validate:"required,min=8,max=72"`
	Nombres   string  `json:"nombres"   validate:"required,max=100"`
	Apellidos string  `json:"apellidos" validate:"required,max=100"`
	Celular   *string `json:"celular"   validate:"omitempty,max=20"`
	Genero    *string `json:"genero"    validate:"omitempty,max=20"`
}

func (r RegisterRequest) toDomain() domain.Registration {
	return domain.Registration{
		Email:     r.Email,
		Password:  r.Password,
		Nombres:   r.Nombres,
		Apellidos: r.Apellidos,
		Celular:   r.Celular,
		Genero:    r.Genero,
	}
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token to rotate.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// LogoutRequest carries the refresh token to revoke.
type LogoutRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
// The length policy of new_password is applied by the auth service.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	User      *ProfileResponse `json:"user,omitempty"`
	Access    string           `json:"access"`
	Refresh   string           `json:"refresh"`
	ExpiresAt string           `json:"expires_at"`
}

// ProfileResponse is the owner's view of a user. It never carries the password.
type ProfileResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Nombres         string    `json:"nombres"`
	Apellidos       string    `json:"apellidos"`
	Celular         *string   `json:"celular"`
	Genero          *string   `json:"genero"`
	FechaNacimiento *string   `json:"fecha_nacimiento"`
	ProfileImage    *string   `json:"profile_image"`
	Puntos          int       `json:"puntos"`
}

// UpdateProfileRequest replaces the mutable profile fields.
type UpdateProfileRequest struct {
	Nombres         string  `json:"nombres"          validate:"required,max=100"`
	Apellidos       string  `json:"apellidos"        validate:"required,max=100"`
	Celular         *string `json:"celular"          validate:"omitempty,max=20"`
	Genero          *string `json:"genero"           validate:"omitempty,max=20"`
	FechaNacimiento *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	ProfileImage    *string `json:"profile_image"    validate:"omitempty,max=255"`
	Puntos          *int    `json:"puntos"`
}

func (r UpdateProfileRequest) toDomain() (domain.ProfileUpdate, error) {
	update := domain.ProfileUpdate{
		Nombres:      r.Nombres,
		Apellidos:    r.Apellidos,
		Celular:      r.Celular,
		Genero:       r.Genero,
		ProfileImage: r.ProfileImage,
		Puntos:       r.Puntos,
	}
	if r.FechaNacimiento != nil && *r.FechaNacimiento != "" {
		t, err := time.Parse(dateLayout, *r.FechaNacimiento)
		if err != nil {
			return domain.ProfileUpdate{}, domain.NewValidationError("fecha_nacimiento", "invalid date, expected YYYY-MM-DD", nil)
		}
		update.FechaNacimiento = &t
	}
	return update, nil
}

// UpdatePointsRequest sets the point balance only.
type UpdatePointsRequest struct {
	Puntos *int `json:"puntos" validate:"required"`
}

// CreateActivityRequest defines the payload for creating an activity.
// Play statistics are system managed and not accepted here.
type CreateActivityRequest struct {
	TipoActividad     string     `json:"tipo_actividad"      validate:"required,max=50"`
	TiempoPorPregunta int        `json:"tiempo_por_pregunta"`
	NumeroPreguntas   int        `json:"numero_preguntas"`
	Nombre            string     `json:"nombre"              validate:"required,max=255"`
	Usuario           *uuid.UUID `json:"usuario"`
	FlashcardID       *uuid.UUID `json:"flashcard_id"`
	Privado           bool       `json:"privado"`
}

func (r CreateActivityRequest) toDomain() domain.NewActivity {
	n := domain.NewActivity{
		TipoActividad:     r.TipoActividad,
		TiempoPorPregunta: r.TiempoPorPregunta,
		NumeroPreguntas:   r.NumeroPreguntas,
		Nombre:            r.Nombre,
		FlashcardID:       r.FlashcardID,
		Privado:           r.Privado,
	}
	if r.Usuario != nil {
		n.UserID = *r.Usuario
	}
	return n
}

// ActivityResponse exposes every stored attribute plus whether the caller
// has the activity among their favourites.
type ActivityResponse struct {
	ID                uuid.UUID  `json:"id"`
	TipoActividad     string     `json:"tipo_actividad"`
	TiempoPorPregunta int        `json:"tiempo_por_pregunta"`
	NumeroPreguntas   int        `json:"numero_preguntas"`
	VecesJugado       int        `json:"veces_jugado"`
	PuntuacionMaxima  int        `json:"puntuacion_maxima"`
	Completado        bool       `json:"completado"`
	Privado           bool       `json:"privado"`
	Nombre            string     `json:"nombre"`
	Usuario           uuid.UUID  `json:"usuario"`
	FlashcardID       *uuid.UUID `json:"flashcard_id"`
	Favourite         bool       `json:"favourite"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// RateRequest defines the payload for rating an activity.
type RateRequest struct {
	Puntuacion int `json:"puntuacion"`
}

// FavoriteResponse exposes a stored favorite.
type FavoriteResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user"`
	ActivityID uuid.UUID `json:"activity"`
	CreatedAt  time.Time `json:"created_at"`
}

// RatingResponse exposes a stored rating.
type RatingResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user"`
	ActivityID uuid.UUID `json:"activity"`
	Puntuacion int       `json:"puntuacion"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateHistoryRequest records a finished play. A missing user defaults to
// the caller and a missing fecha to now.
type CreateHistoryRequest struct {
	Activity            uuid.UUID  `json:"activity"`
	User                *uuid.UUID `json:"user"`
	NumeroPreguntas     int        `json:"numero_preguntas"`
	RespuestasCorrectas int        `json:"respuestas_correctas"`
	Fecha               *time.Time `json:"fecha"`
}

func (r CreateHistoryRequest) toInput() service.HistoryInput {
	in := service.HistoryInput{
		ActivityID:          r.Activity,
		NumeroPreguntas:     r.NumeroPreguntas,
		RespuestasCorrectas: r.RespuestasCorrectas,
	}
	if r.User != nil {
		in.UserID = *r.User
	}
	if r.Fecha != nil {
		in.Fecha = *r.Fecha
	}
	return in
}

// HistoryResponse is a play. Listings add the activity's current name and type.
type HistoryResponse struct {
	ID                  uuid.UUID `json:"id"`
	NombreActividad     string    `json:"nombre_actividad,omitempty"`
	TipoActividad       string    `json:"tipo_actividad,omitempty"`
	NumeroPreguntas     int       `json:"numero_preguntas"`
	RespuestasCorrectas int       `json:"respuestas_correctas"`
	Fecha               time.Time `json:"fecha"`
	Activity            uuid.UUID `json:"activity"`
	User                uuid.UUID `json:"user"`
}

// CreateErrorReportRequest defines the payload for reporting an app error.
type CreateErrorReportRequest struct {
	Nombre      string `json:"nombre"      validate:"required,max=255"`
	Descripcion string `json:"descripcion" validate:"required"`
}

// ErrorReportResponse exposes a stored error report.
type ErrorReportResponse struct {
	ID          uuid.UUID  `json:"id"`
	Nombre      string     `json:"nombre"`
	Descripcion string     `json:"descripcion"`
	UserID      *uuid.UUID `json:"user"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FileResponse exposes stored file metadata.
type FileResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user"`
	Nombre      string    `json:"nombre"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Path        string    `json:"path"`
	CreatedAt   time.Time `json:"created_at"`
}
