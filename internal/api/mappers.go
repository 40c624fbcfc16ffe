package api

import (
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/service"
)

// userToProfileResponse converts a domain.User to the owner's profile view.
func userToProfileResponse(user *domain.User) *ProfileResponse {
	resp := &ProfileResponse{
		ID:           user.ID,
		Email:        user.Email,
		Nombres:      user.Nombres,
		Apellidos:    user.Apellidos,
		Celular:      user.Celular,
		Genero:       user.Genero,
		ProfileImage: user.ProfileImage,
		Puntos:       user.Puntos,
	}
	if user.FechaNacimiento != nil {
		s := user.FechaNacimiento.Format(dateLayout)
		resp.FechaNacimiento = &s
	}
	return resp
}

func activityViewToResponse(view service.ActivityView) ActivityResponse {
	a := view.Activity
	return ActivityResponse{
		ID:                a.ID,
		TipoActividad:     a.TipoActividad,
		TiempoPorPregunta: a.TiempoPorPregunta,
		NumeroPreguntas:   a.NumeroPreguntas,
		VecesJugado:       a.VecesJugado,
		PuntuacionMaxima:  a.PuntuacionMaxima,
		Completado:        a.Completado,
		Privado:           a.Privado,
		Nombre:            a.Nombre,
		Usuario:           a.UserID,
		FlashcardID:       a.FlashcardID,
		Favourite:         view.Favourite,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func historyEntryToResponse(e *domain.HistoryEntry) HistoryResponse {
	return HistoryResponse{
		ID:                  e.ID,
		NombreActividad:     e.NombreActividad,
		TipoActividad:       e.TipoActividad,
		NumeroPreguntas:     e.NumeroPreguntas,
		RespuestasCorrectas: e.RespuestasCorrectas,
		Fecha:               e.Fecha,
		Activity:            e.ActivityID,
		User:                e.UserID,
	}
}

// historyToResponse maps a freshly recorded play. The activity name and
// type are only joined in on reads, so they are omitted here.
func historyToResponse(h *domain.History) HistoryResponse {
	return HistoryResponse{
		ID:                  h.ID,
		NumeroPreguntas:     h.NumeroPreguntas,
		RespuestasCorrectas: h.RespuestasCorrectas,
		Fecha:               h.Fecha,
		Activity:            h.ActivityID,
		User:                h.UserID,
	}
}

func favoriteToResponse(f *domain.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:         f.ID,
		UserID:     f.UserID,
		ActivityID: f.ActivityID,
		CreatedAt:  f.CreatedAt,
	}
}

func ratingToResponse(r *domain.Rating) RatingResponse {
	return RatingResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		ActivityID: r.ActivityID,
		Puntuacion: r.Puntuacion,
		CreatedAt:  r.CreatedAt,
	}
}

func errorReportToResponse(r *domain.ErrorReport) ErrorReportResponse {
	return ErrorReportResponse{
		ID:          r.ID,
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		UserID:      r.UserID,
		CreatedAt:   r.CreatedAt,
	}
}

func fileToResponse(f *domain.File) FileResponse {
	return FileResponse{
		ID:          f.ID,
		UserID:      f.UserID,
		Nombre:      f.Nombre,
		ContentType: f.ContentType,
		Size:        f.Size,
		Path:        f.Path,
		CreatedAt:   f.CreatedAt,
	}
}

// mapAll applies fn to every item, always returning a non-nil slice so
// empty lists encode as [].
func mapAll[S any, D any](items []S, fn func(S) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
