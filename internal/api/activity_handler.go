package api

import (
	"log/slog"
	"net/http"

	"github.com/quickrecap/quickrecap-api/internal/api/shared"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/service"
)

// ActivityHandler serves activities together with the caller's favorites
// and ratings of them.
type ActivityHandler struct {
	activities service.ActivityService
	favorites  service.FavoriteService
	ratings    service.RatingService
	logger     *slog.Logger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(
	activities service.ActivityService,
	favorites service.FavoriteService,
	ratings service.RatingService,
	logger *slog.Logger,
) *ActivityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityHandler{
		activities: activities,
		favorites:  favorites,
		ratings:    ratings,
		logger:     logger.With(slog.String("component", "activity_handler")),
	}
}

// CreateActivity handles POST /api/activities.
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateActivityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.activities.Create(r.Context(), userID, req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create activity")
		return
	}

	log.Debug("activity created", slog.String("activity_id", view.Activity.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, activityViewToResponse(*view))
}

// ListActivities handles GET /api/activities. scope=public lists every
// non-private activity; the default lists the caller's own.
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	page, err := pageFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	scope := service.ActivityScope(r.URL.Query().Get("scope"))
	views, err := h.activities.List(r.Context(), userID, scope, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list activities")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, mapAll(views, activityViewToResponse))
}

// GetActivity handles GET /api/activities/{id}.
func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	userID, activityID, ok := handleUserIDAndPathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	view, err := h.activities.Get(r.Context(), userID, activityID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get activity")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, activityViewToResponse(*view))
}

// DeleteActivity handles DELETE /api/activities/{id}.
func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	userID, activityID, ok := handleUserIDAndPathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	if err := h.activities.Delete(r.Context(), userID, activityID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete activity")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddFavorite handles POST /api/activities/{id}/favorite. Adding an
// existing favorite returns the stored one.
func (h *ActivityHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, activityID, ok := handleUserIDAndPathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	fav, err := h.favorites.Add(r.Context(), userID, activityID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add favorite")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, favoriteToResponse(fav))
}

// RemoveFavorite handles DELETE /api/activities/{id}/favorite.
func (h *ActivityHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, activityID, ok := handleUserIDAndPathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	if err := h.favorites.Remove(r.Context(), userID, activityID); err != nil {
		HandleAPIError(w, r, err, "Failed to remove favorite")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFavorites handles GET /api/favorites.
func (h *ActivityHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	favs, err := h.favorites.List(r.Context(), userID, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list favorites")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, mapAll(favs, favoriteToResponse))
}

// RateActivity handles PUT /api/activities/{id}/rating. Rating again
// replaces the caller's previous score.
func (h *ActivityHandler) RateActivity(w http.ResponseWriter, r *http.Request) {
	userID, activityID, ok := handleUserIDAndPathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req RateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rating, err := h.ratings.Rate(r.Context(), userID, activityID, req.Puntuacion)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to rate activity")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ratingToResponse(rating))
}

// ListActivityRatings handles GET /api/activities/{id}/ratings.
func (h *ActivityHandler) ListActivityRatings(w http.ResponseWriter, r *http.Request) {
	userID, activityID, ok := handleUserIDAndPathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ratings, err := h.ratings.ListByActivity(r.Context(), userID, activityID, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list ratings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, mapAll(ratings, ratingToResponse))
}

// ListMyRatings handles GET /api/ratings.
func (h *ActivityHandler) ListMyRatings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ratings, err := h.ratings.ListByUser(r.Context(), userID, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list ratings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, mapAll(ratings, ratingToResponse))
}
