package api

import (
	"log/slog"
	"net/http"

	"github.com/quickrecap/quickrecap-api/internal/api/shared"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/service"
)

// UserHandler serves the authenticated user's profile.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// GetProfile handles GET /api/users/me.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get profile")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToProfileResponse(user))
}

// UpdateProfile handles PUT /api/users/me.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	update, err := req.toDomain()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update profile")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToProfileResponse(user))
}

// UpdatePoints handles PATCH /api/users/me/points.
func (h *UserHandler) UpdatePoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req UpdatePointsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.UpdatePoints(r.Context(), userID, *req.Puntos)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update points")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToProfileResponse(user))
}
