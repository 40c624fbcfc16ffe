package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/api/shared"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/service/auth"
)

// AuthService is the subset of *auth.Service used by AuthHandler.
type AuthService interface {
	Register(ctx context.Context, reg domain.Registration) (*domain.User, *auth.TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, *auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

var _ AuthService = (*auth.Service)(nil)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		authService: authService,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, pair, err := h.authService.Register(r.Context(), req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newAuthResponse(user, pair))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, pair, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newAuthResponse(user, pair))
}

// RefreshToken handles POST /api/auth/refresh. The presented refresh token
// is revoked and a new pair is issued.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.authService.Refresh(r.Context(), req.Refresh)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to refresh token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newAuthResponse(nil, pair))
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req LogoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.authService.Logout(r.Context(), userID, req.Refresh); err != nil {
		HandleAPIError(w, r, err, "Failed to log out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword handles POST /api/auth/change-password. A wrong old
// password is reported as a field error, not as an authentication failure.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.authService.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		shared.RespondWithValidationError(w, r, map[string]string{"old_password": "is incorrect"})
		return
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to change password")
		return
	}

	log.Info("password changed", slog.String("user_id", userID.String()))
	w.WriteHeader(http.StatusNoContent)
}

func newAuthResponse(user *domain.User, pair *auth.TokenPair) AuthResponse {
	resp := AuthResponse{
		Access:    pair.AccessToken,
		Refresh:   pair.RefreshToken,
		ExpiresAt: pair.ExpiresAt.UTC().Format(time.RFC3339),
	}
	if user != nil {
		resp.User = userToProfileResponse(user)
	}
	return resp
}
