package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quickrecap/quickrecap-api/internal/api/shared"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/service"
	"github.com/quickrecap/quickrecap-api/internal/service/auth"
	"github.com/quickrecap/quickrecap-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing field", domain.MissingField("email"), http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"revoked token", auth.ErrRevokedToken, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"activity not found", store.ErrActivityNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", store.ErrUserNotFound), http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"file too large", service.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{
			"service error keeps the cause",
			service.NewServiceError("history", "record", "failed", store.ErrActivityNotFound),
			http.StatusNotFound,
		},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessageDoesNotLeak(t *testing.T) {
	t.Parallel()

	sensitive := errors.New(`pq: duplicate key value violates unique constraint "users_email_key" at /srv/app/store.go:42`)
	msg := GetSafeErrorMessage(sensitive)
	assert.Equal(t, "An unexpected error occurred", msg)

	wrapped := fmt.Errorf("insert user a@x.com: %w", store.ErrEmailExists)
	assert.Equal(t, "Email already exists", GetSafeErrorMessage(wrapped))
	assert.NotContains(t, GetSafeErrorMessage(wrapped), "a@x.com")

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestFieldErrors(t *testing.T) {
	t.Parallel()

	t.Run("validator tags", func(t *testing.T) {
		err := shared.ValidateRequest(RegisterRequest{Email: "not-an-email", Password: "short"})
		require.Error(t, err)

		fields := FieldErrors(err)
		assert.Equal(t, "invalid email format", fields["email"])
		assert.Equal(t, "too short", fields["password"])
		assert.Equal(t, "required field", fields["nombres"])
		assert.Equal(t, "required field", fields["apellidos"])
	})

	t.Run("domain validation error", func(t *testing.T) {
		err := fmt.Errorf("create: %w", domain.NewValidationError("puntuacion", "must be between 1 and 5", nil))
		assert.Equal(t, map[string]string{"puntuacion": "must be between 1 and 5"}, FieldErrors(err))
	})

	t.Run("other errors", func(t *testing.T) {
		assert.Nil(t, FieldErrors(store.ErrNotFound))
	})
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	t.Run("validation errors carry fields", func(t *testing.T) {
		rr := httptest.NewRecorder()
		HandleAPIError(rr, httptest.NewRequest(http.MethodPost, "/api/auth/register", nil), domain.MissingField("email"), "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		body := decodeError(t, rr)
		assert.Equal(t, "Validation error", body.Error)
		assert.Equal(t, "is required", body.Fields["email"])
	})

	t.Run("internal errors use the default message", func(t *testing.T) {
		rr := httptest.NewRecorder()
		HandleAPIError(rr, httptest.NewRequest(http.MethodGet, "/api/history", nil),
			errors.New("dial tcp 10.0.0.5:5432: connection refused"), "Failed to list history")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Failed to list history", decodeError(t, rr).Error)
		assert.False(t, strings.Contains(rr.Body.String(), "10.0.0.5"))
	})
}
