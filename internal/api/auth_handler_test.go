package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newAPIFixture(t)

		rr := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
			"email":     "a@x.com",
			"password":  "secret123",
			"nombres":   "Ana",
			"apellidos": "Ruiz",
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		assert.NotContains(t, strings.ToLower(rr.Body.String()), "password")

		var resp AuthResponse
		decodeBody(t, rr, &resp)
		require.NotNil(t, resp.User)
		assert.Equal(t, "a@x.com", resp.User.Email)
		assert.Equal(t, "Ana", resp.User.Nombres)
		assert.NotEmpty(t, resp.Access)
		assert.NotEmpty(t, resp.Refresh)
		assert.NotEmpty(t, resp.ExpiresAt)

		stored := f.users.Users["a@x.com"]
		require.NotNil(t, stored)
		assert.NotEqual(t, "secret123", stored.HashedPassword)
	})

	tests := []struct {
		name    string
		body    map[string]any
		field   string
		message string
	}{
		{
			name:    "missing email",
			body:    map[string]any{"password": "secret123", "nombres": "Ana", "apellidos": "Ruiz"},
			field:   "email",
			message: "required field",
		},
		{
			name:    "invalid email",
			body:    map[string]any{"email": "nope", "password": "secret123", "nombres": "Ana", "apellidos": "Ruiz"},
			field:   "email",
			message: "invalid email format",
		},
		{
			name:    "short password",
			body:    map[string]any{"email": "a@x.com", "password": "short", "nombres": "Ana", "apellidos": "Ruiz"},
			field:   "password",
			message: "too short",
		},
		{
			name:    "missing nombres",
			body:    map[string]any{"email": "a@x.com", "password": "secret123", "apellidos": "Ruiz"},
			field:   "nombres",
			message: "required field",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t)

			rr := f.do(t, http.MethodPost, "/api/auth/register", "", tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)

			body := decodeError(t, rr)
			assert.Equal(t, "Validation error", body.Error)
			assert.Equal(t, tt.message, body.Fields[tt.field])
			assert.Empty(t, f.users.Users)
		})
	}

	t.Run("duplicate email", func(t *testing.T) {
		f := newAPIFixture(t)
		f.register(t, "a@x.com")

		rr := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
			"email":     "A@X.com",
			"password":  "secret123",
			"nombres":   "Otra",
			"apellidos": "Persona",
		})
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "Email already exists", decodeError(t, rr).Error)
	})

	t.Run("empty body", func(t *testing.T) {
		f := newAPIFixture(t)
		rr := f.do(t, http.MethodPost, "/api/auth/register", "", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Request body is required", decodeError(t, rr).Error)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	f := newAPIFixture(t)
	registered := f.register(t, "a@x.com")

	t.Run("success", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email": "a@x.com", "password": "secret123",
		})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var resp AuthResponse
		decodeBody(t, rr, &resp)
		assert.Equal(t, registered.user.ID, resp.User.ID)
		assert.NotEmpty(t, resp.Access)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		wrong := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email": "a@x.com", "password": "not-the-password",
		})
		unknown := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email": "nobody@x.com", "password": "secret123",
		})

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, wrong).Error)
		assert.Equal(t, decodeError(t, wrong).Error, decodeError(t, unknown).Error)
	})

	t.Run("missing password", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "a@x.com"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "required field", decodeError(t, rr).Fields["password"])
	})
}

func TestAuthHandler_RefreshAndLogout(t *testing.T) {
	f := newAPIFixture(t)
	s := f.register(t, "a@x.com")

	rr := f.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]any{"refresh": s.refresh})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var rotated AuthResponse
	decodeBody(t, rr, &rotated)
	assert.Nil(t, rotated.User)
	assert.NotEqual(t, s.refresh, rotated.Refresh)

	// the presented token was revoked on use
	rr = f.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]any{"refresh": s.refresh})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid refresh token", decodeError(t, rr).Error)

	rr = f.do(t, http.MethodPost, "/api/auth/logout", "", map[string]any{"refresh": rotated.Refresh})
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "logout requires a bearer token")

	rr = f.do(t, http.MethodPost, "/api/auth/logout", rotated.Access, map[string]any{"refresh": rotated.Refresh})
	assert.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	rr = f.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]any{"refresh": rotated.Refresh})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = f.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]any{"refresh": rotated.Access})
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "access tokens cannot refresh")

	rr = f.do(t, http.MethodPost, "/api/auth/logout", rotated.Access, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "required field", decodeError(t, rr).Fields["refresh"])
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	f := newAPIFixture(t)
	s := f.register(t, "a@x.com")

	rr := f.do(t, http.MethodPost, "/api/auth/change-password", s.access, map[string]any{
		"old_password": "wrong-password",
		"new_password": "newsecret123",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "is incorrect", decodeError(t, rr).Fields["old_password"])

	rr = f.do(t, http.MethodPost, "/api/auth/change-password", s.access, map[string]any{
		"old_password": "secret123",
		"new_password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr).Fields, "new_password")

	rr = f.do(t, http.MethodPost, "/api/auth/change-password", s.access, map[string]any{
		"old_password": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "required field", decodeError(t, rr).Fields["new_password"])

	rr = f.do(t, http.MethodPost, "/api/auth/change-password", s.access, map[string]any{
		"old_password": "secret123",
		"new_password": "newsecret123",
	})
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	rr = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "a@x.com", "password": "newsecret123",
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "a@x.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
