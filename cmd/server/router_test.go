package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quickrecap/quickrecap-api/internal/api"
	"github.com/quickrecap/quickrecap-api/internal/config"
	"github.com/quickrecap/quickrecap-api/internal/platform/metrics"
	"github.com/quickrecap/quickrecap-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "info",
			CORSAllowedOrigins:     []string{"https://app.quickrecap.test"},
			ShutdownTimeoutSeconds: 1,
		},
		Auth: config.AuthConfig{
			JWTSecret:                   "test-jwt-secret-that-is-32-chars-long",
			TokenLifetimeMinutes:        60,
			RefreshTokenLifetimeMinutes: 1440,
		},
	}
	jwtService, err := auth.NewJWTService(cfg.Auth)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &application{
		config:     cfg,
		logger:     logger,
		metrics:    metrics.New(),
		jwtService: jwtService,
		handlers: api.Handlers{
			Auth:       api.NewAuthHandler(nil, logger),
			Users:      api.NewUserHandler(nil, logger),
			Activities: api.NewActivityHandler(nil, nil, nil, logger),
			History:    api.NewHistoryHandler(nil, logger),
			Reports:    api.NewErrorReportHandler(nil, logger),
			Files:      api.NewFileHandler(nil, logger),
		},
	}
}

func TestRouter_Health(t *testing.T) {
	router := newTestApplication(t).setupRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestApplication(t).setupRouter()

	// generate one observed request first
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "quickrecap_http_requests_total")
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	router := newTestApplication(t).setupRouter()

	for _, path := range []string{"/api/users/me", "/api/activities", "/api/history", "/api/files"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestRouter_CORS(t *testing.T) {
	router := newTestApplication(t).setupRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/activities", nil)
	req.Header.Set("Origin", "https://app.quickrecap.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "https://app.quickrecap.test", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.test")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
