package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/quickrecap/quickrecap-api/internal/api/middleware"
	"github.com/quickrecap/quickrecap-api/internal/config"
	"github.com/quickrecap/quickrecap-api/internal/mocks"
	"github.com/quickrecap/quickrecap-api/internal/platform/storage"
	"github.com/quickrecap/quickrecap-api/internal/service"
	"github.com/quickrecap/quickrecap-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const testMaxUploadBytes = 64

// apiFixture wires the real handlers and services over in-memory stores.
type apiFixture struct {
	users      *mocks.MockUserStore
	activities *mocks.MockActivityStore
	favorites  *mocks.MockFavoriteStore
	ratings    *mocks.MockRatingStore
	history    *mocks.MockHistoryStore
	reports    *mocks.MockErrorReportStore
	files      *mocks.MockFileStore
	revoked    *mocks.MockRevokedTokenStore
	router     http.Handler
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	f := &apiFixture{
		users:      mocks.NewMockUserStore(),
		activities: mocks.NewMockActivityStore(),
		favorites:  mocks.NewMockFavoriteStore(),
		ratings:    mocks.NewMockRatingStore(),
		reports:    &mocks.MockErrorReportStore{},
		files:      mocks.NewMockFileStore(),
		revoked:    mocks.NewMockRevokedTokenStore(),
	}
	f.history = mocks.NewMockHistoryStore(f.activities)

	tokens, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
	})
	require.NoError(t, err)

	authSvc, err := auth.NewService(auth.Deps{
		Users:   f.users,
		Hasher:  &mocks.MockPasswordHasher{},
		Tokens:  tokens,
		Revoked: f.revoked,
	})
	require.NoError(t, err)

	userSvc, err := service.NewUserService(f.users, nil, nil)
	require.NoError(t, err)
	activitySvc, err := service.NewActivityService(f.activities, f.favorites, nil)
	require.NoError(t, err)
	favoriteSvc, err := service.NewFavoriteService(f.favorites, f.activities, nil)
	require.NoError(t, err)
	ratingSvc, err := service.NewRatingService(f.ratings, f.activities, nil)
	require.NoError(t, err)
	historySvc, err := service.NewHistoryService(service.HistoryDeps{History: f.history, Activities: f.activities})
	require.NoError(t, err)
	reportSvc, err := service.NewErrorReportService(f.reports, nil)
	require.NoError(t, err)
	blobs, err := storage.OpenDir(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = blobs.Close() })
	fileSvc, err := service.NewFileService(f.files, blobs, testMaxUploadBytes, nil)
	require.NoError(t, err)

	r := chi.NewRouter()
	RegisterRoutes(r, Handlers{
		Auth:       NewAuthHandler(authSvc, nil),
		Users:      NewUserHandler(userSvc, nil),
		Activities: NewActivityHandler(activitySvc, favoriteSvc, ratingSvc, nil),
		History:    NewHistoryHandler(historySvc, nil),
		Reports:    NewErrorReportHandler(reportSvc, nil),
		Files:      NewFileHandler(fileSvc, nil),
	}, middleware.NewAuthMiddleware(tokens).Authenticate)
	f.router = r

	return f
}

// session is a registered user and their tokens.
type session struct {
	user    *ProfileResponse
	access  string
	refresh string
}

func (f *apiFixture) register(t *testing.T, email string) session {
	t.Helper()
	rr := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":     email,
		"password":  "secret123",
		"nombres":   "Ana",
		"apellidos": "Ruiz",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp AuthResponse
	decodeBody(t, rr, &resp)
	require.NotNil(t, resp.User)
	return session{user: resp.User, access: resp.Access, refresh: resp.Refresh}
}

// do sends a JSON request through the router. A nil body sends none.
func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return f.send(req, token)
}

func (f *apiFixture) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func (f *apiFixture) createActivity(t *testing.T, s session, nombre string, privado bool) ActivityResponse {
	t.Helper()
	rr := f.do(t, http.MethodPost, "/api/activities", s.access, map[string]any{
		"tipo_actividad":      "quiz",
		"tiempo_por_pregunta": 30,
		"numero_preguntas":    10,
		"nombre":              nombre,
		"privado":             privado,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp ActivityResponse
	decodeBody(t, rr, &resp)
	return resp
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	decodeBody(t, rr, &body)
	return body
}
