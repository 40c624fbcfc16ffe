package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryHandler_RecordAndList(t *testing.T) {
	f := newAPIFixture(t)
	player := f.register(t, "player@x.com")
	activity := f.createActivity(t, player, "Capitales", false)

	fecha := time.Date(2024, time.May, 4, 10, 0, 0, 0, time.UTC)
	rr := f.do(t, http.MethodPost, "/api/history", player.access, map[string]any{
		"activity":             activity.ID,
		"numero_preguntas":     10,
		"respuestas_correctas": 7,
		"fecha":                fecha,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created HistoryResponse
	decodeBody(t, rr, &created)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, activity.ID, created.Activity)
	assert.Equal(t, player.user.ID, created.User)
	assert.Equal(t, 10, created.NumeroPreguntas)
	assert.True(t, fecha.Equal(created.Fecha))
	assert.NotContains(t, rr.Body.String(), "nombre_actividad", "names are joined on reads only")

	rr = f.do(t, http.MethodGet, "/api/activities/"+activity.ID.String(), player.access, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var updated ActivityResponse
	decodeBody(t, rr, &updated)
	assert.Equal(t, 1, updated.VecesJugado)
	assert.Equal(t, 7, updated.PuntuacionMaxima)
	assert.True(t, updated.Completado)

	// renaming the activity is reflected at read time
	f.activities.Activities[activity.ID].Nombre = "Capitales de Europa"

	rr = f.do(t, http.MethodGet, "/api/history", player.access, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var entries []HistoryResponse
	decodeBody(t, rr, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "Capitales de Europa", entries[0].NombreActividad)
	assert.Equal(t, "quiz", entries[0].TipoActividad)
	assert.Equal(t, 7, entries[0].RespuestasCorrectas)
	assert.Equal(t, player.user.ID, entries[0].User)
	assert.True(t, fecha.Equal(entries[0].Fecha))
}

func TestHistoryHandler_Rejections(t *testing.T) {
	f := newAPIFixture(t)
	player := f.register(t, "player@x.com")
	activity := f.createActivity(t, player, "Capitales", false)

	tests := []struct {
		name   string
		body   map[string]any
		status int
		field  string
	}{
		{
			name:   "more correct answers than questions",
			body:   map[string]any{"activity": activity.ID, "numero_preguntas": 5, "respuestas_correctas": 6},
			status: http.StatusBadRequest,
			field:  "respuestas_correctas",
		},
		{
			name:   "missing activity",
			body:   map[string]any{"numero_preguntas": 5, "respuestas_correctas": 1},
			status: http.StatusBadRequest,
			field:  "activity",
		},
		{
			name:   "another user",
			body:   map[string]any{"activity": activity.ID, "user": uuid.New(), "numero_preguntas": 5, "respuestas_correctas": 1},
			status: http.StatusForbidden,
		},
		{
			name:   "unknown activity",
			body:   map[string]any{"activity": uuid.New(), "numero_preguntas": 5, "respuestas_correctas": 1},
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.do(t, http.MethodPost, "/api/history", player.access, tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			if tt.field != "" {
				assert.Contains(t, decodeError(t, rr).Fields, tt.field)
			}
		})
	}

	assert.Empty(t, f.history.Records)
	assert.Zero(t, f.activities.Activities[activity.ID].VecesJugado)
}
