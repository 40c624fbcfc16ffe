package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/mocks"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, users *mocks.MockUserStore, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(domain.Registration{
		Email:     email,
		Password:  "secret123",
		Nombres:   "Ana",
		Apellidos: "Ruiz",
	}, "hashed:secret123")
	require.NoError(t, err)
	users.Add(user)
	return user
}

func newTestActivity(
	t *testing.T,
	activities *mocks.MockActivityStore,
	owner uuid.UUID,
	nombre string,
	privado bool,
) *domain.Activity {
	t.Helper()
	a, err := domain.NewActivity{
		TipoActividad:     "quiz",
		TiempoPorPregunta: 30,
		NumeroPreguntas:   10,
		Nombre:            nombre,
		UserID:            owner,
		Privado:           privado,
	}.Build()
	require.NoError(t, err)
	// distinct timestamps keep list ordering deterministic
	a.CreatedAt = time.Now().Add(time.Duration(len(activities.Activities)) * time.Second)
	activities.Activities[a.ID] = a
	return a
}
