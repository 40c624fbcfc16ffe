package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func TestNewUser(t *testing.T) {
	reg := Registration{
		Email:     "  A@X.com ",
		Password:  "secret123",
		Nombres:   " Ana ",
		Apellidos: "Pérez",
		Celular:   strPtr("  "),
		Genero:    strPtr("F"),
	}

	user, err := NewUser(reg, "hashed-value")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if user.Email != "a@x.com" {
		t.Errorf("Expected normalized email a@x.com, got %s", user.Email)
	}
	if user.Nombres != "Ana" {
		t.Errorf("Expected trimmed nombres Ana, got %q", user.Nombres)
	}
	if user.Celular != nil {
		t.Errorf("Expected blank celular to become nil, got %q", *user.Celular)
	}
	if user.Genero == nil || *user.Genero != "F" {
		t.Errorf("Expected genero F, got %v", user.Genero)
	}
	if user.HashedPassword != "hashed-value" {
		t.Errorf("Expected hashed password to be kept, got %s", user.HashedPassword)
	}
	if user.Puntos != 0 {
		t.Errorf("Expected zero points, got %d", user.Puntos)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}
}

func TestNewUserMissingFields(t *testing.T) {
	base := Registration{Email: "a@x.com", Password: "secret123", Nombres: "Ana", Apellidos: "Ruiz"}

	tests := []struct {
		name   string
		mutate func(r *Registration)
		field  string
		target error
	}{
		{"missing email", func(r *Registration) { r.Email = " " }, "email", ErrMissingField},
		{"missing password", func(r *Registration) { r.Password = "" }, "password", ErrMissingField},
		{"missing nombres", func(r *Registration) { r.Nombres = "" }, "nombres", ErrMissingField},
		{"missing apellidos", func(r *Registration) { r.Apellidos = "" }, "apellidos", ErrMissingField},
		{"invalid email", func(r *Registration) { r.Email = "not-an-email" }, "email", ErrInvalidEmail},
		{"email without dotted domain", func(r *Registration) { r.Email = "a@localhost" }, "email", ErrInvalidEmail},
		{"display name form", func(r *Registration) { r.Email = "Ana <a@x.com>" }, "email", ErrInvalidEmail},
		{"trailing dot domain", func(r *Registration) { r.Email = "a@x." }, "email", ErrInvalidEmail},
		{"short password", func(r *Registration) { r.Password = "short" }, "password", ErrInvalidPassword},
		{"long password", func(r *Registration) { r.Password = strings.Repeat("x", 73) }, "password", ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := base
			tt.mutate(&reg)

			_, err := NewUser(reg, "hash")
			if !errors.Is(err, tt.target) {
				t.Fatalf("Expected %v, got %v", tt.target, err)
			}
			if got := FieldOf(err); got != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, got)
			}
		})
	}
}

func TestNewUserRequiresHash(t *testing.T) {
	reg := Registration{Email: "a@x.com", Password: "secret123", Nombres: "Ana", Apellidos: "Ruiz"}
	if _, err := NewUser(reg, ""); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Expected %v, got %v", ErrInvalidPassword, err)
	}
}

func TestUserJSONNeverContainsPassword(t *testing.T) {
	user := User{
		ID:             uuid.New(),
		Email:          "a@x.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		Nombres:        "Ana",
		Apellidos:      "Ruiz",
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for key := range fields {
		if strings.Contains(strings.ToLower(key), "password") {
			t.Errorf("Expected no password field, found %q", key)
		}
	}
	if strings.Contains(string(data), user.HashedPassword) {
		t.Error("Expected hash to be absent from JSON output")
	}
}

func TestProfileUpdateApply(t *testing.T) {
	user := &User{ID: uuid.New(), Nombres: "Ana", Apellidos: "Ruiz", Puntos: 10}

	err := ProfileUpdate{Nombres: "Anita", Apellidos: "Ruiz", ProfileImage: strPtr("/files/1")}.Apply(user)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Nombres != "Anita" {
		t.Errorf("Expected Anita, got %s", user.Nombres)
	}
	if user.Puntos != 10 {
		t.Errorf("Expected points untouched, got %d", user.Puntos)
	}

	points := 42
	if err := (ProfileUpdate{Nombres: "Ana", Apellidos: "Ruiz", Puntos: &points}).Apply(user); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Puntos != 42 {
		t.Errorf("Expected 42 points, got %d", user.Puntos)
	}

	if err := (ProfileUpdate{Apellidos: "Ruiz"}).Apply(user); !errors.Is(err, ErrMissingField) {
		t.Errorf("Expected %v, got %v", ErrMissingField, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: "hashedpassword123",
		Nombres:        "Ana",
		Apellidos:      "Ruiz",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Expected error %v, got %v", ErrInvalidID, err)
	}

	invalidUser = validUser
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Expected error %v, got %v", ErrInvalidPassword, err)
	}
}
