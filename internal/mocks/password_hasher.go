package mocks

import (
	"errors"
	"strings"
)

const fakeHashPrefix = "hashed:"

// MockPasswordHasher implements auth.PasswordHasher with a reversible
// fake hash so tests stay fast.
type MockPasswordHasher struct {
	HashErr error

	CompareCallCount int
}

// Hash implements auth.PasswordHasher
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return fakeHashPrefix + password, nil
}

// Compare implements auth.PasswordHasher
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.CompareCallCount++
	if !strings.HasPrefix(hashedPassword, fakeHashPrefix) ||
		strings.TrimPrefix(hashedPassword, fakeHashPrefix) != password {
		return errors.New("password mismatch")
	}
	return nil
}
