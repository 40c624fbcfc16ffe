package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrorReport is a problem description submitted from a client.
type ErrorReport struct {
	ID          uuid.UUID  `json:"id"`
	Nombre      string     `json:"nombre"`
	Descripcion string     `json:"descripcion"`
	UserID      *uuid.UUID `json:"user"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewErrorReport validates and builds a report. reporter may be nil.
func NewErrorReport(nombre, descripcion string, reporter *uuid.UUID) (*ErrorReport, error) {
	nombre = strings.TrimSpace(nombre)
	descripcion = strings.TrimSpace(descripcion)
	if nombre == "" {
		return nil, MissingField("nombre")
	}
	if descripcion == "" {
		return nil, MissingField("descripcion")
	}
	return &ErrorReport{
		ID:          uuid.New(),
		Nombre:      nombre,
		Descripcion: descripcion,
		UserID:      reporter,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// File is the metadata of an uploaded artifact. Path is the storage key
// relative to the upload directory.
type File struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user"`
	Nombre      string    `json:"nombre"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Path        string    `json:"path"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewFile creates file metadata. The storage key is the file ID.
func NewFile(userID uuid.UUID, nombre, contentType string, size int64) (*File, error) {
	if userID == uuid.Nil {
		return nil, MissingField("user")
	}
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, MissingField("nombre")
	}
	if size < 0 {
		return nil, NewValidationError("size", "cannot be negative", nil)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	id := uuid.New()
	return &File{
		ID:          id,
		UserID:      userID,
		Nombre:      nombre,
		ContentType: contentType,
		Size:        size,
		Path:        id.String(),
		CreatedAt:   time.Now().UTC(),
	}, nil
}
