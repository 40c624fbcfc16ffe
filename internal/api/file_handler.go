package api

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/quickrecap/quickrecap-api/internal/api/shared"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/redact"
	"github.com/quickrecap/quickrecap-api/internal/service"
)

// fileFormField is the multipart part carrying the upload.
const fileFormField = "file"

// FileHandler handles uploads and downloads of user files.
type FileHandler struct {
	files  service.FileService
	logger *slog.Logger
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(files service.FileService, logger *slog.Logger) *FileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileHandler{
		files:  files,
		logger: logger.With(slog.String("component", "file_handler")),
	}
}

// UploadFile handles POST /api/files. The "file" part is streamed to the
// file service without buffering the whole request.
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	reader, err := r.MultipartReader()
	if err != nil {
		HandleAPIError(w, r, domain.NewValidationError(fileFormField, "expected multipart/form-data", nil), "")
		return
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			HandleAPIError(w, r, domain.NewValidationError(fileFormField, "malformed multipart body", nil), "")
			return
		}
		if part.FormName() != fileFormField {
			_ = part.Close()
			continue
		}

		file, err := h.files.Upload(r.Context(), userID, service.FileUpload{
			Nombre:      part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Content:     part,
		})
		_ = part.Close()
		if err != nil {
			HandleAPIError(w, r, err, "Failed to upload file")
			return
		}

		shared.RespondWithJSON(w, r, http.StatusCreated, fileToResponse(file))
		return
	}

	HandleAPIError(w, r, domain.MissingField(fileFormField), "")
}

// ListFiles handles GET /api/files.
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	files, err := h.files.List(r.Context(), userID, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list files")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, mapAll(files, fileToResponse))
}

// GetFile handles GET /api/files/{id}.
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	userID, fileID, ok := handleUserIDAndPathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	file, err := h.files.Get(r.Context(), userID, fileID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get file")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, fileToResponse(file))
}

// GetFileContent handles GET /api/files/{id}/content.
func (h *FileHandler) GetFileContent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, fileID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	file, content, err := h.files.Open(r.Context(), userID, fileID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read file")
		return
	}
	defer func() { _ = content.Close() }()

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Nombre}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, content); err != nil {
		// headers are already sent
		log.Error("failed to stream file content",
			slog.String("file_id", file.ID.String()),
			redact.ErrorAttr(err))
	}
}
