package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// BlobStore holds the bytes of uploaded files under a storage key.
type BlobStore interface {
	// Put writes r under key and returns the number of bytes written.
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// FileUpload describes an incoming file.
type FileUpload struct {
	Nombre      string
	ContentType string
	Content     io.Reader
}

// FileService stores uploads and serves them back to their owner.
type FileService interface {
	// Upload stores the content and its metadata. Content larger than the
	// configured limit yields ErrFileTooLarge and nothing is kept.
	Upload(ctx context.Context, userID uuid.UUID, upload FileUpload) (*domain.File, error)

	// Get returns metadata of a file owned by userID.
	Get(ctx context.Context, userID, fileID uuid.UUID) (*domain.File, error)

	// Open returns metadata and content of a file owned by userID. The
	// caller closes the reader.
	Open(ctx context.Context, userID, fileID uuid.UUID) (*domain.File, io.ReadCloser, error)

	List(ctx context.Context, userID uuid.UUID, page store.Page) ([]*domain.File, error)
}

type fileServiceImpl struct {
	files    store.FileStore
	blobs    BlobStore
	maxBytes int64
	logger   *slog.Logger
}

// NewFileService creates a FileService. maxBytes <= 0 disables the size limit.
func NewFileService(files store.FileStore, blobs BlobStore, maxBytes int64, logger *slog.Logger) (FileService, error) {
	if files == nil {
		return nil, domain.NewValidationError("files", "cannot be nil", domain.ErrValidation)
	}
	if blobs == nil {
		return nil, domain.NewValidationError("blobs", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &fileServiceImpl{
		files:    files,
		blobs:    blobs,
		maxBytes: maxBytes,
		logger:   logger.With(slog.String("component", "file_service")),
	}, nil
}

func (s *fileServiceImpl) Upload(ctx context.Context, userID uuid.UUID, upload FileUpload) (*domain.File, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if upload.Content == nil {
		return nil, domain.MissingField("file")
	}
	file, err := domain.NewFile(userID, upload.Nombre, upload.ContentType, 0)
	if err != nil {
		return nil, err
	}

	content := upload.Content
	if s.maxBytes > 0 {
		content = io.LimitReader(content, s.maxBytes+1)
	}
	size, err := s.blobs.Put(ctx, file.Path, content)
	if err != nil {
		return nil, NewServiceError("file", "upload", "failed to store content", err)
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		s.discard(ctx, file.Path)
		return nil, ErrFileTooLarge
	}
	file.Size = size

	if err := s.files.Create(ctx, file); err != nil {
		s.discard(ctx, file.Path)
		return nil, err
	}

	log.Info("file uploaded",
		slog.String("file_id", file.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int64("size", size))
	return file, nil
}

func (s *fileServiceImpl) Get(ctx context.Context, userID, fileID uuid.UUID) (*domain.File, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.UserID != userID {
		return nil, ErrNotOwned
	}
	return file, nil
}

func (s *fileServiceImpl) Open(ctx context.Context, userID, fileID uuid.UUID) (*domain.File, io.ReadCloser, error) {
	file, err := s.Get(ctx, userID, fileID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.blobs.Open(ctx, file.Path)
	if err != nil {
		return nil, nil, err
	}
	return file, rc, nil
}

func (s *fileServiceImpl) List(ctx context.Context, userID uuid.UUID, page store.Page) ([]*domain.File, error) {
	return s.files.ListByUser(ctx, userID, page)
}

func (s *fileServiceImpl) discard(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to remove orphaned upload",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}
