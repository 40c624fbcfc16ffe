package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// PostgresErrorReportStore implements store.ErrorReportStore on PostgreSQL.
type PostgresErrorReportStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresErrorReportStore creates an error report store on db.
func NewPostgresErrorReportStore(db store.DBTX, logger *slog.Logger) *PostgresErrorReportStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresErrorReportStore{
		db:     db,
		logger: logger.With(slog.String("component", "error_report_store")),
	}
}

var _ store.ErrorReportStore = (*PostgresErrorReportStore)(nil)

// Create implements store.ErrorReportStore.Create
func (s *PostgresErrorReportStore) Create(ctx context.Context, report *domain.ErrorReport) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO error_reports (id, nombre, descripcion, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, report.ID, report.Nombre, report.Descripcion, report.UserID, report.CreatedAt)
	if err != nil {
		log.Error("failed to create error report",
			slog.String("error", err.Error()),
			slog.String("report_id", report.ID.String()))
		return store.NewStoreError("error_report", "create", "insert failed", MapError(err, nil))
	}

	log.Info("error report received", slog.String("report_id", report.ID.String()))
	return nil
}

// ListByUser implements store.ErrorReportStore.ListByUser
func (s *PostgresErrorReportStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) ([]*domain.ErrorReport, error) {
	page = page.Normalize()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nombre, descripcion, user_id, created_at
		FROM error_reports
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, store.NewStoreError("error_report", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	reports := make([]*domain.ErrorReport, 0)
	for rows.Next() {
		var r domain.ErrorReport
		if err := rows.Scan(&r.ID, &r.Nombre, &r.Descripcion, &r.UserID, &r.CreatedAt); err != nil {
			return nil, store.NewStoreError("error_report", "list", "scan failed", err)
		}
		reports = append(reports, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("error_report", "list", "row iteration failed", err)
	}
	return reports, nil
}

// PostgresFileStore implements store.FileStore on PostgreSQL.
type PostgresFileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFileStore creates a file metadata store on db.
func NewPostgresFileStore(db store.DBTX, logger *slog.Logger) *PostgresFileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresFileStore{
		db:     db,
		logger: logger.With(slog.String("component", "file_store")),
	}
}

var _ store.FileStore = (*PostgresFileStore)(nil)

// Create implements store.FileStore.Create
func (s *PostgresFileStore) Create(ctx context.Context, file *domain.File) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (id, user_id, nombre, content_type, size, path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, file.ID, file.UserID, file.Nombre, file.ContentType, file.Size, file.Path, file.CreatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, file.UserID)
		}
		log.Error("failed to create file",
			slog.String("error", err.Error()),
			slog.String("file_id", file.ID.String()))
		return store.NewStoreError("file", "create", "insert failed", MapError(err, nil))
	}
	return nil
}

// GetByID implements store.FileStore.GetByID
func (s *PostgresFileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	var f domain.File
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, nombre, content_type, size, path, created_at
		FROM files
		WHERE id = $1
	`, id).Scan(&f.ID, &f.UserID, &f.Nombre, &f.ContentType, &f.Size, &f.Path, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrFileNotFound
		}
		return nil, store.NewStoreError("file", "get", "query failed", err)
	}
	return &f, nil
}

// ListByUser implements store.FileStore.ListByUser
func (s *PostgresFileStore) ListByUser(ctx context.Context, userID uuid.UUID, page store.Page) ([]*domain.File, error) {
	page = page.Normalize()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, nombre, content_type, size, path, created_at
		FROM files
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, store.NewStoreError("file", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	files := make([]*domain.File, 0)
	for rows.Next() {
		var f domain.File
		if err := rows.Scan(&f.ID, &f.UserID, &f.Nombre, &f.ContentType, &f.Size, &f.Path, &f.CreatedAt); err != nil {
			return nil, store.NewStoreError("file", "list", "scan failed", err)
		}
		files = append(files, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("file", "list", "row iteration failed", err)
	}
	return files, nil
}
