package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quickrecap/quickrecap-api/internal/domain"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// ErrorReportService collects problem reports from clients.
type ErrorReportService interface {
	// Create stores a report. reporter may be nil.
	Create(ctx context.Context, reporter *uuid.UUID, nombre, descripcion string) (*domain.ErrorReport, error)

	// List returns the reports filed by userID.
	List(ctx context.Context, userID uuid.UUID, page store.Page) ([]*domain.ErrorReport, error)
}

type errorReportServiceImpl struct {
	reports store.ErrorReportStore
	logger  *slog.Logger
}

// NewErrorReportService creates an ErrorReportService.
func NewErrorReportService(reports store.ErrorReportStore, logger *slog.Logger) (ErrorReportService, error) {
	if reports == nil {
		return nil, domain.NewValidationError("reports", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &errorReportServiceImpl{
		reports: reports,
		logger:  logger.With(slog.String("component", "error_report_service")),
	}, nil
}

func (s *errorReportServiceImpl) Create(
	ctx context.Context,
	reporter *uuid.UUID,
	nombre, descripcion string,
) (*domain.ErrorReport, error) {
	report, err := domain.NewErrorReport(nombre, descripcion, reporter)
	if err != nil {
		return nil, err
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("error report received",
		slog.String("report_id", report.ID.String()),
		slog.String("nombre", report.Nombre))
	return report, nil
}

func (s *errorReportServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) ([]*domain.ErrorReport, error) {
	return s.reports.ListByUser(ctx, userID, page)
}
