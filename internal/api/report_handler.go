package api

import (
	"log/slog"
	"net/http"

	"github.com/quickrecap/quickrecap-api/internal/api/shared"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/service"
)

// ErrorReportHandler accepts and lists user-submitted error reports.
type ErrorReportHandler struct {
	reports service.ErrorReportService
	logger  *slog.Logger
}

// NewErrorReportHandler creates a new ErrorReportHandler.
func NewErrorReportHandler(reports service.ErrorReportService, logger *slog.Logger) *ErrorReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorReportHandler{
		reports: reports,
		logger:  logger.With(slog.String("component", "error_report_handler")),
	}
}

// CreateReport handles POST /api/error-reports.
func (h *ErrorReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req CreateErrorReportRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	report, err := h.reports.Create(r.Context(), &userID, req.Nombre, req.Descripcion)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create error report")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, errorReportToResponse(report))
}

// ListReports handles GET /api/error-reports. Callers only see the
// reports they filed.
func (h *ErrorReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	reports, err := h.reports.List(r.Context(), userID, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list error reports")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, mapAll(reports, errorReportToResponse))
}
