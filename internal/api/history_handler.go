package api

import (
	"log/slog"
	"net/http"

	"github.com/quickrecap/quickrecap-api/internal/api/shared"
	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/service"
)

// HistoryHandler records and lists plays.
type HistoryHandler struct {
	history service.HistoryService
	logger  *slog.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(history service.HistoryService, logger *slog.Logger) *HistoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryHandler{
		history: history,
		logger:  logger.With(slog.String("component", "history_handler")),
	}
}

// CreateHistory handles POST /api/history.
func (h *HistoryHandler) CreateHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateHistoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	history, err := h.history.Record(r.Context(), userID, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record play")
		return
	}

	log.Debug("play recorded",
		slog.String("history_id", history.ID.String()),
		slog.String("activity_id", history.ActivityID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, historyToResponse(history))
}

// ListHistory handles GET /api/history.
func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entries, err := h.history.List(r.Context(), userID, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list history")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, mapAll(entries, historyEntryToResponse))
}
