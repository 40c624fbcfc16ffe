package service

import (
	"context"
	"log/slog"

	"github.com/quickrecap/quickrecap-api/internal/events"
)

// MetricsRecorder counts business events.
type MetricsRecorder interface {
	IncRegistrations()
	IncPlaysRecorded()
}

// MetricsEventHandler turns emitted events into metric increments.
type MetricsEventHandler struct {
	recorder MetricsRecorder
	logger   *slog.Logger
}

var _ events.EventHandler = (*MetricsEventHandler)(nil)

// NewMetricsEventHandler creates a handler feeding recorder.
func NewMetricsEventHandler(recorder MetricsRecorder, logger *slog.Logger) *MetricsEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetricsEventHandler{
		recorder: recorder,
		logger:   logger.With(slog.String("component", "metrics_event_handler")),
	}
}

// HandleEvent implements events.EventHandler. Unknown event types are ignored.
func (h *MetricsEventHandler) HandleEvent(_ context.Context, event *events.Event) error {
	switch event.Type {
	case events.TypeUserRegistered:
		h.recorder.IncRegistrations()
	case events.TypeHistoryRecorded:
		h.recorder.IncPlaysRecorded()
	default:
		h.logger.Debug("ignoring event", slog.String("event_type", event.Type))
	}
	return nil
}
