package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/quickrecap/quickrecap-api/internal/platform/logger"
	"github.com/quickrecap/quickrecap-api/internal/redact"
)

// InMemoryEventEmitter hands each event to every registered handler on
// the caller's goroutine.
type InMemoryEventEmitter struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

// NewInMemoryEventEmitter creates an emitter with no handlers.
func NewInMemoryEventEmitter(log *slog.Logger) *InMemoryEventEmitter {
	if log == nil {
		log = slog.Default()
	}
	return &InMemoryEventEmitter{logger: log.With(slog.String("component", "event_emitter"))}
}

// RegisterHandler subscribes handler to all event types.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	e.handlers = append(e.handlers, handler)
	e.mu.Unlock()
}

func (e *InMemoryEventEmitter) snapshot() []EventHandler {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]EventHandler(nil), e.handlers...)
}

// EmitEvent runs every handler, including those after a failing one, and
// returns the joined handler errors.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *Event) error {
	log := logger.FromContextOrDefault(ctx, e.logger).With(
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type))

	var errs []error
	for i, handler := range e.snapshot() {
		if err := handler.HandleEvent(ctx, event); err != nil {
			log.Error("event handler failed", redact.ErrorAttr(err), slog.Int("handler_index", i))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
