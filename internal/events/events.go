package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the services.
const (
	TypeUserRegistered  = "user.registered"
	TypeHistoryRecorded = "history.recorded"
)

// Event is a typed notification with a JSON payload.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// UserRegisteredPayload is the payload of TypeUserRegistered.
type UserRegisteredPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

// HistoryRecordedPayload is the payload of TypeHistoryRecorded.
type HistoryRecordedPayload struct {
	HistoryID           uuid.UUID `json:"history_id"`
	ActivityID          uuid.UUID `json:"activity_id"`
	UserID              uuid.UUID `json:"user_id"`
	NumeroPreguntas     int       `json:"numero_preguntas"`
	RespuestasCorrectas int       `json:"respuestas_correctas"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event of eventType with payload serialized as JSON.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler processes events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter publishes events to registered handlers.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *Event) error
}

// Emit builds an event and publishes it on emitter. A nil emitter is a no-op.
func Emit(ctx context.Context, emitter EventEmitter, eventType string, payload interface{}) error {
	if emitter == nil {
		return nil
	}
	event, err := NewEvent(eventType, payload)
	if err != nil {
		return err
	}
	return emitter.EmitEvent(ctx, event)
}
