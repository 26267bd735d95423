package events

import (
	"time"

	"github.com/google/uuid"
)

// Event codes published on the bus. The notification registry keys off
// these values.
const (
	TypeNoteCreated  = "NOTE_CREATED"
	TypeNoteUpdated  = "NOTE_UPDATED"
	TypeNoteRestored = "NOTE_RESTORED"
	TypeNoteDeleted  = "NOTE_DELETED"
	TypeReminderDue  = "REMINDER_DUE"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_UPDATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewNoteEvent builds the standard payload shape for note lifecycle events.
// entity_type/entity_id let consumers deep-link back to the note.
func NewNoteEvent(eventType string, noteId, userId uuid.UUID, title string) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"note_id":     noteId.String(),
			"user_id":     userId.String(),
			"title":       title,
			"entity_type": "note",
			"entity_id":   noteId.String(),
		},
		OccurredAt: time.Now(),
	}
}

// NewReminderDueEvent is published by the sweep when a reminder fires.
func NewReminderDueEvent(noteId, userId uuid.UUID, title string, dueAt time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeReminderDue,
		Data: map[string]interface{}{
			"note_id":     noteId.String(),
			"user_id":     userId.String(),
			"title":       title,
			"due_at":      dueAt.Format(time.RFC3339),
			"entity_type": "note",
			"entity_id":   noteId.String(),
		},
		OccurredAt: time.Now(),
	}
}
