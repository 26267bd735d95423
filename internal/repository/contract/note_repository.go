package contract

import (
	"context"
	"errors"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ErrVersionConflict is returned when a guarded update finds the note at a
// different version than the caller expected.
var ErrVersionConflict = errors.New("note version conflict")

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	// UpdateWithVersion persists editable fields only when the stored row is
	// still at expectedVersion, returning ErrVersionConflict otherwise.
	UpdateWithVersion(ctx context.Context, note *entity.Note, expectedVersion int) error
	// UpdateReminder writes the reminder columns alone. A nil reminder clears
	// the schedule.
	UpdateReminder(ctx context.Context, noteId uuid.UUID, reminder *entity.ReminderState) error
	MarkReminderNotified(ctx context.Context, noteId uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
