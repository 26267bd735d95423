package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByNotebookID struct {
	NotebookID uuid.UUID
}

func (s ByNotebookID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id = ?", s.NotebookID)
}

type ByNotebookIDs struct {
	NotebookIDs []uuid.UUID
}

func (s ByNotebookIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id IN ?", s.NotebookIDs)
}

type NoteOwnedByUser struct {
	UserID uuid.UUID
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ?", s.UserID)
}

type ByTitle struct {
	Title string
}

func (s ByTitle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title = ?", s.Title)
}

// ReminderDueBefore matches notes whose reminder due time is at or before
// the cutoff. Notes with no reminder never match.
type ReminderDueBefore struct {
	Cutoff time.Time
}

func (s ReminderDueBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("reminder_due_at IS NOT NULL AND reminder_due_at <= ?", s.Cutoff)
}

// ReminderPending matches reminders still awaiting dispatch.
type ReminderPending struct{}

func (s ReminderPending) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("reminder_completed = ? AND reminder_notified = ?", false, false)
}

// ByNoteID filters version rows belonging to one note.
type ByNoteID struct {
	NoteID uuid.UUID
}

func (s ByNoteID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("note_id = ?", s.NoteID)
}
