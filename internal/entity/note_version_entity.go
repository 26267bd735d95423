package entity

import (
	"time"

	"github.com/google/uuid"
)

// NoteVersion is one entry in a note's history: an immutable copy of the
// editable fields taken just before a mutation. Entries are ordered by
// Version, oldest first, and are never rewritten once stored.
type NoteVersion struct {
	Id          uuid.UUID
	NoteId      uuid.UUID
	Version     int
	Title       string
	Content     string
	PlainText   string
	TagIds      []uuid.UUID
	Attachments []Attachment
	SnapshotAt  time.Time
}
