package entity

import (
	"time"

	"github.com/google/uuid"
)

// Attachment describes a file linked to a note. The binary itself lives in
// external storage; notes only carry the descriptor list.
type Attachment struct {
	Id       uuid.UUID `json:"id"`
	FileName string    `json:"file_name"`
	MimeType string    `json:"mime_type"`
	Size     int64     `json:"size"`
	URL      string    `json:"url"`
}

type Note struct {
	Id          uuid.UUID
	Title       string
	Content     string
	PlainText   string
	WordCount   int
	TagIds      []uuid.UUID
	Attachments []Attachment
	Version     int
	Reminder    *ReminderState
	NotebookId  uuid.UUID
	UserId      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

// Snapshot captures the editable fields as they are right now, tagged with
// the current version. Callers append the result to the note's history
// before applying a mutation.
func (n *Note) Snapshot() *NoteVersion {
	snapshotAt := n.CreatedAt
	if n.UpdatedAt != nil {
		snapshotAt = *n.UpdatedAt
	}

	tagIds := make([]uuid.UUID, len(n.TagIds))
	copy(tagIds, n.TagIds)

	attachments := make([]Attachment, len(n.Attachments))
	copy(attachments, n.Attachments)

	return &NoteVersion{
		Id:          uuid.New(),
		NoteId:      n.Id,
		Version:     n.Version,
		Title:       n.Title,
		Content:     n.Content,
		PlainText:   n.PlainText,
		TagIds:      tagIds,
		Attachments: attachments,
		SnapshotAt:  snapshotAt,
	}
}

// ApplySnapshot overwrites the editable fields with a historical snapshot.
// Version is intentionally left alone; restoring moves forward, not back.
func (n *Note) ApplySnapshot(v *NoteVersion) {
	n.Title = v.Title
	n.Content = v.Content
	n.PlainText = v.PlainText

	n.TagIds = make([]uuid.UUID, len(v.TagIds))
	copy(n.TagIds, v.TagIds)

	n.Attachments = make([]Attachment, len(v.Attachments))
	copy(n.Attachments, v.Attachments)
}
