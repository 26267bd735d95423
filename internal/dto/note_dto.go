package dto

import (
	"time"

	"github.com/google/uuid"
)

type AttachmentInput struct {
	FileName string `json:"file_name" validate:"required"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	URL      string `json:"url" validate:"required"`
}

type AttachmentResponse struct {
	Id       uuid.UUID `json:"id"`
	FileName string    `json:"file_name"`
	MimeType string    `json:"mime_type"`
	Size     int64     `json:"size"`
	URL      string    `json:"url"`
}

type CreateNoteRequest struct {
	Title       string            `json:"title" validate:"required"`
	Content     string            `json:"content"`
	NotebookId  uuid.UUID         `json:"notebook_id" validate:"required"`
	TagIds      []uuid.UUID       `json:"tag_ids"`
	Attachments []AttachmentInput `json:"attachments"`
}

type CreateNoteResponse struct {
	Id      uuid.UUID `json:"id"`
	Version int       `json:"version"`
}

// BreadcrumbItem represents a single notebook in the ancestry path
// Used for deep linking: allows frontend to display breadcrumbs and auto-expand sidebar
type BreadcrumbItem struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ReminderResponse struct {
	DueAt     time.Time `json:"due_at"`
	Completed bool      `json:"completed"`
	Notified  bool      `json:"notified"`
	Frequency string    `json:"frequency"`
	Interval  int       `json:"interval"`
}

type ShowNoteResponse struct {
	Id          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	PlainText   string               `json:"plain_text"`
	WordCount   int                  `json:"word_count"`
	TagIds      []uuid.UUID          `json:"tag_ids"`
	Attachments []AttachmentResponse `json:"attachments"`
	Version     int                  `json:"version"`
	NotebookId  uuid.UUID            `json:"notebook_id"`
	Breadcrumb  []BreadcrumbItem     `json:"breadcrumb"` // Notebook ancestry path from root to parent
	Reminder    *ReminderResponse    `json:"reminder,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   *time.Time           `json:"updated_at"`
}

type ListNoteItemResponse struct {
	Id         uuid.UUID         `json:"id"`
	Title      string            `json:"title"`
	WordCount  int               `json:"word_count"`
	Version    int               `json:"version"`
	NotebookId uuid.UUID         `json:"notebook_id"`
	TagIds     []uuid.UUID       `json:"tag_ids"`
	Reminder   *ReminderResponse `json:"reminder,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  *time.Time        `json:"updated_at"`
}

// EditNoteRequest carries a partial edit. Nil fields are left untouched,
// ExpectedVersion guards against concurrent writers.
type EditNoteRequest struct {
	Id              uuid.UUID
	Title           *string            `json:"title"`
	Content         *string            `json:"content"`
	TagIds          *[]uuid.UUID       `json:"tag_ids"`
	Attachments     *[]AttachmentInput `json:"attachments"`
	ExpectedVersion int                `json:"expected_version" validate:"required,min=1"`
}

type EditNoteResponse struct {
	Id      uuid.UUID `json:"id"`
	Version int       `json:"version"`
}

type RestoreVersionRequest struct {
	Id              uuid.UUID
	VersionIndex    int       `json:"version_index" validate:"min=0"`
	ExpectedVersion int       `json:"expected_version" validate:"required,min=1"`
}

type RestoreVersionResponse struct {
	Id      uuid.UUID `json:"id"`
	Version int       `json:"version"`
}

type HistoryEntryResponse struct {
	Index      int       `json:"index"`
	Version    int       `json:"version"`
	Title      string    `json:"title"`
	WordCount  int       `json:"word_count"`
	SnapshotAt time.Time `json:"snapshot_at"`
}

type MoveNoteRequest struct {
	Id         uuid.UUID
	NotebookId uuid.UUID `json:"notebook_id" validate:"required"`
}

type MoveNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type RecurrenceInput struct {
	Frequency string `json:"frequency" validate:"required,oneof=daily weekly monthly yearly"`
	Interval  int    `json:"interval" validate:"min=1"`
}

type SetReminderRequest struct {
	Id         uuid.UUID
	DueAt      time.Time        `json:"due_at" validate:"required"`
	Recurrence *RecurrenceInput `json:"recurrence"`
}

type SetReminderResponse struct {
	Id       uuid.UUID         `json:"id"`
	Reminder *ReminderResponse `json:"reminder"`
}

type CompleteReminderResponse struct {
	Id       uuid.UUID         `json:"id"`
	Reminder *ReminderResponse `json:"reminder,omitempty"`
}

// PublishNoteChangedMessage flows through the in-process queue to the
// consumer, which fans the change out to the notification pipeline.
type PublishNoteChangedMessage struct {
	NoteId    uuid.UUID `json:"note_id"`
	EventType string    `json:"event_type"`
}
