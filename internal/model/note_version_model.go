package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NoteVersion rows are append-only; nothing in the codebase updates or
// deletes them once written.
type NoteVersion struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	NoteId      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_note_versions_note_version,priority:1"`
	Version     int            `gorm:"not null;uniqueIndex:idx_note_versions_note_version,priority:2"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Content     string         `gorm:"type:text"`
	PlainText   string         `gorm:"type:text"`
	TagIds      datatypes.JSON `gorm:"type:jsonb"`
	Attachments datatypes.JSON `gorm:"type:jsonb"`
	SnapshotAt  time.Time      `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (NoteVersion) TableName() string {
	return "note_versions"
}
