package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Note struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Content     string         `gorm:"type:text"`
	PlainText   string         `gorm:"type:text"`
	WordCount   int            `gorm:"not null;default:0"`
	TagIds      datatypes.JSON `gorm:"type:jsonb"`
	Attachments datatypes.JSON `gorm:"type:jsonb"`
	Version     int            `gorm:"not null;default:1"`
	NotebookId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`

	// Embedded reminder. DueAt null means no reminder is set.
	ReminderDueAt     *time.Time `gorm:"index:idx_notes_reminder_due"`
	ReminderCompleted bool       `gorm:"not null;default:false"`
	ReminderNotified  bool       `gorm:"not null;default:false"`
	ReminderFrequency string     `gorm:"type:varchar(10);not null;default:'none'"`
	ReminderInterval  int        `gorm:"not null;default:1"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Note) TableName() string {
	return "notes"
}
