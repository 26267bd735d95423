package model

import (
	"time"

	"github.com/google/uuid"
)

// Shortcut flattens the target union into nullable columns discriminated by
// Kind. The mapper only reads the columns that belong to the stored kind.
type Shortcut struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name       string     `gorm:"type:varchar(100);not null"`
	Kind       string     `gorm:"type:varchar(10);not null"`
	URL        *string    `gorm:"type:text"`
	Query      *string    `gorm:"type:text"`
	TargetId   *uuid.UUID `gorm:"type:uuid"`
	TargetKind *string    `gorm:"type:varchar(10)"`
	UserId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	SortOrder  int        `gorm:"not null;default:0"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
}

func (Shortcut) TableName() string {
	return "shortcuts"
}
