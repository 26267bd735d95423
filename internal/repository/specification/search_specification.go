package specification

import "gorm.io/gorm"

// NoteSearchQuery filters notes whose title or plain text contains the
// query, case-insensitively.
type NoteSearchQuery struct {
	Query string
}

func (s NoteSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("LOWER(title) LIKE LOWER(?) OR LOWER(plain_text) LIKE LOWER(?)", pattern, pattern)
}
