package contract

import (
	"context"

	"notekeeper-be/internal/entity"

	"github.com/google/uuid"
)

// NoteVersionRepository stores history snapshots. Rows are append only,
// there is no update or delete path.
type NoteVersionRepository interface {
	Create(ctx context.Context, version *entity.NoteVersion) error
	// FindAllByNote returns the note's snapshots ordered oldest first.
	FindAllByNote(ctx context.Context, noteId uuid.UUID) ([]*entity.NoteVersion, error)
	CountByNote(ctx context.Context, noteId uuid.UUID) (int64, error)
	DeleteAllByNote(ctx context.Context, noteId uuid.UUID) error
}
