package unitofwork

import (
	"context"

	"notekeeper-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NotebookRepository() contract.NotebookRepository
	NoteRepository() contract.NoteRepository
	NoteVersionRepository() contract.NoteVersionRepository
	TagRepository() contract.TagRepository
	ShortcutRepository() contract.ShortcutRepository
}
