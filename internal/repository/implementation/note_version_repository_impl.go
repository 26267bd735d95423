package implementation

import (
	"context"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/mapper"
	"notekeeper-be/internal/model"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteVersionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteVersionMapper
}

func NewNoteVersionRepository(db *gorm.DB) contract.NoteVersionRepository {
	return &NoteVersionRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteVersionMapper(),
	}
}

func (r *NoteVersionRepositoryImpl) Create(ctx context.Context, version *entity.NoteVersion) error {
	m := r.mapper.ToModel(version)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*version = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteVersionRepositoryImpl) FindAllByNote(ctx context.Context, noteId uuid.UUID) ([]*entity.NoteVersion, error) {
	var models []*model.NoteVersion
	err := r.db.WithContext(ctx).
		Where("note_id = ?", noteId).
		Scopes(scope.OrderByVersionAsc).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteVersionRepositoryImpl) CountByNote(ctx context.Context, noteId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.NoteVersion{}).
		Where("note_id = ?", noteId).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NoteVersionRepositoryImpl) DeleteAllByNote(ctx context.Context, noteId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("note_id = ?", noteId).
		Delete(&model.NoteVersion{}).Error
}
