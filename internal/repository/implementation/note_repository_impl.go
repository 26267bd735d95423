package implementation

import (
	"context"
	"errors"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/mapper"
	"notekeeper-be/internal/model"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) UpdateWithVersion(ctx context.Context, note *entity.Note, expectedVersion int) error {
	m := r.mapper.ToModel(note)
	res := r.db.WithContext(ctx).Model(&model.Note{}).
		Where("id = ? AND version = ?", m.Id, expectedVersion).
		Select("title", "content", "plain_text", "word_count", "tag_ids", "attachments", "notebook_id", "version", "updated_at").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrVersionConflict
	}
	return nil
}

func (r *NoteRepositoryImpl) UpdateReminder(ctx context.Context, noteId uuid.UUID, reminder *entity.ReminderState) error {
	cols := map[string]interface{}{
		"reminder_due_at":    nil,
		"reminder_completed": false,
		"reminder_notified":  false,
		"reminder_frequency": string(entity.FrequencyNone),
		"reminder_interval":  1,
	}
	if reminder != nil {
		cols["reminder_due_at"] = reminder.DueAt
		cols["reminder_completed"] = reminder.Completed
		cols["reminder_notified"] = reminder.Notified
		cols["reminder_frequency"] = string(reminder.Recurrence.Frequency)
		cols["reminder_interval"] = reminder.Recurrence.Interval
	}
	return r.db.WithContext(ctx).Model(&model.Note{}).
		Where("id = ?", noteId).
		Updates(cols).Error
}

func (r *NoteRepositoryImpl) MarkReminderNotified(ctx context.Context, noteId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Note{}).
		Where("id = ?", noteId).
		Update("reminder_notified", true).Error
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Note{}, id).Error
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
