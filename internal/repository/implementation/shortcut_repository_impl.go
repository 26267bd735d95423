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

type ShortcutRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ShortcutMapper
}

func NewShortcutRepository(db *gorm.DB) contract.ShortcutRepository {
	return &ShortcutRepositoryImpl{
		db:     db,
		mapper: mapper.NewShortcutMapper(),
	}
}

func (r *ShortcutRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ShortcutRepositoryImpl) Create(ctx context.Context, shortcut *entity.Shortcut) error {
	m := r.mapper.ToModel(shortcut)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*shortcut = *r.mapper.ToEntity(m)
	return nil
}

func (r *ShortcutRepositoryImpl) Update(ctx context.Context, shortcut *entity.Shortcut) error {
	m := r.mapper.ToModel(shortcut)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*shortcut = *r.mapper.ToEntity(m)
	return nil
}

func (r *ShortcutRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Shortcut{}, id).Error
}

func (r *ShortcutRepositoryImpl) UpdateSortOrder(ctx context.Context, id uuid.UUID, sortOrder int) error {
	return r.db.WithContext(ctx).Model(&model.Shortcut{}).
		Where("id = ?", id).
		Update("sort_order", sortOrder).Error
}

func (r *ShortcutRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Shortcut, error) {
	var m model.Shortcut
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ShortcutRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Shortcut, error) {
	var models []*model.Shortcut
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ShortcutRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Shortcut{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
