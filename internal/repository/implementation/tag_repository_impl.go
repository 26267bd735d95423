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

type TagRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TagMapper
}

func NewTagRepository(db *gorm.DB) contract.TagRepository {
	return &TagRepositoryImpl{
		db:     db,
		mapper: mapper.NewTagMapper(),
	}
}

func (r *TagRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TagRepositoryImpl) Create(ctx context.Context, tag *entity.Tag) error {
	m := r.mapper.ToModel(tag)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tag = *r.mapper.ToEntity(m)
	return nil
}

func (r *TagRepositoryImpl) Update(ctx context.Context, tag *entity.Tag) error {
	m := r.mapper.ToModel(tag)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*tag = *r.mapper.ToEntity(m)
	return nil
}

func (r *TagRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Tag{}, id).Error
}

func (r *TagRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error) {
	var m model.Tag
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TagRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tag, error) {
	var models []*model.Tag
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TagRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Tag{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
