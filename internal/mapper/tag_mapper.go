package mapper

import (
	"time"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/model"
)

type TagMapper struct{}

func NewTagMapper() *TagMapper {
	return &TagMapper{}
}

func (m *TagMapper) ToEntity(t *model.Tag) *entity.Tag {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.Tag{
		Id:        t.Id,
		Name:      t.Name,
		Color:     t.Color,
		UserId:    t.UserId,
		CreatedAt: t.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *TagMapper) ToModel(t *entity.Tag) *model.Tag {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Tag{
		Id:        t.Id,
		Name:      t.Name,
		Color:     t.Color,
		UserId:    t.UserId,
		CreatedAt: t.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *TagMapper) ToEntities(tags []*model.Tag) []*entity.Tag {
	entities := make([]*entity.Tag, len(tags))
	for i, t := range tags {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
