package mapper

import (
	"time"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/model"
)

type ShortcutMapper struct{}

func NewShortcutMapper() *ShortcutMapper {
	return &ShortcutMapper{}
}

func (m *ShortcutMapper) ToEntity(s *model.Shortcut) *entity.Shortcut {
	if s == nil {
		return nil
	}

	var target entity.ShortcutTarget
	switch entity.ShortcutKind(s.Kind) {
	case entity.ShortcutKindURL:
		if s.URL != nil {
			target = entity.URLTarget{URL: *s.URL}
		}
	case entity.ShortcutKindSearch:
		if s.Query != nil {
			target = entity.SearchTarget{Query: *s.Query}
		}
	case entity.ShortcutKindEntity:
		if s.TargetId != nil && s.TargetKind != nil {
			target = entity.EntityTarget{
				TargetId:   *s.TargetId,
				TargetKind: entity.EntityKind(*s.TargetKind),
			}
		}
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		u := s.UpdatedAt
		updatedAt = &u
	}

	return &entity.Shortcut{
		Id:        s.Id,
		Name:      s.Name,
		Target:    target,
		UserId:    s.UserId,
		SortOrder: s.SortOrder,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ShortcutMapper) ToModel(s *entity.Shortcut) *model.Shortcut {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	out := &model.Shortcut{
		Id:        s.Id,
		Name:      s.Name,
		UserId:    s.UserId,
		SortOrder: s.SortOrder,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}

	switch t := s.Target.(type) {
	case entity.URLTarget:
		out.Kind = string(entity.ShortcutKindURL)
		url := t.URL
		out.URL = &url
	case entity.SearchTarget:
		out.Kind = string(entity.ShortcutKindSearch)
		query := t.Query
		out.Query = &query
	case entity.EntityTarget:
		out.Kind = string(entity.ShortcutKindEntity)
		targetId := t.TargetId
		targetKind := string(t.TargetKind)
		out.TargetId = &targetId
		out.TargetKind = &targetKind
	}

	return out
}

func (m *ShortcutMapper) ToEntities(shortcuts []*model.Shortcut) []*entity.Shortcut {
	entities := make([]*entity.Shortcut, len(shortcuts))
	for i, s := range shortcuts {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
