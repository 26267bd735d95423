package mapper

import (
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/model"
)

type NoteVersionMapper struct{}

func NewNoteVersionMapper() *NoteVersionMapper {
	return &NoteVersionMapper{}
}

func (m *NoteVersionMapper) ToEntity(v *model.NoteVersion) *entity.NoteVersion {
	if v == nil {
		return nil
	}
	return &entity.NoteVersion{
		Id:          v.Id,
		NoteId:      v.NoteId,
		Version:     v.Version,
		Title:       v.Title,
		Content:     v.Content,
		PlainText:   v.PlainText,
		TagIds:      unmarshalTagIds(v.TagIds),
		Attachments: unmarshalAttachments(v.Attachments),
		SnapshotAt:  v.SnapshotAt,
	}
}

func (m *NoteVersionMapper) ToModel(v *entity.NoteVersion) *model.NoteVersion {
	if v == nil {
		return nil
	}
	return &model.NoteVersion{
		Id:          v.Id,
		NoteId:      v.NoteId,
		Version:     v.Version,
		Title:       v.Title,
		Content:     v.Content,
		PlainText:   v.PlainText,
		TagIds:      marshalTagIds(v.TagIds),
		Attachments: marshalAttachments(v.Attachments),
		SnapshotAt:  v.SnapshotAt,
	}
}

func (m *NoteVersionMapper) ToEntities(versions []*model.NoteVersion) []*entity.NoteVersion {
	entities := make([]*entity.NoteVersion, len(versions))
	for i, v := range versions {
		entities[i] = m.ToEntity(v)
	}
	return entities
}
