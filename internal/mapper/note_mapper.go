package mapper

import (
	"encoding/json"
	"time"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var deletedAt *time.Time
	if n.DeletedAt.Valid {
		t := n.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	var reminder *entity.ReminderState
	if n.ReminderDueAt != nil {
		reminder = &entity.ReminderState{
			DueAt:     *n.ReminderDueAt,
			Completed: n.ReminderCompleted,
			Notified:  n.ReminderNotified,
			Recurrence: entity.Recurrence{
				Frequency: entity.ReminderFrequency(n.ReminderFrequency),
				Interval:  n.ReminderInterval,
			},
		}
	}

	return &entity.Note{
		Id:          n.Id,
		Title:       n.Title,
		Content:     n.Content,
		PlainText:   n.PlainText,
		WordCount:   n.WordCount,
		TagIds:      unmarshalTagIds(n.TagIds),
		Attachments: unmarshalAttachments(n.Attachments),
		Version:     n.Version,
		Reminder:    reminder,
		NotebookId:  n.NotebookId,
		UserId:      n.UserId,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   n.DeletedAt.Valid,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if n.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *n.DeletedAt, Valid: true}
	} else if n.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	out := &model.Note{
		Id:                n.Id,
		Title:             n.Title,
		Content:           n.Content,
		PlainText:         n.PlainText,
		WordCount:         n.WordCount,
		TagIds:            marshalTagIds(n.TagIds),
		Attachments:       marshalAttachments(n.Attachments),
		Version:           n.Version,
		NotebookId:        n.NotebookId,
		UserId:            n.UserId,
		CreatedAt:         n.CreatedAt,
		UpdatedAt:         updatedAt,
		DeletedAt:         deletedAt,
		ReminderFrequency: string(entity.FrequencyNone),
		ReminderInterval:  1,
	}

	if n.Reminder != nil {
		due := n.Reminder.DueAt
		out.ReminderDueAt = &due
		out.ReminderCompleted = n.Reminder.Completed
		out.ReminderNotified = n.Reminder.Notified
		out.ReminderFrequency = string(n.Reminder.Recurrence.Frequency)
		out.ReminderInterval = n.Reminder.Recurrence.Interval
	}

	return out
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func marshalTagIds(ids []uuid.UUID) datatypes.JSON {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	data, _ := json.Marshal(ids)
	return datatypes.JSON(data)
}

func unmarshalTagIds(data datatypes.JSON) []uuid.UUID {
	ids := []uuid.UUID{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &ids)
	}
	return ids
}

func marshalAttachments(list []entity.Attachment) datatypes.JSON {
	if list == nil {
		list = []entity.Attachment{}
	}
	data, _ := json.Marshal(list)
	return datatypes.JSON(data)
}

func unmarshalAttachments(data datatypes.JSON) []entity.Attachment {
	list := []entity.Attachment{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &list)
	}
	return list
}
