package dto

import (
	"time"

	"github.com/google/uuid"
)

// ShortcutTargetInput carries exactly one populated variant, selected by Kind.
type ShortcutTargetInput struct {
	Kind       string     `json:"kind" validate:"required,oneof=url search entity"`
	URL        string     `json:"url,omitempty"`
	Query      string     `json:"query,omitempty"`
	TargetId   *uuid.UUID `json:"target_id,omitempty"`
	TargetKind string     `json:"target_kind,omitempty"`
}

type CreateShortcutRequest struct {
	Name   string              `json:"name" validate:"required"`
	Target ShortcutTargetInput `json:"target" validate:"required"`
}

type CreateShortcutResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateShortcutRequest struct {
	Id     uuid.UUID
	Name   string              `json:"name" validate:"required"`
	Target ShortcutTargetInput `json:"target" validate:"required"`
}

type UpdateShortcutResponse struct {
	Id uuid.UUID `json:"id"`
}

type ReorderShortcutsRequest struct {
	Ids []uuid.UUID `json:"ids" validate:"required,min=1"`
}

type ShortcutResponse struct {
	Id        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Target    ShortcutTargetInput `json:"target"`
	SortOrder int                 `json:"sort_order"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt *time.Time          `json:"updated_at"`
}
