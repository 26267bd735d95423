package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=64"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

type CreateTagResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateTagRequest struct {
	Id    uuid.UUID
	Name  string `json:"name" validate:"required,min=1,max=64"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

type UpdateTagResponse struct {
	Id uuid.UUID `json:"id"`
}

type TagResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
