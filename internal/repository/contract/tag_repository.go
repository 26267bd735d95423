package contract

import (
	"context"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	Update(ctx context.Context, tag *entity.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tag, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
