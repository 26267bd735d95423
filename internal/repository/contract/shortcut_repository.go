package contract

import (
	"context"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ShortcutRepository interface {
	Create(ctx context.Context, shortcut *entity.Shortcut) error
	Update(ctx context.Context, shortcut *entity.Shortcut) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateSortOrder(ctx context.Context, id uuid.UUID, sortOrder int) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Shortcut, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Shortcut, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
