package service

import (
	"context"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ITagService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.TagResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTagRequest) (*dto.CreateTagResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTagRequest) (*dto.UpdateTagResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type tagService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTagService(uowFactory unitofwork.RepositoryFactory) ITagService {
	return &tagService{
		uowFactory: uowFactory,
	}
}

func (c *tagService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.TagResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	tags, err := uow.TagRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		result = append(result, &dto.TagResponse{
			Id:        tag.Id,
			Name:      tag.Name,
			Color:     tag.Color,
			CreatedAt: tag.CreatedAt,
			UpdatedAt: tag.UpdatedAt,
		})
	}
	return result, nil
}

func (c *tagService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTagRequest) (*dto.CreateTagResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// Tag names are unique per user.
	existing, err := uow.TagRepository().FindOne(ctx,
		specification.FilterBy{Field: "name", Value: req.Name},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.Conflict("tag name already exists")
	}

	tag := entity.Tag{
		Id:        uuid.New(),
		Name:      req.Name,
		Color:     req.Color,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.TagRepository().Create(ctx, &tag); err != nil {
		return nil, err
	}

	return &dto.CreateTagResponse{
		Id: tag.Id,
	}, nil
}

func (c *tagService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTagRequest) (*dto.UpdateTagResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	tag, err := uow.TagRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, serverutils.NotFound("tag not found")
	}

	now := time.Now()
	tag.Name = req.Name
	tag.Color = req.Color
	tag.UpdatedAt = &now

	if err := uow.TagRepository().Update(ctx, tag); err != nil {
		return nil, err
	}

	return &dto.UpdateTagResponse{
		Id: tag.Id,
	}, nil
}

// Delete removes the tag and strips its id from every note that carries it.
func (c *tagService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	tag, err := uow.TagRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if tag == nil {
		return serverutils.NotFound("tag not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.TagRepository().Delete(ctx, id); err != nil {
		return err
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specification.NoteOwnedByUser{UserID: userId})
	if err != nil {
		return err
	}
	for _, note := range notes {
		kept := note.TagIds[:0:0]
		removed := false
		for _, tid := range note.TagIds {
			if tid == id {
				removed = true
				continue
			}
			kept = append(kept, tid)
		}
		if !removed {
			continue
		}
		note.TagIds = kept
		if err := uow.NoteRepository().Update(ctx, note); err != nil {
			return err
		}
	}

	return uow.Commit()
}
