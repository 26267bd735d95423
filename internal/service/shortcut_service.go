package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IShortcutService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ShortcutResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateShortcutRequest) (*dto.CreateShortcutResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateShortcutRequest) (*dto.UpdateShortcutResponse, error)
	Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderShortcutsRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type shortcutService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewShortcutService(uowFactory unitofwork.RepositoryFactory) IShortcutService {
	return &shortcutService{
		uowFactory: uowFactory,
	}
}

// targetFromInput validates the tagged input and produces the matching
// target variant. Fields belonging to other variants are rejected outright
// rather than silently dropped.
func (c *shortcutService) targetFromInput(in dto.ShortcutTargetInput) (entity.ShortcutTarget, error) {
	switch entity.ShortcutKind(in.Kind) {
	case entity.ShortcutKindURL:
		if in.Query != "" || in.TargetId != nil || in.TargetKind != "" {
			return nil, serverutils.InvalidArgument("url target accepts only the url field")
		}
		u, err := url.Parse(in.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, serverutils.InvalidArgument("url target requires an absolute url")
		}
		return entity.URLTarget{URL: in.URL}, nil

	case entity.ShortcutKindSearch:
		if in.URL != "" || in.TargetId != nil || in.TargetKind != "" {
			return nil, serverutils.InvalidArgument("search target accepts only the query field")
		}
		if strings.TrimSpace(in.Query) == "" {
			return nil, serverutils.InvalidArgument("search target requires a query")
		}
		return entity.SearchTarget{Query: in.Query}, nil

	case entity.ShortcutKindEntity:
		if in.URL != "" || in.Query != "" {
			return nil, serverutils.InvalidArgument("entity target accepts only target_id and target_kind")
		}
		if in.TargetId == nil {
			return nil, serverutils.InvalidArgument("entity target requires target_id")
		}
		switch entity.EntityKind(in.TargetKind) {
		case entity.EntityKindNote, entity.EntityKindNotebook, entity.EntityKindTag:
		default:
			return nil, serverutils.InvalidArgument("unknown entity target kind")
		}
		return entity.EntityTarget{
			TargetId:   *in.TargetId,
			TargetKind: entity.EntityKind(in.TargetKind),
		}, nil
	}

	return nil, serverutils.InvalidArgument("unknown shortcut kind")
}

func targetToInput(t entity.ShortcutTarget) dto.ShortcutTargetInput {
	out := dto.ShortcutTargetInput{Kind: string(t.Kind())}
	switch v := t.(type) {
	case entity.URLTarget:
		out.URL = v.URL
	case entity.SearchTarget:
		out.Query = v.Query
	case entity.EntityTarget:
		id := v.TargetId
		out.TargetId = &id
		out.TargetKind = string(v.TargetKind)
	}
	return out
}

func (c *shortcutService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ShortcutResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	shortcuts, err := uow.ShortcutRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "sort_order", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ShortcutResponse, 0, len(shortcuts))
	for _, s := range shortcuts {
		result = append(result, &dto.ShortcutResponse{
			Id:        s.Id,
			Name:      s.Name,
			Target:    targetToInput(s.Target),
			SortOrder: s.SortOrder,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return result, nil
}

func (c *shortcutService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateShortcutRequest) (*dto.CreateShortcutResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	target, err := c.targetFromInput(req.Target)
	if err != nil {
		return nil, err
	}

	if t, ok := target.(entity.EntityTarget); ok {
		if err := c.verifyEntityTarget(ctx, uow, userId, t); err != nil {
			return nil, err
		}
	}

	count, err := uow.ShortcutRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	shortcut := entity.Shortcut{
		Id:        uuid.New(),
		Name:      req.Name,
		Target:    target,
		UserId:    userId,
		SortOrder: int(count),
		CreatedAt: time.Now(),
	}

	if err := uow.ShortcutRepository().Create(ctx, &shortcut); err != nil {
		return nil, err
	}

	return &dto.CreateShortcutResponse{
		Id: shortcut.Id,
	}, nil
}

// verifyEntityTarget checks the referenced entity exists and belongs to the
// caller, so shortcuts cannot dangle from birth or leak across accounts.
func (c *shortcutService) verifyEntityTarget(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, t entity.EntityTarget) error {
	switch t.TargetKind {
	case entity.EntityKindNote:
		note, err := uow.NoteRepository().FindOne(ctx,
			specification.ByID{ID: t.TargetId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return err
		}
		if note == nil {
			return serverutils.NotFound("target note not found")
		}
	case entity.EntityKindNotebook:
		notebook, err := uow.NotebookRepository().FindOne(ctx,
			specification.ByID{ID: t.TargetId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return err
		}
		if notebook == nil {
			return serverutils.NotFound("target notebook not found")
		}
	case entity.EntityKindTag:
		tag, err := uow.TagRepository().FindOne(ctx,
			specification.ByID{ID: t.TargetId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return err
		}
		if tag == nil {
			return serverutils.NotFound("target tag not found")
		}
	}
	return nil
}

func (c *shortcutService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateShortcutRequest) (*dto.UpdateShortcutResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	shortcut, err := uow.ShortcutRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if shortcut == nil {
		return nil, serverutils.NotFound("shortcut not found")
	}

	target, err := c.targetFromInput(req.Target)
	if err != nil {
		return nil, err
	}
	if t, ok := target.(entity.EntityTarget); ok {
		if err := c.verifyEntityTarget(ctx, uow, userId, t); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	shortcut.Name = req.Name
	shortcut.Target = target
	shortcut.UpdatedAt = &now

	if err := uow.ShortcutRepository().Update(ctx, shortcut); err != nil {
		return nil, err
	}

	return &dto.UpdateShortcutResponse{
		Id: shortcut.Id,
	}, nil
}

// Reorder assigns sort positions from the given id order. Every shortcut of
// the user must appear exactly once.
func (c *shortcutService) Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderShortcutsRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	shortcuts, err := uow.ShortcutRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if len(req.Ids) != len(shortcuts) {
		return serverutils.InvalidArgument("reorder must include every shortcut exactly once")
	}

	owned := make(map[uuid.UUID]bool, len(shortcuts))
	for _, s := range shortcuts {
		owned[s.Id] = true
	}
	seen := make(map[uuid.UUID]bool, len(req.Ids))
	for _, id := range req.Ids {
		if !owned[id] || seen[id] {
			return serverutils.InvalidArgument("reorder must include every shortcut exactly once")
		}
		seen[id] = true
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	for i, id := range req.Ids {
		if err := uow.ShortcutRepository().UpdateSortOrder(ctx, id, i); err != nil {
			return err
		}
	}

	return uow.Commit()
}

func (c *shortcutService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	shortcut, err := uow.ShortcutRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if shortcut == nil {
		return serverutils.NotFound("shortcut not found")
	}

	return uow.ShortcutRepository().Delete(ctx, id)
}
