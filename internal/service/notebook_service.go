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

type INotebookService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllNotebookResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*dto.CreateNotebookResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowNotebookResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNotebookRequest) (*dto.UpdateNotebookResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	MoveNotebook(ctx context.Context, userId uuid.UUID, req *dto.MoveNotebookRequest) (*dto.MoveNotebookResponse, error)
}

type notebookService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewNotebookService(uowFactory unitofwork.RepositoryFactory) INotebookService {
	return &notebookService{
		uowFactory: uowFactory,
	}
}

func (c *notebookService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebooks, err := uow.NotebookRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0)
	result := make([]*dto.GetAllNotebookResponse, 0)
	for _, notebook := range notebooks {
		result = append(result, &dto.GetAllNotebookResponse{
			Id:        notebook.Id,
			Name:      notebook.Name,
			ParentId:  notebook.ParentId,
			CreatedAt: notebook.CreatedAt,
			UpdatedAt: notebook.UpdatedAt,
			Notes:     make([]*dto.GetAllNotebookResponseNote, 0),
		})
		ids = append(ids, notebook.Id)
	}

	if len(ids) == 0 {
		return result, nil
	}

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.ByNotebookIDs{NotebookIDs: ids},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(result); i++ {
		for j := 0; j < len(notes); j++ {
			if notes[j].NotebookId == result[i].Id {
				result[i].Notes = append(result[i].Notes, &dto.GetAllNotebookResponseNote{
					Id:        notes[j].Id,
					Title:     notes[j].Title,
					CreatedAt: notes[j].CreatedAt,
					UpdatedAt: notes[j].UpdatedAt,
				})
			}
		}
	}

	return result, nil
}

func (c *notebookService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*dto.CreateNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if req.ParentId != nil {
		parent, err := uow.NotebookRepository().FindOne(ctx,
			specification.ByID{ID: *req.ParentId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, serverutils.NotFound("parent notebook not found")
		}
	}

	notebook := entity.Notebook{
		Id:        uuid.New(),
		Name:      req.Name,
		ParentId:  req.ParentId,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.NotebookRepository().Create(ctx, &notebook); err != nil {
		return nil, err
	}

	return &dto.CreateNotebookResponse{
		Id: notebook.Id,
	}, nil
}

func (c *notebookService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, serverutils.NotFound("notebook not found")
	}

	breadcrumb := make([]dto.BreadcrumbItem, 0)
	currentId := notebook.ParentId
	for currentId != nil {
		parent, err := uow.NotebookRepository().FindOne(ctx,
			specification.ByID{ID: *currentId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		breadcrumb = append([]dto.BreadcrumbItem{{Id: parent.Id, Name: parent.Name}}, breadcrumb...)
		currentId = parent.ParentId
	}

	res := dto.ShowNotebookResponse{
		Id:         notebook.Id,
		Name:       notebook.Name,
		ParentId:   notebook.ParentId,
		Breadcrumb: breadcrumb,
		CreatedAt:  notebook.CreatedAt,
		UpdatedAt:  notebook.UpdatedAt,
	}

	return &res, nil
}

func (c *notebookService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNotebookRequest) (*dto.UpdateNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, serverutils.NotFound("notebook not found")
	}

	now := time.Now()
	notebook.Name = req.Name
	notebook.UpdatedAt = &now

	if err := uow.NotebookRepository().Update(ctx, notebook); err != nil {
		return nil, err
	}

	return &dto.UpdateNotebookResponse{
		Id: notebook.Id,
	}, nil
}

// Delete removes the notebook and every note inside it. Children of the
// deleted notebook are re-rooted rather than cascaded.
func (c *notebookService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if notebook == nil {
		return serverutils.NotFound("notebook not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.NotebookRepository().Delete(ctx, id); err != nil {
		return err
	}

	children, err := uow.NotebookRepository().FindAll(ctx,
		specification.ByParentID{ParentID: &id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	for _, child := range children {
		child.ParentId = nil
		if err := uow.NotebookRepository().Update(ctx, child); err != nil {
			return err
		}
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specification.ByNotebookID{NotebookID: id})
	if err != nil {
		return err
	}
	for _, note := range notes {
		if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
			return err
		}
		if err := uow.NoteVersionRepository().DeleteAllByNote(ctx, note.Id); err != nil {
			return err
		}
	}

	return uow.Commit()
}

func (c *notebookService) MoveNotebook(ctx context.Context, userId uuid.UUID, req *dto.MoveNotebookRequest) (*dto.MoveNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, serverutils.NotFound("notebook not found")
	}

	if req.ParentId != nil {
		if *req.ParentId == notebook.Id {
			return nil, serverutils.InvalidArgument("notebook cannot be its own parent")
		}
		parent, err := uow.NotebookRepository().FindOne(ctx,
			specification.ByID{ID: *req.ParentId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, serverutils.NotFound("parent notebook not found")
		}
	}

	notebook.ParentId = req.ParentId
	if err := uow.NotebookRepository().Update(ctx, notebook); err != nil {
		return nil, err
	}

	return &dto.MoveNotebookResponse{
		Id: req.Id,
	}, nil
}
