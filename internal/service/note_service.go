package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/events"
	"notekeeper-be/pkg/markup"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowNoteResponse, error)
	List(ctx context.Context, userId uuid.UUID, notebookId *uuid.UUID, search string) ([]*dto.ListNoteItemResponse, error)
	Edit(ctx context.Context, userId uuid.UUID, req *dto.EditNoteRequest) (*dto.EditNoteResponse, error)
	RestoreVersion(ctx context.Context, userId uuid.UUID, req *dto.RestoreVersionRequest) (*dto.RestoreVersionResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]*dto.HistoryEntryResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	MoveNote(ctx context.Context, userId uuid.UUID, req *dto.MoveNoteRequest) (*dto.MoveNoteResponse, error)
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: req.NotebookId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, serverutils.NotFound("notebook not found")
	}

	plain := markup.Strip(req.Content)
	note := entity.Note{
		Id:          uuid.New(),
		Title:       req.Title,
		Content:     req.Content,
		PlainText:   plain,
		WordCount:   markup.WordCount(plain),
		TagIds:      req.TagIds,
		Attachments: attachmentsFromInput(req.Attachments),
		Version:     1,
		NotebookId:  req.NotebookId,
		UserId:      userId,
		CreatedAt:   time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	c.publishChanged(ctx, note.Id, events.TypeNoteCreated)

	return &dto.CreateNoteResponse{
		Id:      note.Id,
		Version: note.Version,
	}, nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, serverutils.NotFound("note not found")
	}

	breadcrumb, err := c.buildBreadcrumb(ctx, uow, note.NotebookId, userId)
	if err != nil {
		return nil, err
	}

	res := dto.ShowNoteResponse{
		Id:          note.Id,
		Title:       note.Title,
		Content:     note.Content,
		PlainText:   note.PlainText,
		WordCount:   note.WordCount,
		TagIds:      note.TagIds,
		Attachments: attachmentsToResponse(note.Attachments),
		Version:     note.Version,
		NotebookId:  note.NotebookId,
		Breadcrumb:  breadcrumb,
		Reminder:    reminderToResponse(note.Reminder),
		CreatedAt:   note.CreatedAt,
		UpdatedAt:   note.UpdatedAt,
	}

	return &res, nil
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID, notebookId *uuid.UUID, search string) ([]*dto.ListNoteItemResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.NoteOwnedByUser{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if notebookId != nil {
		specs = append(specs, specification.ByNotebookID{NotebookID: *notebookId})
	}
	if strings.TrimSpace(search) != "" {
		specs = append(specs, specification.NoteSearchQuery{Query: strings.TrimSpace(search)})
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ListNoteItemResponse, 0, len(notes))
	for _, note := range notes {
		result = append(result, &dto.ListNoteItemResponse{
			Id:         note.Id,
			Title:      note.Title,
			WordCount:  note.WordCount,
			Version:    note.Version,
			NotebookId: note.NotebookId,
			TagIds:     note.TagIds,
			Reminder:   reminderToResponse(note.Reminder),
			CreatedAt:  note.CreatedAt,
			UpdatedAt:  note.UpdatedAt,
		})
	}
	return result, nil
}

// buildBreadcrumb traverses notebook parent_id chain to build ancestry path from root to parent.
// This enables deep linking: frontend can display breadcrumbs and auto-expand sidebar tree.
func (c *noteService) buildBreadcrumb(ctx context.Context, uow unitofwork.UnitOfWork, notebookId uuid.UUID, userId uuid.UUID) ([]dto.BreadcrumbItem, error) {
	var breadcrumb []dto.BreadcrumbItem
	currentId := &notebookId

	for currentId != nil {
		notebook, err := uow.NotebookRepository().FindOne(ctx,
			specification.ByID{ID: *currentId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if notebook == nil {
			break // orphaned reference or ownership mismatch
		}

		// Prepend to build root-first order
		breadcrumb = append([]dto.BreadcrumbItem{{
			Id:   notebook.Id,
			Name: notebook.Name,
		}}, breadcrumb...)

		currentId = notebook.ParentId
	}

	return breadcrumb, nil
}

// Edit snapshots the current state into history, applies the requested
// changes, and moves the version counter forward. The write is guarded by
// the caller's expected version so two concurrent editors cannot silently
// overwrite each other.
func (c *noteService) Edit(ctx context.Context, userId uuid.UUID, req *dto.EditNoteRequest) (*dto.EditNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, serverutils.NotFound("note not found")
	}
	if note.Version != req.ExpectedVersion {
		return nil, serverutils.Conflict("note was modified by another request")
	}

	snapshot := note.Snapshot()

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
		note.PlainText = markup.Strip(*req.Content)
		note.WordCount = markup.WordCount(note.PlainText)
	}
	if req.TagIds != nil {
		note.TagIds = *req.TagIds
	}
	if req.Attachments != nil {
		note.Attachments = attachmentsFromInput(*req.Attachments)
	}

	now := time.Now()
	note.Version = req.ExpectedVersion + 1
	note.UpdatedAt = &now

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.NoteVersionRepository().Create(ctx, snapshot); err != nil {
		return nil, err
	}
	if err := uow.NoteRepository().UpdateWithVersion(ctx, note, req.ExpectedVersion); err != nil {
		if errors.Is(err, contract.ErrVersionConflict) {
			return nil, serverutils.Conflict("note was modified by another request")
		}
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	c.publishChanged(ctx, note.Id, events.TypeNoteUpdated)

	return &dto.EditNoteResponse{
		Id:      note.Id,
		Version: note.Version,
	}, nil
}

// RestoreVersion brings a historical snapshot back as the live state. The
// pre-restore state is pushed into history first, so restoring is itself an
// undoable edit.
func (c *noteService) RestoreVersion(ctx context.Context, userId uuid.UUID, req *dto.RestoreVersionRequest) (*dto.RestoreVersionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, serverutils.NotFound("note not found")
	}
	if note.Version != req.ExpectedVersion {
		return nil, serverutils.Conflict("note was modified by another request")
	}

	history, err := uow.NoteVersionRepository().FindAllByNote(ctx, note.Id)
	if err != nil {
		return nil, err
	}
	if req.VersionIndex < 0 || req.VersionIndex >= len(history) {
		return nil, serverutils.InvalidArgument("version index out of range")
	}
	target := history[req.VersionIndex]

	snapshot := note.Snapshot()

	note.ApplySnapshot(target)

	now := time.Now()
	note.Version = req.ExpectedVersion + 1
	note.UpdatedAt = &now

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.NoteVersionRepository().Create(ctx, snapshot); err != nil {
		return nil, err
	}
	if err := uow.NoteRepository().UpdateWithVersion(ctx, note, req.ExpectedVersion); err != nil {
		if errors.Is(err, contract.ErrVersionConflict) {
			return nil, serverutils.Conflict("note was modified by another request")
		}
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	c.publishChanged(ctx, note.Id, events.TypeNoteRestored)

	return &dto.RestoreVersionResponse{
		Id:      note.Id,
		Version: note.Version,
	}, nil
}

func (c *noteService) GetHistory(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]*dto.HistoryEntryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, serverutils.NotFound("note not found")
	}

	history, err := uow.NoteVersionRepository().FindAllByNote(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.HistoryEntryResponse, 0, len(history))
	for i, v := range history {
		result = append(result, &dto.HistoryEntryResponse{
			Index:      i,
			Version:    v.Version,
			Title:      v.Title,
			WordCount:  markup.WordCount(v.PlainText),
			SnapshotAt: v.SnapshotAt,
		})
	}
	return result, nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return serverutils.NotFound("note not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.NoteVersionRepository().DeleteAllByNote(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	c.publishChanged(ctx, id, events.TypeNoteDeleted)
	return nil
}

func (c *noteService) MoveNote(ctx context.Context, userId uuid.UUID, req *dto.MoveNoteRequest) (*dto.MoveNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, serverutils.NotFound("note not found")
	}

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: req.NotebookId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, serverutils.NotFound("notebook not found")
	}

	now := time.Now()
	note.NotebookId = req.NotebookId
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	return &dto.MoveNoteResponse{
		Id: note.Id,
	}, nil
}

// publishChanged hands the change to the async pipeline. Failures are
// swallowed: the write already committed and notifications are auxiliary.
func (c *noteService) publishChanged(ctx context.Context, noteId uuid.UUID, eventType string) {
	if c.publisherService == nil {
		return
	}
	payload := dto.PublishNoteChangedMessage{
		NoteId:    noteId,
		EventType: eventType,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = c.publisherService.Publish(ctx, payloadJson)
}

func attachmentsFromInput(in []dto.AttachmentInput) []entity.Attachment {
	if in == nil {
		return nil
	}
	out := make([]entity.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, entity.Attachment{
			Id:       uuid.New(),
			FileName: a.FileName,
			MimeType: a.MimeType,
			Size:     a.Size,
			URL:      a.URL,
		})
	}
	return out
}

func attachmentsToResponse(in []entity.Attachment) []dto.AttachmentResponse {
	out := make([]dto.AttachmentResponse, 0, len(in))
	for _, a := range in {
		out = append(out, dto.AttachmentResponse{
			Id:       a.Id,
			FileName: a.FileName,
			MimeType: a.MimeType,
			Size:     a.Size,
			URL:      a.URL,
		})
	}
	return out
}

func reminderToResponse(r *entity.ReminderState) *dto.ReminderResponse {
	if r == nil {
		return nil
	}
	return &dto.ReminderResponse{
		DueAt:     r.DueAt,
		Completed: r.Completed,
		Notified:  r.Notified,
		Frequency: string(r.Recurrence.Frequency),
		Interval:  r.Recurrence.Interval,
	}
}
