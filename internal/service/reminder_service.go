package service

import (
	"context"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IReminderService interface {
	SetReminder(ctx context.Context, userId uuid.UUID, req *dto.SetReminderRequest) (*dto.SetReminderResponse, error)
	ClearReminder(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) error
	CompleteReminder(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.CompleteReminderResponse, error)
}

type reminderService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewReminderService(uowFactory unitofwork.RepositoryFactory) IReminderService {
	return &reminderService{
		uowFactory: uowFactory,
	}
}

// SetReminder attaches or replaces a note's reminder schedule. Setting a
// reminder never touches the note's content, history, or version counter.
func (c *reminderService) SetReminder(ctx context.Context, userId uuid.UUID, req *dto.SetReminderRequest) (*dto.SetReminderResponse, error) {
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

	// An omitted recurrence keeps whatever the existing reminder had, so
	// rescheduling does not silently strip a repeating schedule.
	recurrence := entity.Recurrence{Frequency: entity.FrequencyNone, Interval: 1}
	if note.Reminder != nil {
		recurrence = note.Reminder.Recurrence
	}
	if req.Recurrence != nil {
		recurrence = entity.Recurrence{
			Frequency: entity.ReminderFrequency(req.Recurrence.Frequency),
			Interval:  req.Recurrence.Interval,
		}
		if !recurrence.Valid() {
			return nil, serverutils.InvalidArgument("invalid recurrence")
		}
	}

	reminder := &entity.ReminderState{
		DueAt:      req.DueAt,
		Completed:  false,
		Notified:   false,
		Recurrence: recurrence,
	}

	if err := uow.NoteRepository().UpdateReminder(ctx, note.Id, reminder); err != nil {
		return nil, err
	}

	return &dto.SetReminderResponse{
		Id:       note.Id,
		Reminder: reminderToResponse(reminder),
	}, nil
}

func (c *reminderService) ClearReminder(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return serverutils.NotFound("note not found")
	}
	if note.Reminder == nil {
		return serverutils.NotFound("note has no reminder")
	}

	return uow.NoteRepository().UpdateReminder(ctx, noteId, nil)
}

// CompleteReminder runs the reminder state machine. A non-recurring reminder
// finishes terminally, a recurring one advances its due date and rearms.
// Completing an already-finished non-recurring reminder changes nothing.
func (c *reminderService) CompleteReminder(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.CompleteReminderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, serverutils.NotFound("note not found")
	}
	if note.Reminder == nil {
		return nil, serverutils.NotFound("note has no reminder")
	}

	note.Reminder.Complete()

	if err := uow.NoteRepository().UpdateReminder(ctx, noteId, note.Reminder); err != nil {
		return nil, err
	}

	return &dto.CompleteReminderResponse{
		Id:       note.Id,
		Reminder: reminderToResponse(note.Reminder),
	}, nil
}
