package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/serverutils"
)

func TestSetReminderDoesNotTouchVersionOrHistory(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	svc := NewReminderService(factory)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, noteSvc, userId, notebookId, "Pay rent", "<p>transfer before the 1st</p>")

	due := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	res, err := svc.SetReminder(ctx, userId, &dto.SetReminderRequest{
		Id:    noteId,
		DueAt: due,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Reminder)
	assert.False(t, res.Reminder.Completed)
	assert.False(t, res.Reminder.Notified)

	shown, err := noteSvc.Show(ctx, userId, noteId)
	require.NoError(t, err)
	assert.Equal(t, 1, shown.Version)
	require.NotNil(t, shown.Reminder)
	assert.True(t, due.Equal(shown.Reminder.DueAt))

	history, err := noteSvc.GetHistory(ctx, userId, noteId)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSetReminderReplacesExisting(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	svc := NewReminderService(factory)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, noteSvc, userId, notebookId, "Standup", "<p>daily sync</p>")

	first := time.Now().Add(time.Hour).Truncate(time.Second)
	_, err := svc.SetReminder(ctx, userId, &dto.SetReminderRequest{Id: noteId, DueAt: first})
	require.NoError(t, err)

	second := first.Add(48 * time.Hour)
	_, err = svc.SetReminder(ctx, userId, &dto.SetReminderRequest{
		Id:    noteId,
		DueAt: second,
		Recurrence: &dto.RecurrenceInput{
			Frequency: "weekly",
			Interval:  1,
		},
	})
	require.NoError(t, err)

	shown, err := noteSvc.Show(ctx, userId, noteId)
	require.NoError(t, err)
	require.NotNil(t, shown.Reminder)
	assert.True(t, second.Equal(shown.Reminder.DueAt))
	assert.Equal(t, "weekly", shown.Reminder.Frequency)
}

func TestSetReminderRejectsInvalidRecurrence(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	svc := NewReminderService(factory)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, noteSvc, userId, notebookId, "Broken", "<p>x</p>")

	_, err := svc.SetReminder(ctx, userId, &dto.SetReminderRequest{
		Id:    noteId,
		DueAt: time.Now().Add(time.Hour),
		Recurrence: &dto.RecurrenceInput{
			Frequency: "daily",
			Interval:  0,
		},
	})
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, serverutils.CodeInvalidArgument, appErr.Code)
}

func TestCompleteNonRecurringIsTerminal(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	svc := NewReminderService(factory)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, noteSvc, userId, notebookId, "One shot", "<p>x</p>")

	due := time.Now().Add(time.Hour).Truncate(time.Second)
	_, err := svc.SetReminder(ctx, userId, &dto.SetReminderRequest{Id: noteId, DueAt: due})
	require.NoError(t, err)

	res, err := svc.CompleteReminder(ctx, userId, noteId)
	require.NoError(t, err)
	assert.True(t, res.Reminder.Completed)
	assert.True(t, due.Equal(res.Reminder.DueAt))

	// Completing again changes nothing.
	res, err = svc.CompleteReminder(ctx, userId, noteId)
	require.NoError(t, err)
	assert.True(t, res.Reminder.Completed)
	assert.True(t, due.Equal(res.Reminder.DueAt))
}

func TestCompleteRecurringAdvancesDueDate(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	svc := NewReminderService(factory)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, noteSvc, userId, notebookId, "Water plants", "<p>x</p>")

	due := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := svc.SetReminder(ctx, userId, &dto.SetReminderRequest{
		Id:    noteId,
		DueAt: due,
		Recurrence: &dto.RecurrenceInput{
			Frequency: "daily",
			Interval:  3,
		},
	})
	require.NoError(t, err)

	res, err := svc.CompleteReminder(ctx, userId, noteId)
	require.NoError(t, err)
	assert.False(t, res.Reminder.Completed)
	assert.False(t, res.Reminder.Notified)
	assert.True(t, due.AddDate(0, 0, 3).Equal(res.Reminder.DueAt))
}

func TestClearReminderRequiresOne(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	svc := NewReminderService(factory)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, noteSvc, userId, notebookId, "Nothing set", "<p>x</p>")

	err := svc.ClearReminder(ctx, userId, noteId)
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, serverutils.CodeNotFound, appErr.Code)

	_, err = svc.SetReminder(ctx, userId, &dto.SetReminderRequest{
		Id:    noteId,
		DueAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, svc.ClearReminder(ctx, userId, noteId))

	shown, err := noteSvc.Show(ctx, userId, noteId)
	require.NoError(t, err)
	assert.Nil(t, shown.Reminder)
}

func TestSetReminderWithoutRecurrenceKeepsExisting(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	svc := NewReminderService(factory)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, noteSvc, userId, notebookId, "Weekly review", "<p>x</p>")

	due := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	_, err := svc.SetReminder(ctx, userId, &dto.SetReminderRequest{
		Id:    noteId,
		DueAt: due,
		Recurrence: &dto.RecurrenceInput{
			Frequency: "weekly",
			Interval:  2,
		},
	})
	require.NoError(t, err)

	// Rescheduling without a recurrence payload keeps the schedule.
	rescheduled := due.Add(72 * time.Hour)
	res, err := svc.SetReminder(ctx, userId, &dto.SetReminderRequest{
		Id:    noteId,
		DueAt: rescheduled,
	})
	require.NoError(t, err)
	assert.Equal(t, "weekly", res.Reminder.Frequency)
	assert.Equal(t, 2, res.Reminder.Interval)

	shown, err := noteSvc.Show(ctx, userId, noteId)
	require.NoError(t, err)
	require.NotNil(t, shown.Reminder)
	assert.Equal(t, "weekly", shown.Reminder.Frequency)
	assert.Equal(t, 2, shown.Reminder.Interval)

	// Completing afterwards still recurs instead of finishing terminally.
	completed, err := svc.CompleteReminder(ctx, userId, noteId)
	require.NoError(t, err)
	assert.False(t, completed.Reminder.Completed)
	assert.True(t, rescheduled.AddDate(0, 0, 14).Equal(completed.Reminder.DueAt))
}

func TestSetReminderOnFreshNoteDefaultsToNone(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	svc := NewReminderService(factory)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, noteSvc, userId, notebookId, "One off", "<p>x</p>")

	res, err := svc.SetReminder(ctx, userId, &dto.SetReminderRequest{
		Id:    noteId,
		DueAt: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "none", res.Reminder.Frequency)
}
