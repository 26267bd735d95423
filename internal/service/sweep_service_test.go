package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/model"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestSweepDispatchesDueReminders(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	remSvc := NewReminderService(factory)
	mailer := newFakeMailer()
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, noteSvc, userId, notebookId, "Dentist", "<p>appt</p>")

	due := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	_, err := remSvc.SetReminder(ctx, userId, &dto.SetReminderRequest{Id: noteId, DueAt: due})
	require.NoError(t, err)

	sweep := NewSweepService(factory, mailer, nil, nopLogger{}, "@every 1m", 10).(*sweepService)
	sweep.now = func() time.Time { return due.Add(time.Minute) }

	n, err := sweep.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, mailer.reminders, 1)

	shown, err := noteSvc.Show(ctx, userId, noteId)
	require.NoError(t, err)
	require.NotNil(t, shown.Reminder)
	assert.True(t, shown.Reminder.Notified)

	// A second pass finds nothing new.
	n, err = sweep.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Len(t, mailer.reminders, 1)
}

func TestSweepSkipsNotYetDue(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	remSvc := NewReminderService(factory)
	mailer := newFakeMailer()
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, noteSvc, userId, notebookId, "Future", "<p>x</p>")

	due := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	_, err := remSvc.SetReminder(ctx, userId, &dto.SetReminderRequest{Id: noteId, DueAt: due})
	require.NoError(t, err)

	sweep := NewSweepService(factory, mailer, nil, nopLogger{}, "@every 1m", 10).(*sweepService)
	sweep.now = func() time.Time { return due.Add(-time.Hour) }

	n, err := sweep.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, mailer.reminders)
}

func TestSweepEmailFailureLeavesReminderPending(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	remSvc := NewReminderService(factory)
	mailer := newFakeMailer()
	ctx := context.Background()

	badUser := seedUser(t, db)
	goodUser := seedUser(t, db)

	var bad model.User
	require.NoError(t, db.First(&bad, "id = ?", badUser).Error)
	mailer.failFor[bad.Email] = true

	badNotebook := seedNotebook(t, db, badUser)
	goodNotebook := seedNotebook(t, db, goodUser)
	badNote := createNote(t, noteSvc, badUser, badNotebook, "Bounces", "<p>x</p>")
	goodNote := createNote(t, noteSvc, goodUser, goodNotebook, "Delivers", "<p>x</p>")

	due := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	_, err := remSvc.SetReminder(ctx, badUser, &dto.SetReminderRequest{Id: badNote, DueAt: due})
	require.NoError(t, err)
	_, err = remSvc.SetReminder(ctx, goodUser, &dto.SetReminderRequest{Id: goodNote, DueAt: due.Add(time.Minute)})
	require.NoError(t, err)

	sweep := NewSweepService(factory, mailer, nil, nopLogger{}, "@every 1m", 10).(*sweepService)
	sweep.now = func() time.Time { return due.Add(time.Hour) }

	// The failing address must not block the deliverable one.
	n, err := sweep.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, mailer.reminders, 1)

	shown, err := noteSvc.Show(ctx, badUser, badNote)
	require.NoError(t, err)
	require.NotNil(t, shown.Reminder)
	assert.False(t, shown.Reminder.Notified)

	// Once the address starts accepting mail the pending reminder goes out.
	mailer.failFor[bad.Email] = false
	n, err = sweep.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSweepIgnoresCompletedReminders(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	remSvc := NewReminderService(factory)
	mailer := newFakeMailer()
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, noteSvc, userId, notebookId, "Done already", "<p>x</p>")

	due := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	_, err := remSvc.SetReminder(ctx, userId, &dto.SetReminderRequest{Id: noteId, DueAt: due})
	require.NoError(t, err)
	_, err = remSvc.CompleteReminder(ctx, userId, noteId)
	require.NoError(t, err)

	sweep := NewSweepService(factory, mailer, nil, nopLogger{}, "@every 1m", 10).(*sweepService)
	sweep.now = func() time.Time { return due.Add(time.Hour) }

	n, err := sweep.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, mailer.reminders)
}

func TestSweepProcessesOneBatchPerRun(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	remSvc := NewReminderService(factory)
	mailer := newFakeMailer()
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)

	due := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i, title := range []string{"First", "Second", "Third"} {
		noteId := createNote(t, noteSvc, userId, notebookId, title, "<p>x</p>")
		_, err := remSvc.SetReminder(ctx, userId, &dto.SetReminderRequest{
			Id:    noteId,
			DueAt: due.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	sweep := NewSweepService(factory, mailer, nil, nopLogger{}, "@every 1m", 2).(*sweepService)
	sweep.now = func() time.Time { return due.Add(time.Hour) }

	// The first run dispatches at most one batch; the remainder stays
	// pending until the next run.
	n, err := sweep.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, mailer.reminders, 2)

	n, err = sweep.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, mailer.reminders, 3)

	n, err = sweep.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
