package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/serverutils"
)

func TestEditNoteBumpsVersionAndSnapshotsPrior(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := NewNoteService(factory, nil)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, svc, userId, notebookId, "Groceries", "<p>milk and eggs</p>")

	res, err := svc.Edit(ctx, userId, &dto.EditNoteRequest{
		Id:              noteId,
		Content:         strPtr("<p>milk, eggs and bread</p>"),
		ExpectedVersion: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Version)

	shown, err := svc.Show(ctx, userId, noteId)
	require.NoError(t, err)
	assert.Equal(t, 2, shown.Version)
	assert.Equal(t, "<p>milk, eggs and bread</p>", shown.Content)
	assert.Equal(t, "milk, eggs and bread", shown.PlainText)
	assert.Equal(t, 4, shown.WordCount)

	history, err := svc.GetHistory(ctx, userId, noteId)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 1, history[0].Version)
	assert.Equal(t, "Groceries", history[0].Title)
}

func TestEditNoteLeavesUntouchedFieldsAlone(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := NewNoteService(factory, nil)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, svc, userId, notebookId, "Draft", "<p>original body</p>")

	_, err := svc.Edit(ctx, userId, &dto.EditNoteRequest{
		Id:              noteId,
		Title:           strPtr("Renamed Draft"),
		ExpectedVersion: 1,
	})
	require.NoError(t, err)

	shown, err := svc.Show(ctx, userId, noteId)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Draft", shown.Title)
	assert.Equal(t, "<p>original body</p>", shown.Content)
}

func TestEditNoteStaleVersionConflicts(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := NewNoteService(factory, nil)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, svc, userId, notebookId, "Shared", "<p>v1</p>")

	_, err := svc.Edit(ctx, userId, &dto.EditNoteRequest{
		Id:              noteId,
		Content:         strPtr("<p>v2</p>"),
		ExpectedVersion: 1,
	})
	require.NoError(t, err)

	// A second writer still holding version 1 must be rejected.
	_, err = svc.Edit(ctx, userId, &dto.EditNoteRequest{
		Id:              noteId,
		Content:         strPtr("<p>other edit</p>"),
		ExpectedVersion: 1,
	})
	require.Error(t, err)
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, serverutils.CodeConflict, appErr.Code)
}

func TestEditNoteUnknownIdIsNotFound(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := NewNoteService(factory, nil)

	userId := seedUser(t, db)

	_, err := svc.Edit(context.Background(), userId, &dto.EditNoteRequest{
		Id:              uuid.New(),
		Title:           strPtr("x"),
		ExpectedVersion: 1,
	})
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, serverutils.CodeNotFound, appErr.Code)
}

func TestEditNoteOtherUsersNoteIsNotFound(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := NewNoteService(factory, nil)
	ctx := context.Background()

	owner := seedUser(t, db)
	intruder := seedUser(t, db)
	notebookId := seedNotebook(t, db, owner)
	noteId := createNote(t, svc, owner, notebookId, "Private", "<p>secret</p>")

	_, err := svc.Edit(ctx, intruder, &dto.EditNoteRequest{
		Id:              noteId,
		Title:           strPtr("stolen"),
		ExpectedVersion: 1,
	})
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, serverutils.CodeNotFound, appErr.Code)
}

func TestRestoreVersionPushesCurrentAndMovesForward(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := NewNoteService(factory, nil)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, svc, userId, notebookId, "Recipe", "<p>first draft</p>")

	_, err := svc.Edit(ctx, userId, &dto.EditNoteRequest{
		Id:              noteId,
		Content:         strPtr("<p>second draft</p>"),
		ExpectedVersion: 1,
	})
	require.NoError(t, err)
	_, err = svc.Edit(ctx, userId, &dto.EditNoteRequest{
		Id:              noteId,
		Content:         strPtr("<p>third draft</p>"),
		ExpectedVersion: 2,
	})
	require.NoError(t, err)

	res, err := svc.RestoreVersion(ctx, userId, &dto.RestoreVersionRequest{
		Id:              noteId,
		VersionIndex:    0,
		ExpectedVersion: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Version)

	shown, err := svc.Show(ctx, userId, noteId)
	require.NoError(t, err)
	assert.Equal(t, "<p>first draft</p>", shown.Content)
	assert.Equal(t, 4, shown.Version)

	// The pre-restore state must be recoverable from history.
	history, err := svc.GetHistory(ctx, userId, noteId)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 1, history[0].Version)
	assert.Equal(t, 2, history[1].Version)
	assert.Equal(t, 3, history[2].Version)
}

func TestRestoreVersionIndexOutOfRange(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := NewNoteService(factory, nil)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, svc, userId, notebookId, "Short history", "<p>one</p>")

	_, err := svc.RestoreVersion(ctx, userId, &dto.RestoreVersionRequest{
		Id:              noteId,
		VersionIndex:    0,
		ExpectedVersion: 1,
	})
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, serverutils.CodeInvalidArgument, appErr.Code)
}

func TestRestoreVersionStaleVersionConflicts(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := NewNoteService(factory, nil)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, svc, userId, notebookId, "Doc", "<p>a</p>")

	_, err := svc.Edit(ctx, userId, &dto.EditNoteRequest{
		Id:              noteId,
		Content:         strPtr("<p>b</p>"),
		ExpectedVersion: 1,
	})
	require.NoError(t, err)

	_, err = svc.RestoreVersion(ctx, userId, &dto.RestoreVersionRequest{
		Id:              noteId,
		VersionIndex:    0,
		ExpectedVersion: 1,
	})
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, serverutils.CodeConflict, appErr.Code)
}

func TestDeleteNoteRemovesHistory(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := NewNoteService(factory, nil)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, svc, userId, notebookId, "Trash me", "<p>v1</p>")

	_, err := svc.Edit(ctx, userId, &dto.EditNoteRequest{
		Id:              noteId,
		Content:         strPtr("<p>v2</p>"),
		ExpectedVersion: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userId, noteId))

	_, err = svc.Show(ctx, userId, noteId)
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, serverutils.CodeNotFound, appErr.Code)

	var count int64
	require.NoError(t, db.Table("note_versions").Where("note_id = ?", noteId).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestListNotesFiltersBySearch(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := NewNoteService(factory, nil)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	createNote(t, svc, userId, notebookId, "Meeting agenda", "<p>quarterly planning</p>")
	createNote(t, svc, userId, notebookId, "Groceries", "<p>milk and eggs</p>")

	all, err := svc.List(ctx, userId, nil, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := svc.List(ctx, userId, nil, "PLANNING")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Meeting agenda", matched[0].Title)
}
