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

func TestCreateTagRejectsDuplicateName(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := NewTagService(factory)
	ctx := context.Background()

	userId := seedUser(t, db)

	_, err := svc.Create(ctx, userId, &dto.CreateTagRequest{Name: "work"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, userId, &dto.CreateTagRequest{Name: "work"})
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, serverutils.CodeConflict, appErr.Code)

	// Another user may reuse the name.
	other := seedUser(t, db)
	_, err = svc.Create(ctx, other, &dto.CreateTagRequest{Name: "work"})
	require.NoError(t, err)
}

func TestDeleteTagStripsItFromNotes(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	svc := NewTagService(factory)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)

	keep, err := svc.Create(ctx, userId, &dto.CreateTagRequest{Name: "keep"})
	require.NoError(t, err)
	drop, err := svc.Create(ctx, userId, &dto.CreateTagRequest{Name: "drop"})
	require.NoError(t, err)

	res, err := noteSvc.Create(ctx, userId, &dto.CreateNoteRequest{
		Title:      "Tagged",
		Content:    "<p>x</p>",
		NotebookId: notebookId,
		TagIds:     []uuid.UUID{keep.Id, drop.Id},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userId, drop.Id))

	shown, err := noteSvc.Show(ctx, userId, res.Id)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{keep.Id}, shown.TagIds)

	// Removing the tag from notes is metadata cleanup, not an edit.
	assert.Equal(t, 1, shown.Version)
}
