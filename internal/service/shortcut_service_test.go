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

func requireInvalidArgument(t *testing.T, err error) {
	t.Helper()
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr), "expected an AppError, got %v", err)
	assert.Equal(t, serverutils.CodeInvalidArgument, appErr.Code)
}

func TestCreateShortcutURLVariant(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := NewShortcutService(factory)
	ctx := context.Background()

	userId := seedUser(t, db)

	res, err := svc.Create(ctx, userId, &dto.CreateShortcutRequest{
		Name:   "Docs",
		Target: dto.ShortcutTargetInput{Kind: "url", URL: "https://example.com/docs"},
	})
	require.NoError(t, err)

	all, err := svc.GetAll(ctx, userId)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, res.Id, all[0].Id)
	assert.Equal(t, "url", all[0].Target.Kind)
	assert.Equal(t, "https://example.com/docs", all[0].Target.URL)
	assert.Equal(t, 0, all[0].SortOrder)
}

func TestCreateShortcutRejectsCrossVariantFields(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := NewShortcutService(factory)
	ctx := context.Background()

	userId := seedUser(t, db)
	targetId := uuid.New()

	cases := []struct {
		name   string
		target dto.ShortcutTargetInput
	}{
		{"url with query", dto.ShortcutTargetInput{Kind: "url", URL: "https://example.com", Query: "leftover"}},
		{"url relative", dto.ShortcutTargetInput{Kind: "url", URL: "/relative/path"}},
		{"search with url", dto.ShortcutTargetInput{Kind: "search", Query: "meeting notes", URL: "https://example.com"}},
		{"search blank query", dto.ShortcutTargetInput{Kind: "search", Query: "   "}},
		{"entity without id", dto.ShortcutTargetInput{Kind: "entity", TargetKind: "note"}},
		{"entity bad kind", dto.ShortcutTargetInput{Kind: "entity", TargetId: &targetId, TargetKind: "widget"}},
		{"entity with url", dto.ShortcutTargetInput{Kind: "entity", TargetId: &targetId, TargetKind: "note", URL: "https://example.com"}},
		{"unknown kind", dto.ShortcutTargetInput{Kind: "bookmark"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, userId, &dto.CreateShortcutRequest{
				Name:   "bad",
				Target: tc.target,
			})
			requireInvalidArgument(t, err)
		})
	}
}

func TestCreateShortcutEntityTargetMustExist(t *testing.T) {
	factory, db := newTestFactory(t)
	noteSvc := NewNoteService(factory, nil)
	svc := NewShortcutService(factory)
	ctx := context.Background()

	userId := seedUser(t, db)
	notebookId := seedNotebook(t, db, userId)
	noteId := createNote(t, noteSvc, userId, notebookId, "Pinned", "<p>x</p>")

	_, err := svc.Create(ctx, userId, &dto.CreateShortcutRequest{
		Name:   "My note",
		Target: dto.ShortcutTargetInput{Kind: "entity", TargetId: &noteId, TargetKind: "note"},
	})
	require.NoError(t, err)

	missing := uuid.New()
	_, err = svc.Create(ctx, userId, &dto.CreateShortcutRequest{
		Name:   "Dangling",
		Target: dto.ShortcutTargetInput{Kind: "entity", TargetId: &missing, TargetKind: "note"},
	})
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, serverutils.CodeNotFound, appErr.Code)
}

func TestReorderShortcutsRequiresPermutation(t *testing.T) {
	factory, db := newTestFactory(t)
	svc := NewShortcutService(factory)
	ctx := context.Background()

	userId := seedUser(t, db)

	var ids []uuid.UUID
	for _, name := range []string{"a", "b", "c"} {
		res, err := svc.Create(ctx, userId, &dto.CreateShortcutRequest{
			Name:   name,
			Target: dto.ShortcutTargetInput{Kind: "search", Query: name},
		})
		require.NoError(t, err)
		ids = append(ids, res.Id)
	}

	// Missing one id.
	err := svc.Reorder(ctx, userId, &dto.ReorderShortcutsRequest{Ids: ids[:2]})
	requireInvalidArgument(t, err)

	// Duplicate id.
	err = svc.Reorder(ctx, userId, &dto.ReorderShortcutsRequest{
		Ids: []uuid.UUID{ids[0], ids[0], ids[1]},
	})
	requireInvalidArgument(t, err)

	// Foreign id.
	err = svc.Reorder(ctx, userId, &dto.ReorderShortcutsRequest{
		Ids: []uuid.UUID{ids[0], ids[1], uuid.New()},
	})
	requireInvalidArgument(t, err)

	// A proper permutation is applied in order.
	err = svc.Reorder(ctx, userId, &dto.ReorderShortcutsRequest{
		Ids: []uuid.UUID{ids[2], ids[0], ids[1]},
	})
	require.NoError(t, err)

	all, err := svc.GetAll(ctx, userId)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].Id)
	assert.Equal(t, ids[0], all[1].Id)
	assert.Equal(t, ids[1], all[2].Id)
}
