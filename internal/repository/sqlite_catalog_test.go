package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepo_ListsInDisplayOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	video := testutil.NewTestSection("Video", 1)
	photo := testutil.NewTestSection("Photo", 0)
	require.NoError(t, repo.CreateSection(ctx, video))
	require.NoError(t, repo.CreateSection(ctx, photo))

	sections, err := repo.ListSections(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "Photo", sections[0].Name)

	edit := testutil.NewTestCategory(photo.ID, "Edit", testutil.WithStage(domain.StagePostProduction), testutil.WithCategoryOrder(2))
	props := testutil.NewTestCategory(photo.ID, "Props", testutil.Undated(), testutil.WithCategoryOrder(1))
	require.NoError(t, repo.CreateCategory(ctx, edit))
	require.NoError(t, repo.CreateCategory(ctx, props))

	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Props", cats[0].Name)
	assert.False(t, cats[0].AcceptsTasks)
	assert.Equal(t, domain.StagePostProduction, cats[1].Stage)

	second := testutil.NewTestCatalogItem(edit.ID, "Retouch", 1)
	first := testutil.NewTestCatalogItem(edit.ID, "Cull", 0)
	require.NoError(t, repo.CreateItem(ctx, second))
	require.NoError(t, repo.CreateItem(ctx, first))

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Cull", items[0].Name)
}

func TestCatalogRepo_RejectsUnknownStage(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	sec := testutil.NewTestSection("Photo", 0)
	require.NoError(t, repo.CreateSection(ctx, sec))
	err := repo.CreateCategory(ctx, testutil.NewTestCategory(sec.ID, "Bad", testutil.WithStage("rehearsal")))
	assert.Error(t, err)
}

func TestCatalogRepo_GetMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	_, err := repo.GetSection(ctx, "x")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetCategory(ctx, "x")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetItem(ctx, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventItemRepo_OneAssignmentPerCatalogItem(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := seedEvent(t, db, 1)
	ctx := context.Background()

	dup := &domain.EventItem{ID: "dup", EventID: s.event.ID, CatalogItemID: s.items[0].CatalogItemID, Name: "again"}
	assert.Error(t, NewSQLiteEventItemRepo(db).Create(ctx, dup))
}

func TestEventItemRepo_DeleteCascadesToTask(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := seedEvent(t, db, 1)
	ctx := context.Background()

	task := testutil.NewTestTask(s.items[0])
	require.NoError(t, NewSQLiteTaskRepo(db).Create(ctx, task))

	require.NoError(t, NewSQLiteEventItemRepo(db).Delete(ctx, s.items[0].ID))
	_, err := NewSQLiteTaskRepo(db).GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	listed, err := NewSQLiteEventItemRepo(db).ListByEvent(ctx, s.event.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCrewRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCrewRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestCrewMember("Zoe Park")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCrewMember("Ana Diaz")))

	crew, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, crew, 2)
	assert.Equal(t, "Ana Diaz", crew[0].Name)
	assert.Equal(t, "ana.diaz@example.com", crew[0].Email)
}
