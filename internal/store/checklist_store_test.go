package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/db"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/store"
)

func getStore(t *testing.T) *store.SQLStore {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	s := store.New(database)
	t.Cleanup(func() { s.Close() })
	return s
}

func addProject(t *testing.T, s *store.SQLStore) model.Project {
	t.Helper()

	project := model.NewProject(uuid.New().String(), "Acme")
	project.Description = "A tool"
	require.NoError(t, s.CreateProject(context.Background(), project))
	return project
}

func TestAddChecklistItemAssignsContiguousOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := getStore(t)
	project := addProject(t, s)

	first, err := s.AddChecklistItem(ctx, project.ID, "Write launch post", "")
	require.NoError(t, err)
	require.Equal(t, 0, first.SortOrder)
	require.False(t, first.IsComplete)

	second, err := s.AddChecklistItem(ctx, project.ID, "Set up analytics", "check the funnel")
	require.NoError(t, err)
	require.Equal(t, 1, second.SortOrder)

	items, err := s.ListChecklist(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Write launch post", items[0].Title)
	require.Equal(t, "check the funnel", items[1].AIHelpHint)
}

func TestToggleChecklistItem(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := getStore(t)
	project := addProject(t, s)

	item, err := s.AddChecklistItem(ctx, project.ID, "Write launch post", "")
	require.NoError(t, err)

	toggled, err := s.ToggleChecklistItem(ctx, item.ID)
	require.NoError(t, err)
	require.True(t, toggled.IsComplete)

	toggled, err = s.ToggleChecklistItem(ctx, item.ID)
	require.NoError(t, err)
	require.False(t, toggled.IsComplete)

	_, err = s.ToggleChecklistItem(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSaveChecklistDraft(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := getStore(t)
	project := addProject(t, s)

	item, err := s.AddChecklistItem(ctx, project.ID, "Write launch post", "original reasoning")
	require.NoError(t, err)

	updated, err := s.SaveChecklistDraft(ctx, item.ID, "Ship it! A punchy draft.")
	require.NoError(t, err)
	require.Equal(t, "Ship it! A punchy draft.", updated.AIHelpHint)

	_, err = s.SaveChecklistDraft(ctx, "missing", "text")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteChecklistItemRecompactsOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := getStore(t)
	project := addProject(t, s)

	titles := []string{"one", "two", "three", "four"}
	items := make([]*model.ChecklistItem, 0, len(titles))
	for _, title := range titles {
		item, err := s.AddChecklistItem(ctx, project.ID, title, "")
		require.NoError(t, err)
		items = append(items, item)
	}

	// Delete from the middle
	require.NoError(t, s.DeleteChecklistItem(ctx, items[1].ID))

	remaining, err := s.ListChecklist(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 3)

	// Order stays contiguous from 0 with relative order preserved
	require.Equal(t, []string{"one", "three", "four"},
		[]string{remaining[0].Title, remaining[1].Title, remaining[2].Title})
	for i, item := range remaining {
		require.Equal(t, i, item.SortOrder)
	}

	require.ErrorIs(t, s.DeleteChecklistItem(ctx, items[1].ID), store.ErrNotFound)
}

func TestReplaceChecklistReplacesNotAppends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := getStore(t)
	project := addProject(t, s)

	// Existing generated set of size 3, with one item completed
	firstSet := []model.TaskCandidate{
		{Title: "old one", Reasoning: "r1"},
		{Title: "old two", Reasoning: "r2"},
		{Title: "old three", Reasoning: "r3"},
	}
	count, err := s.ReplaceChecklist(ctx, project.ID, firstSet)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	before, err := s.ListChecklist(ctx, project.ID)
	require.NoError(t, err)
	priorIDs := map[string]bool{}
	for _, item := range before {
		priorIDs[item.ID] = true
	}
	_, err = s.ToggleChecklistItem(ctx, before[0].ID)
	require.NoError(t, err)

	// Regeneration with 2 candidates leaves exactly 2 items
	secondSet := []model.TaskCandidate{
		{Title: "new one", Reasoning: "n1"},
		{Title: "new two", Reasoning: "n2"},
	}
	count, err = s.ReplaceChecklist(ctx, project.ID, secondSet)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	after, err := s.ListChecklist(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, after, 2)

	for i, item := range after {
		require.False(t, priorIDs[item.ID], "prior item id survived regeneration")
		require.Equal(t, i, item.SortOrder)
		require.False(t, item.IsComplete)
	}
	require.Equal(t, "new one", after[0].Title)
	require.Equal(t, "n2", after[1].AIHelpHint)
}

func TestReplaceChecklistRecordsGenerationEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := getStore(t)
	project := addProject(t, s)

	_, err := s.ReplaceChecklist(ctx, project.ID, []model.TaskCandidate{
		{Title: "one", Reasoning: "r"},
	})
	require.NoError(t, err)

	entries, err := s.ListChangeLog(ctx, project.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, store.GeneratedChecklistMessage, entries[0].Message)
	require.Equal(t, model.ProviderGeneration, entries[0].Provider)
}
