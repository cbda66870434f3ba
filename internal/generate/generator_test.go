package generate_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/db"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/generate"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/recommend"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/store"
)

type stubGatherer struct {
	summary string
}

func (s *stubGatherer) Summary(ctx context.Context, websiteURL, repoRef string) string {
	return s.summary
}

type stubRecommender struct {
	tasks   []model.TaskCandidate
	err     error
	calls   atomic.Int32
	lastReq recommend.Request
}

func (s *stubRecommender) Recommend(ctx context.Context, req recommend.Request) ([]model.TaskCandidate, error) {
	s.calls.Add(1)
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.tasks, nil
}

func newTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	s := store.New(database)
	t.Cleanup(func() { s.Close() })
	return s
}

func addProject(t *testing.T, s *store.SQLStore, name string) model.Project {
	t.Helper()

	project := model.NewProject(uuid.New().String(), name)
	require.NoError(t, s.CreateProject(context.Background(), project))
	return project
}

func TestGenerateWritesChecklistAndChangeLog(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	project := addProject(t, s, "Acme")

	rec := &stubRecommender{tasks: []model.TaskCandidate{
		{Title: "Write launch post", Reasoning: "Tells people what exists"},
		{Title: "Set up analytics", Reasoning: "Measure the launch"},
		{Title: "Check mobile layout", Reasoning: "Half the traffic is mobile"},
	}}
	g := generate.New(s, &stubGatherer{summary: "Website analysis: fine."}, rec)

	count, err := g.Generate(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	// Gathered summary is forwarded to the recommender
	require.Equal(t, "Acme", rec.lastReq.Name)
	require.Equal(t, "Website analysis: fine.", rec.lastReq.Context)

	items, err := s.ListChecklist(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, item := range items {
		require.Equal(t, i, item.SortOrder)
		require.False(t, item.IsComplete)
	}
	require.Equal(t, "Write launch post", items[0].Title)
	require.Equal(t, "Measure the launch", items[1].AIHelpHint)

	entries, err := s.ListChangeLog(ctx, project.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, model.ProviderGeneration, entries[0].Provider)
	require.Equal(t, store.GeneratedChecklistMessage, entries[0].Message)
}

func TestGenerateFailureLeavesChecklistUntouched(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	project := addProject(t, s, "Acme")

	existing, err := s.AddChecklistItem(ctx, project.ID, "keep me", "")
	require.NoError(t, err)

	rec := &stubRecommender{err: recommend.ErrNoTasks}
	g := generate.New(s, &stubGatherer{}, rec)

	_, err = g.Generate(ctx, project.ID)
	require.ErrorIs(t, err, recommend.ErrNoTasks)

	items, err := s.ListChecklist(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, existing.ID, items[0].ID)

	entries, err := s.ListChangeLog(ctx, project.ID, 0)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestGenerateUnknownProject(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	rec := &stubRecommender{}
	g := generate.New(s, &stubGatherer{}, rec)

	_, err := g.Generate(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.Zero(t, rec.calls.Load(), "recommender called for unknown project")
}

func TestDispatcherFiresOnEnteringPrepLaunch(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	project := addProject(t, s, "Acme")

	rec := &stubRecommender{tasks: []model.TaskCandidate{
		{Title: "one", Reasoning: "r"},
	}}
	g := generate.New(s, &stubGatherer{}, rec)
	d := generate.NewDispatcher(g, 4)
	defer d.Close()

	d.Notify(project.ID, model.StatusDesign, model.StatusPrepLaunch)

	assert.Eventually(t, func() bool {
		return rec.calls.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)

	items, err := s.ListChecklist(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestDispatcherIgnoresOtherTransitions(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	project := addProject(t, s, "Acme")

	rec := &stubRecommender{tasks: []model.TaskCandidate{
		{Title: "one", Reasoning: "r"},
	}}
	g := generate.New(s, &stubGatherer{}, rec)
	d := generate.NewDispatcher(g, 4)

	// None of these enter prep_launch
	d.Notify(project.ID, model.StatusPrepLaunch, model.StatusPrepLaunch)
	d.Notify(project.ID, model.StatusPrepLaunch, model.StatusLaunched)
	d.Notify(project.ID, model.StatusDesign, model.StatusPaused)

	d.Close()
	require.Zero(t, rec.calls.Load())
}

func TestDispatcherSurvivesGenerationFailure(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	first := addProject(t, s, "Broken")
	second := addProject(t, s, "Fine")

	rec := &stubRecommender{tasks: []model.TaskCandidate{
		{Title: "one", Reasoning: "r"},
	}}
	g := generate.New(s, &stubGatherer{}, rec)
	d := generate.NewDispatcher(g, 4)
	defer d.Close()

	// First job fails at project lookup, second succeeds
	require.NoError(t, s.DeleteProject(context.Background(), first.ID))
	d.Notify(first.ID, model.StatusDesign, model.StatusPrepLaunch)
	d.Notify(second.ID, model.StatusDesign, model.StatusPrepLaunch)

	assert.Eventually(t, func() bool {
		items, err := s.ListChecklist(context.Background(), second.ID)
		return err == nil && len(items) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDispatcherCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	g := generate.New(s, &stubGatherer{}, &stubRecommender{err: errors.New("unused")})
	d := generate.NewDispatcher(g, 1)

	d.Close()
	d.Close()
}
