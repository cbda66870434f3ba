// Package generate orchestrates the launch-checklist pipeline: gather
// project context, ask the LLM for task candidates, and replace the
// project's checklist.
package generate

import (
	"context"
	"fmt"
	"sync"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/logger"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/recommend"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/store"
)

// ContextGatherer produces a best-effort textual summary of a project's
// external signals.
type ContextGatherer interface {
	Summary(ctx context.Context, websiteURL, repoRef string) string
}

// Recommender produces candidate tasks for a project
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) ([]model.TaskCandidate, error)
}

// Generator runs the generation pipeline for one project at a time per
// project: concurrent regenerations of the same project are serialized so
// at most one generated set is ever visible.
type Generator struct {
	store       store.Store
	gatherer    ContextGatherer
	recommender Recommender

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a generator
func New(s store.Store, g ContextGatherer, r Recommender) *Generator {
	return &Generator{
		store:       s,
		gatherer:    g,
		recommender: r,
		locks:       map[string]*sync.Mutex{},
	}
}

// projectLock returns the mutex serializing generation for one project
func (g *Generator) projectLock(projectID string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()

	lock, ok := g.locks[projectID]
	if !ok {
		lock = &sync.Mutex{}
		g.locks[projectID] = lock
	}
	return lock
}

// Generate runs the full pipeline for a project and returns the number of
// checklist items written. The existing checklist is left untouched unless
// the LLM call succeeds and validation passes.
func (g *Generator) Generate(ctx context.Context, projectID string) (int, error) {
	lock := g.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	project, err := g.store.GetProject(ctx, projectID)
	if err != nil {
		return 0, err
	}

	summary := g.gatherer.Summary(ctx, project.WebsiteURL, project.RepoRef)

	tasks, err := g.recommender.Recommend(ctx, recommend.Request{
		Name:        project.Name,
		Description: project.Description,
		WebsiteURL:  project.WebsiteURL,
		RepoRef:     project.RepoRef,
		Context:     summary,
	})
	if err != nil {
		return 0, fmt.Errorf("recommending tasks for project %s: %w", projectID, err)
	}

	count, err := g.store.ReplaceChecklist(ctx, projectID, tasks)
	if err != nil {
		return 0, fmt.Errorf("persisting checklist for project %s: %w", projectID, err)
	}

	logger.Info("Generated launch checklist",
		logger.F("project_id", projectID),
		logger.F("count", count))

	return count, nil
}
