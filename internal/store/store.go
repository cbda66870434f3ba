package store

import (
	"context"
	"errors"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/db"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
)

// ErrNotFound is returned when a requested row does not exist. Callers use
// it to distinguish a missing project/item from a database failure.
var ErrNotFound = errors.New("not found")

// Store is the data-access boundary consumed by the HTTP handlers and the
// generation pipeline.
type Store interface {
	// Projects
	CreateProject(ctx context.Context, p model.Project) error
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
	UpdateProject(ctx context.Context, p model.Project) error
	DeleteProject(ctx context.Context, id string) error

	// Checklist
	ListChecklist(ctx context.Context, projectID string) ([]model.ChecklistItem, error)
	GetChecklistItem(ctx context.Context, id string) (*model.ChecklistItem, error)
	AddChecklistItem(ctx context.Context, projectID, title, hint string) (*model.ChecklistItem, error)
	ToggleChecklistItem(ctx context.Context, id string) (*model.ChecklistItem, error)
	DeleteChecklistItem(ctx context.Context, id string) error
	SaveChecklistDraft(ctx context.Context, id, draft string) (*model.ChecklistItem, error)
	ReplaceChecklist(ctx context.Context, projectID string, tasks []model.TaskCandidate) (int, error)

	// Changelog
	AddChangeLog(ctx context.Context, projectID string, provider model.Provider, message string) (*model.ChangeLogEntry, error)
	ListChangeLog(ctx context.Context, projectID string, limit int) ([]model.ChangeLogEntry, error)

	// Users and sessions
	CreateUser(ctx context.Context, u model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateSession(ctx context.Context, s model.Session) error
	GetSessionByToken(ctx context.Context, token string) (*model.Session, error)

	Close() error
}

// SQLStore implements Store over SQLite or Postgres
type SQLStore struct {
	db *db.DB
}

// New creates a store backed by the given database
func New(database *db.DB) *SQLStore {
	return &SQLStore{db: database}
}

// Close closes the underlying database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}
