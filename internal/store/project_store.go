package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
)

// CreateProject inserts a new project
func (s *SQLStore) CreateProject(ctx context.Context, p model.Project) error {
	query := s.db.Rebind(`
		INSERT INTO projects (id, name, description, website_url, repo_ref, platform, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.WebsiteURL, p.RepoRef, p.Platform, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	return nil
}

// GetProject fetches a project by ID
func (s *SQLStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	query := s.db.Rebind(`SELECT * FROM projects WHERE id = ?`)
	if err := s.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	return &p, nil
}

// ListProjects returns all projects, most recently updated first
func (s *SQLStore) ListProjects(ctx context.Context) ([]model.Project, error) {
	projects := []model.Project{}
	if err := s.db.SelectContext(ctx, &projects, `SELECT * FROM projects ORDER BY updated_at DESC`); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// UpdateProject updates a project's descriptive fields and status
func (s *SQLStore) UpdateProject(ctx context.Context, p model.Project) error {
	p.UpdatedAt = time.Now().UTC()

	query := s.db.Rebind(`
		UPDATE projects
		SET name = ?, description = ?, website_url = ?, repo_ref = ?, platform = ?, status = ?, updated_at = ?
		WHERE id = ?`)

	result, err := s.db.ExecContext(ctx, query,
		p.Name, p.Description, p.WebsiteURL, p.RepoRef, p.Platform, p.Status, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("updating project %s: %w", p.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProject removes a project. Checklist items and changelog entries
// cascade.
func (s *SQLStore) DeleteProject(ctx context.Context, id string) error {
	query := s.db.Rebind(`DELETE FROM projects WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
