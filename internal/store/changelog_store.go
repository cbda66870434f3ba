package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
)

// AddChangeLog appends one changelog entry to a project
func (s *SQLStore) AddChangeLog(ctx context.Context, projectID string, provider model.Provider, message string) (*model.ChangeLogEntry, error) {
	entry := model.ChangeLogEntry{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Provider:  provider,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	query := s.db.Rebind(`
		INSERT INTO changelog_entries (id, project_id, provider, message, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.ProjectID, entry.Provider, entry.Message, entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("adding changelog entry: %w", err)
	}

	return &entry, nil
}

// ListChangeLog returns a project's changelog entries, most recent first,
// truncated to limit when limit > 0.
func (s *SQLStore) ListChangeLog(ctx context.Context, projectID string, limit int) ([]model.ChangeLogEntry, error) {
	entries := []model.ChangeLogEntry{}

	query := `SELECT * FROM changelog_entries WHERE project_id = ? ORDER BY created_at DESC`
	args := []interface{}{projectID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	if err := s.db.SelectContext(ctx, &entries, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("listing changelog for project %s: %w", projectID, err)
	}
	return entries, nil
}
