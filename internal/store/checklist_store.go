package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
)

// GeneratedChecklistMessage is the changelog message recorded when the
// pipeline replaces a project's checklist.
const GeneratedChecklistMessage = "Generated launch checklist"

// ListChecklist returns a project's checklist items in sort order
func (s *SQLStore) ListChecklist(ctx context.Context, projectID string) ([]model.ChecklistItem, error) {
	items := []model.ChecklistItem{}
	query := s.db.Rebind(`SELECT * FROM checklist_items WHERE project_id = ? ORDER BY sort_order ASC`)
	if err := s.db.SelectContext(ctx, &items, query, projectID); err != nil {
		return nil, fmt.Errorf("listing checklist for project %s: %w", projectID, err)
	}
	return items, nil
}

// AddChecklistItem appends one item at the next sort position (0-based)
func (s *SQLStore) AddChecklistItem(ctx context.Context, projectID, title, hint string) (*model.ChecklistItem, error) {
	now := time.Now().UTC()
	item := model.ChecklistItem{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		Title:      title,
		AIHelpHint: hint,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	query := s.db.Rebind(`SELECT COALESCE(MAX(sort_order) + 1, 0) FROM checklist_items WHERE project_id = ?`)
	if err := s.db.GetContext(ctx, &item.SortOrder, query, projectID); err != nil {
		return nil, fmt.Errorf("getting next sort_order: %w", err)
	}

	query = s.db.Rebind(`
		INSERT INTO checklist_items (id, project_id, title, ai_help_hint, sort_order, is_complete, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		item.ID, item.ProjectID, item.Title, item.AIHelpHint, item.SortOrder, item.IsComplete, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("adding checklist item: %w", err)
	}

	return &item, nil
}

// ToggleChecklistItem flips an item's completion flag and returns the
// updated item
func (s *SQLStore) ToggleChecklistItem(ctx context.Context, id string) (*model.ChecklistItem, error) {
	query := s.db.Rebind(`
		UPDATE checklist_items
		SET is_complete = NOT is_complete, updated_at = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("toggling checklist item %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}

	return s.GetChecklistItem(ctx, id)
}

// SaveChecklistDraft overwrites an item's ai_help_hint with caller text
func (s *SQLStore) SaveChecklistDraft(ctx context.Context, id, draft string) (*model.ChecklistItem, error) {
	query := s.db.Rebind(`
		UPDATE checklist_items
		SET ai_help_hint = ?, updated_at = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query, draft, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("saving draft for checklist item %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}

	return s.GetChecklistItem(ctx, id)
}

// DeleteChecklistItem removes one item and re-compacts the remaining
// items' sort_order to stay contiguous from 0.
func (s *SQLStore) DeleteChecklistItem(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var projectID string
	query := tx.Rebind(`SELECT project_id FROM checklist_items WHERE id = ?`)
	if err := tx.GetContext(ctx, &projectID, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("looking up checklist item %s: %w", id, err)
	}

	query = tx.Rebind(`DELETE FROM checklist_items WHERE id = ?`)
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting checklist item %s: %w", id, err)
	}

	// Re-compact sibling order
	remaining := []string{}
	query = tx.Rebind(`SELECT id FROM checklist_items WHERE project_id = ? ORDER BY sort_order ASC`)
	if err := tx.SelectContext(ctx, &remaining, query, projectID); err != nil {
		return fmt.Errorf("listing remaining items: %w", err)
	}

	query = tx.Rebind(`UPDATE checklist_items SET sort_order = ? WHERE id = ?`)
	for i, itemID := range remaining {
		if _, err := tx.ExecContext(ctx, query, i, itemID); err != nil {
			return fmt.Errorf("re-ordering checklist item %s: %w", itemID, err)
		}
	}

	return tx.Commit()
}

// ReplaceChecklist replaces a project's checklist with the given candidate
// tasks and records a generation changelog entry, all in one transaction.
// Prior items for the project are removed, never merged. Returns the number
// of items written.
func (s *SQLStore) ReplaceChecklist(ctx context.Context, projectID string, tasks []model.TaskCandidate) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(`DELETE FROM checklist_items WHERE project_id = ?`)
	if _, err := tx.ExecContext(ctx, query, projectID); err != nil {
		return 0, fmt.Errorf("clearing checklist for project %s: %w", projectID, err)
	}

	now := time.Now().UTC()
	query = tx.Rebind(`
		INSERT INTO checklist_items (id, project_id, title, ai_help_hint, sort_order, is_complete, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	for i, task := range tasks {
		_, err := tx.ExecContext(ctx, query,
			uuid.New().String(), projectID, task.Title, task.Reasoning, i, false, now, now)
		if err != nil {
			return 0, fmt.Errorf("inserting checklist item %d: %w", i, err)
		}
	}

	query = tx.Rebind(`
		INSERT INTO changelog_entries (id, project_id, provider, message, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err = tx.ExecContext(ctx, query,
		uuid.New().String(), projectID, model.ProviderGeneration, GeneratedChecklistMessage, now)
	if err != nil {
		return 0, fmt.Errorf("recording generation event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing checklist replacement: %w", err)
	}
	return len(tasks), nil
}

// GetChecklistItem fetches one checklist item by ID
func (s *SQLStore) GetChecklistItem(ctx context.Context, id string) (*model.ChecklistItem, error) {
	var item model.ChecklistItem
	query := s.db.Rebind(`SELECT * FROM checklist_items WHERE id = ?`)
	if err := s.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting checklist item %s: %w", id, err)
	}
	return &item, nil
}
