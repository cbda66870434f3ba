package model

import "time"

// ChecklistItem is one task on a project's launch checklist
type ChecklistItem struct {
	ID         string    `json:"id" db:"id"`
	ProjectID  string    `json:"project_id" db:"project_id"`
	Title      string    `json:"title" db:"title"`
	AIHelpHint string    `json:"ai_help_hint" db:"ai_help_hint"`
	SortOrder  int       `json:"sort_order" db:"sort_order"`
	IsComplete bool      `json:"is_complete" db:"is_complete"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// TaskCandidate is a recommended task produced by the generation pipeline,
// not yet persisted.
type TaskCandidate struct {
	Title     string `json:"title"`
	Reasoning string `json:"reasoning"`
}
