package model

import (
	"fmt"
	"time"
)

// Status is a project's lifecycle state.
type Status string

const (
	StatusDesign     Status = "design"
	StatusPrepLaunch Status = "prep_launch"
	StatusLaunched   Status = "launched"
	StatusPaused     Status = "paused"
	StatusRetired    Status = "retired"
)

// ParseStatus validates a status string
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDesign, StatusPrepLaunch, StatusLaunched, StatusPaused, StatusRetired:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Project represents a tracked side project
type Project struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	WebsiteURL  string    `json:"website_url" db:"website_url"`
	RepoRef     string    `json:"repo_ref" db:"repo_ref"`
	Platform    string    `json:"platform" db:"platform"`
	Status      Status    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// NewProject creates a project with defaults. New projects start in design.
func NewProject(id, name string) Project {
	now := time.Now().UTC()
	return Project{
		ID:        id,
		Name:      name,
		Status:    StatusDesign,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EntersPrepLaunch reports whether a status change from prev to next should
// kick off checklist generation. Re-saving prep_launch does not re-fire.
func EntersPrepLaunch(prev, next Status) bool {
	return next == StatusPrepLaunch && prev != StatusPrepLaunch
}
