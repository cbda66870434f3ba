package model

import (
	"fmt"
	"time"
)

// Provider identifies where a changelog entry came from.
type Provider string

const (
	ProviderNote       Provider = "note"
	ProviderCommit     Provider = "commit"
	ProviderGeneration Provider = "generation"
)

// ParseProvider validates a provider tag
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderNote, ProviderCommit, ProviderGeneration:
		return Provider(s), nil
	}
	return "", fmt.Errorf("unknown provider %q", s)
}

// ChangeLogEntry is an audit record attached to a project: a manual note,
// a commit reference, or a system-generated event.
type ChangeLogEntry struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"project_id" db:"project_id"`
	Provider  Provider  `json:"provider" db:"provider"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
