package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/store"
)

func TestProjectCRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := getStore(t)

	project := model.NewProject(uuid.New().String(), "Acme")
	project.Description = "A tool"
	project.WebsiteURL = "https://acme.example.com"
	project.RepoRef = "acme/acme"
	project.Platform = "vercel"
	require.NoError(t, s.CreateProject(ctx, project))

	got, err := s.GetProject(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme", got.Name)
	require.Equal(t, model.StatusDesign, got.Status)
	require.Equal(t, "acme/acme", got.RepoRef)

	got.Status = model.StatusPrepLaunch
	require.NoError(t, s.UpdateProject(ctx, *got))

	got, err = s.GetProject(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusPrepLaunch, got.Status)

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	require.NoError(t, s.DeleteProject(ctx, project.ID))
	_, err = s.GetProject(ctx, project.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestProjectNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := getStore(t)

	_, err := s.GetProject(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.UpdateProject(ctx, model.NewProject("missing", "ghost"))
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.DeleteProject(ctx, "missing"), store.ErrNotFound)
}

func TestDeleteProjectCascades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := getStore(t)
	project := addProject(t, s)

	_, err := s.AddChecklistItem(ctx, project.ID, "one", "")
	require.NoError(t, err)
	_, err = s.AddChangeLog(ctx, project.ID, model.ProviderNote, "a note")
	require.NoError(t, err)

	require.NoError(t, s.DeleteProject(ctx, project.ID))

	items, err := s.ListChecklist(ctx, project.ID)
	require.NoError(t, err)
	require.Empty(t, items)

	entries, err := s.ListChangeLog(ctx, project.ID, 0)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestListChangeLogOrderAndLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := getStore(t)
	project := addProject(t, s)

	for i := 0; i < 5; i++ {
		_, err := s.AddChangeLog(ctx, project.ID, model.ProviderNote, fmt.Sprintf("note %d", i))
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	entries, err := s.ListChangeLog(ctx, project.ID, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Most recent first
	require.Equal(t, "note 4", entries[0].Message)
	require.Equal(t, "note 3", entries[1].Message)
	require.Equal(t, "note 2", entries[2].Message)
}

func TestUserSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := getStore(t)

	user := model.User{
		ID:           uuid.New().String(),
		Username:     "dev",
		Email:        "dev@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := s.GetUserByUsername(ctx, "dev")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	_, err = s.GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)

	session := model.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     "token-1",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.CreateSession(ctx, session))

	gotSession, err := s.GetSessionByToken(ctx, "token-1")
	require.NoError(t, err)
	require.Equal(t, user.ID, gotSession.UserID)
	require.False(t, gotSession.IsExpired())

	_, err = s.GetSessionByToken(ctx, "bogus")
	require.ErrorIs(t, err, store.ErrNotFound)
}
