package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/store"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	WebsiteURL  string `json:"website_url"`
	RepoRef     string `json:"repo_ref"`
	Platform    string `json:"platform"`
	Status      string `json:"status"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	WebsiteURL  *string `json:"website_url"`
	RepoRef     *string `json:"repo_ref"`
	Platform    *string `json:"platform"`
	Status      *string `json:"status"`
}

// handleListProjects returns all projects
func (s *Server) handleListProjects(c echo.Context) error {
	projects, err := s.store.ListProjects(c.Request().Context())
	if err != nil {
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, projects)
}

// handleGetProject returns a single project
func (s *Server) handleGetProject(c echo.Context) error {
	project, err := s.store.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "project not found")
		}
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, project)
}

// handleCreateProject creates a project. Creating a project directly in
// prep_launch counts as a transition and queues checklist generation.
func (s *Server) handleCreateProject(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	if req.Name == "" {
		return errorJSON(c, http.StatusBadRequest, "name is required")
	}

	project := model.NewProject(uuid.New().String(), req.Name)
	project.Description = req.Description
	project.WebsiteURL = req.WebsiteURL
	project.RepoRef = req.RepoRef
	project.Platform = req.Platform

	if req.Status != "" {
		status, err := model.ParseStatus(req.Status)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		project.Status = status
	}

	if err := s.store.CreateProject(c.Request().Context(), project); err != nil {
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	s.dispatcher.Notify(project.ID, "", project.Status)

	return c.JSON(http.StatusCreated, project)
}

// handleUpdateProject updates a project's fields. A status transition
// into prep_launch queues checklist generation; the status write succeeds
// regardless of pipeline outcome.
func (s *Server) handleUpdateProject(c echo.Context) error {
	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	ctx := c.Request().Context()
	project, err := s.store.GetProject(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "project not found")
		}
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	prevStatus := project.Status

	if req.Name != nil {
		if *req.Name == "" {
			return errorJSON(c, http.StatusBadRequest, "name must not be empty")
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.WebsiteURL != nil {
		project.WebsiteURL = *req.WebsiteURL
	}
	if req.RepoRef != nil {
		project.RepoRef = *req.RepoRef
	}
	if req.Platform != nil {
		project.Platform = *req.Platform
	}
	if req.Status != nil {
		status, err := model.ParseStatus(*req.Status)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		project.Status = status
	}

	if err := s.store.UpdateProject(ctx, *project); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "project not found")
		}
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	s.dispatcher.Notify(project.ID, prevStatus, project.Status)

	project.UpdatedAt = time.Now().UTC()
	return c.JSON(http.StatusOK, project)
}

// handleDeleteProject removes a project and its checklist and changelog
func (s *Server) handleDeleteProject(c echo.Context) error {
	if err := s.store.DeleteProject(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "project not found")
		}
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	return c.NoContent(http.StatusNoContent)
}
