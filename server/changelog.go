package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/store"
)

const defaultChangeLogLimit = 20

type addNoteRequest struct {
	Message string `json:"message"`
}

// handleListChangeLog returns a project's changelog, most recent first
func (s *Server) handleListChangeLog(c echo.Context) error {
	projectID := c.Param("id")
	ctx := c.Request().Context()

	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "project not found")
		}
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	limit := defaultChangeLogLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return errorJSON(c, http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	entries, err := s.store.ListChangeLog(ctx, projectID, limit)
	if err != nil {
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, entries)
}

// handleAddNote records a manual changelog note
func (s *Server) handleAddNote(c echo.Context) error {
	projectID := c.Param("id")

	var req addNoteRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}
	if req.Message == "" {
		return errorJSON(c, http.StatusBadRequest, "message is required")
	}

	ctx := c.Request().Context()
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "project not found")
		}
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	entry, err := s.store.AddChangeLog(ctx, projectID, model.ProviderNote, req.Message)
	if err != nil {
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusCreated, entry)
}
