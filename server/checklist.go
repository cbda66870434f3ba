package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/store"
)

type addChecklistItemRequest struct {
	Title      string `json:"title"`
	AIHelpHint string `json:"ai_help_hint"`
}

type saveDraftRequest struct {
	Draft string `json:"draft"`
}

type checklistResponse struct {
	Items     []model.ChecklistItem `json:"items"`
	Total     int                   `json:"total"`
	Completed int                   `json:"completed"`
}

// checklistJSON builds the list + counts payload for a project
func (s *Server) checklistJSON(c echo.Context, projectID string) error {
	items, err := s.store.ListChecklist(c.Request().Context(), projectID)
	if err != nil {
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	completed := 0
	for _, item := range items {
		if item.IsComplete {
			completed++
		}
	}

	return c.JSON(http.StatusOK, checklistResponse{
		Items:     items,
		Total:     len(items),
		Completed: completed,
	})
}

// handleListChecklist returns a project's checklist with counts
func (s *Server) handleListChecklist(c echo.Context) error {
	projectID := c.Param("id")

	if _, err := s.store.GetProject(c.Request().Context(), projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "project not found")
		}
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	return s.checklistJSON(c, projectID)
}

// handleAddChecklistItem appends one item and returns the refreshed list
func (s *Server) handleAddChecklistItem(c echo.Context) error {
	projectID := c.Param("id")

	var req addChecklistItemRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}
	if req.Title == "" {
		return errorJSON(c, http.StatusBadRequest, "title is required")
	}

	ctx := c.Request().Context()
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "project not found")
		}
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	if _, err := s.store.AddChecklistItem(ctx, projectID, req.Title, req.AIHelpHint); err != nil {
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	return s.checklistJSON(c, projectID)
}

// handleToggleChecklistItem flips an item's completion flag
func (s *Server) handleToggleChecklistItem(c echo.Context) error {
	item, err := s.store.ToggleChecklistItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "checklist item not found")
		}
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, item)
}

// handleDeleteChecklistItem removes an item, re-compacts sibling order,
// and returns the refreshed list
func (s *Server) handleDeleteChecklistItem(c echo.Context) error {
	ctx := c.Request().Context()

	item, err := s.store.GetChecklistItem(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "checklist item not found")
		}
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	if err := s.store.DeleteChecklistItem(ctx, item.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "checklist item not found")
		}
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	return s.checklistJSON(c, item.ProjectID)
}

// handleSaveChecklistDraft overwrites an item's ai_help_hint
func (s *Server) handleSaveChecklistDraft(c echo.Context) error {
	var req saveDraftRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	item, err := s.store.SaveChecklistDraft(c.Request().Context(), c.Param("id"), req.Draft)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "checklist item not found")
		}
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, item)
}
