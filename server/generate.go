package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/store"
)

type generateRequest struct {
	ProjectID string `json:"project_id"`
}

type generateResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// handleGenerate runs the generation pipeline synchronously for one
// project. This is the manual re-trigger used when the automatic run
// failed and the project sits in prep_launch with no items.
func (s *Server) handleGenerate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.ProjectID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "project_id is required"})
	}

	count, err := s.generator.Generate(c.Request().Context(), req.ProjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "project not found"})
		}
		c.Logger().Error("generation error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, generateResponse{Success: true, Count: count})
}
