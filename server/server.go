package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/generate"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/logger"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/store"
)

// Server is the dashboard API server
type Server struct {
	store      store.Store
	generator  *generate.Generator
	dispatcher *generate.Dispatcher
	echo       *echo.Echo
}

// New creates a new server
func New(st store.Store, gen *generate.Generator, disp *generate.Dispatcher) *Server {
	s := &Server{
		store:      st,
		generator:  gen,
		dispatcher: disp,
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Custom logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")

	// Auth endpoints (public)
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)

	// Protected endpoints
	protected := api.Group("")
	protected.Use(s.authMiddleware)

	protected.GET("/projects", s.handleListProjects)
	protected.POST("/projects", s.handleCreateProject)
	protected.GET("/projects/:id", s.handleGetProject)
	protected.PATCH("/projects/:id", s.handleUpdateProject)
	protected.DELETE("/projects/:id", s.handleDeleteProject)

	protected.GET("/projects/:id/checklist", s.handleListChecklist)
	protected.POST("/projects/:id/checklist", s.handleAddChecklistItem)
	protected.POST("/checklist/:id/toggle", s.handleToggleChecklistItem)
	protected.DELETE("/checklist/:id", s.handleDeleteChecklistItem)
	protected.PUT("/checklist/:id/draft", s.handleSaveChecklistDraft)

	protected.GET("/projects/:id/changelog", s.handleListChangeLog)
	protected.POST("/projects/:id/notes", s.handleAddNote)

	protected.POST("/generate", s.handleGenerate)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// errorJSON writes the {message} error body used by the CRUD endpoints
func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"message": message})
}
