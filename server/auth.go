package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	UserID    string `json:"user_id"`
}

// handleRegister handles user registration
func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return errorJSON(c, http.StatusBadRequest, "username, email, and password required")
	}

	if len(req.Password) < 8 {
		return errorJSON(c, http.StatusBadRequest, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.Logger().Error("bcrypt error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	user := model.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateUser(c.Request().Context(), user); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return errorJSON(c, http.StatusConflict, "username or email already exists")
		}
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	token, expiresAt, err := s.createSession(c, user.ID)
	if err != nil {
		c.Logger().Error("session error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, authResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		UserID:    user.ID,
	})
}

// handleLogin handles user login
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	user, err := s.store.GetUserByUsername(c.Request().Context(), req.Username)
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return errorJSON(c, http.StatusUnauthorized, "invalid credentials")
	}

	token, expiresAt, err := s.createSession(c, user.ID)
	if err != nil {
		c.Logger().Error("session error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, authResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		UserID:    user.ID,
	})
}

// createSession creates a new session for a user
func (s *Server) createSession(c echo.Context, userID string) (string, time.Time, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", time.Time{}, err
	}
	token := hex.EncodeToString(tokenBytes)

	// Sessions expire in 30 days
	now := time.Now().UTC()
	expiresAt := now.Add(30 * 24 * time.Hour)

	err := s.store.CreateSession(c.Request().Context(), model.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	})

	return token, expiresAt, err
}
