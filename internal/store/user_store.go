package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
)

// CreateUser inserts a new user
func (s *SQLStore) CreateUser(ctx context.Context, u model.User) error {
	query := s.db.Rebind(`
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// GetUserByUsername fetches a user by username
func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	query := s.db.Rebind(`SELECT * FROM users WHERE username = ?`)
	if err := s.db.GetContext(ctx, &u, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting user %s: %w", username, err)
	}
	return &u, nil
}

// CreateSession inserts a new session
func (s *SQLStore) CreateSession(ctx context.Context, sess model.Session) error {
	query := s.db.Rebind(`
		INSERT INTO sessions (id, user_id, token, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, sess.ID, sess.UserID, sess.Token, sess.ExpiresAt, sess.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	return nil
}

// GetSessionByToken fetches a session by its bearer token
func (s *SQLStore) GetSessionByToken(ctx context.Context, token string) (*model.Session, error) {
	var sess model.Session
	query := s.db.Rebind(`SELECT * FROM sessions WHERE token = ?`)
	if err := s.db.GetContext(ctx, &sess, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return &sess, nil
}
