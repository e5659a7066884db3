package sqlite

import (
	"context"
	"time"

	"axisconv/internal/domain"
)

func (s *Store) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	var (
		u         domain.User
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt)
	if err != nil {
		return nil, mapErr(err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return &u, nil
}

// GetByUsername retrieves a user by username.
func (s *Store) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.scanUser(ctx, "SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
}

// GetByID retrieves a user by ID.
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.scanUser(ctx, "SELECT id, username, password_hash, created_at FROM users WHERE id = ?", id)
}

// Create creates a new user.
func (s *Store) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	res, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		username, passwordHash, toMillis(now))
	if err != nil {
		return nil, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: fromMillis(toMillis(now))}, nil
}

// Count returns the total number of users.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var count int
	err := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// CreateSession stores a session.
func (s *Store) CreateSession(ctx context.Context, session domain.Session) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, user_agent, expires_at, created_at) VALUES (?, ?, ?, ?, ?)",
		session.Token, session.UserID, session.UserAgent, toMillis(session.ExpiresAt), toMillis(session.CreatedAt))
	return mapErr(err)
}

// GetSession retrieves a session by token.
func (s *Store) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	var (
		session              domain.Session
		expiresAt, createdAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT token, user_id, user_agent, expires_at, created_at FROM sessions WHERE token = ?", token,
	).Scan(&session.Token, &session.UserID, &session.UserAgent, &expiresAt, &createdAt)
	if err != nil {
		return nil, mapErr(err)
	}
	session.ExpiresAt = fromMillis(expiresAt)
	session.CreatedAt = fromMillis(createdAt)
	return &session, nil
}

// DeleteSession deletes a session by token.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	return err
}

// DeleteExpiredSessions deletes sessions that expired before now.
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < ?", toMillis(now))
	return err
}
