// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"axisconv/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	axes     []domain.Axis
	users    []*domain.User
	sessions map[string]domain.Session

	axisIDCounter int64
	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]domain.Session),
	}
}

// Ensure interfaces are met.
var (
	_ domain.AxisRepository    = (*DB)(nil)
	_ domain.UserRepository    = (*DB)(nil)
	_ domain.SessionRepository = (*DB)(nil)
)

// --- AxisRepository ---

// CreateAxis stores an axis. Names are unique per user.
func (db *DB) CreateAxis(ctx context.Context, axis domain.Axis) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.axes {
		if a.UserID == axis.UserID && a.Name == axis.Name {
			return 0, domain.ErrConflict
		}
	}

	db.axisIDCounter++
	axis.ID = db.axisIDCounter
	axis.CreatedAt = axis.CreatedAt.UTC()
	db.axes = append(db.axes, cloneAxis(axis))
	return axis.ID, nil
}

// GetAxis returns one of the user's axes.
func (db *DB) GetAxis(ctx context.Context, userID, id int64) (*domain.Axis, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.axes {
		if a.ID == id && a.UserID == userID {
			cp := cloneAxis(a)
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListAxes returns the user's newest axes first.
func (db *DB) ListAxes(ctx context.Context, userID int64, limit int) ([]domain.Axis, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Axis, 0)
	for _, a := range db.axes {
		if a.UserID == userID {
			result = append(result, cloneAxis(a))
		}
	}

	// IDs are monotonic, so they break ties between equal timestamps.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// DeleteAxis removes one of the user's axes.
func (db *DB) DeleteAxis(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, a := range db.axes {
		if a.ID == id && a.UserID == userID {
			db.axes = append(db.axes[:i], db.axes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func cloneAxis(a domain.Axis) domain.Axis {
	if a.Unit != nil {
		u := *a.Unit
		a.Unit = &u
	}
	return a
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, domain.ErrConflict
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	cp := *u
	return &cp, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// CreateSession stores a session.
func (db *DB) CreateSession(ctx context.Context, s domain.Session) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.sessions[s.Token]; ok {
		return domain.ErrConflict
	}
	db.sessions[s.Token] = s
	return nil
}

// GetSession retrieves a session by token.
func (db *DB) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	s, ok := db.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

// DeleteSession deletes a session.
func (db *DB) DeleteSession(ctx context.Context, token string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.sessions, token)
	return nil
}

// DeleteExpiredSessions deletes all sessions that expired before now.
func (db *DB) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for k, v := range db.sessions {
		if now.After(v.ExpiresAt) {
			delete(db.sessions, k)
		}
	}
	return nil
}
