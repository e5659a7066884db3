package sqlite

import (
	"context"
	"database/sql"

	"axisconv/internal/domain"
)

const axisColumns = "id, user_id, name, kind, factor, constant, unit, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAxis(row rowScanner) (domain.Axis, error) {
	var (
		a         domain.Axis
		kind      string
		unit      sql.NullString
		createdAt int64
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &kind, &a.Factor, &a.Constant, &unit, &createdAt); err != nil {
		return domain.Axis{}, err
	}
	a.Kind = domain.Kind(kind)
	if unit.Valid {
		a.Unit = &unit.String
	}
	a.CreatedAt = fromMillis(createdAt)
	return a, nil
}

// CreateAxis inserts a new axis.
func (s *Store) CreateAxis(ctx context.Context, axis domain.Axis) (int64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var unit sql.NullString
	if axis.Unit != nil {
		unit = sql.NullString{String: *axis.Unit, Valid: true}
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO axes (user_id, name, kind, factor, constant, unit, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		axis.UserID, axis.Name, string(axis.Kind), axis.Factor, axis.Constant, unit, toMillis(axis.CreatedAt),
	)
	if err != nil {
		return 0, mapErr(err)
	}
	return res.LastInsertId()
}

// GetAxis returns one of the user's axes.
func (s *Store) GetAxis(ctx context.Context, userID, id int64) (*domain.Axis, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT "+axisColumns+" FROM axes WHERE id = ? AND user_id = ?", id, userID)
	a, err := scanAxis(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

// ListAxes returns the user's newest axes up to limit.
func (s *Store) ListAxes(ctx context.Context, userID int64, limit int) ([]domain.Axis, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT "+axisColumns+" FROM axes WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Axis, 0, limit)
	for rows.Next() {
		a, err := scanAxis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteAxis removes one of the user's axes.
func (s *Store) DeleteAxis(ctx context.Context, userID, id int64) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, "DELETE FROM axes WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
