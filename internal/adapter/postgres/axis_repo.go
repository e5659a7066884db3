package postgres

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
		a    domain.Axis
		unit sql.NullString
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Kind, &a.Factor, &a.Constant, &unit, &a.CreatedAt); err != nil {
		return domain.Axis{}, err
	}
	if unit.Valid {
		a.Unit = &unit.String
	}
	return a, nil
}

// CreateAxis inserts a new axis.
func (d *DB) CreateAxis(ctx context.Context, axis domain.Axis) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO axes(user_id, name, kind, factor, constant, unit, created_at) VALUES($1, $2, $3, $4, $5, $6, $7) RETURNING id;",
		axis.UserID, axis.Name, string(axis.Kind), axis.Factor, axis.Constant, axis.Unit, axis.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, mapErr(err)
	}
	return id, nil
}

// GetAxis returns one of the user's axes.
func (d *DB) GetAxis(ctx context.Context, userID, id int64) (*domain.Axis, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+axisColumns+" FROM axes WHERE id = $1 AND user_id = $2;", id, userID)
	a, err := scanAxis(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

// ListAxes returns the user's newest axes up to limit.
func (d *DB) ListAxes(ctx context.Context, userID int64, limit int) ([]domain.Axis, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+axisColumns+" FROM axes WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2;",
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
func (d *DB) DeleteAxis(ctx context.Context, userID, id int64) error {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM axes WHERE id = $1 AND user_id = $2;", id, userID)
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
