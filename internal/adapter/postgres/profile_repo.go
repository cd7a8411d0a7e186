package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bmitracker/internal/domain"
)

// SaveProfile upserts by name. created_at is only set on insert.
func (d *DB) SaveProfile(ctx context.Context, p domain.Profile, now time.Time) (*domain.Profile, error) {
	row := d.sql.QueryRowContext(ctx,
		`INSERT INTO profiles(name, age, gender, created_at) VALUES($1, $2, $3, $4)
		 ON CONFLICT (name) DO UPDATE SET age = EXCLUDED.age, gender = EXCLUDED.gender
		 RETURNING created_at;`,
		p.Name, p.Age, p.Gender, now.Truncate(time.Second).UTC(),
	)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.In(time.Local)
	return &p, nil
}

// GetProfile returns the profile or nil if it does not exist.
func (d *DB) GetProfile(ctx context.Context, name string) (*domain.Profile, error) {
	var p domain.Profile
	err := d.sql.QueryRowContext(ctx,
		`SELECT name, age, gender, created_at FROM profiles WHERE name = $1;`, name,
	).Scan(&p.Name, &p.Age, &p.Gender, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.In(time.Local)
	return &p, nil
}

// ListProfileNames returns names in registration order.
func (d *DB) ListProfileNames(ctx context.Context) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT name FROM profiles ORDER BY seq;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// DeleteProfile removes the profile and its measurements in one transaction.
func (d *DB) DeleteProfile(ctx context.Context, name string) (bool, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE name = $1;`, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM measurements WHERE name = $1;`, name); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}
