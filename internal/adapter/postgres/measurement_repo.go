package postgres

import (
	"context"
	"fmt"
	"time"

	"bmitracker/internal/domain"
)

// AddMeasurement inserts a new measurement row.
func (d *DB) AddMeasurement(ctx context.Context, name string, m domain.Measurement) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO measurements(name, recorded_at, weight_kg, height_cm, bmi, category) VALUES($1, $2, $3, $4, $5, $6);`,
		name, m.Timestamp.UTC(), m.WeightKg, m.HeightCm, m.BMI, m.Category.String(),
	)
	return err
}

// ListMeasurements returns the user's measurements in insertion order.
func (d *DB) ListMeasurements(ctx context.Context, name string) ([]domain.Measurement, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT recorded_at, weight_kg, height_cm, bmi, category FROM measurements WHERE name = $1 ORDER BY id;`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Measurement{}
	for rows.Next() {
		var m domain.Measurement
		var label string
		if err := rows.Scan(&m.Timestamp, &m.WeightKg, &m.HeightCm, &m.BMI, &label); err != nil {
			return nil, err
		}
		cat, ok := domain.ParseCategory(label)
		if !ok {
			return nil, fmt.Errorf("measurement for %q: unknown category %q", name, label)
		}
		m.Timestamp = m.Timestamp.In(time.Local)
		m.Category = cat
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMeasurements removes all of the user's measurements.
func (d *DB) DeleteMeasurements(ctx context.Context, name string) (bool, error) {
	res, err := d.sql.ExecContext(ctx, `DELETE FROM measurements WHERE name = $1;`, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SaveReport stores the report body keyed by file name, replacing an older
// export of the same name. The returned location is the file name.
func (d *DB) SaveReport(ctx context.Context, filename string, body []byte) (string, error) {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO reports(filename, body, created_at) VALUES($1, $2, $3)
		 ON CONFLICT (filename) DO UPDATE SET body = EXCLUDED.body, created_at = EXCLUDED.created_at;`,
		filename, body, time.Now().UTC(),
	)
	if err != nil {
		return "", err
	}
	return filename, nil
}
