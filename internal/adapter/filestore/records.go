package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"bmitracker/internal/domain"
)

const recordFields = 5

func formatRecord(m domain.Measurement) string {
	return joinFields(
		m.Timestamp.Format(domain.TimestampLayout),
		domain.FormatDecimal(m.WeightKg),
		domain.FormatDecimal(m.HeightCm),
		domain.FormatDecimal(m.BMI),
		m.Category.String(),
	)
}

func parseRecord(line string) (domain.Measurement, error) {
	parts := splitFields(line)
	if len(parts) < recordFields {
		return domain.Measurement{}, fmt.Errorf("want %d fields, got %d", recordFields, len(parts))
	}
	ts, err := time.ParseInLocation(domain.TimestampLayout, parts[0], time.Local)
	if err != nil {
		return domain.Measurement{}, err
	}
	var nums [3]float64
	for i := range nums {
		if nums[i], err = strconv.ParseFloat(parts[i+1], 64); err != nil {
			return domain.Measurement{}, err
		}
	}
	cat, ok := domain.ParseCategory(parts[4])
	if !ok {
		return domain.Measurement{}, fmt.Errorf("unknown category %q", parts[4])
	}
	return domain.Measurement{
		Timestamp: ts,
		WeightKg:  nums[0],
		HeightCm:  nums[1],
		BMI:       nums[2],
		Category:  cat,
	}, nil
}

// AddMeasurement appends one line to the user's records file.
func (s *Store) AddMeasurement(ctx context.Context, name string, m domain.Measurement) error {
	path, err := s.recordsPath(name)
	if err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open records: %w", err)
	}
	if _, err := f.WriteString(formatRecord(m) + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("append record: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close records: %w", err)
	}
	s.log.Debug("record saved", "user", name)
	return nil
}

// ListMeasurements reads the user's records in file order. Malformed lines
// are skipped; a missing file or unusable name reads as no records.
func (s *Store) ListMeasurements(ctx context.Context, name string) ([]domain.Measurement, error) {
	path, err := s.recordsPath(name)
	if err != nil {
		return []domain.Measurement{}, nil
	}
	lines, err := readLines(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	out := make([]domain.Measurement, 0, len(lines))
	for i, l := range lines {
		m, err := parseRecord(l)
		if err != nil {
			s.log.Debug("skipping malformed record", "user", name, "line", i+1, "err", err)
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// DeleteMeasurements removes the user's records file. It returns false when
// there was no file.
func (s *Store) DeleteMeasurements(ctx context.Context, name string) (bool, error) {
	path, err := s.recordsPath(name)
	if err != nil {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("delete records: %w", err)
	}
	return true, nil
}

// SaveReport writes an exported report into the data directory and returns
// its path.
func (s *Store) SaveReport(ctx context.Context, filename string, body []byte) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", err
	}
	path, err := s.reportPath(filename)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
