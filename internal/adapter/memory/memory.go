// Package memory implements an in-memory store. Records live as long as the
// process, which makes it the backend of the interactive shell and of tests.
package memory

import (
	"context"
	"sync"
	"time"

	"bmitracker/internal/domain"
)

// DB implements in-memory storage of profiles, histories and reports.
type DB struct {
	mu       sync.Mutex
	order    []string
	profiles map[string]domain.Profile
	records  map[string]*domain.RecordStore
	reports  map[string][]byte
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		profiles: make(map[string]domain.Profile),
		records:  make(map[string]*domain.RecordStore),
		reports:  make(map[string][]byte),
	}
}

// Ensure interfaces are met.
var _ domain.Store = (*DB)(nil)

// --- ProfileRepository ---

// SaveProfile inserts or updates a profile, keeping the original CreatedAt.
func (db *DB) SaveProfile(ctx context.Context, p domain.Profile, now time.Time) (*domain.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if existing, ok := db.profiles[p.Name]; ok {
		p.CreatedAt = existing.CreatedAt
	} else {
		p.CreatedAt = now.Truncate(time.Second)
		db.order = append(db.order, p.Name)
	}
	db.profiles[p.Name] = p
	return &p, nil
}

// GetProfile returns the profile or nil if it does not exist.
func (db *DB) GetProfile(ctx context.Context, name string) (*domain.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if p, ok := db.profiles[name]; ok {
		return &p, nil
	}
	return nil, nil
}

// ListProfileNames returns names in registration order.
func (db *DB) ListProfileNames(ctx context.Context) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]string, len(db.order))
	copy(out, db.order)
	return out, nil
}

// DeleteProfile removes the profile and its history.
func (db *DB) DeleteProfile(ctx context.Context, name string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.profiles[name]; !ok {
		return false, nil
	}
	delete(db.profiles, name)
	delete(db.records, name)
	for i, n := range db.order {
		if n == name {
			db.order = append(db.order[:i], db.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// --- MeasurementRepository ---

// AddMeasurement appends to the user's history.
func (db *DB) AddMeasurement(ctx context.Context, name string, m domain.Measurement) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	rs, ok := db.records[name]
	if !ok {
		rs = domain.NewRecordStore(name)
		db.records[name] = rs
	}
	rs.AppendMeasurement(m)
	return nil
}

// ListMeasurements returns a copy of the user's history, oldest first.
func (db *DB) ListMeasurements(ctx context.Context, name string) ([]domain.Measurement, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rs, ok := db.records[name]
	if !ok {
		return []domain.Measurement{}, nil
	}
	return rs.All(), nil
}

// DeleteMeasurements clears the user's history.
func (db *DB) DeleteMeasurements(ctx context.Context, name string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rs, ok := db.records[name]
	if !ok || rs.Count() == 0 {
		return false, nil
	}
	rs.Clear()
	delete(db.records, name)
	return true, nil
}

// --- ReportSink ---

// SaveReport keeps the report body under its file name.
func (db *DB) SaveReport(ctx context.Context, filename string, body []byte) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	b := make([]byte, len(body))
	copy(b, body)
	db.reports[filename] = b
	return filename, nil
}

// Report returns a previously saved report.
func (db *DB) Report(filename string) ([]byte, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()

	b, ok := db.reports[filename]
	return b, ok
}
