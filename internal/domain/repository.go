package domain

import (
	"context"
	"time"
)

// ProfileRepository is the port for the user registry.
type ProfileRepository interface {
	// SaveProfile inserts the profile or updates age and gender of an existing
	// one. An existing CreatedAt is preserved; a new profile gets now.
	SaveProfile(ctx context.Context, p Profile, now time.Time) (*Profile, error)
	// GetProfile returns nil, nil when the user is unknown.
	GetProfile(ctx context.Context, name string) (*Profile, error)
	// ListProfileNames returns names in registry order.
	ListProfileNames(ctx context.Context) ([]string, error)
	// DeleteProfile removes the registry entry and the user's measurements.
	// It reports false when the user was not registered.
	DeleteProfile(ctx context.Context, name string) (bool, error)
}

// MeasurementRepository is the port for per-user measurement history.
type MeasurementRepository interface {
	AddMeasurement(ctx context.Context, name string, m Measurement) error
	// ListMeasurements returns every measurement, oldest first. Unknown users
	// yield an empty slice.
	ListMeasurements(ctx context.Context, name string) ([]Measurement, error)
	// DeleteMeasurements removes the history and reports whether any existed.
	DeleteMeasurements(ctx context.Context, name string) (bool, error)
}

// ReportSink stores an exported report and returns where it was written.
type ReportSink interface {
	SaveReport(ctx context.Context, filename string, body []byte) (string, error)
}

// Store bundles the repositories a storage backend provides.
type Store interface {
	ProfileRepository
	MeasurementRepository
	ReportSink
}
