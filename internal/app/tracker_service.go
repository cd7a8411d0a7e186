// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bmitracker/internal/domain"
)

// ErrNothingToExport indicates that the user has no profile or no records.
var ErrNothingToExport = errors.New("no profile or records to export")

// SubmitInput is a validated-or-not measurement submission in metric units.
type SubmitInput struct {
	Name     string
	Age      int
	Gender   string
	WeightKg float64
	HeightCm float64
}

// SubmitResult is what the presentation layer renders after a submission.
type SubmitResult struct {
	Profile        domain.Profile     `json:"profile"`
	Measurement    domain.Measurement `json:"measurement"`
	Recommendation string             `json:"recommendation"`
}

// TrackerService encapsulates the BMI tracking use cases.
type TrackerService struct {
	profiles     domain.ProfileRepository
	measurements domain.MeasurementRepository
	reports      domain.ReportSink
	log          *slog.Logger
	now          func() time.Time
}

// NewTrackerService creates a TrackerService backed by the given repositories.
// A nil logger discards log output.
func NewTrackerService(pr domain.ProfileRepository, mr domain.MeasurementRepository, rs domain.ReportSink, logger *slog.Logger) *TrackerService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TrackerService{profiles: pr, measurements: mr, reports: rs, log: logger, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (s *TrackerService) WithClock(now func() time.Time) *TrackerService {
	s.now = now
	return s
}

// SubmitMeasurement validates the input, creates or updates the user's profile
// and appends a new measurement. Validation failures return a
// *domain.ValidationError and leave storage untouched.
func (s *TrackerService) SubmitMeasurement(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	name := strings.TrimSpace(in.Name)
	p, err := domain.NewProfile(name, in.Age, in.Gender)
	if err != nil {
		return nil, err
	}
	calc, err := domain.NewCalculator(p, in.WeightKg, in.HeightCm)
	if err != nil {
		return nil, err
	}

	now := s.now()
	saved, err := s.profiles.SaveProfile(ctx, p, now)
	if err != nil {
		s.log.Error("save profile failed", "user", name, "err", err)
		return nil, fmt.Errorf("save profile: %w", err)
	}
	m := calc.Snapshot(now)
	if err := s.measurements.AddMeasurement(ctx, name, m); err != nil {
		s.log.Error("save measurement failed", "user", name, "err", err)
		return nil, fmt.Errorf("save measurement: %w", err)
	}

	s.log.Info("measurement recorded", "user", name, "bmi", m.BMI, "category", m.Category.String())
	return &SubmitResult{
		Profile:        *saved,
		Measurement:    m,
		Recommendation: calc.Recommendation(),
	}, nil
}

// ListUsers returns the registered user names in registry order.
func (s *TrackerService) ListUsers(ctx context.Context) ([]string, error) {
	names, err := s.profiles.ListProfileNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// LoadProfile returns the stored profile, or nil when the user is unknown.
func (s *TrackerService) LoadProfile(ctx context.Context, name string) (*domain.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// History returns all of the user's measurements, oldest first.
func (s *TrackerService) History(ctx context.Context, name string) ([]domain.Measurement, error) {
	recs, err := s.measurements.ListMeasurements(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	if recs == nil {
		recs = []domain.Measurement{}
	}
	return recs, nil
}

// Statistics summarises the user's history, or returns nil when there are no
// records.
func (s *TrackerService) Statistics(ctx context.Context, name string) (*domain.Statistics, error) {
	recs, err := s.History(ctx, name)
	if err != nil {
		return nil, err
	}
	st, ok := domain.ComputeStatistics(recs)
	if !ok {
		return nil, nil
	}
	return &st, nil
}

// DeleteRecords removes the user's measurement history and keeps the profile.
// It reports false when there was nothing to delete.
func (s *TrackerService) DeleteRecords(ctx context.Context, name string) (bool, error) {
	deleted, err := s.measurements.DeleteMeasurements(ctx, name)
	if err != nil {
		s.log.Error("delete records failed", "user", name, "err", err)
		return false, fmt.Errorf("delete records: %w", err)
	}
	if deleted {
		s.log.Info("records deleted", "user", name)
	}
	return deleted, nil
}

// DeleteUser removes the profile and its history. It reports false when the
// user is not registered.
func (s *TrackerService) DeleteUser(ctx context.Context, name string) (bool, error) {
	found, err := s.profiles.DeleteProfile(ctx, name)
	if err != nil {
		s.log.Error("delete user failed", "user", name, "err", err)
		return false, fmt.Errorf("delete user: %w", err)
	}
	if found {
		s.log.Info("user deleted", "user", name)
	}
	return found, nil
}

// ExportReport renders the user's report and stores it through the report
// sink, returning its location. ErrNothingToExport is returned when the user
// has no profile or no records.
func (s *TrackerService) ExportReport(ctx context.Context, name string) (string, error) {
	p, err := s.LoadProfile(ctx, name)
	if err != nil {
		return "", err
	}
	recs, err := s.History(ctx, name)
	if err != nil {
		return "", err
	}
	st, ok := domain.ComputeStatistics(recs)
	if p == nil || !ok {
		return "", ErrNothingToExport
	}

	body := RenderReport(*p, recs, st, s.now())
	loc, err := s.reports.SaveReport(ctx, ReportFilename(name), body)
	if err != nil {
		s.log.Error("export failed", "user", name, "err", err)
		return "", fmt.Errorf("export report: %w", err)
	}
	s.log.Info("report exported", "user", name, "location", loc)
	return loc, nil
}
