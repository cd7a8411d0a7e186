package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bmitracker/internal/adapter/filestore"
	"bmitracker/internal/adapter/memory"
	"bmitracker/internal/app"
	"bmitracker/internal/domain"
)

type mockProfileRepo struct {
	saveFn   func(ctx context.Context, p domain.Profile, now time.Time) (*domain.Profile, error)
	getFn    func(ctx context.Context, name string) (*domain.Profile, error)
	listFn   func(ctx context.Context) ([]string, error)
	deleteFn func(ctx context.Context, name string) (bool, error)
}

func (m *mockProfileRepo) SaveProfile(ctx context.Context, p domain.Profile, now time.Time) (*domain.Profile, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, p, now)
	}
	p.CreatedAt = now
	return &p, nil
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, name string) (*domain.Profile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, name)
	}
	return nil, nil
}

func (m *mockProfileRepo) ListProfileNames(ctx context.Context) ([]string, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockProfileRepo) DeleteProfile(ctx context.Context, name string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, name)
	}
	return false, nil
}

type mockMeasurementRepo struct {
	addFn    func(ctx context.Context, name string, m domain.Measurement) error
	listFn   func(ctx context.Context, name string) ([]domain.Measurement, error)
	deleteFn func(ctx context.Context, name string) (bool, error)
}

func (m *mockMeasurementRepo) AddMeasurement(ctx context.Context, name string, meas domain.Measurement) error {
	if m.addFn != nil {
		return m.addFn(ctx, name, meas)
	}
	return nil
}

func (m *mockMeasurementRepo) ListMeasurements(ctx context.Context, name string) ([]domain.Measurement, error) {
	if m.listFn != nil {
		return m.listFn(ctx, name)
	}
	return nil, nil
}

func (m *mockMeasurementRepo) DeleteMeasurements(ctx context.Context, name string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, name)
	}
	return false, nil
}

type mockReportSink struct {
	saveFn func(ctx context.Context, filename string, body []byte) (string, error)
}

func (m *mockReportSink) SaveReport(ctx context.Context, filename string, body []byte) (string, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, filename, body)
	}
	return filename, nil
}

func fixedClock() time.Time {
	return time.Date(2026, 2, 3, 4, 5, 6, 0, time.Local)
}

func TestSubmitMeasurement_ValidationLeavesStorageUntouched(t *testing.T) {
	calls := 0
	pr := &mockProfileRepo{saveFn: func(context.Context, domain.Profile, time.Time) (*domain.Profile, error) {
		calls++
		return nil, nil
	}}
	mr := &mockMeasurementRepo{addFn: func(context.Context, string, domain.Measurement) error {
		calls++
		return nil
	}}
	svc := app.NewTrackerService(pr, mr, &mockReportSink{}, nil)

	tests := []struct {
		name string
		in   app.SubmitInput
		msg  string
	}{
		{"empty name", app.SubmitInput{Name: "  ", Age: 30, WeightKg: 70, HeightCm: 175}, "Please enter your name"},
		{"pipe in name", app.SubmitInput{Name: "a|b", Age: 30, WeightKg: 70, HeightCm: 175}, "Name must not contain '|' or line breaks"},
		{"age zero", app.SubmitInput{Name: "Alex", Age: 0, WeightKg: 70, HeightCm: 175}, "Please enter valid age (1-150)"},
		{"age too high", app.SubmitInput{Name: "Alex", Age: 151, WeightKg: 70, HeightCm: 175}, "Please enter valid age (1-150)"},
		{"weight zero", app.SubmitInput{Name: "Alex", Age: 30, WeightKg: 0, HeightCm: 175}, "Please enter valid weight (0-500 kg)"},
		{"weight too high", app.SubmitInput{Name: "Alex", Age: 30, WeightKg: 500.1, HeightCm: 175}, "Please enter valid weight (0-500 kg)"},
		{"height negative", app.SubmitInput{Name: "Alex", Age: 30, WeightKg: 70, HeightCm: -1}, "Please enter valid height (0-300 cm)"},
		{"height too high", app.SubmitInput{Name: "Alex", Age: 30, WeightKg: 70, HeightCm: 301}, "Please enter valid height (0-300 cm)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SubmitMeasurement(context.Background(), tc.in)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Equal(t, tc.msg, err.Error())
		})
	}
	assert.Zero(t, calls, "storage must not be touched on invalid input")
}

func TestSubmitMeasurement_Success(t *testing.T) {
	var saved domain.Measurement
	var savedFor string
	mr := &mockMeasurementRepo{addFn: func(_ context.Context, name string, m domain.Measurement) error {
		savedFor, saved = name, m
		return nil
	}}
	svc := app.NewTrackerService(&mockProfileRepo{}, mr, &mockReportSink{}, nil).WithClock(fixedClock)

	res, err := svc.SubmitMeasurement(context.Background(), app.SubmitInput{
		Name: " Alex ", Age: 30, Gender: "Male", WeightKg: 70, HeightCm: 175,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alex", savedFor)
	assert.Equal(t, 22.86, res.Measurement.BMI)
	assert.Equal(t, domain.NormalWeight, res.Measurement.Category)
	assert.Equal(t, domain.Recommendation(domain.NormalWeight), res.Recommendation)
	assert.Equal(t, fixedClock(), saved.Timestamp)
	assert.Equal(t, fixedClock(), res.Profile.CreatedAt)
}

func TestSubmitMeasurement_RepoErrors(t *testing.T) {
	boom := errors.New("disk full")
	in := app.SubmitInput{Name: "Alex", Age: 30, WeightKg: 70, HeightCm: 175}

	t.Run("profile", func(t *testing.T) {
		added := false
		pr := &mockProfileRepo{saveFn: func(context.Context, domain.Profile, time.Time) (*domain.Profile, error) {
			return nil, boom
		}}
		mr := &mockMeasurementRepo{addFn: func(context.Context, string, domain.Measurement) error {
			added = true
			return nil
		}}
		_, err := app.NewTrackerService(pr, mr, &mockReportSink{}, nil).SubmitMeasurement(context.Background(), in)
		require.ErrorIs(t, err, boom)
		assert.False(t, added)
	})

	t.Run("measurement", func(t *testing.T) {
		mr := &mockMeasurementRepo{addFn: func(context.Context, string, domain.Measurement) error {
			return boom
		}}
		_, err := app.NewTrackerService(&mockProfileRepo{}, mr, &mockReportSink{}, nil).SubmitMeasurement(context.Background(), in)
		require.ErrorIs(t, err, boom)
		assert.False(t, domain.IsValidation(err))
	})
}

func TestListUsersAndHistory_NeverNil(t *testing.T) {
	svc := app.NewTrackerService(&mockProfileRepo{}, &mockMeasurementRepo{}, &mockReportSink{}, nil)
	ctx := context.Background()

	names, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, names)

	recs, err := svc.History(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, recs)

	st, err := svc.Statistics(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestDeleteUser_PropagatesErrors(t *testing.T) {
	boom := errors.New("permission denied")
	pr := &mockProfileRepo{deleteFn: func(context.Context, string) (bool, error) { return false, boom }}
	svc := app.NewTrackerService(pr, &mockMeasurementRepo{}, &mockReportSink{}, nil)

	found, err := svc.DeleteUser(context.Background(), "Alex")
	require.ErrorIs(t, err, boom)
	assert.False(t, found)
}

func TestExportReport_NothingToExport(t *testing.T) {
	profile := &domain.Profile{Name: "Alex", Age: 30, Gender: "Male"}
	m, _ := domain.NewMeasurement(70, 175, fixedClock())

	tests := []struct {
		name    string
		profile *domain.Profile
		records []domain.Measurement
	}{
		{"no profile", nil, []domain.Measurement{m}},
		{"no records", profile, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pr := &mockProfileRepo{getFn: func(context.Context, string) (*domain.Profile, error) { return tc.profile, nil }}
			mr := &mockMeasurementRepo{listFn: func(context.Context, string) ([]domain.Measurement, error) { return tc.records, nil }}
			sink := &mockReportSink{saveFn: func(context.Context, string, []byte) (string, error) {
				t.Fatal("report must not be written")
				return "", nil
			}}
			_, err := app.NewTrackerService(pr, mr, sink, nil).ExportReport(context.Background(), "Alex")
			assert.ErrorIs(t, err, app.ErrNothingToExport)
		})
	}
}

func TestExportReport_WritesSanitizedFile(t *testing.T) {
	profile := &domain.Profile{Name: "Mary Jane", Age: 28, Gender: "Female", CreatedAt: fixedClock()}
	m, _ := domain.NewMeasurement(60, 165, fixedClock())
	var gotName string
	var gotBody []byte
	pr := &mockProfileRepo{getFn: func(context.Context, string) (*domain.Profile, error) { return profile, nil }}
	mr := &mockMeasurementRepo{listFn: func(context.Context, string) ([]domain.Measurement, error) {
		return []domain.Measurement{m}, nil
	}}
	sink := &mockReportSink{saveFn: func(_ context.Context, name string, body []byte) (string, error) {
		gotName, gotBody = name, body
		return "/data/" + name, nil
	}}

	loc, err := app.NewTrackerService(pr, mr, sink, nil).WithClock(fixedClock).ExportReport(context.Background(), "Mary Jane")
	require.NoError(t, err)
	assert.Equal(t, "Mary_Jane_Report.txt", gotName)
	assert.Equal(t, "/data/Mary_Jane_Report.txt", loc)
	assert.Contains(t, string(gotBody), "  Name: Mary Jane\n")
}

// Full flow on the in-memory backend.
func TestTracker_EndToEnd(t *testing.T) {
	db := memory.New()
	svc := app.NewTrackerService(db, db, db, nil)
	ctx := context.Background()

	res, err := svc.SubmitMeasurement(ctx, app.SubmitInput{Name: "Alex", Age: 30, Gender: "Male", WeightKg: 70, HeightCm: 175})
	require.NoError(t, err)
	assert.Equal(t, 22.86, res.Measurement.BMI)
	assert.Equal(t, "Normal weight", res.Measurement.Category.String())

	res, err = svc.SubmitMeasurement(ctx, app.SubmitInput{Name: "Alex", Age: 30, Gender: "Male", WeightKg: 95, HeightCm: 175})
	require.NoError(t, err)
	assert.Equal(t, 31.02, res.Measurement.BMI)
	assert.Equal(t, "Obese", res.Measurement.Category.String())

	st, err := svc.Statistics(ctx, "Alex")
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, 2, st.TotalRecords)
	assert.InDelta(t, 26.94, st.AvgBMI, 0.005)
	assert.Equal(t, 22.86, st.MinBMI)
	assert.Equal(t, 31.02, st.MaxBMI)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alex"}, users)

	loc, err := svc.ExportReport(ctx, "Alex")
	require.NoError(t, err)
	body, ok := db.Report(loc)
	require.True(t, ok)
	assert.Contains(t, string(body), "  Total Records: 2\n")

	deleted, err := svc.DeleteRecords(ctx, "Alex")
	require.NoError(t, err)
	assert.True(t, deleted)
	p, err := svc.LoadProfile(ctx, "Alex")
	require.NoError(t, err)
	assert.NotNil(t, p)

	found, err := svc.DeleteUser(ctx, "Alex")
	require.NoError(t, err)
	assert.True(t, found)
	users, _ = svc.ListUsers(ctx)
	assert.Empty(t, users)
	hist, _ := svc.History(ctx, "Alex")
	assert.Empty(t, hist)
}

func TestExportReport_UnreadableCreatedAtLeftBlank(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.txt"), []byte("Alex|30|Male|2024-01-01\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Alex_records.txt"),
		[]byte("01/01/2024 10:00:00|70.0|175.0|22.86|Normal weight\n"), 0o644))
	store := filestore.New(dir, nil)
	svc := app.NewTrackerService(store, store, store, nil)

	loc, err := svc.ExportReport(context.Background(), "Alex")
	require.NoError(t, err)
	body, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Contains(t, string(body), "  Member Since: \n")
	assert.NotContains(t, string(body), "01/01/0001")
}
