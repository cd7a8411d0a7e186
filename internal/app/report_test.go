package app_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bmitracker/internal/app"
	"bmitracker/internal/domain"
)

func TestReportFilename(t *testing.T) {
	tests := map[string]string{
		"Alex":         "Alex_Report.txt",
		"Mary Jane":    "Mary_Jane_Report.txt",
		"o'neil-2":     "o_neil_2_Report.txt",
		"José":         "Jos__Report.txt",
		"already_safe": "already_safe_Report.txt",
	}
	for name, want := range tests {
		assert.Equal(t, want, app.ReportFilename(name), name)
	}
}

func TestRenderReport(t *testing.T) {
	created := time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local)
	p := domain.Profile{Name: "Alex", Age: 30, Gender: "Male", CreatedAt: created}
	m1, _ := domain.NewMeasurement(70, 175, created)
	m2, _ := domain.NewMeasurement(95, 175, created.Add(24*time.Hour))
	recs := []domain.Measurement{m1, m2}
	st, _ := domain.ComputeStatistics(recs)

	got := string(app.RenderReport(p, recs, st, created.Add(48*time.Hour)))

	want := "================================================\n" +
		"        BMI TRACKER - USER REPORT\n" +
		"================================================\n" +
		"\n" +
		"User Information:\n" +
		"  Name: Alex\n" +
		"  Age: 30\n" +
		"  Gender: Male\n" +
		"  Member Since: 05/01/2026 09:00:00\n" +
		"\n" +
		"Statistics:\n" +
		"  Total Records: 2\n" +
		"  Average BMI: 26.94\n" +
		"  BMI Range: 22.86 - 31.02\n" +
		"  Weight Range: 70.0 - 95.0 kg\n" +
		"\n" +
		"BMI Records History:\n" +
		"------------------------------------------------\n" +
		"Record #1\n" +
		"  Date: 05/01/2026 09:00:00\n" +
		"  Weight: 70.0 kg\n" +
		"  Height: 175.0 cm\n" +
		"  BMI: 22.86\n" +
		"  Category: Normal weight\n" +
		"------------------------------------------------\n" +
		"Record #2\n" +
		"  Date: 06/01/2026 09:00:00\n" +
		"  Weight: 95.0 kg\n" +
		"  Height: 175.0 cm\n" +
		"  BMI: 31.02\n" +
		"  Category: Obese\n" +
		"------------------------------------------------\n" +
		"\n" +
		"Report generated on: 07/01/2026 09:00:00\n"
	assert.Equal(t, want, got)
}

func TestRenderReport_UnknownMemberSince(t *testing.T) {
	p := domain.Profile{Name: "Alex", Age: 30, Gender: "Male"}
	m, _ := domain.NewMeasurement(70, 175, time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local))
	st, _ := domain.ComputeStatistics([]domain.Measurement{m})

	got := string(app.RenderReport(p, []domain.Measurement{m}, st, time.Now()))
	assert.Contains(t, got, "  Member Since: \n")
	assert.NotContains(t, got, "01/01/0001")
}
