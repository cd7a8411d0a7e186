package app

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"bmitracker/internal/domain"
)

const (
	reportBanner  = "================================================"
	reportDivider = "------------------------------------------------"
)

// ReportFilename builds the export file name: every character outside
// [A-Za-z0-9] becomes '_' and "_Report.txt" is appended.
func ReportFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String() + "_Report.txt"
}

// RenderReport produces the plain-text user report.
func RenderReport(p domain.Profile, records []domain.Measurement, st domain.Statistics, generatedAt time.Time) []byte {
	var buf bytes.Buffer
	line := func(format string, args ...any) {
		fmt.Fprintf(&buf, format, args...)
		buf.WriteByte('\n')
	}

	line(reportBanner)
	line("        BMI TRACKER - USER REPORT")
	line(reportBanner)
	line("")

	line("User Information:")
	line("  Name: %s", p.Name)
	line("  Age: %d", p.Age)
	line("  Gender: %s", p.Gender)
	memberSince := ""
	if !p.CreatedAt.IsZero() {
		memberSince = p.CreatedAt.Format(domain.TimestampLayout)
	}
	line("  Member Since: %s", memberSince)
	line("")

	line("Statistics:")
	line("  Total Records: %d", st.TotalRecords)
	line("  Average BMI: %.2f", st.AvgBMI)
	line("  BMI Range: %.2f - %.2f", st.MinBMI, st.MaxBMI)
	line("  Weight Range: %.1f - %.1f kg", st.MinWeight, st.MaxWeight)
	line("")

	line("BMI Records History:")
	line(reportDivider)
	for i, r := range records {
		line("Record #%d", i+1)
		line("  Date: %s", r.Timestamp.Format(domain.TimestampLayout))
		line("  Weight: %s kg", domain.FormatDecimal(r.WeightKg))
		line("  Height: %s cm", domain.FormatDecimal(r.HeightCm))
		line("  BMI: %.2f", r.BMI)
		line("  Category: %s", r.Category)
		line(reportDivider)
	}

	line("")
	line("Report generated on: %s", generatedAt.Format(domain.TimestampLayout))
	return buf.Bytes()
}
