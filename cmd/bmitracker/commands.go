package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bmitracker/internal/app"
	"bmitracker/internal/domain"
)

const categoryGuide = `BMI Categories:
• Underweight: BMI < 18.5
• Normal weight: BMI 18.5 - 24.9
• Overweight: BMI 25 - 29.9
• Obese: BMI ≥ 30`

func (r *runner) printJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *runner) runSubmit(cmd *cobra.Command, args []string) error {
	units, err := domain.ParseUnits(r.units)
	if err != nil {
		return err
	}
	return r.withService(cmd.Context(), func(ctx context.Context, svc *app.TrackerService) error {
		in, err := app.ParseSubmission(args[0], args[1], args[2], args[3], args[4], units)
		if err != nil {
			var pe *domain.ParseError
			if errors.As(err, &pe) {
				r.log.Warn("rejected submission", "detail", pe.Detail())
			}
			return err
		}
		res, err := svc.SubmitMeasurement(ctx, in)
		if err != nil {
			return err
		}
		if r.asJSON {
			return r.printJSON(res)
		}
		m := res.Measurement
		fmt.Fprintln(r.out, "=== BMI Analysis ===")
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, res.Profile.String())
		fmt.Fprintf(r.out, "Weight: %s kg\n", domain.FormatDecimal(m.WeightKg))
		fmt.Fprintf(r.out, "Height: %s cm\n", domain.FormatDecimal(m.HeightCm))
		fmt.Fprintf(r.out, "BMI: %s\n", domain.FormatDecimal(m.BMI))
		fmt.Fprintf(r.out, "Category: %s\n", m.Category)
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "Health Recommendation:")
		fmt.Fprintln(r.out, res.Recommendation)
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, categoryGuide)
		return nil
	})
}

func (r *runner) runUsers(cmd *cobra.Command, args []string) error {
	return r.withService(cmd.Context(), func(ctx context.Context, svc *app.TrackerService) error {
		names, err := svc.ListUsers(ctx)
		if err != nil {
			return err
		}
		if r.asJSON {
			return r.printJSON(names)
		}
		if len(names) == 0 {
			fmt.Fprintln(r.out, "No users registered.")
			return nil
		}
		for _, n := range names {
			fmt.Fprintln(r.out, n)
		}
		return nil
	})
}

func (r *runner) runProfile(cmd *cobra.Command, args []string) error {
	name := args[0]
	return r.withService(cmd.Context(), func(ctx context.Context, svc *app.TrackerService) error {
		p, err := svc.LoadProfile(ctx, name)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("user %q: %w", name, domain.ErrNotFound)
		}
		if r.asJSON {
			return r.printJSON(p)
		}
		fmt.Fprintln(r.out, p.String())
		if !p.CreatedAt.IsZero() {
			fmt.Fprintf(r.out, "Member Since: %s\n", p.CreatedAt.Format(domain.TimestampLayout))
		}
		return nil
	})
}

func (r *runner) runHistory(cmd *cobra.Command, args []string) error {
	name := args[0]
	return r.withService(cmd.Context(), func(ctx context.Context, svc *app.TrackerService) error {
		recs, err := svc.History(ctx, name)
		if err != nil {
			return err
		}
		if r.asJSON {
			return r.printJSON(recs)
		}
		if len(recs) == 0 {
			fmt.Fprintf(r.out, "No records found for %s!\n", name)
			return nil
		}
		fmt.Fprintf(r.out, "=== BMI History for %s ===\n\n", name)
		fmt.Fprintf(r.out, "Total Records: %d\n\n", len(recs))
		for i, m := range recs {
			fmt.Fprintf(r.out, "Record #%d\n%s\n\n", i+1, m)
		}
		return nil
	})
}

func (r *runner) runStats(cmd *cobra.Command, args []string) error {
	name := args[0]
	return r.withService(cmd.Context(), func(ctx context.Context, svc *app.TrackerService) error {
		st, err := svc.Statistics(ctx, name)
		if err != nil {
			return err
		}
		if r.asJSON {
			return r.printJSON(st)
		}
		if st == nil {
			fmt.Fprintf(r.out, "No statistics available for %s!\n", name)
			return nil
		}
		fmt.Fprintf(r.out, "=== Statistics for %s ===\n\n%s\n", name, st)
		return nil
	})
}

func (r *runner) runDeleteRecords(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !r.confirm(fmt.Sprintf("Are you sure you want to delete all records for %s?", name)) {
		fmt.Fprintln(r.out, "Cancelled.")
		return nil
	}
	return r.withService(cmd.Context(), func(ctx context.Context, svc *app.TrackerService) error {
		deleted, err := svc.DeleteRecords(ctx, name)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("no records found to delete for %q: %w", name, domain.ErrNotFound)
		}
		if r.asJSON {
			return r.printJSON(map[string]bool{"deleted": true})
		}
		fmt.Fprintf(r.out, "All records deleted for %s!\n", name)
		return nil
	})
}

func (r *runner) runDeleteUser(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !r.confirm(fmt.Sprintf("Are you sure you want to delete user '%s' and ALL their records? This action cannot be undone!", name)) {
		fmt.Fprintln(r.out, "Cancelled.")
		return nil
	}
	return r.withService(cmd.Context(), func(ctx context.Context, svc *app.TrackerService) error {
		found, err := svc.DeleteUser(ctx, name)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("user %q: %w", name, domain.ErrNotFound)
		}
		if r.asJSON {
			return r.printJSON(map[string]bool{"deleted": true})
		}
		fmt.Fprintf(r.out, "User '%s' and all records deleted successfully!\n", name)
		return nil
	})
}

func (r *runner) runExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	return r.withService(cmd.Context(), func(ctx context.Context, svc *app.TrackerService) error {
		loc, err := svc.ExportReport(ctx, name)
		if err != nil {
			return err
		}
		file := app.ReportFilename(name)
		if r.asJSON {
			return r.printJSON(map[string]string{"file": file, "location": loc})
		}
		fmt.Fprintf(r.out, "Report exported successfully!\nFile: %s\nLocation: %s\n", file, loc)
		return nil
	})
}
