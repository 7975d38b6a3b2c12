package cmd

import (
	"errors"
	"fmt"

	"github.com/khrees2412/jobscout/internal/app"
	"github.com/khrees2412/jobscout/internal/database"
	"github.com/khrees2412/jobscout/internal/export"
	"github.com/khrees2412/jobscout/internal/processor"
	"github.com/khrees2412/jobscout/pkg/models"
	"github.com/spf13/cobra"
)

// loadRecords reads cleaned records from --from when set, otherwise from
// the database, limited to --run when set
func loadRecords(cmd *cobra.Command) ([]models.Record, error) {
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		return export.LoadExcel(from)
	}

	a := appFrom(cmd)
	runID, _ := cmd.Flags().GetString("run")
	if runID != "" {
		if _, err := a.Repo.GetRun(cmd.Context(), runID); err != nil {
			if errors.Is(err, database.ErrRunNotFound) {
				return nil, fmt.Errorf("%w: run %s", app.ErrNotFound, runID)
			}
			return nil, err
		}
	}
	listings, err := a.Repo.GetListings(cmd.Context(), runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	return processor.Clean(listings), nil
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("run", "", "Only listings from this run ID")
	cmd.Flags().String("from", "", "Read listings from an exported .xlsx file instead of the database")
}

func printRecords(records []models.Record) {
	for i, r := range records {
		fmt.Printf("\n%d. %s\n", i+1, r.Title)
		fmt.Printf("   %s %s", labelStyle.Render("Company:"), r.CompanyName)
		if r.CompanyRating != nil {
			fmt.Printf(" (%.1f", *r.CompanyRating)
			if r.ReviewCount != nil {
				fmt.Printf(", %d reviews", *r.ReviewCount)
			}
			fmt.Print(")")
		}
		fmt.Println()
		fmt.Printf("   %s %s\n", labelStyle.Render("Location:"), r.Location)
		if r.SalaryMin > 0 || r.SalaryMax > 0 {
			fmt.Printf("   %s %.2f - %.2f %s\n", labelStyle.Render("Salary:"), r.SalaryMin, r.SalaryMax, r.SalaryPeriod)
		}
		fmt.Printf("   %s %s\n", labelStyle.Render("Type:"), r.JobType)
		fmt.Printf("   %s %s\n", labelStyle.Render("Home office:"), r.WorkFromHome)
		fmt.Printf("   %s %s\n", labelStyle.Render("URL:"), r.URL)
	}
}
