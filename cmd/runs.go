package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past scrape runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		runs, err := a.Repo.GetRuns(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs yet. Start one with 'jobscout scrape'")
			return nil
		}

		fmt.Println(titleStyle.Render("Scrape Runs"))
		for _, r := range runs {
			fmt.Printf("%s %s\n", labelStyle.Render(r.ID), r.StartedAt.Local().Format("Jan 2, 2006 15:04"))
			fmt.Printf("   %s %s\n", labelStyle.Render("Terms:"), strings.Join(r.Terms, ", "))
			fmt.Printf("   %s %s\n", labelStyle.Render("Locations:"), strings.Join(r.Locations, ", "))
			if r.HomeOffice {
				fmt.Printf("   %s yes\n", labelStyle.Render("Home office:"))
			}
			if r.FinishedAt == nil {
				fmt.Printf("   %s\n", warnStyle.Render("unfinished"))
				continue
			}
			fmt.Printf("   %s %d in %s\n", labelStyle.Render("Listings:"), r.ListingCount,
				r.FinishedAt.Sub(r.StartedAt).Round(time.Second))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
