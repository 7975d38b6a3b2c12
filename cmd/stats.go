package cmd

import (
	"fmt"
	"os"

	"github.com/khrees2412/jobscout/internal/app"
	"github.com/khrees2412/jobscout/internal/processor"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize scraped listings",
	Long:  "Display totals, salary averages and the most common job types and locations",
	Example: `  jobscout stats
  jobscout stats --run 6f1c... --format yaml
  jobscout stats --from jobs.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadRecords(cmd)
		if err != nil {
			return err
		}
		summary := processor.Summarize(records)

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "yaml":
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			if err := enc.Encode(summary); err != nil {
				return err
			}
			return enc.Close()
		case "text", "":
		default:
			return fmt.Errorf("%w: unknown format %q", app.ErrInvalidArgument, format)
		}

		if summary.TotalJobs == 0 {
			fmt.Println("No listings yet. Scrape some with 'jobscout scrape'")
			return nil
		}

		fmt.Println(titleStyle.Render("Listing Statistics"))

		fmt.Printf("%s\n", labelStyle.Render("Overview"))
		fmt.Printf("  Total Jobs: %d\n", summary.TotalJobs)
		fmt.Printf("  Unique Companies: %d\n", summary.UniqueCompanies)
		fmt.Printf("  Home Office Jobs: %d (%.1f%%)\n", summary.WorkFromHomeJobs,
			float64(summary.WorkFromHomeJobs)/float64(summary.TotalJobs)*100)

		fmt.Printf("\n%s\n", labelStyle.Render("Salary"))
		fmt.Printf("  Average Min: %.2f\n", summary.AvgSalaryMin)
		fmt.Printf("  Average Max: %.2f\n", summary.AvgSalaryMax)

		fmt.Printf("\n%s\n", labelStyle.Render("Top Job Types"))
		for _, c := range summary.TopJobTypes {
			fmt.Printf("  %s: %d\n", c.Value, c.Count)
		}

		fmt.Printf("\n%s\n", labelStyle.Render("Top Locations"))
		for _, c := range summary.TopLocations {
			fmt.Printf("  %s: %d\n", c.Value, c.Count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	addSourceFlags(statsCmd)
	statsCmd.Flags().String("format", "text", "Output format: text or yaml")
}
