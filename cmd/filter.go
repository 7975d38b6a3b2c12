package cmd

import (
	"fmt"
	"strings"

	"github.com/khrees2412/jobscout/internal/app"
	"github.com/khrees2412/jobscout/internal/export"
	"github.com/khrees2412/jobscout/internal/processor"
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "List listings matching salary, job type, location or home office criteria",
	Example: `  jobscout filter --min-salary 30000 --wfh yes
  jobscout filter --location monterrey --job-type "Tiempo completo" --export monterrey.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var c processor.Criteria
		c.MinSalary, _ = cmd.Flags().GetFloat64("min-salary")
		c.MaxSalary, _ = cmd.Flags().GetFloat64("max-salary")
		c.JobType, _ = cmd.Flags().GetString("job-type")
		c.Location, _ = cmd.Flags().GetString("location")

		wfh, _ := cmd.Flags().GetString("wfh")
		switch strings.ToLower(wfh) {
		case "":
		case "yes", "y":
			v := true
			c.WorkFromHome = &v
		case "no", "n":
			v := false
			c.WorkFromHome = &v
		default:
			return fmt.Errorf("%w: --wfh must be yes or no", app.ErrInvalidArgument)
		}

		records, err := loadRecords(cmd)
		if err != nil {
			return err
		}
		matched := processor.Filter(records, c)

		fmt.Println(titleStyle.Render(fmt.Sprintf("%d of %d jobs match", len(matched), len(records))))
		printRecords(matched)

		if out, _ := cmd.Flags().GetString("export"); out != "" {
			if err := export.SaveExcel(out, matched); err != nil {
				return err
			}
			fmt.Printf("\n✓ Exported to %s\n", out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
	addSourceFlags(filterCmd)
	filterCmd.Flags().Float64("min-salary", 0, "Keep jobs whose maximum salary reaches this")
	filterCmd.Flags().Float64("max-salary", 0, "Keep jobs whose minimum salary does not exceed this")
	filterCmd.Flags().String("job-type", "", "Exact job type")
	filterCmd.Flags().String("location", "", "Location substring, case-insensitive")
	filterCmd.Flags().String("wfh", "", "Home office: yes or no")
	filterCmd.Flags().String("export", "", "Write the matches to this .xlsx file")
}
