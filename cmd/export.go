package cmd

import (
	"fmt"

	"github.com/khrees2412/jobscout/internal/app"
	"github.com/khrees2412/jobscout/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write stored listings to an Excel workbook",
	Example: `  jobscout export --out jobs.xlsx
  jobscout export --out run.xlsx --run 6f1c...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return fmt.Errorf("%w: --out is required", app.ErrInvalidArgument)
		}
		records, err := loadRecords(cmd)
		if err != nil {
			return err
		}
		if err := export.SaveExcel(out, records); err != nil {
			return err
		}
		fmt.Printf("✓ Exported %d jobs to %s\n", len(records), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out", "o", "", "Destination .xlsx file (required)")
	exportCmd.Flags().String("run", "", "Only listings from this run ID")
}
