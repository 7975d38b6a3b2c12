package cmd

import (
	"fmt"
	"os"

	"github.com/khrees2412/jobscout/internal/browser"
	"github.com/khrees2412/jobscout/internal/processor"
	"github.com/khrees2412/jobscout/internal/scraper"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Run the pipeline against saved HTML pages",
	Long: `Replay serves pages listed in <dir>/manifest.yaml instead of driving Chrome.
Use it to check selectors against saved copies of search and job pages.
Nothing is stored.`,
	Example: `  jobscout replay --fixtures ./testdata/indeed --term golang --location Monterrey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		dir, _ := cmd.Flags().GetString("fixtures")
		if dir == "" {
			return fmt.Errorf("--fixtures is required")
		}
		req, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}

		sess, err := browser.LoadFixtures(dir)
		if err != nil {
			return err
		}
		defer sess.Close()

		s := scraper.New(sess, a.Config.ScrapeOptions(), scraper.NoPacing(), a.Logger)
		s.Progress = scraper.NewSearchProgress(os.Stdout)
		res, err := s.Run(cmd.Context(), req)
		if err != nil {
			return err
		}

		records := processor.Clean(res.Listings)
		fmt.Println(titleStyle.Render(fmt.Sprintf("Replayed %d jobs", len(records))))
		printRecords(records)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	addRequestFlags(replayCmd)
	replayCmd.Flags().String("fixtures", "", "Directory holding manifest.yaml and the saved pages")
}
