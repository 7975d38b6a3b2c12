package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/khrees2412/jobscout/internal/app"
	"github.com/khrees2412/jobscout/internal/config"
	"github.com/khrees2412/jobscout/internal/export"
	"github.com/khrees2412/jobscout/internal/processor"
	"github.com/khrees2412/jobscout/internal/scraper"
	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape job postings for every term and location",
	Long: `Search Indeed for every combination of --term and --location, follow the
result pages, visit each unique job posting and store the listings.`,
	Example: `  jobscout scrape --term "python developer" --term "data analyst" --location "Ciudad de México"
  jobscout scrape --term golang --location Monterrey --home-office --headless
  jobscout scrape --term golang --location Guadalajara --export jobs.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		req, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}

		opts := a.Config.ScrapeOptions()
		if cmd.Flags().Changed("headless") {
			opts.Browser.Headless, _ = cmd.Flags().GetBool("headless")
		}
		if cmd.Flags().Changed("max-pages") {
			opts.MaxPages, _ = cmd.Flags().GetInt("max-pages")
		}

		lock, err := app.AcquireScrapeLock(config.Dir())
		if err != nil {
			return err
		}
		defer lock.Release()

		ctx := cmd.Context()
		run, err := a.Repo.CreateRun(ctx, req.Terms, req.Locations, req.HomeOffice)
		if err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}

		fmt.Printf("Scraping %d term(s) x %d location(s)\n", len(req.Terms), len(req.Locations))
		progress := scraper.NewSearchProgress(os.Stdout)
		res, scrapeErr := scraper.Scrape(ctx, opts, req, a.Logger, progress)
		if res == nil {
			// Nothing was scraped, so drop the run instead of leaving it unfinished
			if err := a.Repo.DeleteRun(context.WithoutCancel(ctx), run.ID); err != nil {
				a.Logger.Warn("failed to delete empty run", "run", run.ID, "error", err)
			}
			return fmt.Errorf("scrape failed: %w", scrapeErr)
		}

		// Save what was gathered even when the run was interrupted
		saveCtx := context.WithoutCancel(ctx)
		if err := a.Repo.SaveListings(saveCtx, run.ID, res.Listings); err != nil {
			return fmt.Errorf("failed to save listings: %w", err)
		}
		if err := a.Repo.FinishRun(saveCtx, run.ID, len(res.Listings)); err != nil {
			return fmt.Errorf("failed to finish run: %w", err)
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Scraped %d jobs", len(res.Listings))))
		fmt.Printf("%s %s\n", labelStyle.Render("Run:"), run.ID)
		fmt.Printf("%s %d\n", labelStyle.Render("Search URLs:"), res.SearchURLs)
		fmt.Printf("%s %d (%d unique)\n", labelStyle.Render("Links:"), res.LinksCollected, res.UniqueLinks)
		if len(res.Skipped) > 0 {
			fmt.Println(warnStyle.Render(fmt.Sprintf("Skipped %d job(s) that could not be read", len(res.Skipped))))
		}

		if out, _ := cmd.Flags().GetString("export"); out != "" {
			if err := export.SaveExcel(out, processor.Clean(res.Listings)); err != nil {
				return err
			}
			fmt.Printf("✓ Exported to %s\n", out)
		}

		if scrapeErr != nil && !errors.Is(scrapeErr, context.Canceled) {
			return scrapeErr
		}
		if scrapeErr != nil {
			fmt.Println(warnStyle.Render("Interrupted, partial results saved"))
		}
		return nil
	},
}

// requestFromFlags builds a normalized request from --term, --location and
// --home-office
func requestFromFlags(cmd *cobra.Command) (scraper.Request, error) {
	terms, _ := cmd.Flags().GetStringSlice("term")
	locations, _ := cmd.Flags().GetStringSlice("location")
	homeOffice, _ := cmd.Flags().GetBool("home-office")

	req, err := scraper.Request{Terms: terms, Locations: locations, HomeOffice: homeOffice}.Normalize()
	if err != nil {
		return req, fmt.Errorf("%w: %v", app.ErrInvalidArgument, err)
	}
	return req, nil
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("term", "t", nil, "Search term, repeatable or comma separated (required)")
	cmd.Flags().StringSliceP("location", "l", nil, "Location, repeatable or comma separated (required)")
	cmd.Flags().Bool("home-office", false, "Only remote (home office) postings")
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	addRequestFlags(scrapeCmd)
	scrapeCmd.Flags().Bool("headless", false, "Run Chrome without a window (overrides browser.headless)")
	scrapeCmd.Flags().Int("max-pages", 0, "Result pages per search, 0 for no limit (overrides max_pages)")
	scrapeCmd.Flags().String("export", "", "Also write the cleaned listings to this .xlsx file")
}
