package cmd

import (
	"fmt"

	"github.com/khrees2412/jobscout/internal/scraper"
	"github.com/spf13/cobra"
)

var urlsCmd = &cobra.Command{
	Use:     "urls",
	Short:   "Print the search URLs a scrape would visit",
	Example: `  jobscout urls --term "python developer" --location Monterrey --home-office`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		req, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}
		expander := scraper.QueryExpander{
			BaseURL:            a.Config.BaseURL,
			HomeOfficeFragment: a.Config.HomeOfficeFragment,
		}
		for _, u := range expander.Expand(req.Terms, req.Locations, req.HomeOffice) {
			fmt.Println(u)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(urlsCmd)
	addRequestFlags(urlsCmd)
}
