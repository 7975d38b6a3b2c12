package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/khrees2412/jobscout/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
	// Config commands must work while the database or a config value is
	// broken, so they skip the full app setup
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == setConfigCmd {
			return nil
		}
		return config.Initialize()
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		c := config.AppConfig
		fmt.Println(titleStyle.Render("Configuration"))
		fmt.Printf("%s %s\n", labelStyle.Render("Config File:"), config.GetConfigPath())
		fmt.Printf("%s %s\n", labelStyle.Render("Base URL:"), c.BaseURL)
		fmt.Printf("%s %s\n", labelStyle.Render("Database:"), c.DBPath)
		fmt.Printf("%s %s\n", labelStyle.Render("Log Level:"), c.LogLevel)
		if c.MaxPages > 0 {
			fmt.Printf("%s %d\n", labelStyle.Render("Max Pages:"), c.MaxPages)
		} else {
			fmt.Printf("%s %s\n", labelStyle.Render("Max Pages:"), "no limit")
		}
		fmt.Printf("%s %t\n", labelStyle.Render("Headless:"), c.Browser.Headless)
		if c.Browser.ExecPath != "" {
			fmt.Printf("%s %s\n", labelStyle.Render("Chrome:"), c.Browser.ExecPath)
		}

		fmt.Printf("\n%s\n", labelStyle.Render("Timeouts"))
		fmt.Printf("  results %s, next page %s, detail %s, reviews %s\n",
			c.Timeouts.Results, c.Timeouts.NextPage, c.Timeouts.Detail, c.Timeouts.Reviews)

		fmt.Printf("\n%s\n", labelStyle.Render("Pacing"))
		fmt.Printf("  search %s-%s, page %s-%s, detail %s-%s\n",
			c.Pacing.Search.Min, c.Pacing.Search.Max,
			c.Pacing.Page.Min, c.Pacing.Page.Max,
			c.Pacing.Detail.Min, c.Pacing.Detail.Max)
	},
}

var settableKeys = []string{
	"base_url", "home_office_fragment", "home_office_phrase", "max_pages", "db_path", "log_level",
	"browser.headless", "browser.user_agent", "browser.exec_path", "browser.page_load_timeout",
	"timeouts.results", "timeouts.next_page", "timeouts.detail", "timeouts.reviews",
	"pacing.search.min", "pacing.search.max", "pacing.page.min", "pacing.page.max",
	"pacing.detail.min", "pacing.detail.max",
	"selectors.result_card", "selectors.card_link", "selectors.next_page", "selectors.title",
	"selectors.company", "selectors.rating", "selectors.reviews_link", "selectors.work_from_home",
	"selectors.salary", "selectors.job_type", "selectors.location", "selectors.benefit",
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  jobscout config set --key browser.headless --value true
  jobscout config set --key max_pages --value 3
  jobscout config set --key pacing.detail.max --value 5s
  jobscout config set --key selectors.salary --value "span.css-19j1a75"`,
	Run: func(cmd *cobra.Command, args []string) {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			fmt.Println("Both --key and --value are required")
			return
		}

		if !slices.Contains(settableKeys, key) {
			fmt.Printf("Invalid key. Must be one of: %v\n", settableKeys)
			return
		}

		if err := config.Set(key, value); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✓ Configuration updated: %s\n", key)

		// Reload config
		if err := config.Initialize(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not reload config: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	// Flags for set command
	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
