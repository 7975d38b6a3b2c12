package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/khrees2412/jobscout/internal/browser"
	"github.com/khrees2412/jobscout/internal/scraper"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	BaseURL            string `mapstructure:"base_url"`
	HomeOfficeFragment string `mapstructure:"home_office_fragment"`
	HomeOfficePhrase   string `mapstructure:"home_office_phrase"`
	MaxPages           int    `mapstructure:"max_pages"`
	DBPath             string `mapstructure:"db_path"`
	LogLevel           string `mapstructure:"log_level"` // debug, info, warn, error

	Browser   BrowserConfig        `mapstructure:"browser"`
	Timeouts  scraper.Timeouts     `mapstructure:"timeouts"`
	Pacing    scraper.PacingBounds `mapstructure:"pacing"`
	Selectors scraper.Selectors    `mapstructure:"selectors"`
}

// BrowserConfig configures the Chrome instance used for scraping
type BrowserConfig struct {
	Headless        bool          `mapstructure:"headless"`
	UserAgent       string        `mapstructure:"user_agent"`
	ExecPath        string        `mapstructure:"exec_path"`
	PageLoadTimeout time.Duration `mapstructure:"page_load_timeout"`
}

var AppConfig *Config

// Dir returns the directory holding the config file, database and lock
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".jobscout"
	}
	return filepath.Join(homeDir, ".jobscout")
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Initialize loads or creates the configuration file. Values from a .env file
// and JOBSCOUT_* environment variables take precedence over the file.
func Initialize() error {
	configFile, err := ensureConfigFile()
	if err != nil {
		return err
	}

	// A missing .env is fine
	_ = godotenv.Load()

	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("JOBSCOUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// ensureConfigFile creates the config directory and a default config file
// when they are missing, and returns the file's path
func ensureConfigFile() (string, error) {
	configFile := GetConfigPath()

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return "", err
		}
	}
	return configFile, nil
}

func setDefaults(v *viper.Viper) {
	d := scraper.DefaultOptions()

	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("home_office_fragment", d.HomeOfficeFragment)
	v.SetDefault("home_office_phrase", d.HomeOfficePhrase)
	v.SetDefault("max_pages", 0)
	v.SetDefault("db_path", filepath.Join(Dir(), "jobscout.db"))
	v.SetDefault("log_level", "info")

	v.SetDefault("browser.headless", false)
	v.SetDefault("browser.user_agent", "")
	v.SetDefault("browser.exec_path", "")
	v.SetDefault("browser.page_load_timeout", d.Browser.PageLoadTimeout)

	v.SetDefault("timeouts.results", d.Timeouts.Results)
	v.SetDefault("timeouts.next_page", d.Timeouts.NextPage)
	v.SetDefault("timeouts.detail", d.Timeouts.Detail)
	v.SetDefault("timeouts.reviews", d.Timeouts.Reviews)

	v.SetDefault("pacing.search.min", d.Pacing.Search.Min)
	v.SetDefault("pacing.search.max", d.Pacing.Search.Max)
	v.SetDefault("pacing.page.min", d.Pacing.Page.Min)
	v.SetDefault("pacing.page.max", d.Pacing.Page.Max)
	v.SetDefault("pacing.detail.min", d.Pacing.Detail.Min)
	v.SetDefault("pacing.detail.max", d.Pacing.Detail.Max)

	s := d.Selectors
	v.SetDefault("selectors.result_card", s.ResultCard)
	v.SetDefault("selectors.card_link", s.CardLink)
	v.SetDefault("selectors.next_page", s.NextPage)
	v.SetDefault("selectors.title", s.Title)
	v.SetDefault("selectors.company", s.Company)
	v.SetDefault("selectors.rating", s.Rating)
	v.SetDefault("selectors.reviews_link", s.ReviewsLink)
	v.SetDefault("selectors.work_from_home", s.WorkFromHome)
	v.SetDefault("selectors.salary", s.Salary)
	v.SetDefault("selectors.job_type", s.JobType)
	v.SetDefault("selectors.location", s.Location)
	v.SetDefault("selectors.benefit", s.Benefit)
}

// Validate rejects settings the pipeline cannot run with
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("config: base_url is required")
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("config: max_pages must not be negative")
	}
	for name, r := range map[string]scraper.Range{
		"search": c.Pacing.Search,
		"page":   c.Pacing.Page,
		"detail": c.Pacing.Detail,
	} {
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("config: pacing.%s needs 0 <= min <= max, got %s..%s", name, r.Min, r.Max)
		}
	}
	for name, d := range map[string]time.Duration{
		"results":   c.Timeouts.Results,
		"next_page": c.Timeouts.NextPage,
		"detail":    c.Timeouts.Detail,
		"reviews":   c.Timeouts.Reviews,
	} {
		if d <= 0 {
			return fmt.Errorf("config: timeouts.%s must be positive", name)
		}
	}
	return nil
}

// ScrapeOptions converts the configuration into pipeline options
func (c *Config) ScrapeOptions() scraper.Options {
	return scraper.Options{
		BaseURL:            c.BaseURL,
		HomeOfficeFragment: c.HomeOfficeFragment,
		HomeOfficePhrase:   c.HomeOfficePhrase,
		MaxPages:           c.MaxPages,
		Selectors:          c.Selectors,
		Timeouts:           c.Timeouts,
		Pacing:             c.Pacing,
		Browser: browser.Options{
			Headless:        c.Browser.Headless,
			UserAgent:       c.Browser.UserAgent,
			ExecPath:        c.Browser.ExecPath,
			PageLoadTimeout: c.Browser.PageLoadTimeout,
		},
	}
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# jobscout configuration
base_url: https://mx.indeed.com/jobs
log_level: info

# Pages per search URL, 0 for no limit
max_pages: 0

browser:
  headless: false
  exec_path: ""

# Bounded waits
timeouts:
  results: 20s
  next_page: 5s
  detail: 30s
  reviews: 10s

# Random pauses between navigations
pacing:
  search: {min: 3s, max: 5s}
  page: {min: 1s, max: 3s}
  detail: {min: 1s, max: 3s}

# CSS selectors (update when the site's markup changes)
# selectors:
#   result_card: .job_seen_beacon
#   card_link: a.jcs-JobTitle
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates one key in the config file. The file's own settings plus the
// new value must still form a valid configuration, otherwise nothing is
// written. Defaults and environment overrides are never persisted.
func Set(key, value string) error {
	path, err := ensureConfigFile()
	if err != nil {
		return err
	}

	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("yaml")
	if err := file.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	file.Set(key, scalar(value))

	candidate := viper.New()
	setDefaults(candidate)
	if err := candidate.MergeConfigMap(file.AllSettings()); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	cfg := &Config{}
	if err := candidate.Unmarshal(cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return file.WriteConfig()
}

// scalar decodes value as a YAML scalar so that "true" and "3" are stored
// as a bool and an int rather than as strings
func scalar(value string) any {
	var v any
	if err := yaml.Unmarshal([]byte(value), &v); err != nil {
		return value
	}
	switch v.(type) {
	case bool, int, float64, string:
		return v
	default:
		return value
	}
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}
