package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/khrees2412/jobscout/internal/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInitializeCreatesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("JOBSCOUT_MAX_PAGES", "3")
	t.Setenv("JOBSCOUT_BROWSER_HEADLESS", "true")

	require.NoError(t, Initialize())

	info, err := os.Stat(filepath.Join(home, ".jobscout", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	c := AppConfig
	require.NotNil(t, c)
	assert.Equal(t, "https://mx.indeed.com/jobs", c.BaseURL)
	assert.Equal(t, 3, c.MaxPages)
	assert.True(t, c.Browser.Headless)
	assert.Equal(t, filepath.Join(home, ".jobscout", "jobscout.db"), c.DBPath)
	assert.Equal(t, 30*time.Second, c.Timeouts.Detail)
	assert.Equal(t, 5*time.Second, c.Pacing.Search.Max)
	assert.Equal(t, time.Second, c.Pacing.Page.Min)
	assert.Equal(t, ".job_seen_beacon", c.Selectors.ResultCard)
	assert.Equal(t, 60*time.Second, c.Browser.PageLoadTimeout)
}

func validConfig() *Config {
	d := scraper.DefaultOptions()
	return &Config{
		BaseURL:   d.BaseURL,
		Timeouts:  d.Timeouts,
		Pacing:    d.Pacing,
		Selectors: d.Selectors,
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	c := validConfig()
	c.BaseURL = ""
	assert.Error(t, c.Validate())

	c = validConfig()
	c.MaxPages = -1
	assert.Error(t, c.Validate())

	c = validConfig()
	c.Pacing.Detail = scraper.Range{Min: 3 * time.Second, Max: time.Second}
	assert.ErrorContains(t, c.Validate(), "pacing.detail")

	c = validConfig()
	c.Timeouts.Reviews = 0
	assert.ErrorContains(t, c.Validate(), "timeouts.reviews")
}

func TestScrapeOptions(t *testing.T) {
	c := validConfig()
	c.HomeOfficeFragment = "sc=x"
	c.MaxPages = 4
	c.Browser = BrowserConfig{Headless: true, ExecPath: "/usr/bin/chromium", PageLoadTimeout: time.Minute}

	opts := c.ScrapeOptions()
	assert.Equal(t, c.BaseURL, opts.BaseURL)
	assert.Equal(t, "sc=x", opts.HomeOfficeFragment)
	assert.Equal(t, 4, opts.MaxPages)
	assert.Equal(t, c.Selectors, opts.Selectors)
	assert.Equal(t, c.Pacing, opts.Pacing)
	assert.True(t, opts.Browser.Headless)
	assert.Equal(t, "/usr/bin/chromium", opts.Browser.ExecPath)
	assert.Equal(t, time.Minute, opts.Browser.PageLoadTimeout)
}

func readConfigFile(t *testing.T) map[string]any {
	t.Helper()
	raw, err := os.ReadFile(GetConfigPath())
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, yaml.Unmarshal(raw, &out))
	return out
}

func TestSetRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, Initialize())

	before, err := os.ReadFile(GetConfigPath())
	require.NoError(t, err)

	assert.Error(t, Set("pacing.page.min", "abc"))
	assert.Error(t, Set("max_pages", "-1"))
	assert.Error(t, Set("pacing.detail.min", "10s"), "min above max")
	assert.Error(t, Set("timeouts.results", "0s"))

	after, err := os.ReadFile(GetConfigPath())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.NoError(t, Initialize())
}

func TestSetPersistsOnlyFileKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("JOBSCOUT_MAX_PAGES", "7")
	require.NoError(t, Initialize())
	assert.Equal(t, 7, AppConfig.MaxPages)

	require.NoError(t, Set("log_level", "debug"))
	require.NoError(t, Set("browser.headless", "true"))
	require.NoError(t, Set("pacing.page.max", "4s"))

	file := readConfigFile(t)
	assert.Equal(t, "debug", file["log_level"])
	assert.Equal(t, 0, file["max_pages"])
	assert.NotContains(t, file, "db_path")
	assert.NotContains(t, file, "selectors")
	assert.NotContains(t, file, "home_office_phrase")

	b, ok := file["browser"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, b["headless"])

	require.NoError(t, Initialize())
	assert.Equal(t, "debug", AppConfig.LogLevel)
	assert.Equal(t, 4*time.Second, AppConfig.Pacing.Page.Max)
	assert.Equal(t, 7, AppConfig.MaxPages)
}

func TestSetCreatesMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, Set("max_pages", "2"))

	file := readConfigFile(t)
	assert.Equal(t, 2, file["max_pages"])
	assert.Equal(t, "https://mx.indeed.com/jobs", file["base_url"])
}
