package scraper

import (
	"time"

	"github.com/khrees2412/jobscout/internal/browser"
)

// Selectors are the CSS selectors the pipeline depends on. They describe
// the target site's current markup and change whenever it does.
type Selectors struct {
	ResultCard   string `mapstructure:"result_card" yaml:"result_card"`
	CardLink     string `mapstructure:"card_link" yaml:"card_link"`
	NextPage     string `mapstructure:"next_page" yaml:"next_page"`
	Title        string `mapstructure:"title" yaml:"title"`
	Company      string `mapstructure:"company" yaml:"company"`
	Rating       string `mapstructure:"rating" yaml:"rating"`
	ReviewsLink  string `mapstructure:"reviews_link" yaml:"reviews_link"`
	WorkFromHome string `mapstructure:"work_from_home" yaml:"work_from_home"`
	Salary       string `mapstructure:"salary" yaml:"salary"`
	JobType      string `mapstructure:"job_type" yaml:"job_type"`
	Location     string `mapstructure:"location" yaml:"location"`
	Benefit      string `mapstructure:"benefit" yaml:"benefit"`
}

// Timeouts bound every blocking wait in the pipeline
type Timeouts struct {
	Results  time.Duration `mapstructure:"results" yaml:"results"`     // first result card on a search page
	NextPage time.Duration `mapstructure:"next_page" yaml:"next_page"` // next-page control becoming clickable
	Detail   time.Duration `mapstructure:"detail" yaml:"detail"`       // job title on a detail page
	Reviews  time.Duration `mapstructure:"reviews" yaml:"reviews"`     // reviews link on a company page
}

// Options is everything the pipeline needs besides the request itself
type Options struct {
	BaseURL            string
	HomeOfficeFragment string
	HomeOfficePhrase   string
	MaxPages           int // per search URL, 0 for no limit

	Selectors Selectors
	Timeouts  Timeouts
	Pacing    PacingBounds
	Browser   browser.Options
}

// DefaultOptions targets the Mexican Indeed site
func DefaultOptions() Options {
	return Options{
		BaseURL:            "https://mx.indeed.com/jobs",
		HomeOfficeFragment: "sc=0kf%3Aattr%28DSQF7%29%3B",
		HomeOfficePhrase:   "Home Office (Desde casa)",
		Selectors: Selectors{
			ResultCard:   ".job_seen_beacon",
			CardLink:     "a.jcs-JobTitle",
			NextPage:     `a[data-testid="pagination-page-next"]`,
			Title:        "h1.jobsearch-JobInfoHeader-title",
			Company:      "div[data-company-name='true'] a",
			Rating:       "span.css-ppxtlp",
			ReviewsLink:  "a[data-testid='reviews-countLink']",
			WorkFromHome: "div.css-17cdm7w",
			Salary:       "span.css-19j1a75",
			JobType:      "span.css-k5flys",
			Location:     "div[data-testid='inlineHeader-companyLocation']",
			Benefit:      "li.css-kyg8or",
		},
		Timeouts: Timeouts{
			Results:  20 * time.Second,
			NextPage: 5 * time.Second,
			Detail:   30 * time.Second,
			Reviews:  10 * time.Second,
		},
		Pacing: PacingBounds{
			Search: Range{Min: 3 * time.Second, Max: 5 * time.Second},
			Page:   Range{Min: 1 * time.Second, Max: 3 * time.Second},
			Detail: Range{Min: 1 * time.Second, Max: 3 * time.Second},
		},
		Browser: browser.Options{
			PageLoadTimeout: 60 * time.Second,
		},
	}
}
