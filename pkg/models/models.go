package models

import "time"

// Sentinel values written into a JobListing when a field could not be extracted
const (
	NotFound     = "Not Found"
	NotAvailable = "Not Available"
	NotSpecified = "Not specified"
)

// SearchQuery is one (term, location) pair of a scrape request
type SearchQuery struct {
	Term       string `json:"term"`
	Location   string `json:"location"`
	HomeOffice bool   `json:"home_office"`
}

// JobListing is the raw record produced for one detail page.
// Every field except URL may hold a sentinel value.
type JobListing struct {
	Title         string  `json:"title"`
	CompanyName   string  `json:"company_name"`
	CompanyRating string  `json:"company_rating"` // "4.2" or NotAvailable
	ReviewCount   string  `json:"review_count"`   // "1234" or NotAvailable
	SalaryMin     float64 `json:"salary_min"`
	SalaryMax     float64 `json:"salary_max"`
	SalaryPeriod  string  `json:"salary_period"`
	JobType       string  `json:"job_type"`
	Location      string  `json:"location"`
	WorkFromHome  string  `json:"work_from_home"` // "Y" or "N"
	Benefits      string  `json:"benefits"`
	URL           string  `json:"url"`
}

// Record is a cleaned JobListing ready for statistics and filtering
type Record struct {
	Title         string   `json:"title" yaml:"title"`
	CompanyName   string   `json:"company_name" yaml:"company_name"`
	CompanyRating *float64 `json:"company_rating" yaml:"company_rating"` // nil when not numeric
	ReviewCount   *int     `json:"review_count" yaml:"review_count"`     // nil when not numeric
	SalaryMin     float64  `json:"salary_min" yaml:"salary_min"`
	SalaryMax     float64  `json:"salary_max" yaml:"salary_max"`
	SalaryPeriod  string   `json:"salary_period" yaml:"salary_period"`
	JobType       string   `json:"job_type" yaml:"job_type"`
	Location      string   `json:"location" yaml:"location"`
	WorkFromHome  string   `json:"work_from_home" yaml:"work_from_home"` // "Yes" or "No"
	Benefits      string   `json:"benefits" yaml:"benefits"`
	URL           string   `json:"url" yaml:"url"`
}

// ScrapeRun records one invocation of the scrape pipeline
type ScrapeRun struct {
	ID           string     `json:"id"`
	Terms        []string   `json:"terms"`
	Locations    []string   `json:"locations"`
	HomeOffice   bool       `json:"home_office"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at"` // nil while running or after a crash
	ListingCount int        `json:"listing_count"`
}
