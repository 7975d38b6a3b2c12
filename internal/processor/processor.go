package processor

import (
	"sort"
	"strconv"
	"strings"

	"github.com/khrees2412/jobscout/pkg/models"
	"golang.org/x/text/cases"
)

const topN = 5

// Clean converts raw listings into records: numeric-looking rating and
// review count become numbers, the Y/N work-from-home flag becomes Yes/No,
// and repeated URLs are dropped keeping the first.
func Clean(listings []models.JobListing) []models.Record {
	seen := make(map[string]bool, len(listings))
	records := make([]models.Record, 0, len(listings))
	for _, l := range listings {
		if seen[l.URL] {
			continue
		}
		seen[l.URL] = true

		records = append(records, models.Record{
			Title:         l.Title,
			CompanyName:   l.CompanyName,
			CompanyRating: parseFloat(l.CompanyRating),
			ReviewCount:   parseInt(l.ReviewCount),
			SalaryMin:     l.SalaryMin,
			SalaryMax:     l.SalaryMax,
			SalaryPeriod:  l.SalaryPeriod,
			JobType:       l.JobType,
			Location:      l.Location,
			WorkFromHome:  yesNo(l.WorkFromHome),
			Benefits:      l.Benefits,
			URL:           l.URL,
		})
	}
	return records
}

func parseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return &v
	}
	// "12.0" is numeric too
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		v := int(f)
		return &v
	}
	return nil
}

func yesNo(flag string) string {
	switch flag {
	case "Y":
		return "Yes"
	case "N":
		return "No"
	default:
		return ""
	}
}

// Count is one entry of a top-N breakdown
type Count struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// Summary holds aggregate statistics over a set of records
type Summary struct {
	TotalJobs        int     `json:"total_jobs" yaml:"total_jobs"`
	UniqueCompanies  int     `json:"unique_companies" yaml:"unique_companies"`
	AvgSalaryMin     float64 `json:"avg_salary_min" yaml:"avg_salary_min"`
	AvgSalaryMax     float64 `json:"avg_salary_max" yaml:"avg_salary_max"`
	WorkFromHomeJobs int     `json:"work_from_home_jobs" yaml:"work_from_home_jobs"`
	TopJobTypes      []Count `json:"top_job_types" yaml:"top_job_types"`
	TopLocations     []Count `json:"top_locations" yaml:"top_locations"`
}

// Summarize computes totals, salary averages and the five most common job
// types and locations
func Summarize(records []models.Record) Summary {
	s := Summary{TotalJobs: len(records)}
	if len(records) == 0 {
		return s
	}

	companies := make(map[string]bool)
	jobTypes := make([]string, 0, len(records))
	locations := make([]string, 0, len(records))
	var sumMin, sumMax float64
	for _, r := range records {
		companies[r.CompanyName] = true
		sumMin += r.SalaryMin
		sumMax += r.SalaryMax
		if r.WorkFromHome == "Yes" {
			s.WorkFromHomeJobs++
		}
		jobTypes = append(jobTypes, r.JobType)
		locations = append(locations, r.Location)
	}

	s.UniqueCompanies = len(companies)
	s.AvgSalaryMin = sumMin / float64(len(records))
	s.AvgSalaryMax = sumMax / float64(len(records))
	s.TopJobTypes = top(jobTypes, topN)
	s.TopLocations = top(locations, topN)
	return s
}

// top counts values and returns the n most frequent; ties keep first-seen order
func top(values []string, n int) []Count {
	index := make(map[string]int)
	var counts []Count
	for _, v := range values {
		i, ok := index[v]
		if !ok {
			index[v] = len(counts)
			counts = append(counts, Count{Value: v})
			i = len(counts) - 1
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Criteria selects records. Zero values and nil pointers match everything.
type Criteria struct {
	MinSalary    float64 // keeps records whose SalaryMax reaches it
	MaxSalary    float64 // keeps records whose SalaryMin does not exceed it
	JobType      string  // exact match
	Location     string  // case-insensitive substring
	WorkFromHome *bool
}

// Filter returns the records matching every set criterion, in order
func Filter(records []models.Record, c Criteria) []models.Record {
	fold := cases.Fold()
	location := fold.String(c.Location)

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if c.MinSalary > 0 && r.SalaryMax < c.MinSalary {
			continue
		}
		if c.MaxSalary > 0 && r.SalaryMin > c.MaxSalary {
			continue
		}
		if c.JobType != "" && r.JobType != c.JobType {
			continue
		}
		if location != "" && !strings.Contains(fold.String(r.Location), location) {
			continue
		}
		if c.WorkFromHome != nil {
			want := "No"
			if *c.WorkFromHome {
				want = "Yes"
			}
			if r.WorkFromHome != want {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
