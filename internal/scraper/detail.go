package scraper

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/khrees2412/jobscout/internal/browser"
	"github.com/khrees2412/jobscout/pkg/models"
)

// outcome is the result of extracting one field: a value, or the error that
// prevented it
type outcome[T any] struct {
	value T
	err   error
}

func attempt[T any](fn func() (T, error)) outcome[T] {
	v, err := fn()
	return outcome[T]{value: v, err: err}
}

// or returns the extracted value, or fallback when extraction failed
func (o outcome[T]) or(log *slog.Logger, field string, fallback T) T {
	if o.err != nil {
		log.Debug("field unavailable, using fallback", "field", field, "error", o.err)
		return fallback
	}
	return o.value
}

type salary struct {
	min    float64
	max    float64
	period string
}

type companyInfo struct {
	name    string
	rating  string
	reviews string
}

// DetailExtractor reads one JobListing from a job detail page. Every field
// is extracted on its own; a missing element only costs that field.
type DetailExtractor struct {
	sess     browser.Session
	sel      Selectors
	timeouts Timeouts
	phrase   string
	log      *slog.Logger
}

func NewDetailExtractor(sess browser.Session, opts Options, logger *slog.Logger) *DetailExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailExtractor{
		sess:     sess,
		sel:      opts.Selectors,
		timeouts: opts.Timeouts,
		phrase:   opts.HomeOfficePhrase,
		log:      logger,
	}
}

// Extract loads jobURL and reads its fields. An error means the page never
// showed a job title and no listing was produced.
func (d *DetailExtractor) Extract(jobURL string) (models.JobListing, error) {
	log := d.log.With("url", jobURL)
	defer d.checkHandles(log)

	if err := d.sess.Navigate(jobURL); err != nil {
		return models.JobListing{}, err
	}
	if err := d.sess.WaitPresent(d.sel.Title, d.timeouts.Detail); err != nil {
		return models.JobListing{}, fmt.Errorf("wait for job title: %w", err)
	}
	title, err := d.sess.Text(d.sel.Title)
	if err != nil {
		return models.JobListing{}, fmt.Errorf("read job title: %w", err)
	}

	company := d.companyInfo(log)
	pay := attempt(d.salary).or(log, "salary", salary{period: models.NotFound})

	return models.JobListing{
		Title:         strings.TrimSpace(title),
		CompanyName:   company.name,
		CompanyRating: company.rating,
		ReviewCount:   company.reviews,
		SalaryMin:     pay.min,
		SalaryMax:     pay.max,
		SalaryPeriod:  pay.period,
		JobType:       attempt(d.textOf(d.sel.JobType)).or(log, "job_type", models.NotFound),
		Location:      attempt(d.textOf(d.sel.Location)).or(log, "location", models.NotFound),
		WorkFromHome: attempt(func() (string, error) {
			return d.workFromHome(company.name)
		}).or(log, "work_from_home", "N"),
		Benefits: attempt(d.benefits).or(log, "benefits", ""),
		URL:      jobURL,
	}, nil
}

// companyInfo reads the company name, then its rating and review count.
// Without a name none of the three is known; rating and review count fail
// together.
func (d *DetailExtractor) companyInfo(log *slog.Logger) companyInfo {
	name, err := d.sess.Text(d.sel.Company)
	if err != nil {
		log.Debug("company name unavailable", "error", err)
		return companyInfo{name: models.NotFound, rating: models.NotAvailable, reviews: models.NotAvailable}
	}

	info := companyInfo{
		name:    strings.TrimSpace(name),
		rating:  models.NotAvailable,
		reviews: models.NotAvailable,
	}
	rating, reviews, err := d.ratingAndReviews()
	if err != nil {
		log.Debug("company rating or review count unavailable", "error", err)
		return info
	}
	info.rating, info.reviews = rating, reviews
	return info
}

// ratingAndReviews reads the rating on the job page, then visits the company
// profile in a secondary tab to read its review count
func (d *DetailExtractor) ratingAndReviews() (string, string, error) {
	text, err := d.sess.Text(d.sel.Rating)
	if err != nil {
		return "", "", err
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return "", "", fmt.Errorf("parse rating: %w", err)
	}
	profileURL, err := d.sess.Attr(d.sel.Company, "href")
	if err != nil {
		return "", "", err
	}
	if profileURL == "" {
		return "", "", errors.New("company link has no href")
	}

	var reviews int
	err = d.sess.WithTab(func(tab browser.Session) error {
		if err := tab.Navigate(profileURL); err != nil {
			return err
		}
		if err := tab.WaitPresent(d.sel.ReviewsLink, d.timeouts.Reviews); err != nil {
			return fmt.Errorf("wait for reviews link: %w", err)
		}
		text, err := tab.Text(d.sel.ReviewsLink)
		if err != nil {
			return err
		}
		reviews, err = firstInt(text)
		return err
	})
	if err != nil {
		return "", "", err
	}
	return strconv.FormatFloat(rating, 'f', 1, 64), strconv.Itoa(reviews), nil
}

// workFromHome reports "Y" when the marker element mentions the home-office
// phrase and the company name does not. The marker selector can also match
// text from the company name, which is why the second check exists.
func (d *DetailExtractor) workFromHome(company string) (string, error) {
	text, err := d.sess.Text(d.sel.WorkFromHome)
	if err != nil {
		return "", err
	}
	if strings.Contains(text, d.phrase) && !strings.Contains(company, d.phrase) {
		return "Y", nil
	}
	return "N", nil
}

func (d *DetailExtractor) salary() (salary, error) {
	text, err := d.sess.Text(d.sel.Salary)
	if err != nil {
		return salary{}, err
	}
	low, high, period, err := ParseSalary(strings.TrimSpace(text))
	if err != nil {
		return salary{}, err
	}
	return salary{min: low, max: high, period: period}, nil
}

func (d *DetailExtractor) textOf(selector string) func() (string, error) {
	return func() (string, error) {
		text, err := d.sess.Text(selector)
		return strings.TrimSpace(text), err
	}
}

func (d *DetailExtractor) benefits() (string, error) {
	items, err := d.sess.TextAll(d.sel.Benefit)
	if err != nil {
		return "", err
	}
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return strings.Join(items, ", "), nil
}

// checkHandles warns when an extraction left more than the main tab open
func (d *DetailExtractor) checkHandles(log *slog.Logger) {
	n, err := d.sess.Handles()
	if err != nil {
		log.Debug("could not count open tabs", "error", err)
		return
	}
	if n != 1 {
		log.Warn("unexpected number of open tabs after extraction", "tabs", n)
	}
}
