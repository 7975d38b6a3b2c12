package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khrees2412/jobscout/pkg/models"
)

// ErrRunNotFound is returned when a run ID does not exist
var ErrRunNotFound = errors.New("scrape run not found")

// Repository stores scrape runs and the raw listings they produced
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Run operations

// CreateRun records the start of a scrape and assigns it a new ID
func (r *Repository) CreateRun(ctx context.Context, terms, locations []string, homeOffice bool) (*models.ScrapeRun, error) {
	run := &models.ScrapeRun{
		ID:         uuid.NewString(),
		Terms:      terms,
		Locations:  locations,
		HomeOffice: homeOffice,
		StartedAt:  time.Now().UTC(),
	}
	termsJSON, err := json.Marshal(terms)
	if err != nil {
		return nil, err
	}
	locationsJSON, err := json.Marshal(locations)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO scrape_runs (id, terms, locations, home_office, started_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, run.ID, string(termsJSON), string(locationsJSON), homeOffice, run.StartedAt); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun stamps the run's end time and listing count
func (r *Repository) FinishRun(ctx context.Context, runID string, listingCount int) error {
	query := `UPDATE scrape_runs SET finished_at=?, listing_count=? WHERE id=?`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), listingCount, runID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

// DeleteRun removes a run that produced nothing. Listings keep their rows
// with a NULL run_id.
func (r *Repository) DeleteRun(ctx context.Context, runID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scrape_runs WHERE id=?`, runID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

func (r *Repository) GetRun(ctx context.Context, runID string) (*models.ScrapeRun, error) {
	query := `SELECT id, terms, locations, home_office, started_at, finished_at, listing_count
			  FROM scrape_runs WHERE id=?`
	run, err := scanRun(r.db.QueryRowContext(ctx, query, runID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return run, err
}

// GetRuns lists runs, newest first
func (r *Repository) GetRuns(ctx context.Context) ([]*models.ScrapeRun, error) {
	query := `SELECT id, terms, locations, home_office, started_at, finished_at, listing_count
			  FROM scrape_runs ORDER BY started_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*models.ScrapeRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*models.ScrapeRun, error) {
	run := &models.ScrapeRun{}
	var terms, locations string
	var finished sql.NullTime
	if err := row.Scan(&run.ID, &terms, &locations, &run.HomeOffice, &run.StartedAt, &finished, &run.ListingCount); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(terms), &run.Terms); err != nil {
		return nil, fmt.Errorf("decode run terms: %w", err)
	}
	if err := json.Unmarshal([]byte(locations), &run.Locations); err != nil {
		return nil, fmt.Errorf("decode run locations: %w", err)
	}
	if finished.Valid {
		run.FinishedAt = &finished.Time
	}
	return run, nil
}

// Listing operations

// SaveListings stores listings under runID in one transaction. A URL that
// is already stored is overwritten with the newer values.
func (r *Repository) SaveListings(ctx context.Context, runID string, listings []models.JobListing) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listings (run_id, title, company_name, company_rating, review_count, salary_min,
			salary_max, salary_period, job_type, location, work_from_home, benefits, url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			run_id=excluded.run_id, title=excluded.title, company_name=excluded.company_name,
			company_rating=excluded.company_rating, review_count=excluded.review_count,
			salary_min=excluded.salary_min, salary_max=excluded.salary_max,
			salary_period=excluded.salary_period, job_type=excluded.job_type,
			location=excluded.location, work_from_home=excluded.work_from_home,
			benefits=excluded.benefits, scraped_at=CURRENT_TIMESTAMP`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, l := range listings {
		var run any
		if runID != "" {
			run = runID
		}
		_, err := stmt.ExecContext(ctx, run, l.Title, l.CompanyName, l.CompanyRating, l.ReviewCount,
			l.SalaryMin, l.SalaryMax, l.SalaryPeriod, l.JobType, l.Location, l.WorkFromHome, l.Benefits, l.URL)
		if err != nil {
			return fmt.Errorf("save listing %s: %w", l.URL, err)
		}
	}
	return tx.Commit()
}

// GetListings returns the listings of runID in insertion order, or every
// stored listing when runID is empty
func (r *Repository) GetListings(ctx context.Context, runID string) ([]models.JobListing, error) {
	query := `SELECT title, company_name, company_rating, review_count, salary_min, salary_max,
			  salary_period, job_type, location, work_from_home, benefits, url FROM listings`
	var args []any
	if runID != "" {
		query += ` WHERE run_id=?`
		args = append(args, runID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []models.JobListing{}
	for rows.Next() {
		var l models.JobListing
		err := rows.Scan(&l.Title, &l.CompanyName, &l.CompanyRating, &l.ReviewCount, &l.SalaryMin,
			&l.SalaryMax, &l.SalaryPeriod, &l.JobType, &l.Location, &l.WorkFromHome, &l.Benefits, &l.URL)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
