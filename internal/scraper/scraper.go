package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/khrees2412/jobscout/internal/browser"
	"github.com/khrees2412/jobscout/pkg/models"
)

// ErrInvalidRequest is returned when a request has no usable terms or locations
var ErrInvalidRequest = errors.New("invalid scrape request")

// Request is the input of one scrape run
type Request struct {
	Terms      []string
	Locations  []string
	HomeOffice bool
}

// Normalize trims every term and location and drops blank ones. It fails
// when either list ends up empty.
func (r Request) Normalize() (Request, error) {
	out := Request{
		Terms:      compact(r.Terms),
		Locations:  compact(r.Locations),
		HomeOffice: r.HomeOffice,
	}
	if len(out.Terms) == 0 {
		return out, fmt.Errorf("%w: at least one search term is required", ErrInvalidRequest)
	}
	if len(out.Locations) == 0 {
		return out, fmt.Errorf("%w: at least one location is required", ErrInvalidRequest)
	}
	return out, nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Result is what a run produced, with counters for each stage
type Result struct {
	Listings       []models.JobListing
	SearchURLs     int
	LinksCollected int
	UniqueLinks    int
	Skipped        []string // unique links that produced no listing
}

// Scraper runs the whole pipeline over one browser session:
// expand queries, collect links per search, dedupe, extract details.
type Scraper struct {
	expander QueryExpander
	links    *LinkCollector
	details  *DetailExtractor
	pacer    Pacer
	log      *slog.Logger

	// Progress receives stage updates; nil prints nothing
	Progress *SearchProgress
}

// New wires a Scraper to sess. The session stays owned by the caller.
func New(sess browser.Session, opts Options, pacer Pacer, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}
	if pacer == nil {
		pacer = NoPacing()
	}
	return &Scraper{
		expander: QueryExpander{BaseURL: opts.BaseURL, HomeOfficeFragment: opts.HomeOfficeFragment},
		links:    NewLinkCollector(sess, opts, pacer, logger),
		details:  NewDetailExtractor(sess, opts, logger),
		pacer:    pacer,
		log:      logger,
	}
}

// Run scrapes every search URL of req and every unique job link found. Pages
// and links that fail are logged and skipped. When ctx ends the run early,
// the partial result is returned with ctx's error.
func (s *Scraper) Run(ctx context.Context, req Request) (*Result, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	// Step 1: search URLs
	urls := s.expander.Expand(req.Terms, req.Locations, req.HomeOffice)
	s.log.Info("generated search urls", "count", len(urls), "home_office", req.HomeOffice)
	res := &Result{SearchURLs: len(urls)}

	// Step 2: job links
	s.Progress.SetStage("Collecting job links")
	var all []string
	for i, u := range urls {
		if i > 0 {
			if err := s.pacer.Wait(ctx, StepSearch); err != nil {
				s.Progress.Error(err)
				return res, err
			}
		}
		s.Progress.SetStatus(fmt.Sprintf("search %d/%d, %d links so far", i+1, len(urls), len(all)))
		links, err := s.links.Collect(ctx, u)
		all = append(all, links...)
		if err != nil {
			res.LinksCollected = len(all)
			s.Progress.Error(err)
			return res, err
		}
	}
	res.LinksCollected = len(all)
	s.log.Info("scraped job links", "total", len(all))

	// Step 3: dedupe
	unique := Dedupe(all)
	res.UniqueLinks = len(unique)
	s.log.Info("removed duplicate links", "duplicates", len(all)-len(unique), "unique", len(unique))
	s.Progress.Complete(fmt.Sprintf("%d links, %d unique", len(all), len(unique)))

	// Step 4: details
	s.Progress.SetStage("Scraping job details")
	for i, link := range unique {
		if i > 0 {
			if err := s.pacer.Wait(ctx, StepDetail); err != nil {
				s.Progress.Error(err)
				return res, err
			}
		}
		s.Progress.SetStatus(fmt.Sprintf("job %d/%d", i+1, len(unique)))
		listing, err := s.details.Extract(link)
		if err != nil {
			s.log.Warn("skipping job", "url", link, "error", err)
			res.Skipped = append(res.Skipped, link)
			continue
		}
		res.Listings = append(res.Listings, listing)
	}
	s.log.Info("scraped job details", "listings", len(res.Listings), "skipped", len(res.Skipped))
	s.Progress.Complete(fmt.Sprintf("%d listings, %d skipped", len(res.Listings), len(res.Skipped)))

	return res, nil
}

// Scrape owns a browser session for the length of one run: it starts Chrome,
// runs the pipeline with randomized pacing and always closes the browser.
// Failing to start the browser is the only error that prevents a run.
func Scrape(ctx context.Context, opts Options, req Request, logger *slog.Logger, progress *SearchProgress) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := req.Normalize(); err != nil {
		return nil, err
	}

	if opts.Browser.Logger == nil {
		opts.Browser.Logger = logger
	}
	sess, err := browser.Open(ctx, opts.Browser)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Warn("closing browser", "error", err)
		}
	}()

	s := New(sess, opts, NewRandomPacer(opts.Pacing, nil, nil), logger)
	s.Progress = progress
	return s.Run(ctx, req)
}
