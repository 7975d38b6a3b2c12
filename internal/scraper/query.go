package scraper

import (
	"net/url"
	"strings"

	"github.com/khrees2412/jobscout/pkg/models"
)

// QueryExpander turns search terms and locations into search-result URLs
type QueryExpander struct {
	BaseURL            string
	HomeOfficeFragment string
}

// Queries pairs every term with every location, term-major
func (e QueryExpander) Queries(terms, locations []string, homeOffice bool) []models.SearchQuery {
	queries := make([]models.SearchQuery, 0, len(terms)*len(locations))
	for _, term := range terms {
		for _, location := range locations {
			queries = append(queries, models.SearchQuery{
				Term:       term,
				Location:   location,
				HomeOffice: homeOffice,
			})
		}
	}
	return queries
}

// URL encodes a single query against the site's q/l parameters
func (e QueryExpander) URL(q models.SearchQuery) string {
	u := e.BaseURL + "?q=" + escape(q.Term) + "&l=" + escape(q.Location)
	if q.HomeOffice && e.HomeOfficeFragment != "" {
		u += "&" + e.HomeOfficeFragment
	}
	return u
}

// Expand returns one search URL per (term, location) pair, term-major
func (e QueryExpander) Expand(terms, locations []string, homeOffice bool) []string {
	queries := e.Queries(terms, locations, homeOffice)
	urls := make([]string, 0, len(queries))
	for _, q := range queries {
		urls = append(urls, e.URL(q))
	}
	return urls
}

// escape percent-encodes s, spaces included, so that it decodes back under
// either query or path unescaping
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
