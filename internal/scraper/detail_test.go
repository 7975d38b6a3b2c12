package scraper

import (
	"testing"

	"github.com/khrees2412/jobscout/internal/browser"
	"github.com/khrees2412/jobscout/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acmeProfile = "https://mx.indeed.com/cmp/acme"

func extractOne(t *testing.T, page jobPage, extra map[string]string) (models.JobListing, *browser.Static, error) {
	t.Helper()
	pages := map[string]string{job("1"): page.html()}
	for u, html := range extra {
		pages[u] = html
	}
	sess := browser.NewStatic(pages)
	d := NewDetailExtractor(sess, DefaultOptions(), quietLogger())
	listing, err := d.Extract(job("1"))
	return listing, sess, err
}

func assertOneTab(t *testing.T, sess *browser.Static) {
	t.Helper()
	n, err := sess.Handles()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestExtractFullPage(t *testing.T) {
	listing, sess, err := extractOne(t, fullJobPage(), map[string]string{
		acmeProfile: companyPage("1,234 evaluaciones"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.JobListing{
		Title:         "Desarrollador Go",
		CompanyName:   "Acme",
		CompanyRating: "4.2",
		ReviewCount:   "1234",
		SalaryMin:     20,
		SalaryMax:     30,
		SalaryPeriod:  "hora",
		JobType:       "Tiempo completo",
		Location:      "Monterrey, N. L.",
		WorkFromHome:  "Y",
		Benefits:      "Vales de despensa, Seguro de vida",
		URL:           job("1"),
	}, listing)

	assert.Contains(t, sess.Visited, acmeProfile)
	assertOneTab(t, sess)
}

func TestExtractMissingRatingKeepsOtherFields(t *testing.T) {
	page := fullJobPage()
	page.Rating = ""

	listing, sess, err := extractOne(t, page, map[string]string{
		acmeProfile: companyPage("1,234 evaluaciones"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.NotAvailable, listing.CompanyRating)
	assert.Equal(t, models.NotAvailable, listing.ReviewCount)
	assert.Equal(t, "Acme", listing.CompanyName)
	assert.Equal(t, "Desarrollador Go", listing.Title)
	assert.Equal(t, 30.0, listing.SalaryMax)
	assert.Equal(t, "Monterrey, N. L.", listing.Location)
	assert.Equal(t, "Tiempo completo", listing.JobType)

	// the profile page is never visited without a rating
	assert.NotContains(t, sess.Visited, acmeProfile)
	assertOneTab(t, sess)
}

func TestExtractReviewsFailureClosesTab(t *testing.T) {
	listing, sess, err := extractOne(t, fullJobPage(), map[string]string{
		acmeProfile: `<html><body><p>Perfil sin evaluaciones</p></body></html>`,
	})
	require.NoError(t, err)

	assert.Equal(t, models.NotAvailable, listing.CompanyRating)
	assert.Equal(t, models.NotAvailable, listing.ReviewCount)
	assert.Equal(t, "Acme", listing.CompanyName)
	assertOneTab(t, sess)
}

func TestExtractUnreachableProfile(t *testing.T) {
	listing, sess, err := extractOne(t, fullJobPage(), nil)
	require.NoError(t, err)

	assert.Equal(t, models.NotAvailable, listing.CompanyRating)
	assert.Equal(t, "Y", listing.WorkFromHome)
	assertOneTab(t, sess)
}

func TestExtractMissingCompany(t *testing.T) {
	page := fullJobPage()
	page.Company = ""

	listing, _, err := extractOne(t, page, nil)
	require.NoError(t, err)

	assert.Equal(t, models.NotFound, listing.CompanyName)
	assert.Equal(t, models.NotAvailable, listing.CompanyRating)
	assert.Equal(t, models.NotAvailable, listing.ReviewCount)
	assert.Equal(t, "Desarrollador Go", listing.Title)
}

func TestExtractMissingTitle(t *testing.T) {
	page := fullJobPage()
	page.Title = ""

	_, _, err := extractOne(t, page, nil)
	assert.ErrorIs(t, err, browser.ErrTimeout)
}

func TestExtractUnreachablePage(t *testing.T) {
	sess := browser.NewStatic(nil)
	d := NewDetailExtractor(sess, DefaultOptions(), quietLogger())

	_, err := d.Extract(job("404"))
	assert.ErrorIs(t, err, browser.ErrUnknownPage)
}

func TestExtractFallbacks(t *testing.T) {
	page := jobPage{Title: "Analista", Company: "Beta", CompanyHref: "/cmp/beta"}

	listing, _, err := extractOne(t, page, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, listing.SalaryMin)
	assert.Equal(t, 0.0, listing.SalaryMax)
	assert.Equal(t, models.NotFound, listing.SalaryPeriod)
	assert.Equal(t, models.NotFound, listing.JobType)
	assert.Equal(t, models.NotFound, listing.Location)
	assert.Equal(t, "N", listing.WorkFromHome)
	assert.Equal(t, "", listing.Benefits)
	assert.Equal(t, job("1"), listing.URL)
}

func TestExtractSalaryWithoutAmount(t *testing.T) {
	page := fullJobPage()
	page.Salary = "Sueldo a convenir"

	listing, _, err := extractOne(t, page, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, listing.SalaryMin)
	assert.Equal(t, 0.0, listing.SalaryMax)
	assert.Equal(t, models.NotFound, listing.SalaryPeriod)
}

func TestExtractWorkFromHome(t *testing.T) {
	tests := []struct {
		name    string
		company string
		marker  string
		want    string
	}{
		{"phrase in marker", "Acme", "Home Office (Desde casa)", "Y"},
		{"marker without phrase", "Acme", "Presencial", "N"},
		{"phrase only from company name", "Home Office (Desde casa) Consultores", "Home Office (Desde casa) Consultores", "N"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := fullJobPage()
			page.Company = tt.company
			page.WorkFromHome = tt.marker

			listing, _, err := extractOne(t, page, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, listing.WorkFromHome)
		})
	}
}

func TestExtractWholeNumberRating(t *testing.T) {
	page := fullJobPage()
	page.Rating = "4"

	listing, _, err := extractOne(t, page, map[string]string{
		acmeProfile: companyPage("87 evaluaciones"),
	})
	require.NoError(t, err)
	assert.Equal(t, "4.0", listing.CompanyRating)
	assert.Equal(t, "87", listing.ReviewCount)
}
