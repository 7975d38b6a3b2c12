package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingPacer never sleeps and remembers every step it was asked to wait at
type recordingPacer struct {
	mu    sync.Mutex
	steps []Step
}

func (p *recordingPacer) Wait(ctx context.Context, step Step) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.steps = append(p.steps, step)
	return ctx.Err()
}

func (p *recordingPacer) count(step Step) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, s := range p.steps {
		if s == step {
			n++
		}
	}
	return n
}

// searchPage renders a results page with one card per href. An empty href
// renders a card without a job link. next, when set, adds a next-page link.
func searchPage(next string, hrefs ...string) string {
	var b strings.Builder
	b.WriteString("<html><body><div id=\"results\">")
	for _, h := range hrefs {
		if h == "" {
			b.WriteString(`<div class="job_seen_beacon"><span>Sponsored</span></div>`)
			continue
		}
		fmt.Fprintf(&b, `<div class="job_seen_beacon"><h2><a class="jcs-JobTitle" href="%s">Job</a></h2></div>`, h)
	}
	b.WriteString("</div>")
	if next != "" {
		fmt.Fprintf(&b, `<nav><a data-testid="pagination-page-next" href="%s">Siguiente</a></nav>`, next)
	}
	b.WriteString("</body></html>")
	return b.String()
}

const emptySearchPage = `<html><body><p>No se encontraron empleos</p></body></html>`

// jobPage holds the parts of a detail page; empty strings omit the element
type jobPage struct {
	Title        string
	Company      string
	CompanyHref  string
	Rating       string
	WorkFromHome string
	Salary       string
	JobType      string
	Location     string
	Benefits     []string
}

func (p jobPage) html() string {
	var b strings.Builder
	b.WriteString("<html><body>")
	if p.Title != "" {
		fmt.Fprintf(&b, `<h1 class="jobsearch-JobInfoHeader-title"><span>%s</span></h1>`, p.Title)
	}
	if p.Company != "" {
		fmt.Fprintf(&b, `<div data-company-name="true"><a href="%s">%s</a></div>`, p.CompanyHref, p.Company)
	}
	if p.Rating != "" {
		fmt.Fprintf(&b, `<span class="css-ppxtlp">%s</span>`, p.Rating)
	}
	if p.WorkFromHome != "" {
		fmt.Fprintf(&b, `<div class="css-17cdm7w">%s</div>`, p.WorkFromHome)
	}
	if p.Salary != "" {
		fmt.Fprintf(&b, `<span class="css-19j1a75">%s</span>`, p.Salary)
	}
	if p.JobType != "" {
		fmt.Fprintf(&b, `<span class="css-k5flys">%s</span>`, p.JobType)
	}
	if p.Location != "" {
		fmt.Fprintf(&b, `<div data-testid="inlineHeader-companyLocation">%s</div>`, p.Location)
	}
	if len(p.Benefits) > 0 {
		b.WriteString("<ul>")
		for _, item := range p.Benefits {
			fmt.Fprintf(&b, `<li class="css-kyg8or">%s</li>`, item)
		}
		b.WriteString("</ul>")
	}
	b.WriteString("</body></html>")
	return b.String()
}

func companyPage(reviews string) string {
	return fmt.Sprintf(`<html><body><a data-testid="reviews-countLink" href="/cmp/acme/reviews">%s</a></body></html>`, reviews)
}

func fullJobPage() jobPage {
	return jobPage{
		Title:        "Desarrollador Go",
		Company:      "Acme",
		CompanyHref:  "/cmp/acme",
		Rating:       "4.2",
		WorkFromHome: "Home Office (Desde casa)",
		Salary:       "$20.00 - $30.00 por hora",
		JobType:      "Tiempo completo",
		Location:     "Monterrey, N. L.",
		Benefits:     []string{"Vales de despensa", " Seguro de vida "},
	}
}
