package scraper

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchProgress(t *testing.T) {
	var out bytes.Buffer
	p := NewSearchProgress(&out)

	p.SetStage("Collecting job links")
	p.SetStatus("search 1/2")
	p.Complete("4 links, 3 unique")
	p.SetStage("Scraping job details")
	p.Error(errors.New("boom"))

	s := out.String()
	assert.Contains(t, s, "Collecting job links: search 1/2...")
	assert.Contains(t, s, "✓ Collecting job links: 4 links, 3 unique\n")
	assert.Contains(t, s, "✗ Scraping job details: boom\n")
}

func TestNilSearchProgress(t *testing.T) {
	var p *SearchProgress
	assert.NotPanics(t, func() {
		p.SetStage("x")
		p.SetStatus("y")
		p.Complete("z")
		p.Error(errors.New("e"))
	})
}
