package scraper

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpander() QueryExpander {
	d := DefaultOptions()
	return QueryExpander{BaseURL: d.BaseURL, HomeOfficeFragment: d.HomeOfficeFragment}
}

func TestExpandCountAndOrder(t *testing.T) {
	e := newExpander()
	terms := []string{"python developer", "data analyst"}
	locations := []string{"Ciudad de México", "Monterrey", "Guadalajara"}

	queries := e.Queries(terms, locations, false)
	require.Len(t, queries, len(terms)*len(locations))

	// term-major: every location of the first term comes first
	for i, q := range queries {
		assert.Equal(t, terms[i/len(locations)], q.Term)
		assert.Equal(t, locations[i%len(locations)], q.Location)
	}
	assert.Len(t, e.Expand(terms, locations, false), 6)
}

func TestExpandEmpty(t *testing.T) {
	e := newExpander()
	assert.Empty(t, e.Expand(nil, []string{"Monterrey"}, false))
	assert.Empty(t, e.Expand([]string{"go"}, nil, true))
}

func TestURLRoundTrip(t *testing.T) {
	e := newExpander()
	cases := []struct{ term, location string }{
		{"python developer", "Ciudad de México"},
		{"c++ & c#", "Nuevo León"},
		{"ventas/marketing", "Mérida, Yuc."},
	}
	for _, tc := range cases {
		raw := e.Expand([]string{tc.term}, []string{tc.location}, false)[0]
		u, err := url.Parse(raw)
		require.NoError(t, err)

		assert.Equal(t, "mx.indeed.com", u.Host)
		assert.Equal(t, "/jobs", u.Path)
		assert.Equal(t, tc.term, u.Query().Get("q"))
		assert.Equal(t, tc.location, u.Query().Get("l"))
		assert.NotContains(t, raw, " ")
	}
}

func TestURLHomeOffice(t *testing.T) {
	e := newExpander()

	off := e.Expand([]string{"go"}, []string{"Monterrey"}, false)[0]
	on := e.Expand([]string{"go"}, []string{"Monterrey"}, true)[0]

	assert.Equal(t, "https://mx.indeed.com/jobs?q=go&l=Monterrey", off)
	assert.Equal(t, off+"&sc=0kf%3Aattr%28DSQF7%29%3B", on)

	u, err := url.Parse(on)
	require.NoError(t, err)
	assert.Equal(t, "0kf:attr(DSQF7);", u.Query().Get("sc"))
}
