package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadFixtures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, `pages:
  - url: https://mx.indeed.com/jobs?q=go
    file: search.html
  - url: https://mx.indeed.com/viewjob?jk=1
    file: job.html
`)
	writeFile(t, dir, "search.html", `<div class="card"><a href="/viewjob?jk=1">Go</a></div>`)
	writeFile(t, dir, "job.html", `<h1>Go Developer</h1>`)

	s, err := LoadFixtures(dir)
	require.NoError(t, err)

	require.NoError(t, s.Navigate("https://mx.indeed.com/viewjob?jk=1"))
	title, err := s.Text("h1")
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", title)
}

func TestLoadFixturesErrors(t *testing.T) {
	t.Run("missing manifest", func(t *testing.T) {
		_, err := LoadFixtures(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("empty manifest", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ManifestFile, "pages: []\n")
		_, err := LoadFixtures(dir)
		assert.ErrorContains(t, err, "lists no pages")
	})

	t.Run("entry without file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ManifestFile, "pages:\n  - url: https://x\n")
		_, err := LoadFixtures(dir)
		assert.ErrorContains(t, err, "url and file are required")
	})

	t.Run("missing page file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ManifestFile, "pages:\n  - url: https://x\n    file: gone.html\n")
		_, err := LoadFixtures(dir)
		assert.ErrorContains(t, err, "gone.html")
	})
}
