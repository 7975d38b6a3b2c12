package browser

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the file LoadFixtures expects at the root of a fixture directory
const ManifestFile = "manifest.yaml"

// Manifest maps URLs to saved HTML files, relative to the manifest's directory
type Manifest struct {
	Pages []FixturePage `yaml:"pages"`
}

type FixturePage struct {
	URL  string `yaml:"url"`
	File string `yaml:"file"`
}

// LoadFixtures builds a Static session from a directory of saved pages
// described by manifest.yaml
func LoadFixtures(dir string) (*Static, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Pages) == 0 {
		return nil, fmt.Errorf("manifest %s lists no pages", filepath.Join(dir, ManifestFile))
	}

	pages := make(map[string]string, len(m.Pages))
	for i, p := range m.Pages {
		if p.URL == "" || p.File == "" {
			return nil, fmt.Errorf("manifest entry %d: url and file are required", i)
		}
		html, err := os.ReadFile(filepath.Join(dir, p.File))
		if err != nil {
			return nil, fmt.Errorf("read fixture %s: %w", p.File, err)
		}
		pages[p.URL] = string(html)
	}
	return NewStatic(pages), nil
}
