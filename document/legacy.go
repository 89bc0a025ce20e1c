package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// legacyFrontmatter is the older vimwiki-style note format: no identity
// fields, just authorship metadata and the body.
type legacyFrontmatter struct {
	Title    string  `yaml:"title"`
	Subtitle string  `yaml:"subtitle"`
	Author   string  `yaml:"author"`
	Date     string  `yaml:"date"`
	Tags     TagList `yaml:"tags"`
}

// ParseLegacyFile loads an old-format markdown note and upgrades it to a
// full document: fresh identity, revision 1, marked latest.
func ParseLegacyFile(path string, now time.Time) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	fm, body, err := ParseFrontmatter(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	if fm == "" {
		return nil, fmt.Errorf("%s has no frontmatter", path)
	}

	var legacy legacyFrontmatter
	if err := yaml.Unmarshal([]byte(fm), &legacy); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if legacy.Title == "" {
		return nil, fmt.Errorf("%s has no title", path)
	}

	doc, err := New(legacy.Title, now)
	if err != nil {
		return nil, err
	}
	if legacy.Date != "" {
		doc.Date = legacy.Date
	}
	if legacy.Author != "" {
		doc.Authors = []string{legacy.Author}
	}
	doc.Subtitle = legacy.Subtitle
	doc.Tags = legacy.Tags
	doc.Body = strings.TrimSpace(body)
	doc.Filename = filepath.Base(path)
	return doc, nil
}
