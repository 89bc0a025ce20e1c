package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/little-fluffy/notesearch/document"
)

// Backend is the slice of the search client the importer needs.
type Backend interface {
	AddDocuments(ctx context.Context, docs []document.Document) error
}

// Format selects which frontmatter layout the importer expects.
type Format int

const (
	// FormatNative is the full document frontmatter written by dump/new.
	FormatNative Format = iota
	// FormatLegacy is the older vimwiki-style frontmatter; notes are
	// upgraded to full documents on the way in.
	FormatLegacy
)

// Report summarizes one import run.
type Report struct {
	Imported int
	Failed   int
}

// Importer reads markdown notes matched by a glob and posts them to the
// backend. Files that fail to parse are reported and skipped; the run
// continues.
type Importer struct {
	backend Backend
	verbose bool
	now     func() time.Time

	okMark  func(format string, a ...interface{}) string
	errMark func(format string, a ...interface{}) string
}

// New creates an importer. verbose controls per-file progress output.
func New(backend Backend, verbose bool) *Importer {
	return &Importer{
		backend: backend,
		verbose: verbose,
		now:     time.Now,
		okMark:  color.New(color.FgGreen).SprintfFunc(),
		errMark: color.New(color.FgRed).SprintfFunc(),
	}
}

// Import discovers files matching pattern (after ~ expansion), parses each
// in the given format, and posts them to the backend one file at a time so
// a single bad note cannot sink the batch.
func (imp *Importer) Import(ctx context.Context, pattern string, format Format) (Report, error) {
	paths, err := Glob(pattern)
	if err != nil {
		return Report{}, err
	}
	if len(paths) == 0 {
		return Report{}, fmt.Errorf("no files match %q", pattern)
	}

	var report Report
	for _, path := range paths {
		doc, err := imp.load(path, format)
		if err != nil {
			report.Failed++
			slog.Warn("skipping file", "file", path, "error", err)
			fmt.Println(imp.errMark("❌ failed to load %s: %v", path, err))
			continue
		}

		if err := imp.backend.AddDocuments(ctx, []document.Document{*doc}); err != nil {
			report.Failed++
			fmt.Println(imp.errMark("❌ failed to import %s: %v", path, err))
			continue
		}

		report.Imported++
		if imp.verbose {
			fmt.Println(imp.okMark("✅ %s", doc))
		}
	}
	return report, nil
}

func (imp *Importer) load(path string, format Format) (*document.Document, error) {
	var doc *document.Document
	var err error
	switch format {
	case FormatLegacy:
		doc, err = document.ParseLegacyFile(path, imp.now())
	default:
		doc, err = document.ParseFile(path)
	}
	if err != nil {
		return nil, err
	}

	// notes without authorship fall back to the git history of the file
	if len(doc.Authors) == 0 {
		if author := fileAuthor(path); author != "" {
			doc.Authors = []string{author}
		}
	}
	return doc, nil
}

// Glob expands a leading ~ and resolves the pattern to matching files.
func Glob(pattern string) ([]string, error) {
	if strings.HasPrefix(pattern, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("expanding ~: %w", err)
		}
		pattern = filepath.Join(home, strings.TrimPrefix(pattern, "~"))
	}

	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}
	return paths, nil
}
