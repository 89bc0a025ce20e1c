package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name                string
		input               string
		expectedFrontmatter string
		expectedBody        string
		expectError         bool
	}{
		{
			name: "valid frontmatter with fields",
			input: `---
title: Shell tricks
tags: [vim, bash]
---
Body text here`,
			expectedFrontmatter: `title: Shell tricks
tags: [vim, bash]`,
			expectedBody: "Body text here",
		},
		{
			name: "body containing markdown",
			input: `---
title: Notes
---
## Heading
Some **bold** text.`,
			expectedFrontmatter: "title: Notes",
			expectedBody: `## Heading
Some **bold** text.`,
		},
		{
			name: "missing closing delimiter",
			input: `---
title: Incomplete
This should fail`,
			expectError: true,
		},
		{
			name:         "no frontmatter at all",
			input:        "Just plain text",
			expectedBody: "Just plain text",
		},
		{
			name: "empty frontmatter",
			input: `---
---
Body text here`,
			expectedBody: "Body text here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frontmatter, body, err := ParseFrontmatter(tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFrontmatter failed: %v", err)
			}
			if frontmatter != tt.expectedFrontmatter {
				t.Errorf("Frontmatter = %q, want %q", frontmatter, tt.expectedFrontmatter)
			}
			if body != tt.expectedBody {
				t.Errorf("Body = %q, want %q", body, tt.expectedBody)
			}
		})
	}
}

func TestTagListScalarOrSequence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single scalar", input: "tags: vim", expected: []string{"vim"}},
		{name: "sequence", input: "tags: [vim, bash]", expected: []string{"vim", "bash"}},
		{name: "block sequence", input: "tags:\n  - vim\n  - bash", expected: []string{"vim", "bash"}},
		{name: "absent", input: "title: x", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				Tags TagList `yaml:"tags"`
			}
			if err := yaml.Unmarshal([]byte(tt.input), &out); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if len(out.Tags) != len(tt.expected) {
				t.Fatalf("Tags = %v, want %v", out.Tags, tt.expected)
			}
			for i := range tt.expected {
				if out.Tags[i] != tt.expected[i] {
					t.Errorf("Tags[%d] = %q, want %q", i, out.Tags[i], tt.expected[i])
				}
			}
		})
	}
}

func TestParseFileRoundTrip(t *testing.T) {
	doc, err := New("Round trip", time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	doc.Tags = TagList{"vim", "bash"}
	doc.Authors = []string{"steve"}
	doc.Body = "Some body text."

	rendered, err := doc.RenderDisk()
	if err != nil {
		t.Fatalf("RenderDisk failed: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loaded, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	if loaded.ID != doc.ID || loaded.OrigID != doc.OrigID {
		t.Errorf("Identity mismatch: got %s/%s, want %s/%s", loaded.ID, loaded.OrigID, doc.ID, doc.OrigID)
	}
	if loaded.Title != doc.Title {
		t.Errorf("Title = %q, want %q", loaded.Title, doc.Title)
	}
	if loaded.Body != doc.Body {
		t.Errorf("Body = %q, want %q", loaded.Body, doc.Body)
	}
	if loaded.Filename != "note.md" {
		t.Errorf("Filename = %q, want note.md", loaded.Filename)
	}
	if len(loaded.Tags) != 2 {
		t.Errorf("Tags = %v, want two entries", loaded.Tags)
	}
}

func TestParseFileWithoutFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.md")
	if err := os.WriteFile(path, []byte("no frontmatter here"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := ParseFile(path); err == nil {
		t.Fatal("Expected error for file without frontmatter, got nil")
	}
}

func TestParseLegacyFile(t *testing.T) {
	content := `---
title: Old note
subtitle: from the archive
author: steve
date: 2019-10-05T08:00:00-07:00
tags: vim
---
Legacy body.`

	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	now := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	doc, err := ParseLegacyFile(path, now)
	if err != nil {
		t.Fatalf("ParseLegacyFile failed: %v", err)
	}

	if doc.ID == "" || doc.ID != doc.OrigID {
		t.Errorf("Expected fresh matching identity, got %s/%s", doc.ID, doc.OrigID)
	}
	if doc.Revision != 1 || !doc.Latest {
		t.Errorf("Expected revision 1 latest, got revision %d latest %v", doc.Revision, doc.Latest)
	}
	if doc.Title != "Old note" || doc.Subtitle != "from the archive" {
		t.Errorf("Unexpected title/subtitle: %q/%q", doc.Title, doc.Subtitle)
	}
	if len(doc.Authors) != 1 || doc.Authors[0] != "steve" {
		t.Errorf("Authors = %v, want [steve]", doc.Authors)
	}
	if len(doc.Tags) != 1 || doc.Tags[0] != "vim" {
		t.Errorf("Tags = %v, want [vim]", doc.Tags)
	}
	if doc.Date != "2019-10-05T08:00:00-07:00" {
		t.Errorf("Date = %q, want the frontmatter date", doc.Date)
	}
	if !strings.Contains(doc.Body, "Legacy body.") {
		t.Errorf("Body = %q, want legacy body", doc.Body)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantUTC string
		wantErr bool
	}{
		{name: "rfc3339", date: "2019-10-05T08:00:00-07:00", wantUTC: "2019-10-05T15:00:00Z"},
		{name: "zulu", date: "2019-10-05T15:00:00Z", wantUTC: "2019-10-05T15:00:00Z"},
		{name: "offset without colon", date: "2019-10-05T08:00:00-0700", wantUTC: "2019-10-05T15:00:00Z"},
		{name: "garbage", date: "last tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Document{Date: tt.date}
			got, err := d.DateUTC()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("DateUTC failed: %v", err)
			}
			if got != tt.wantUTC {
				t.Errorf("DateUTC = %q, want %q", got, tt.wantUTC)
			}
		})
	}
}
