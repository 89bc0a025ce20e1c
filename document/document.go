package document

import (
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gopkg.in/yaml.v3"
)

// Document is one note as the search backend sees it. JSON tags shape the
// payload sent to and received from the backend; YAML tags shape the
// on-disk frontmatter.
type Document struct {
	ID      string   `json:"id" yaml:"id"`
	OrigID  string   `json:"origid" yaml:"origid"`
	Authors []string `json:"authors" yaml:"authors"`
	Body    string   `json:"body" yaml:"-"`
	// Date is an RFC 3339 timestamp string
	Date          string   `json:"date" yaml:"date"`
	Latest        bool     `json:"latest" yaml:"latest"`
	Revision      int      `json:"revision" yaml:"revision"`
	Title         string   `json:"title" yaml:"title"`
	Subtitle      string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Tags          TagList  `json:"tags" yaml:"tags"`
	Links         []string `json:"links,omitempty" yaml:"links,omitempty"`
	Slug          string   `json:"slug,omitempty" yaml:"slug,omitempty"`
	BackgroundImg string   `json:"background_img,omitempty" yaml:"background_img,omitempty"`
	Weight        int      `json:"weight" yaml:"weight"`
	Filename      string   `json:"filename,omitempty" yaml:"-"`
}

// TagList unmarshals from either a single YAML scalar or a sequence, so
// frontmatter may say "tags: vim" as well as "tags: [vim, bash]".
type TagList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if s == "" {
			*t = nil
			return nil
		}
		*t = TagList{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*t = TagList(list)
		return nil
	default:
		return fmt.Errorf("tags must be a string or a list of strings")
	}
}

// New creates a fresh document with a generated ID. A new document is its
// own original: ID and OrigID match until a revision is made.
func New(title string, now time.Time) (*Document, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generating document id: %w", err)
	}
	return &Document{
		ID:       id,
		OrigID:   id,
		Date:     now.UTC().Format(time.RFC3339),
		Latest:   true,
		Revision: 1,
		Title:    title,
	}, nil
}

// dateFallbackLayout accepts timestamps without the RFC 3339 colon in the
// zone offset, which older notes in the wild carry.
const dateFallbackLayout = "2006-01-02T15:04:05-0700"

// ParseDate parses the document's date string.
func (d *Document) ParseDate() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, d.Date); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateFallbackLayout, d.Date); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", d.Date)
}

// DateUTC returns the document date normalized to UTC in RFC 3339 form.
func (d *Document) DateUTC() (string, error) {
	t, err := d.ParseDate()
	if err != nil {
		return "", err
	}
	return t.UTC().Format(time.RFC3339), nil
}

// Summary is the one-line listing form used in result lists.
func (d *Document) Summary() string {
	var b strings.Builder
	b.WriteString(d.Title)
	if d.Subtitle != "" {
		b.WriteString(" — ")
		b.WriteString(d.Subtitle)
	}
	if len(d.Tags) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(d.Tags, ", "))
	}
	return b.String()
}

func (d *Document) String() string {
	return fmt.Sprintf("%s (%s)", d.Title, d.Date)
}
