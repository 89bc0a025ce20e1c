package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ParseFrontmatter splits markdown content into its YAML frontmatter block
// and the body. Content without a leading delimiter is all body. A leading
// delimiter without a closing one is an error.
func ParseFrontmatter(content string) (frontmatter, body string, err error) {
	if !strings.HasPrefix(content, frontmatterDelimiter+"\n") && content != frontmatterDelimiter {
		return "", content, nil
	}

	rest := strings.TrimPrefix(content, frontmatterDelimiter+"\n")
	idx := strings.Index(rest, "\n"+frontmatterDelimiter)
	if idx < 0 {
		// a closing delimiter at the very start of rest means empty frontmatter
		if strings.HasPrefix(rest, frontmatterDelimiter+"\n") {
			return "", strings.TrimPrefix(rest, frontmatterDelimiter+"\n"), nil
		}
		return "", "", fmt.Errorf("missing closing frontmatter delimiter")
	}

	frontmatter = rest[:idx]
	body = rest[idx+len("\n"+frontmatterDelimiter):]
	body = strings.TrimPrefix(body, "\n")
	return frontmatter, body, nil
}

// ParseFile loads a document from a markdown file with full frontmatter.
func ParseFile(path string) (*Document, error) {
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

	var doc Document
	if err := yaml.Unmarshal([]byte(fm), &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	doc.Body = strings.TrimSpace(body)
	doc.Filename = filepath.Base(path)
	return &doc, nil
}

// RenderDisk re-emits the document in its on-disk form: YAML frontmatter
// between delimiters, then the body. Round-trips with ParseFile.
func (d *Document) RenderDisk() (string, error) {
	yamlBytes, err := yaml.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var content strings.Builder
	content.WriteString(frontmatterDelimiter + "\n")
	content.Write(yamlBytes)
	content.WriteString(frontmatterDelimiter + "\n")
	if d.Body != "" {
		content.WriteString(d.Body)
		content.WriteString("\n")
	}
	return content.String(), nil
}
