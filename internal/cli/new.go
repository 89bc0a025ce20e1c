package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/little-fluffy/notesearch/document"
)

func newNewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a note: fill in a form, edit the body in $EDITOR, then import it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var title, subtitle, tags string

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Title").
						Validate(required).
						Value(&title),
					huh.NewInput().
						Title("Subtitle").
						Value(&subtitle),
					huh.NewInput().
						Title("Tags (comma separated)").
						Value(&tags),
				),
			)
			if err := form.Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}

			doc, err := document.New(title, time.Now())
			if err != nil {
				return err
			}
			doc.Subtitle = subtitle
			doc.Tags = splitTags(tags)

			path, err := writeTemplate(doc)
			if err != nil {
				return err
			}
			defer func() { _ = os.Remove(path) }()

			if err := openEditor(a.cfg.Editor, path); err != nil {
				return err
			}

			edited, err := document.ParseFile(path)
			if err != nil {
				return fmt.Errorf("reading edited note: %w", err)
			}

			if err := a.client.AddDocuments(cmd.Context(), []document.Document{*edited}); err != nil {
				return err
			}
			fmt.Println("added", edited.Title)
			return nil
		},
	}
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func splitTags(s string) document.TagList {
	var tags document.TagList
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func writeTemplate(doc *document.Document) (string, error) {
	content, err := doc.RenderDisk()
	if err != nil {
		return "", err
	}

	path := filepath.Join(os.TempDir(), doc.ID+".md")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("writing template: %w", err)
	}
	return path, nil
}

func openEditor(editor, path string) error {
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running editor %s: %w", editor, err)
	}
	return nil
}
