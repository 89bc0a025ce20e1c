package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/little-fluffy/notesearch/document"
	"github.com/little-fluffy/notesearch/meili"
)

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <dir>",
		Short: "Dump all notes to a local path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}

			// an empty query matches everything; the default limit is high
			// enough that a personal collection fits in one response
			resp, err := a.client.Search(cmd.Context(), meili.NewQuery())
			if err != nil {
				return err
			}

			written := 0
			for i := range resp.Hits {
				doc := &resp.Hits[i]
				content, err := doc.RenderDisk()
				if err != nil {
					slog.Warn("skipping document", "id", doc.ID, "error", err)
					continue
				}

				path := filepath.Join(dir, dumpFilename(doc))
				if err := os.WriteFile(path, []byte(content), 0644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				written++
			}

			fmt.Printf("wrote %d notes to %s\n", written, dir)
			return nil
		},
	}
}

func dumpFilename(doc *document.Document) string {
	switch {
	case doc.Filename != "":
		return doc.Filename
	case doc.Slug != "":
		return doc.Slug + ".md"
	default:
		return doc.ID + ".md"
	}
}
