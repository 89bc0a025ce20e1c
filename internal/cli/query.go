package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/little-fluffy/notesearch/filter"
	"github.com/little-fluffy/notesearch/meili"
	"github.com/little-fluffy/notesearch/tui"
)

func newQueryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query [query] [filter]",
		Short: "Non-interactive query, all parameters from the command line",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := meili.NewQuery()
			if len(args) > 0 {
				q.Query = args[0]
			}
			if len(args) > 1 && args[1] != "" {
				// a filter the compiler rejects aborts the command; we never
				// quietly run the query unfiltered
				compiled, err := filter.Compile(args[1], time.Now())
				if err != nil {
					return fmt.Errorf("filter %q rejected: %w", args[1], err)
				}
				q.Filter = compiled
			}

			resp, err := a.client.Search(cmd.Context(), q)
			if err != nil {
				return err
			}

			var out strings.Builder
			for i := range resp.Hits {
				out.WriteString(resp.Hits[i].Summary())
				out.WriteByte('\n')
			}
			if a.verbosity > 0 {
				fmt.Fprintf(&out, "%d hits in %dms\n", resp.NumHits, resp.ProcessingTimeMs)
			}
			return pageOutput(a.cfg.Pager, out.String())
		},
	}
}

// pageOutput pipes content through the configured pager when stdout is a
// terminal, and prints it directly otherwise (pipes, redirects, tests).
func pageOutput(pager, content string) error {
	if pager == "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print(content)
		return nil
	}

	// the pager setting may carry arguments, e.g. "less -R"
	parts := strings.Fields(pager)
	if len(parts) == 0 {
		fmt.Print(content)
		return nil
	}
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Print(content)
		return fmt.Errorf("running pager %s: %w", parts[0], err)
	}
	return nil
}

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactively query the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// fail fast with a readable error instead of an empty screen
			if err := a.client.Health(cmd.Context()); err != nil {
				return err
			}

			browser := tui.NewBrowser(a.client, a.verbosity > 0)
			selected, err := browser.Run()
			if err != nil {
				return err
			}
			if len(selected) > 0 {
				fmt.Println("Document IDs:", selected)
			}
			return nil
		},
	}
}
