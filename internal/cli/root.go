package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/little-fluffy/notesearch/config"
	"github.com/little-fluffy/notesearch/meili"
)

// app carries the state shared by all subcommands: the loaded configuration
// and the backend client, both built in the root PersistentPreRunE.
type app struct {
	cfg       *config.Config
	client    *meili.Client
	verbosity int
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "notesearch",
		Short:         "Store and retrieve Zettelkasten-style notes in Meilisearch",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			config.SetupLogging(cfg.Logging.Level)

			client, err := meili.NewClient(cfg.Meili.Host, cfg.Meili.Index, meili.WithAPIKey(cfg.Meili.Key))
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.client = client
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("host", "", "Meilisearch server URL (env MEILI_HOST)")
	flags.String("key", "", "Meilisearch API key (env MEILI_KEY)")
	flags.String("index", "", "index to store and search notes in")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.CountVarP(&a.verbosity, "verbose", "v", "switch on verbosity")

	root.AddCommand(
		newImportCmd(a),
		newImportMdCmd(a),
		newQueryCmd(a),
		newBrowseCmd(a),
		newDumpCmd(a),
		newNewCmd(a),
	)
	return root
}

// Execute runs the CLI and returns a process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
