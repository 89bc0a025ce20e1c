package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/little-fluffy/notesearch/importer"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <glob>",
		Short: "Import notes matching the unexpanded glob pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(a, cmd, args[0], importer.FormatNative)
		},
	}
}

func newImportMdCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import-md <glob>",
		Short: "Import legacy markdown notes matching the unexpanded glob pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(a, cmd, args[0], importer.FormatLegacy)
		},
	}
}

func runImport(a *app, cmd *cobra.Command, pattern string, format importer.Format) error {
	imp := importer.New(a.client, a.verbosity > 0)
	report, err := imp.Import(cmd.Context(), pattern, format)
	if err != nil {
		return err
	}

	fmt.Printf("imported %d notes", report.Imported)
	if report.Failed > 0 {
		fmt.Printf(", %d failed", report.Failed)
	}
	fmt.Println()
	return nil
}
