// File: cmd/scan.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"promptdeck/pkg/app"
)

// scanCmd scans a folder and reports what the walker saw.
var scanCmd = &cobra.Command{
	Use:   "scan [directory]",
	Short: "Scan a project folder and report discovered files",
	Long: `Scan walks the given folder (default: current directory), applies the
resolved .promptignore rules, and prints the discovered file list with
scan statistics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		a := app.New(logger)
		if err := a.SetFolder(dir); err != nil {
			return err
		}

		stats := a.Catalog.Stats
		for i := range a.Catalog.Entries {
			fmt.Printf("%s (%d tokens est.)\n",
				a.Catalog.Entries[i].RelPath, a.Catalog.Entries[i].Tokens)
		}
		fmt.Printf("\nfiles: %d  scanned: %d  ignored files: %d  ignored dirs: %d  symlinks skipped: %d\n",
			len(a.Catalog.Entries), stats.Scanned, stats.IgnoredFiles,
			stats.IgnoredDirs, stats.SymlinksSkipped)
		if stats.Truncated {
			fmt.Printf("warning: more than %d files detected; only the first %d were loaded\n",
				a.Config.MaxFiles, a.Config.MaxFiles)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(scanCmd)
}
