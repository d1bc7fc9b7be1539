// File: cmd/build.go
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"promptdeck/pkg/app"
	"promptdeck/pkg/remote"
)

var (
	buildInstruction string
	buildSelect      []string
	buildAll         bool
	buildURLs        []string
	buildRun         string
	buildOutput      string
	buildCopy        bool
)

// buildCmd assembles the prompt document for a folder.
var buildCmd = &cobra.Command{
	Use:   "build [directory]",
	Short: "Assemble the prompt document from selected files",
	Long: `Build scans the folder, selects files matching the --select globs (or all
files with --all), loads their contents in parallel, and assembles the final
tagged document. Remote URLs are fetched and included, and --run captures a
command's output into the document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		if !buildAll && len(buildSelect) == 0 {
			return fmt.Errorf("nothing selected: pass --all or at least one --select glob")
		}

		a := app.New(logger)
		if err := a.SetFolder(dir); err != nil {
			return err
		}
		a.Instruction = buildInstruction

		if buildAll {
			a.SelectAll(true)
		} else {
			for i := range a.Catalog.Entries {
				for _, pattern := range buildSelect {
					if doublestar.MatchUnvalidated(pattern, a.Catalog.Entries[i].RelPath) {
						a.Catalog.Entries[i].Selected = true
						break
					}
				}
			}
		}

		fetcher := remote.NewFetcher(30*time.Second, logger)
		for _, url := range buildURLs {
			text, err := fetcher.Fetch(url)
			if err != nil {
				logger.Warn("Skipping remote source", zap.String("url", url), zap.Error(err))
				continue
			}
			idx := a.AddRemote(url)
			a.Remotes[idx].Content = &text
		}

		if buildRun != "" {
			if _, err := a.RunCommand(buildRun); err != nil {
				return err
			}
		}

		doc, err := a.Build()
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "tokens: %d (estimate %d) / %d\n",
			doc.Tokens, doc.Estimate, a.Config.TokenBudget)

		if buildCopy {
			if err := clipboard.WriteAll(doc.Text); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Fprintln(os.Stderr, "document copied to clipboard")
			return nil
		}
		if buildOutput != "" {
			if err := os.WriteFile(buildOutput, []byte(doc.Text), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", buildOutput, err)
			}
			fmt.Fprintf(os.Stderr, "document written to %s\n", buildOutput)
			return nil
		}
		fmt.Print(doc.Text)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildInstruction, "instruction", "i", "", "Free-text instruction emitted at the top and bottom of the document")
	buildCmd.Flags().StringArrayVarP(&buildSelect, "select", "s", nil, "Glob over relative paths selecting files to include (repeatable)")
	buildCmd.Flags().BoolVarP(&buildAll, "all", "a", false, "Select every discovered file")
	buildCmd.Flags().StringArrayVarP(&buildURLs, "url", "u", nil, "Remote URL whose extracted text is included (repeatable)")
	buildCmd.Flags().StringVarP(&buildRun, "run", "r", "", "Command to run in the project root; its output is included")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Write the document to a file instead of stdout")
	buildCmd.Flags().BoolVarP(&buildCopy, "copy", "c", false, "Copy the document to the clipboard instead of printing it")
	RootCmd.AddCommand(buildCmd)
}
