// File: cmd/run.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"promptdeck/pkg/app"
)

var runDir string

// runCmd executes a command in the project root and prints its capped output.
var runCmd = &cobra.Command{
	Use:   "run <command line>",
	Short: "Run a command in the project root with bounded output capture",
	Long: `Run executes a shell-like command line in the project root. Leading
KEY=VALUE tokens become child environment overrides. Output is head/tail
capped, the command is recorded in the project history, and a timeout
force-kills the child rather than leaving it orphaned.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.New(logger)
		if err := a.SetFolder(runDir); err != nil {
			return err
		}

		line := ""
		for i, arg := range args {
			if i > 0 {
				line += " "
			}
			line += arg
		}

		out, err := a.RunCommand(line)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runDir, "dir", "d", ".", "Project root the command runs in")
	RootCmd.AddCommand(runCmd)
}
