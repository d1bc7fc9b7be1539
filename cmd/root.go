package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"promptdeck/pkg/logging"
	"promptdeck/pkg/version"
)

// logger is shared by all subcommands; set once by Execute.
var logger *zap.Logger

var debugMode bool

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "promptdeck",
	Short: "Promptdeck assembles project files into one LLM-ready prompt",
	Long: `Promptdeck scans a project folder, filters it through .promptignore rules,
and assembles selected file contents, a file tree, remote web text, and
captured terminal output into a single structured prompt document.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugMode {
			if err := logging.Setup(true, "Promptdeck", version.Version); err != nil {
				return err
			}
			logger = logging.Logger
		}
		return nil
	},
}

// Execute adds all child commands to the root command and runs it with the
// provided logger.
func Execute(l *zap.Logger) error {
	logger = l
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}
