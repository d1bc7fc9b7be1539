// File: cmd/tree.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"promptdeck/pkg/app"
	"promptdeck/pkg/catalog"
)

var treeTokens bool

// treeCmd renders the project file tree.
var treeCmd = &cobra.Command{
	Use:   "tree [directory]",
	Short: "Render the filtered file tree for a project folder",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		a := app.New(logger)
		if err := a.SetFolder(dir); err != nil {
			return err
		}

		fmt.Print(a.RenderTree())

		if treeTokens {
			tree := catalog.BuildTree(a.Catalog.Entries)
			total := catalog.TokenSum(tree, a.Catalog.Entries)
			fmt.Printf("\nestimated tokens: %d / %d (%.2f%%)\n",
				total, a.Config.TokenBudget,
				float64(total)/float64(a.Config.TokenBudget)*100)
		}
		return nil
	},
}

func init() {
	treeCmd.Flags().BoolVarP(&treeTokens, "tokens", "t", false, "Print the estimated token total for the tree")
	RootCmd.AddCommand(treeCmd)
}
