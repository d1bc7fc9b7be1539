// File: cmd/fetch.go
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"promptdeck/pkg/remote"
)

var fetchTimeout int

// fetchCmd fetches a URL and prints its extracted text.
var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a URL and print its extracted plain text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher := remote.NewFetcher(time.Duration(fetchTimeout)*time.Second, logger)
		text, err := fetcher.Fetch(args[0])
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil
	},
}

func init() {
	fetchCmd.Flags().IntVarP(&fetchTimeout, "timeout", "t", 30, "Request timeout in seconds")
	RootCmd.AddCommand(fetchCmd)
}
