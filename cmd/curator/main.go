// Command curator serves the metadata catalog and exposes its duration and
// image helpers on the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "curator",
		Short: "Metadata catalog server",
		Long: `curator keeps a catalog of scenes, performers, studios and tags and
serves it as display-ready cards over HTTP.

Available subcommands:
  serve    - Run the HTTP API
  duration - Format or parse [H:]MM:SS durations
  image    - Pick the best image for an orientation`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newDurationCmd())
	root.AddCommand(newImageCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
