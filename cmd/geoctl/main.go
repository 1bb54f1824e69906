// Command geoctl runs the proximity core from the shell: distances, zoom
// levels and radius filtering over JSON record files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "geoctl",
		Short:         "Proximity tooling for the petfinder backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newDistanceCmd(),
		newZoomCmd(),
		newFilterCmd(),
		newTokenCmd(),
	)
	return root
}
