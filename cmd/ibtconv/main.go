// Command ibtconv inspects and exports iRacing .ibt telemetry files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ibtconv",
		Short:         "Inspect and export iRacing .ibt telemetry files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(inspectCmd())
	root.AddCommand(exportCmd())

	return root
}
