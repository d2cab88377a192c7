// VCLink - companion threads for Discord voice channels
// License: MIT

package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	gitCommit string
	buildTime string
)

func main() {
	root := &cobra.Command{
		Use:          "vclink",
		Short:        "Discord bot linking custom voice channels to companion threads",
		SilenceUsage: true,
	}

	root.AddCommand(
		newGatewayCommand(),
		newOnboardCommand(),
		newVersionCommand(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
