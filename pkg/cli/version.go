// Package cli holds small command helpers shared by the skulk binary.
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build metadata, overridden at link time:
//
//	-ldflags "-X github.com/skulk-project/skulk/pkg/cli.Version=v0.2.0"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewVersionCommand returns the `version` subcommand for the given
// executable name.
func NewVersionCommand(executable string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s, %s/%s)\n",
				executable, Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
		},
	}
}
