package bind

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/pkg/config"
)

// ScanOptions are the resolved inputs for the scan command. Port set,
// timeout, and source port deliberately have no flags; they come from the
// configuration file or environment only.
type ScanOptions struct {
	Targets       []string
	Ports         []int
	Timeout       time.Duration
	SourcePort    int
	RequireSynAck bool
}

// BindScanOptions collects targets from the --targets flag and positional
// arguments, and scan parameters from the configuration.
func BindScanOptions(cmd *cobra.Command, args []string, defaults config.ScanConfig) (ScanOptions, error) {
	targetFlags, _ := cmd.Flags().GetStringSlice("targets")
	targets := make([]string, 0, len(targetFlags)+len(args))
	targets = append(targets, targetFlags...)
	targets = append(targets, args...)

	if len(targets) == 0 {
		return ScanOptions{}, errors.New("no targets specified")
	}

	return ScanOptions{
		Targets:       targets,
		Ports:         defaults.PortList(),
		Timeout:       defaults.TimeoutDuration(),
		SourcePort:    defaults.SourcePort,
		RequireSynAck: defaults.RequireSynAck,
	}, nil
}
