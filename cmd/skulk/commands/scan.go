package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/cmd/skulk/internal/bind"
	"github.com/skulk-project/skulk/pkg/rawscan"
)

// NewScanCommand defines the 'scan' command: a SYN port scan followed by a
// DNS service probe, per target.
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [targets...]",
		Short: "SYN-scan targets and probe them for DNS service",
		Long: `Sends raw TCP SYN segments to a fixed port set and reports ports that
answer, then checks whether each target responds to a DNS query on UDP/53.
Requires root for the raw socket. Port set and timing come from the
configuration file or SKULK_SCAN_* environment variables.`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCommand,
	}

	cmd.Flags().StringSliceP("targets", "t", []string{}, "Target hosts (can be used multiple times or comma-separated)")

	return cmd
}

func runScanCommand(cmd *cobra.Command, args []string) error {
	out := outputFromContext(cmd)
	cfg := configFromContext(cmd)

	opts, err := bind.BindScanOptions(cmd, args, cfg.Scan)
	if err != nil {
		out.Error(err)
		return err
	}

	logger := log.With().Str("command", "scan").Logger()
	logger.Info().Strs("targets", opts.Targets).Msg("starting packet scans")

	scanner := rawscan.NewScanner(out, rawscan.Config{
		Ports:         opts.Ports,
		Timeout:       opts.Timeout,
		SourcePort:    opts.SourcePort,
		RequireSynAck: opts.RequireSynAck,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for _, host := range opts.Targets {
		out.Info(fmt.Sprintf("[*] Starting scans on %s", host))

		synResult, err := scanner.SynScan(ctx, host)
		if err != nil {
			out.Error(err)
			return err
		}
		out.Result("syn_scan", synResult)

		dnsResult, err := scanner.DNSProbe(ctx, host)
		if err != nil {
			out.Error(err)
			return err
		}
		out.Result("dns_probe", dnsResult)
	}

	return nil
}
