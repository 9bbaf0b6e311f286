package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/pkg/discovery"
)

// NewPingCommand defines the 'ping' command: an ICMP liveness check.
func NewPingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping [hosts...]",
		Short: "Check host liveness with ICMP echo requests",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPingCommand,
	}

	cmd.Flags().Int("count", 0, "Echo requests per host (default from config)")
	cmd.Flags().Bool("privileged", false, "Use raw ICMP sockets (requires root)")

	return cmd
}

func runPingCommand(cmd *cobra.Command, args []string) error {
	out := outputFromContext(cmd)
	cfg := configFromContext(cmd).Ping

	count := cfg.Count
	if cmd.Flags().Changed("count") {
		count, _ = cmd.Flags().GetInt("count")
	}
	privileged := cfg.Privileged
	if cmd.Flags().Changed("privileged") {
		privileged, _ = cmd.Flags().GetBool("privileged")
	}

	liveness := discovery.NewLiveness(out, discovery.Config{
		Count:      count,
		Timeout:    time.Duration(cfg.Timeout * float64(time.Second)),
		Privileged: privileged,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for _, host := range args {
		alive, err := liveness.Check(ctx, host)
		if err != nil {
			out.Error(err)
			return err
		}
		out.Result("ping", map[string]any{"host": host, "alive": alive})
	}

	return nil
}
