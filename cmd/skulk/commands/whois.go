package commands

import (
	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/pkg/whoisx"
)

// NewWhoisCommand defines the 'whois' command: registration data for a
// domain or IP.
func NewWhoisCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whois <domain-or-ip>",
		Short: "Look up registration data for a domain or IP",
		Args:  cobra.ExactArgs(1),
		RunE:  runWhoisCommand,
	}
}

func runWhoisCommand(cmd *cobra.Command, args []string) error {
	out := outputFromContext(cmd)

	record, err := whoisx.NewClient().Lookup(args[0])
	if err != nil {
		out.Error(err)
		return err
	}

	for _, line := range record.Summary() {
		out.Info(line)
	}
	out.Result("whois", record)
	return nil
}
