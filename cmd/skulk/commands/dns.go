package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/cmd/skulk/internal/bind"
	"github.com/skulk-project/skulk/pkg/dnsx"
	"github.com/skulk-project/skulk/pkg/enum"
	"github.com/skulk-project/skulk/pkg/output"
	"github.com/skulk-project/skulk/pkg/probe"
)

// NewDNSCommand defines the 'dns' command: forward resolution of a domain
// plus optional wordlist-driven subdomain brute forcing.
func NewDNSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dns",
		Short: "Resolve a domain and brute-force subdomains from a wordlist",
		Long: `Resolves the target domain to its A records, reverse-resolves each
address, and optionally expands a wordlist into subdomain candidates to
probe the same way.`,
		RunE: runDNSCommand,
	}

	cmd.Flags().StringP("domain", "d", "", "Target domain (required)")
	cmd.Flags().StringP("wordlist", "w", "", "Subdomain wordlist file, one label per line")
	cmd.Flags().BoolP("numeric", "n", false, "Also try numeric suffixes 0-9 for each word")
	cmd.Flags().Float64P("timeout", "t", 3.0, "Resolver timeout in seconds")
	cmd.Flags().StringSlice("nameserver", nil, "Nameserver to query (repeatable; defaults to the system resolvers)")
	_ = cmd.MarkFlagRequired("domain")

	return cmd
}

func runDNSCommand(cmd *cobra.Command, args []string) error {
	out := outputFromContext(cmd)
	cfg := configFromContext(cmd)

	opts, err := bind.BindDNSOptions(cmd, cfg.DNS)
	if err != nil {
		out.Error(err)
		return err
	}

	logger := log.With().Str("command", "dns").Logger()
	logger.Info().Str("domain", opts.Domain).Str("wordlist", opts.Wordlist).Msg("starting dns discovery")

	prober := probe.New(out, dnsx.Config{
		Timeout:     opts.Timeout,
		Nameservers: opts.Nameservers,
	})

	prober.Probe(opts.Domain)

	if opts.Wordlist == "" {
		return nil
	}

	words, err := enum.LoadWordlist(opts.Wordlist)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing wordlist is a notice, not a failure: the root
			// domain results above are already useful.
			out.Info(fmt.Sprintf("[!] Wordlist not found: %s", opts.Wordlist))
			return nil
		}
		out.Error(err)
		return err
	}

	out.Diag(output.LevelVerbose, "wordlist loaded", map[string]any{
		"path":  opts.Wordlist,
		"lines": len(words),
	})
	prober.BruteForce(opts.Domain, words, opts.Numeric)
	return nil
}
