// Package bind extracts and validates command flags into the option
// structs consumed by the service packages. Configuration values act as
// defaults; a flag the user actually set wins.
package bind

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/pkg/config"
)

// DNSOptions are the resolved inputs for the dns command.
type DNSOptions struct {
	Domain      string
	Wordlist    string
	Numeric     bool
	Timeout     time.Duration
	Nameservers []string
}

// BindDNSOptions merges dns command flags over the configured defaults.
func BindDNSOptions(cmd *cobra.Command, defaults config.DNSConfig) (DNSOptions, error) {
	opts := DNSOptions{
		Wordlist:    defaults.Wordlist,
		Numeric:     defaults.Numeric,
		Timeout:     defaults.TimeoutDuration(),
		Nameservers: defaults.Nameservers,
	}

	opts.Domain, _ = cmd.Flags().GetString("domain")
	if opts.Domain == "" {
		return DNSOptions{}, errors.New("a target domain is required (--domain)")
	}

	if cmd.Flags().Changed("wordlist") {
		opts.Wordlist, _ = cmd.Flags().GetString("wordlist")
	}
	if cmd.Flags().Changed("numeric") {
		opts.Numeric, _ = cmd.Flags().GetBool("numeric")
	}
	if cmd.Flags().Changed("timeout") {
		secs, _ := cmd.Flags().GetFloat64("timeout")
		if secs <= 0 {
			return DNSOptions{}, errors.New("timeout must be positive")
		}
		opts.Timeout = time.Duration(secs * float64(time.Second))
	}
	if cmd.Flags().Changed("nameserver") {
		opts.Nameservers, _ = cmd.Flags().GetStringSlice("nameserver")
	}

	return opts, nil
}
