// Package probe orchestrates the per-domain unit of work: resolve A
// records, reverse-resolve each address, and emit the human-readable lines.
package probe

import (
	"fmt"

	"github.com/skulk-project/skulk/pkg/dnsx"
	"github.com/skulk-project/skulk/pkg/enum"
	"github.com/skulk-project/skulk/pkg/output"
)

// resolveFunc and reverseFunc are the injectable adapters. Production wiring
// uses dnsx; tests substitute fakes.
type (
	resolveFunc func(domain string, cfg dnsx.Config) dnsx.Outcome
	reverseFunc func(addr string) dnsx.Reverse
)

// Prober runs probes for candidate domains. It is stateless across calls:
// each Probe builds its resolver configuration from the same immutable
// Config value, and nothing is shared between invocations.
type Prober struct {
	out     output.Output
	cfg     dnsx.Config
	resolve resolveFunc
	reverse reverseFunc
}

// New creates a Prober emitting to out, resolving with the given per-call
// configuration.
func New(out output.Output, cfg dnsx.Config) *Prober {
	return &Prober{
		out:     out,
		cfg:     cfg,
		resolve: dnsx.ResolveA,
		reverse: dnsx.ReverseLookup,
	}
}

// Probe resolves a domain and emits A and PTR lines for every address.
//
// A negative resolution emits nothing: during a brute-force run most
// candidates legitimately have nothing to report, and silence keeps the
// output readable.
func (p *Prober) Probe(domain string) {
	outcome := p.resolve(domain, p.cfg)
	if len(outcome.Addresses) == 0 {
		p.out.Diag(output.LevelDebug, "probe produced nothing", map[string]any{
			"domain": domain,
			"kind":   outcome.Failure.String(),
		})
		return
	}

	for _, addr := range outcome.Addresses {
		p.out.Info(fmt.Sprintf("[+] A: %s -> %s", domain, addr))

		if rev := p.reverse(addr); rev.Hostname != "" {
			p.out.Info(fmt.Sprintf("  PTR: %s", rev.Hostname))
		}
	}
}

// BruteForce probes every candidate generated from the wordlist, in
// candidate order, strictly sequentially.
func (p *Prober) BruteForce(domain string, words []string, numeric bool) {
	for candidate := range enum.Candidates(domain, words, numeric) {
		p.Probe(candidate)
	}
}
