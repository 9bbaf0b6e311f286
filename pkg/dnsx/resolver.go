// Package dnsx implements the DNS side of the toolkit: bounded A-record
// resolution with classified outcomes, and best-effort reverse lookup.
package dnsx

import (
	"net"
	"time"

	"github.com/miekg/dns"
	"github.com/rs/zerolog/log"
)

// resolvConfPath is where the system nameserver list is read from when the
// caller does not supply one.
const resolvConfPath = "/etc/resolv.conf"

// FailureKind classifies why a resolution produced no addresses. An empty
// result is a designed state with a name, not a dropped error: callers see
// the same silence either way, and the kind surfaces only in diagnostics.
type FailureKind int

const (
	// FailureNone means the query succeeded and Addresses is non-empty.
	FailureNone FailureKind = iota

	// FailureNoRecord covers NXDOMAIN, an empty answer section, and any
	// unexpected resolver error (fail-quiet policy).
	FailureNoRecord

	// FailureNoNameserver means no configured nameserver produced a
	// usable response (SERVFAIL, REFUSED, or network errors on all).
	FailureNoNameserver

	// FailureTimeout means the resolution budget elapsed.
	FailureTimeout
)

// String returns the classification name used in diagnostics.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "None"
	case FailureNoRecord:
		return "NoRecord"
	case FailureNoNameserver:
		return "NoNameserver"
	case FailureTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// Outcome is the result of one A-record query. Addresses is non-empty only
// when Failure == FailureNone. Outcomes are created per query and never
// cached.
type Outcome struct {
	Domain    string   `json:"domain"`
	Addresses []string `json:"addresses,omitempty"`
	Failure   FailureKind
}

// Config is the per-call resolver configuration. A fresh one is consumed by
// every ResolveA call, so no timeout or nameserver override can leak from
// one query into the next.
type Config struct {
	// Timeout bounds both the per-nameserver attempt and the overall
	// operation.
	Timeout time.Duration

	// Nameservers optionally overrides the system resolver list. Entries
	// may be "host" or "host:port"; bare hosts get port 53.
	Nameservers []string
}

// exchangeFunc performs one DNS exchange against one server. Injected in
// tests; production uses wireExchange.
type exchangeFunc func(m *dns.Msg, server string, timeout time.Duration) (*dns.Msg, error)

func wireExchange(m *dns.Msg, server string, timeout time.Duration) (*dns.Msg, error) {
	// A fresh client per exchange keeps per-call timeouts reliable.
	c := &dns.Client{Timeout: timeout}
	r, _, err := c.Exchange(m, server)
	return r, err
}

// ResolveA resolves A records for a FQDN.
//
// Every failure branch returns an empty address list; the failure kind is
// observable only through the debug log, never through control flow. Recon
// output must stay readable regardless of why a domain produced nothing.
func ResolveA(domain string, cfg Config) Outcome {
	return resolveA(domain, cfg, wireExchange)
}

func resolveA(domain string, cfg Config, exchange exchangeFunc) Outcome {
	logger := log.With().Str("component", "resolver").Str("domain", domain).Logger()

	servers := nameserverList(cfg.Nameservers)
	if len(servers) == 0 {
		logger.Debug().Msg("no nameservers configured")
		return Outcome{Domain: domain, Failure: FailureNoNameserver}
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), dns.TypeA)
	m.RecursionDesired = true

	deadline := time.Now().Add(cfg.Timeout)
	sawTimeout := false

	for _, server := range servers {
		if !time.Now().Before(deadline) {
			sawTimeout = true
			break
		}

		r, err := exchange(m, server, cfg.Timeout)
		if err != nil {
			if isTimeout(err) {
				logger.Debug().Str("server", server).Dur("timeout", cfg.Timeout).Msg("exchange timed out")
				sawTimeout = true
				continue
			}
			if _, ok := err.(net.Error); ok {
				logger.Debug().Str("server", server).Err(err).Msg("nameserver unreachable")
				continue
			}
			// Unexpected resolver error: fail quiet, report as no record.
			logger.Debug().Str("server", server).Err(err).Msg("unexpected resolver error")
			return Outcome{Domain: domain, Failure: FailureNoRecord}
		}

		switch r.Rcode {
		case dns.RcodeNameError:
			logger.Debug().Msg("no A record: NXDOMAIN")
			return Outcome{Domain: domain, Failure: FailureNoRecord}

		case dns.RcodeSuccess:
			addrs := collectA(r)
			if len(addrs) == 0 {
				logger.Debug().Msg("no A record: empty answer")
				return Outcome{Domain: domain, Failure: FailureNoRecord}
			}
			logger.Debug().Strs("addresses", addrs).Msg("A records resolved")
			return Outcome{Domain: domain, Addresses: addrs, Failure: FailureNone}

		default:
			// SERVFAIL, REFUSED and friends count against the server.
			logger.Debug().Str("server", server).Str("rcode", dns.RcodeToString[r.Rcode]).Msg("nameserver returned failure")
		}
	}

	if sawTimeout {
		logger.Debug().Dur("timeout", cfg.Timeout).Msg("resolution timed out")
		return Outcome{Domain: domain, Failure: FailureTimeout}
	}
	logger.Debug().Msg("no nameserver responded")
	return Outcome{Domain: domain, Failure: FailureNoNameserver}
}

// nameserverList normalizes the configured servers, falling back to the
// system resolver configuration. Read fresh on every call.
func nameserverList(configured []string) []string {
	var servers []string
	if len(configured) > 0 {
		servers = configured
	} else if cc, err := dns.ClientConfigFromFile(resolvConfPath); err == nil {
		for _, s := range cc.Servers {
			servers = append(servers, net.JoinHostPort(s, cc.Port))
		}
		return servers
	}

	normalized := make([]string, 0, len(servers))
	for _, s := range servers {
		if _, _, err := net.SplitHostPort(s); err != nil {
			s = net.JoinHostPort(s, "53")
		}
		normalized = append(normalized, s)
	}
	return normalized
}

// collectA extracts IPv4 addresses from the answer section in wire order.
func collectA(r *dns.Msg) []string {
	var addrs []string
	for _, ans := range r.Answer {
		if a, ok := ans.(*dns.A); ok {
			if v4 := a.A.To4(); v4 != nil {
				addrs = append(addrs, v4.String())
			}
		}
	}
	return addrs
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}
