package dnsx

import (
	"net"
	"strings"

	"github.com/rs/zerolog/log"
)

// Reverse is the outcome of a PTR lookup. An empty Hostname is a normal,
// non-error state; the cause is never distinguished.
type Reverse struct {
	Address  string `json:"address"`
	Hostname string `json:"hostname,omitempty"`
}

// lookupAddrFunc performs the PTR query. Injected in tests; production uses
// net.LookupAddr.
type lookupAddrFunc func(addr string) ([]string, error)

// ReverseLookup attempts to obtain a PTR hostname for an IPv4 address.
//
// The lookup blocks on the system resolver with its platform-default
// timeout. PTR records are optional and lots of IPs won't have them, so
// every failure collapses to an empty hostname and nothing propagates to
// the caller.
func ReverseLookup(addr string) Reverse {
	return reverseLookup(addr, net.LookupAddr)
}

func reverseLookup(addr string, lookup lookupAddrFunc) Reverse {
	logger := log.With().Str("component", "reverse").Str("address", addr).Logger()

	names, err := lookup(addr)
	if err != nil || len(names) == 0 {
		logger.Debug().Err(err).Msg("PTR lookup failed")
		return Reverse{Address: addr}
	}

	host := strings.TrimSuffix(names[0], ".")
	logger.Debug().Str("hostname", host).Msg("PTR lookup succeeded")
	return Reverse{Address: addr, Hostname: host}
}
