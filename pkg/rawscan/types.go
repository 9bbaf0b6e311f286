// Package rawscan implements half-open TCP port scanning and a UDP DNS
// reachability probe against single hosts.
//
// The SYN scanner sends hand-built TCP segments over a raw socket and
// correlates replies by port, so it needs elevated privileges and is only
// wired up on linux. The DNS probe uses an ordinary UDP socket and works
// everywhere.
package rawscan

import "time"

// DefaultPorts is the port set scanned when the configuration does not
// override it.
var DefaultPorts = []int{25, 53, 80, 443, 445, 8080, 8443}

// DefaultSourcePort is the fixed TCP source port stamped on outgoing SYN
// segments. Keeping it fixed makes reply correlation trivial.
const DefaultSourcePort = 5555

// Config controls a Scanner.
type Config struct {
	// Ports to SYN-scan, ascending. Defaults to DefaultPorts.
	Ports []int

	// Timeout bounds the whole receive window of a scan, and the wait for
	// the DNS probe reply.
	Timeout time.Duration

	// SourcePort for outgoing SYN segments.
	SourcePort int

	// RequireSynAck, when set, only counts a port open on a SYN+ACK reply.
	// When unset any correlated TCP reply counts, which reports
	// RST-answering (closed but reachable) ports as findings too.
	RequireSynAck bool
}

// ScanResult is the outcome of one SYN scan run.
type ScanResult struct {
	Host      string `json:"host" yaml:"host"`
	RunID     string `json:"run_id" yaml:"run_id"`
	OpenPorts []int  `json:"open_ports" yaml:"open_ports"`
}

// ReachabilityResult is the outcome of one DNS reachability probe.
type ReachabilityResult struct {
	Host       string `json:"host" yaml:"host"`
	Responsive bool   `json:"responsive" yaml:"responsive"`
}
