package rawscan

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/skulk-project/skulk/pkg/netutil"
	"github.com/skulk-project/skulk/pkg/output"
)

// dnsProbeName is the question sent by the reachability probe. The answer
// content is irrelevant; any reply at all marks the host as a responding
// DNS server.
const dnsProbeName = "google.com."

// DNSProbe sends a recursive A query to the host over UDP and reports
// whether anything came back before the timeout. An earlier ctx deadline
// shortens the wait.
func (s *Scanner) DNSProbe(ctx context.Context, host string) (ReachabilityResult, error) {
	result := ReachabilityResult{Host: host}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	dst, err := netutil.ResolveIPv4(host)
	if err != nil {
		return result, fmt.Errorf("resolving %s: %w", host, err)
	}

	s.out.Info(fmt.Sprintf("[*] Starting DNS scan on %s", host))

	m := new(dns.Msg)
	m.SetQuestion(dnsProbeName, dns.TypeA)
	m.RecursionDesired = true
	payload, err := m.Pack()
	if err != nil {
		return result, fmt.Errorf("packing probe query: %w", err)
	}

	conn, err := net.DialUDP("udp4", nil, &net.UDPAddr{IP: dst, Port: s.dnsProbePort})
	if err != nil {
		return result, fmt.Errorf("dialing %s:%d: %w", dst, s.dnsProbePort, err)
	}
	defer conn.Close()

	if _, err := conn.Write(payload); err != nil {
		return result, fmt.Errorf("sending probe query: %w", err)
	}

	deadline := time.Now().Add(s.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return result, err
	}
	buf := make([]byte, 512)
	n, err := conn.Read(buf)
	if err == nil && n > 0 {
		result.Responsive = true
	} else if err != nil {
		s.out.Diag(output.LevelDebug, "no probe reply", map[string]any{
			"target": dst.String(),
			"error":  err.Error(),
		})
	}

	if result.Responsive {
		s.out.Info(fmt.Sprintf("[+] DNS server found at %s", host))
	} else {
		s.out.Info(fmt.Sprintf("[-] No DNS response from %s", host))
	}

	return result, nil
}
