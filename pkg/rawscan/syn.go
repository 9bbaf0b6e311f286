package rawscan

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/skulk-project/skulk/pkg/netutil"
	"github.com/skulk-project/skulk/pkg/output"
)

// packetConn abstracts the raw socket so scans can be driven by a fake in
// tests. ReadPacket blocks until a frame arrives or the deadline passes, in
// which case it returns os.ErrDeadlineExceeded.
type packetConn interface {
	WriteTo(b []byte, dst net.IP, dstPort int) error
	ReadPacket(deadline time.Time) ([]byte, error)
	Close() error
}

type connFactory func() (packetConn, error)

// Scanner runs SYN scans and DNS probes against one host at a time.
type Scanner struct {
	out     output.Output
	cfg     Config
	newConn connFactory

	// dnsProbePort is 53 in production; tests point it at a local listener.
	dnsProbePort int
}

// NewScanner creates a Scanner emitting progress to out. Zero-value config
// fields fall back to the defaults.
func NewScanner(out output.Output, cfg Config) *Scanner {
	if len(cfg.Ports) == 0 {
		cfg.Ports = DefaultPorts
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.SourcePort == 0 {
		cfg.SourcePort = DefaultSourcePort
	}
	return &Scanner{
		out:          out,
		cfg:          cfg,
		newConn:      newRawConn,
		dnsProbePort: 53,
	}
}

// SynScan sends one SYN per configured port, then collects replies until the
// timeout elapses or every port has answered. A reply is correlated when its
// destination port matches our source port and its source port is one of the
// scanned ports. An earlier ctx deadline shortens the receive window.
func (s *Scanner) SynScan(ctx context.Context, host string) (ScanResult, error) {
	result := ScanResult{Host: host, RunID: uuid.NewString()}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	dst, err := netutil.ResolveIPv4(host)
	if err != nil {
		return result, fmt.Errorf("resolving %s: %w", host, err)
	}
	src, err := localIPFor(dst)
	if err != nil {
		return result, fmt.Errorf("determining source address for %s: %w", dst, err)
	}

	conn, err := s.newConn()
	if err != nil {
		return result, err
	}
	defer conn.Close()

	s.out.Info(fmt.Sprintf("[*] Starting SYN scan on %s", host))
	s.out.Diag(output.LevelDebug, "syn scan parameters", map[string]any{
		"run_id":      result.RunID,
		"target":      dst.String(),
		"ports":       fmt.Sprint(s.cfg.Ports),
		"source_port": s.cfg.SourcePort,
	})

	srcPort := uint16(s.cfg.SourcePort)
	for _, port := range s.cfg.Ports {
		seg := buildSYN(src, dst, srcPort, uint16(port), rand.Uint32())
		if err := conn.WriteTo(seg, dst, port); err != nil {
			return result, fmt.Errorf("sending SYN to %s:%d: %w", dst, port, err)
		}
	}

	open := make(map[int]bool)
	deadline := time.Now().Add(s.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	for len(open) < len(s.cfg.Ports) {
		frame, err := conn.ReadPacket(deadline)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				break
			}
			return result, fmt.Errorf("receiving replies: %w", err)
		}

		// A raw TCP socket sees every inbound TCP packet on the machine,
		// so a reply only counts when it actually came from the scanned
		// target, is addressed to our source port, and answers a probed
		// port.
		seg, ok := parseIPv4TCP(frame)
		if !ok || !seg.srcIP.Equal(dst) || seg.dstPort != srcPort || !slices.Contains(s.cfg.Ports, int(seg.srcPort)) {
			continue
		}
		if s.cfg.RequireSynAck && seg.flags&(flagSYN|flagACK) != flagSYN|flagACK {
			s.out.Diag(output.LevelDebug, "discarding non SYN+ACK reply", map[string]any{
				"port":  int(seg.srcPort),
				"flags": fmt.Sprintf("%#02x", seg.flags),
			})
			continue
		}
		open[int(seg.srcPort)] = true
	}

	for port := range open {
		result.OpenPorts = append(result.OpenPorts, port)
	}
	slices.Sort(result.OpenPorts)

	if len(result.OpenPorts) > 0 {
		s.out.Info(fmt.Sprintf("[+] Open ports at %s: %v", host, result.OpenPorts))
	} else {
		s.out.Info(fmt.Sprintf("[-] No open ports found on %s.", host))
	}

	return result, nil
}

// localIPFor picks the local address the kernel would route packets to dst
// from. The connected UDP socket never sends anything.
func localIPFor(dst net.IP) (net.IP, error) {
	conn, err := net.DialUDP("udp4", nil, &net.UDPAddr{IP: dst, Port: 53})
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.To4(), nil
}
