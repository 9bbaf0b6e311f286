//go:build linux

package rawscan

import (
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// rawConn is a SOCK_RAW IPPROTO_TCP socket. Received frames include the IP
// header; sent frames are TCP-only, the kernel prepends IP.
type rawConn struct {
	fd int
}

func newRawConn() (packetConn, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_TCP)
	if err != nil {
		if err == unix.EPERM {
			return nil, fmt.Errorf("opening raw socket: %w (SYN scanning requires root)", err)
		}
		return nil, fmt.Errorf("opening raw socket: %w", err)
	}
	return &rawConn{fd: fd}, nil
}

func (c *rawConn) WriteTo(b []byte, dst net.IP, dstPort int) error {
	addr := &unix.SockaddrInet4{Port: dstPort}
	copy(addr.Addr[:], dst.To4())
	return unix.Sendto(c.fd, b, 0, addr)
}

func (c *rawConn) ReadPacket(deadline time.Time) ([]byte, error) {
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return nil, os.ErrDeadlineExceeded
	}
	tv := unix.NsecToTimeval(remaining.Nanoseconds())
	if err := unix.SetsockoptTimeval(c.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		return nil, err
	}

	buf := make([]byte, 1500)
	n, _, err := unix.Recvfrom(c.fd, buf, 0)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return nil, os.ErrDeadlineExceeded
		}
		return nil, err
	}
	return buf[:n], nil
}

func (c *rawConn) Close() error {
	return unix.Close(c.fd)
}
