package rawscan

import (
	"encoding/binary"
	"net"
)

const (
	flagSYN = 0x02
	flagRST = 0x04
	flagACK = 0x10
)

const tcpHeaderLen = 20

// tcpSegment is the slice of a received frame the scanner cares about: the
// sender's address plus the TCP ports and flags.
type tcpSegment struct {
	srcIP   net.IP
	srcPort uint16
	dstPort uint16
	flags   uint8
}

// buildSYN encodes a bare 20-byte TCP SYN segment, checksummed over the
// IPv4 pseudo-header. The kernel fills in the IP header on send.
func buildSYN(src, dst net.IP, srcPort, dstPort uint16, seq uint32) []byte {
	h := make([]byte, tcpHeaderLen)
	binary.BigEndian.PutUint16(h[0:2], srcPort)
	binary.BigEndian.PutUint16(h[2:4], dstPort)
	binary.BigEndian.PutUint32(h[4:8], seq)
	h[12] = 5 << 4 // data offset: 5 words, no options
	h[13] = flagSYN
	binary.BigEndian.PutUint16(h[14:16], 64240) // window

	pseudo := make([]byte, 12+tcpHeaderLen)
	copy(pseudo[0:4], src.To4())
	copy(pseudo[4:8], dst.To4())
	pseudo[9] = 6 // protocol: TCP
	binary.BigEndian.PutUint16(pseudo[10:12], tcpHeaderLen)
	copy(pseudo[12:], h)
	binary.BigEndian.PutUint16(h[16:18], checksum(pseudo))

	return h
}

// checksum is the ones-complement sum used by TCP.
func checksum(b []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(b); i += 2 {
		sum += uint32(binary.BigEndian.Uint16(b[i : i+2]))
	}
	if len(b)%2 == 1 {
		sum += uint32(b[len(b)-1]) << 8
	}
	for sum > 0xffff {
		sum = sum&0xffff + sum>>16
	}
	return ^uint16(sum)
}

// parseIPv4TCP extracts ports and flags from a raw IPv4 frame as delivered
// by a SOCK_RAW IPPROTO_TCP socket, which includes the IP header. Returns
// false for anything that is not a well-formed IPv4 TCP packet.
func parseIPv4TCP(b []byte) (tcpSegment, bool) {
	if len(b) < 20 || b[0]>>4 != 4 {
		return tcpSegment{}, false
	}
	ihl := int(b[0]&0x0f) * 4
	if ihl < 20 || b[9] != 6 || len(b) < ihl+14 {
		return tcpSegment{}, false
	}
	tcp := b[ihl:]
	return tcpSegment{
		srcIP:   net.IPv4(b[12], b[13], b[14], b[15]).To4(),
		srcPort: binary.BigEndian.Uint16(tcp[0:2]),
		dstPort: binary.BigEndian.Uint16(tcp[2:4]),
		flags:   tcp[13],
	}, true
}
