// Package netutil provides helpers for turning user-supplied targets and
// port specifications into scanable values.
//
// It includes functions to:
//   - Resolve a target string (IP address or hostname) to a single IPv4 address.
//   - Parse and expand port strings (including ranges) into sorted, unique integer slices.
package netutil

import (
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
)

// ResolveIPv4 turns a target (dotted-quad IP or hostname) into an IPv4
// address. Hostname resolution uses the system resolver; the first IPv4
// result wins. IPv6-only targets are rejected, since the packet path only
// speaks IPv4.
func ResolveIPv4(target string) (net.IP, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("empty target")
	}

	if ip := net.ParseIP(target); ip != nil {
		if v4 := ip.To4(); v4 != nil {
			return v4, nil
		}
		return nil, fmt.Errorf("target %q is not an IPv4 address", target)
	}

	ips, err := net.LookupIP(target)
	if err != nil {
		return nil, fmt.Errorf("could not resolve target %q: %w", target, err)
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4, nil
		}
	}
	return nil, fmt.Errorf("target %q has no IPv4 address", target)
}

// ParsePortString parses a comma-separated string of ports and port ranges
// into a slice of unique integers, sorted.
// Example: "80,443,1000-1002,22" -> [22, 80, 443, 1000, 1001, 1002]
func ParsePortString(portStr string) ([]int, error) {
	if strings.TrimSpace(portStr) == "" {
		return []int{}, nil
	}

	seenPorts := make(map[int]struct{})
	var ports []int

	parts := strings.SplitSeq(portStr, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "-") { // Port range
			rangeParts := strings.SplitN(part, "-", 2)
			if len(rangeParts) != 2 {
				return nil, fmt.Errorf("invalid port range format: '%s'", part)
			}
			startStr, endStr := strings.TrimSpace(rangeParts[0]), strings.TrimSpace(rangeParts[1])

			start, err := strconv.Atoi(startStr)
			if err != nil {
				return nil, fmt.Errorf("invalid start port in range '%s': %w", part, err)
			}
			end, err := strconv.Atoi(endStr)
			if err != nil {
				return nil, fmt.Errorf("invalid end port in range '%s': %w", part, err)
			}

			if start < 1 || start > 65535 || end < 1 || end > 65535 {
				return nil, fmt.Errorf("port numbers in range '%s' must be between 1 and 65535", part)
			}
			if start > end {
				return nil, fmt.Errorf("start port %d cannot be greater than end port %d in range '%s'", start, end, part)
			}

			for i := start; i <= end; i++ {
				if _, found := seenPorts[i]; !found {
					ports = append(ports, i)
					seenPorts[i] = struct{}{}
				}
			}
		} else { // Single port
			port, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid port number '%s': %w", part, err)
			}
			if port < 1 || port > 65535 {
				return nil, fmt.Errorf("port number '%d' must be between 1 and 65535", port)
			}
			if _, found := seenPorts[port]; !found {
				ports = append(ports, port)
				seenPorts[port] = struct{}{}
			}
		}
	}
	sort.Ints(ports) // Sort for consistent output and easier processing later
	return ports, nil
}
