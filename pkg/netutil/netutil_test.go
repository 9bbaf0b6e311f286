package netutil

import (
	"net"
	"reflect"
	"testing"
)

func TestParsePortString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "empty", input: "", want: []int{}},
		{name: "single", input: "443", want: []int{443}},
		{name: "list sorted and deduped", input: "443,80,443,25", want: []int{25, 80, 443}},
		{name: "range", input: "8080-8083", want: []int{8080, 8081, 8082, 8083}},
		{name: "mixed with spaces", input: " 25, 80 ,53 ", want: []int{25, 53, 80}},
		{name: "scan default set", input: "25,80,53,443,445,8080,8443", want: []int{25, 53, 80, 443, 445, 8080, 8443}},
		{name: "zero rejected", input: "0", wantErr: true},
		{name: "too large", input: "65536", wantErr: true},
		{name: "inverted range", input: "100-50", wantErr: true},
		{name: "garbage", input: "http", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePortString(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePortString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveIPv4(t *testing.T) {
	t.Run("dotted quad passes through", func(t *testing.T) {
		ip, err := ResolveIPv4("192.0.2.10")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ip.Equal(net.IPv4(192, 0, 2, 10)) {
			t.Errorf("got %v", ip)
		}
	})

	t.Run("ipv6 literal rejected", func(t *testing.T) {
		if _, err := ResolveIPv4("2001:db8::1"); err == nil {
			t.Error("expected error for IPv6 literal")
		}
	})

	t.Run("empty rejected", func(t *testing.T) {
		if _, err := ResolveIPv4("  "); err == nil {
			t.Error("expected error for empty target")
		}
	})

	t.Run("localhost resolves", func(t *testing.T) {
		ip, err := ResolveIPv4("localhost")
		if err != nil {
			t.Skipf("localhost did not resolve: %v", err)
		}
		if ip.To4() == nil {
			t.Errorf("expected IPv4, got %v", ip)
		}
	})
}
