package dnsx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReverseLookupTrimsTrailingDot(t *testing.T) {
	got := reverseLookup("93.184.216.34", func(addr string) ([]string, error) {
		require.Equal(t, "93.184.216.34", addr)
		return []string{"web1.example.com."}, nil
	})

	require.Equal(t, Reverse{Address: "93.184.216.34", Hostname: "web1.example.com"}, got)
}

func TestReverseLookupFirstNameWins(t *testing.T) {
	got := reverseLookup("93.184.216.34", func(addr string) ([]string, error) {
		return []string{"web1.example.com.", "web2.example.com."}, nil
	})

	require.Equal(t, "web1.example.com", got.Hostname)
}

func TestReverseLookupFailuresCollapseToEmptyHostname(t *testing.T) {
	tests := []struct {
		name   string
		lookup lookupAddrFunc
	}{
		{
			name: "resolver error",
			lookup: func(addr string) ([]string, error) {
				return nil, errors.New("lookup 34.216.184.93.in-addr.arpa.: NXDOMAIN")
			},
		},
		{
			name: "no names",
			lookup: func(addr string) ([]string, error) {
				return nil, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reverseLookup("93.184.216.34", tt.lookup)
			require.Equal(t, Reverse{Address: "93.184.216.34"}, got)
		})
	}
}
