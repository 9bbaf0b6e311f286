package whoisx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleResponse = `Domain Name: EXAMPLE.COM
Registrar: RESERVED-Internet Assigned Numbers Authority
Creation Date: 1995-08-14T04:00:00Z
Registry Expiry Date: 2026-08-13T04:00:00Z
Name Server: A.IANA-SERVERS.NET
Name Server: B.IANA-SERVERS.NET
Domain Status: clientDeleteProhibited https://icann.org/epp#clientDeleteProhibited
>>> Last update of whois database: 2025-01-01T00:00:00Z <<<
`

func TestLookupParsesDomainRecord(t *testing.T) {
	c := &Client{lookup: func(query string) (string, error) {
		require.Equal(t, "example.com", query)
		return sampleResponse, nil
	}}

	rec, err := c.Lookup("example.com")
	require.NoError(t, err)

	require.Equal(t, "example.com", rec.Query)
	require.Equal(t, "RESERVED-Internet Assigned Numbers Authority", rec.Registrar)
	require.Equal(t, "1995-08-14T04:00:00Z", rec.CreatedDate)
	require.Contains(t, rec.NameServers, "a.iana-servers.net")
	require.Equal(t, sampleResponse, rec.Raw)
}

func TestLookupIPStaysRaw(t *testing.T) {
	c := &Client{lookup: func(query string) (string, error) {
		return "NetRange: 192.0.2.0 - 192.0.2.255\nOrgName: Documentation\n", nil
	}}

	rec, err := c.Lookup("192.0.2.1")
	require.NoError(t, err)
	require.Empty(t, rec.Registrar)
	require.Contains(t, rec.Raw, "NetRange")
}

func TestLookupError(t *testing.T) {
	c := &Client{lookup: func(query string) (string, error) {
		return "", errors.New("connection refused")
	}}

	_, err := c.Lookup("example.com")
	require.Error(t, err)
	require.Contains(t, err.Error(), "example.com")
}

func TestLookupUnparseableFallsBackToRaw(t *testing.T) {
	c := &Client{lookup: func(query string) (string, error) {
		return "No match for domain \"NOPE.EXAMPLE\".\n", nil
	}}

	rec, err := c.Lookup("nope.example")
	require.NoError(t, err)
	require.Empty(t, rec.Registrar)
	require.NotEmpty(t, rec.Raw)
}

func TestSummaryStructured(t *testing.T) {
	rec := Record{
		Query:       "example.com",
		Registrar:   "IANA",
		CreatedDate: "1995-08-14",
		NameServers: []string{"a.iana-servers.net"},
	}

	lines := rec.Summary()
	require.Equal(t, []string{
		"[+] Whois for example.com",
		"  Registrar: IANA",
		"  Created: 1995-08-14",
		"  NS: a.iana-servers.net",
	}, lines)
}

func TestSummaryRawFallback(t *testing.T) {
	rec := Record{Query: "192.0.2.1", Raw: "line one\nline two\n"}
	require.Equal(t, []string{"line one", "line two"}, rec.Summary())
}
