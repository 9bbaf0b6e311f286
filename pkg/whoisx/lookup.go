// Package whoisx wraps registration data lookups for domains and IPs.
package whoisx

import (
	"fmt"
	"net"
	"strings"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// Record is a flattened view of a domain registration.
type Record struct {
	Query       string   `json:"query" yaml:"query"`
	Registrar   string   `json:"registrar,omitempty" yaml:"registrar,omitempty"`
	CreatedDate string   `json:"created_date,omitempty" yaml:"created_date,omitempty"`
	ExpiryDate  string   `json:"expiry_date,omitempty" yaml:"expiry_date,omitempty"`
	NameServers []string `json:"name_servers,omitempty" yaml:"name_servers,omitempty"`
	Status      []string `json:"status,omitempty" yaml:"status,omitempty"`

	// Raw holds the full server response. For IP queries it is the only
	// populated field besides Query, since RIR output has no stable shape
	// worth parsing.
	Raw string `json:"-" yaml:"-"`
}

type whoisFunc func(query string) (string, error)

// Client performs lookups. The zero value is not usable; use NewClient.
type Client struct {
	lookup whoisFunc
}

func NewClient() *Client {
	return &Client{lookup: func(query string) (string, error) {
		return whois.Whois(query)
	}}
}

// Lookup queries registration data. Domain responses are parsed into the
// structured fields; IP responses are returned raw.
func (c *Client) Lookup(query string) (Record, error) {
	rec := Record{Query: query}

	raw, err := c.lookup(query)
	if err != nil {
		return rec, fmt.Errorf("whois query for %s: %w", query, err)
	}
	rec.Raw = raw

	if net.ParseIP(query) != nil {
		return rec, nil
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		// Unparseable is not fatal; the raw text still has value.
		return rec, nil
	}

	if parsed.Registrar != nil {
		rec.Registrar = parsed.Registrar.Name
	}
	if parsed.Domain != nil {
		rec.CreatedDate = parsed.Domain.CreatedDate
		rec.ExpiryDate = parsed.Domain.ExpirationDate
		rec.NameServers = parsed.Domain.NameServers
		rec.Status = parsed.Domain.Status
	}
	return rec, nil
}

// Summary renders a Record as the human-readable lines printed by the CLI.
func (r Record) Summary() []string {
	if r.Registrar == "" && r.CreatedDate == "" && len(r.NameServers) == 0 {
		return strings.Split(strings.TrimRight(r.Raw, "\n"), "\n")
	}

	lines := []string{fmt.Sprintf("[+] Whois for %s", r.Query)}
	if r.Registrar != "" {
		lines = append(lines, "  Registrar: "+r.Registrar)
	}
	if r.CreatedDate != "" {
		lines = append(lines, "  Created: "+r.CreatedDate)
	}
	if r.ExpiryDate != "" {
		lines = append(lines, "  Expires: "+r.ExpiryDate)
	}
	for _, ns := range r.NameServers {
		lines = append(lines, "  NS: "+ns)
	}
	for _, st := range r.Status {
		lines = append(lines, "  Status: "+st)
	}
	return lines
}
