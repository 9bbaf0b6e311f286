// Package enum expands a base domain against a wordlist into candidate
// FQDNs for brute-force probing.
package enum

import (
	"fmt"
	"iter"
	"os"
	"strings"
)

// LoadWordlist reads a wordlist file: UTF-8 text, one candidate label per
// line. Lines are returned raw; filtering happens during expansion so that
// the sequence stays faithful to the file.
func LoadWordlist(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}

// Candidates produces the candidate FQDN sequence for a base domain: for
// each usable word, the plain label first ("www.example.com"), then, when
// numeric is set, suffixes 0 through 9 in ascending order
// ("www0.example.com" .. "www9.example.com").
//
// Words are trimmed; empty lines and lines starting with '#' are skipped to
// tolerate common wordlists. Duplicate words yield duplicate candidates:
// wordlists are user-supplied and probing is idempotent, so deduplication
// is not this layer's business.
//
// The returned sequence is lazy and restartable.
func Candidates(domain string, words []string, numeric bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, raw := range words {
			word := strings.TrimSpace(raw)
			if word == "" || strings.HasPrefix(word, "#") {
				continue
			}

			if !yield(word + "." + domain) {
				return
			}

			if numeric {
				for i := range 10 {
					if !yield(fmt.Sprintf("%s%d.%s", word, i, domain)) {
						return
					}
				}
			}
		}
	}
}
