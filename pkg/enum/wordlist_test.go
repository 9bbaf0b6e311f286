package enum

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(domain string, words []string, numeric bool) []string {
	var out []string
	for c := range Candidates(domain, words, numeric) {
		out = append(out, c)
	}
	return out
}

func TestCandidatesPlain(t *testing.T) {
	got := collect("example.com", []string{"www", "api"}, false)
	require.Equal(t, []string{"www.example.com", "api.example.com"}, got)
}

func TestCandidatesFiltersBlankAndComments(t *testing.T) {
	words := []string{"www", "", "   ", "#comment", "  # indented comment", "api"}
	got := collect("example.com", words, false)
	require.Equal(t, []string{"www.example.com", "api.example.com"}, got)
}

func TestCandidatesNumericExpansion(t *testing.T) {
	got := collect("example.com", []string{"www", "", "#comment", "api"}, true)

	require.Len(t, got, 22)

	want := []string{"www.example.com"}
	for i := 0; i < 10; i++ {
		want = append(want, "www"+string(rune('0'+i))+".example.com")
	}
	want = append(want, "api.example.com")
	for i := 0; i < 10; i++ {
		want = append(want, "api"+string(rune('0'+i))+".example.com")
	}
	require.Equal(t, want, got)
}

func TestCandidatesKeepsDuplicates(t *testing.T) {
	got := collect("example.com", []string{"www", "www"}, false)
	require.Equal(t, []string{"www.example.com", "www.example.com"}, got)
}

func TestCandidatesTrimsWhitespace(t *testing.T) {
	got := collect("example.com", []string{"  mail \t"}, false)
	require.Equal(t, []string{"mail.example.com"}, got)
}

func TestCandidatesRestartable(t *testing.T) {
	seq := Candidates("example.com", []string{"www"}, true)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Equal(t, first, second)
}

func TestCandidatesEarlyBreak(t *testing.T) {
	var got []string
	for c := range Candidates("example.com", []string{"www", "api"}, true) {
		got = append(got, c)
		if len(got) == 3 {
			break
		}
	}
	require.Equal(t, []string{"www.example.com", "www0.example.com", "www1.example.com"}, got)
}

func TestLoadWordlist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subs.txt")
	require.NoError(t, os.WriteFile(path, []byte("www\r\napi\n\n#skip\nmail"), 0o600))

	words, err := LoadWordlist(path)
	require.NoError(t, err)
	require.Equal(t, []string{"www", "api", "", "#skip", "mail"}, words)
}

func TestLoadWordlistMissing(t *testing.T) {
	_, err := LoadWordlist("/nonexistent/subs.txt")
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}
