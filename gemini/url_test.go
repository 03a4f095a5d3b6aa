package gemini_test

import (
	"testing"

	"git.sr.ht/~petros/astro/gemini"
	"github.com/stretchr/testify/require"
)

func TestHostnameWithScheme(t *testing.T) {
	require.Equal(t, "gemini://example.org",
		gemini.HostnameWithScheme("gemini://example.org/a/b"))
	require.Equal(t, "gemini://example.org",
		gemini.HostnameWithScheme("gemini://example.org"))
	require.Equal(t, "https://example.org",
		gemini.HostnameWithScheme("https://example.org/x"))
}

func TestHostnameEnd(t *testing.T) {
	require.Equal(t, len("gemini://x.org"), gemini.HostnameEnd("gemini://x.org/a"))
	require.Equal(t, len("gemini://x.org"), gemini.HostnameEnd("gemini://x.org"))
}

func TestHasScheme(t *testing.T) {
	require.True(t, gemini.HasScheme("gemini://x.org"))
	require.True(t, gemini.HasScheme("http://x.org"))
	require.False(t, gemini.HasScheme("page.gmi"))
	require.False(t, gemini.HasScheme("/absolute/path"))
	// The ':' probe only covers the first eight characters.
	require.False(t, gemini.HasScheme("verylongname:8080"))
}

func TestResolveRelative(t *testing.T) {
	tests := []struct {
		base, link, want string
	}{
		{"gemini://x.org/a/b.gmi", "/c", "gemini://x.org/c"},
		{"gemini://x.org/a/b.gmi", "c.gmi", "gemini://x.org/a/c.gmi"},
		{"gemini://x.org/a/b.gmi", "gemini://other.org/", "gemini://other.org/"},
		{"gemini://x.org/a/b.gmi", "https://web.example/", "https://web.example/"},
		// Base without any path: treated as host-relative.
		{"gemini://x.org", "c.gmi", "gemini://x.org/c.gmi"},
		{"gemini://x.org", "/c.gmi", "gemini://x.org/c.gmi"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, gemini.ResolveRelative(tc.base, tc.link),
			"base %q link %q", tc.base, tc.link)
	}
}

func TestParseLink(t *testing.T) {
	url, label := gemini.ParseLink("=> gemini://x.org/doc.gmi The document")
	require.Equal(t, "gemini://x.org/doc.gmi", url)
	require.Equal(t, "The document", label)

	url, label = gemini.ParseLink("=>gemini://x.org")
	require.Equal(t, "gemini://x.org", url)
	require.Equal(t, "gemini://x.org", label)

	url, label = gemini.ParseLink("=> ")
	require.Equal(t, "", url)
	require.Equal(t, "", label)
}
