package gemini

import (
	"strings"
	"unicode"
)

// HostnameEnd returns the byte offset where the host portion of url
// ends: the index of the first '/' after the scheme separator, or
// len(url) if the URL has no path. The URL must include a scheme.
func HostnameEnd(url string) int {
	i := strings.Index(url, "://")
	if i < 0 {
		return len(url)
	}
	if j := strings.IndexByte(url[i+3:], '/'); j >= 0 {
		return i + 3 + j
	}
	return len(url)
}

// HostnameWithScheme returns "scheme://host" with no trailing slash.
func HostnameWithScheme(url string) string {
	return url[:HostnameEnd(url)]
}

// HasScheme reports whether url carries a protocol scheme. A ':'
// within the first eight characters is enough; no scheme in use is
// longer than that.
func HasScheme(url string) bool {
	max := 8
	if len(url) < max {
		max = len(url)
	}
	return strings.IndexByte(url[:max], ':') >= 0
}

// ResolveRelative resolves link against base. Links that already
// carry a scheme are used verbatim. A leading '/' makes the link
// host-relative; anything else replaces the last path segment of
// base. A base with no path at all is treated as host-relative.
func ResolveRelative(base, link string) string {
	if HasScheme(link) {
		return link
	}
	if strings.HasPrefix(link, "/") {
		return HostnameWithScheme(base) + link
	}
	host := HostnameEnd(base)
	if i := strings.LastIndexByte(base[host:], '/'); i >= 0 {
		return base[:host+i+1] + link
	}
	return HostnameWithScheme(base) + "/" + link
}

// ParseLink splits a "=>" line into its URL and display label. The
// label falls back to the URL when the line has none.
func ParseLink(line string) (url, label string) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "=>"))
	if rest == "" {
		return "", ""
	}
	if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
		return rest[:i], strings.TrimSpace(rest[i:])
	}
	return rest, rest
}
