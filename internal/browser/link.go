package browser

import (
	"strings"

	"git.sr.ht/~petros/astro/gemini"
	"git.sr.ht/~petros/astro/gemini/gemtext"
)

type Scheme int

const (
	SchemeInvalid Scheme = iota
	SchemeGemini
	SchemeHTTP
	SchemeHTTPS
)

func (s Scheme) String() string {
	switch s {
	case SchemeGemini:
		return "gemini"
	case SchemeHTTP:
		return "http"
	case SchemeHTTPS:
		return "https"
	}
	return "invalid"
}

// Link is a fully resolved target produced from a link element when
// the user activates it.
type Link struct {
	URL    string
	Name   string
	Scheme Scheme
}

// LinkFrom resolves the link element at index i of doc against the
// document's own URL. ok is false when the element is not a link or
// has no target.
func LinkFrom(doc *gemini.Document, i int) (link Link, ok bool) {
	if i < 0 || i >= len(doc.Elements) {
		return link, false
	}
	el := doc.Elements[i]
	if el.Type != gemtext.Link {
		return link, false
	}
	raw, name := gemini.ParseLink(el.Text(doc.Content))
	if raw == "" {
		return link, false
	}
	url := gemini.ResolveRelative(doc.URL, raw)
	return Link{URL: url, Name: name, Scheme: schemeOf(url)}, true
}

func schemeOf(url string) Scheme {
	switch {
	case strings.HasPrefix(url, "gemini://"):
		return SchemeGemini
	case strings.HasPrefix(url, "http://"):
		return SchemeHTTP
	case strings.HasPrefix(url, "https://"):
		return SchemeHTTPS
	}
	return SchemeInvalid
}
