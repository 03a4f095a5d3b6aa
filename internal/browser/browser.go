// Package browser ties the protocol client to the stores a browsing
// session needs: the shared TLS config, history, bookmarks and pinned
// certificates. It also turns failed fetches into renderable notice
// pages so the UI never has to special-case them.
package browser

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~petros/astro/gemini"
	"git.sr.ht/~petros/astro/gemini/gemtext"
	"git.sr.ht/~petros/astro/internal/bookmark"
	"git.sr.ht/~petros/astro/internal/history"
)

// Home is the internal URL of the generated start page.
const Home = "home://"

type Browser struct {
	History   *history.History
	Bookmarks *bookmark.Store
	Certs     *CertStore

	tls *tls.Config
}

// Builtin entries shown on the home page above the user's own
// bookmarks.
var builtinBookmarks = []bookmark.Bookmark{
	{URL: "gemini://geminiprotocol.net/", Name: "Project Gemini"},
	{URL: "gemini://kennedy.gemi.dev/", Name: "Kennedy search engine"},
	{URL: "gemini://warmedal.se/~antenna/", Name: "Antenna aggregator"},
}

// New loads the session stores from dir (created if missing) and
// builds the shared TLS client config. With trustAll set, pinning
// failures are ignored.
func New(dir string, trustAll bool) (*Browser, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create state dir: %w", err)
	}
	bs, err := bookmark.Load(filepath.Join(dir, "bookmarks.json"))
	if err != nil {
		return nil, err
	}
	certs, err := LoadCerts(filepath.Join(dir, "known_hosts.json"))
	if err != nil {
		return nil, err
	}

	b := &Browser{
		History:   history.New(0),
		Bookmarks: bs,
		Certs:     certs,
	}
	b.tls = &tls.Config{
		MinVersion: tls.VersionTLS12,
		// Gemini servers use self-signed certificates as a rule;
		// trust-on-first-use pinning below replaces chain
		// verification.
		InsecureSkipVerify: true,
		VerifyConnection: func(cs tls.ConnectionState) error {
			if trustAll {
				return nil
			}
			if len(cs.PeerCertificates) == 0 {
				return errors.New("server sent no certificate")
			}
			return certs.Check(cs.ServerName, cs.PeerCertificates[0])
		},
	}
	return b, nil
}

// Load fetches url and always returns a renderable document: failed
// fetches come back as a notice page explaining the status. The
// input callback may be nil, in which case a status-1 response
// surfaces as StatusInputRequired for the caller to handle.
func (b *Browser) Load(ctx context.Context, url string, input gemini.InputFunc) *gemini.Document {
	if url == Home {
		return b.homeDocument()
	}
	doc := gemini.Fetch(ctx, b.tls, url, input)
	if doc.Status.Failed() {
		notice := fmt.Sprintf(noticeFormat, describe(doc))
		doc.Content = []byte(notice)
		doc.Elements = gemtext.Parse(doc.Content)
	}
	return doc
}

const noticeFormat = "# Request failed\n> %s\n" +
	"The page could not be loaded. You can go back to the previous " +
	"page and keep browsing, or retry later."

var statusDescriptions = map[gemini.Status]string{
	gemini.StatusResolveFailure:      "The server's address could not be resolved.",
	gemini.StatusConnectionFailure:   "A TCP connection to the server could not be established.",
	gemini.StatusHandshakeFailure:    "The TLS handshake failed. The server may be down, or its certificate no longer matches the pinned one.",
	gemini.StatusHeaderParseFailure:  "The server sent a malformed response header.",
	gemini.StatusTemporaryFailure:    "The server reported a temporary failure.",
	gemini.StatusPermanentFailure:    "The server reported a permanent failure.",
	gemini.StatusCertificateRequired: "The server requires a client certificate, which is not supported.",
	gemini.StatusNotText:             "The server returned non-text content that cannot be rendered.",
}

func describe(doc *gemini.Document) string {
	desc, ok := statusDescriptions[doc.Status]
	if !ok {
		desc = "The request failed."
	}
	if doc.Meta != "" {
		return fmt.Sprintf("%s (%s)", desc, doc.Meta)
	}
	return desc
}

func (b *Browser) homeDocument() *gemini.Document {
	var buf strings.Builder
	fmt.Fprint(&buf, "# Home\n\n## Explore\n")
	for _, bm := range builtinBookmarks {
		fmt.Fprintf(&buf, "=> %s %s\n", bm.URL, bm.Name)
	}
	if saved := b.Bookmarks.All(); len(saved) > 0 {
		fmt.Fprint(&buf, "\n## Bookmarks\n")
		for _, bm := range saved {
			fmt.Fprintf(&buf, "=> %s %s\n", bm.URL, bm.Name)
		}
	}
	content := []byte(buf.String())
	return &gemini.Document{
		Content:  content,
		Elements: gemtext.Parse(content),
		URL:      Home,
		Status:   gemini.StatusSuccess,
		Meta:     "text/gemini",
	}
}
