// Package gemini implements the client side of the Gemini protocol:
// a blocking fetch that follows redirects and input continuations,
// and the document model handed to the rendering layer.
package gemini

import (
	"context"
	"crypto/tls"
	"io"
	"net/url"
	"strings"

	"git.sr.ht/~petros/astro/gemini/gemtext"
	"git.sr.ht/~petros/astro/internal/buffer"
	"golang.org/x/net/html/charset"
)

const (
	// A request is "<url>\r\n" and must fit in 1024 bytes.
	maxRequestLen = 1024
	// Response header: 2 status bytes, a space, up to 1024 meta
	// bytes and the \r\n terminator.
	maxHeaderLen = 1029
	chunkSize    = 1024
	// The protocol puts no bound on redirect chains; this one stops
	// misbehaving servers from bouncing us forever.
	maxHops = 10
)

// Document is the product of one fetch: the raw body plus the parsed
// elements addressing into it. A document is always returned, even
// for failed fetches; Status tells the two apart.
type Document struct {
	Content  []byte
	Elements []gemtext.Line
	// URL is the final URL the content came from, after redirects.
	URL    string
	Status Status
	// Meta is the response meta field: the MIME type on success, the
	// server's detail line on failure.
	Meta string
	// Prompt is the input prompt of a status-1 response that was not
	// answered by an input callback.
	Prompt string
}

// Text returns the body decoded per the charset parameter of the
// response meta, defaulting to the raw bytes.
func (d *Document) Text() (string, error) {
	e, _, certain := charset.DetermineEncoding(nil, d.Meta)
	if !certain {
		return string(d.Content), nil
	}
	return e.NewDecoder().String(string(d.Content))
}

// InputFunc collects user input for a status-1 response. The prompt
// is the server's meta line; maxLen bounds the encoded answer so the
// follow-up request still fits the protocol's request limit. The
// returned string must already be URL-encoded. Returning false
// aborts the continuation.
type InputFunc func(prompt string, maxLen int) (string, bool)

// Fetch requests rawurl over the Gemini protocol using the supplied
// TLS client config. Redirects and input continuations are followed
// on fresh connections, the previous one closed first. If input is
// nil a status-1 response ends the fetch with StatusInputRequired
// and the prompt on the document, so a caller driving its own UI can
// re-issue the query itself.
//
// The returned document is never nil.
func Fetch(ctx context.Context, cfg *tls.Config, rawurl string, input InputFunc) *Document {
	target := rawurl
	for hop := 0; ; hop++ {
		doc, next := fetchOnce(ctx, cfg, target, input)
		if next == "" {
			return doc
		}
		if hop+1 >= maxHops {
			doc.Status = StatusPermanentFailure
			doc.Meta = "redirect chain too long"
			return doc
		}
		target = next
	}
}

// fetchOnce runs one request/response exchange. A non-empty next
// means the exchange ended in a redirect or an answered input prompt
// and the caller should fetch next on a new connection.
func fetchOnce(ctx context.Context, cfg *tls.Config, target string, input InputFunc) (doc *Document, next string) {
	doc = &Document{URL: target}

	u, err := url.Parse(target)
	if err != nil || u.Hostname() == "" {
		doc.Status = StatusResolveFailure
		return doc, ""
	}
	if len(target)+2 > maxRequestLen {
		doc.Status = StatusPermanentFailure
		doc.Meta = "request URL too long"
		return doc, ""
	}
	port := u.Port()
	if port == "" {
		port = DefaultPort
	}

	conn, status := dialTLS(ctx, cfg, u.Hostname(), port)
	if status != StatusSuccess {
		doc.Status = status
		return doc, ""
	}
	defer conn.Close()

	if _, err := io.WriteString(conn, target+"\r\n"); err != nil {
		doc.Status = StatusConnectionFailure
		return doc, ""
	}

	hdr, ok := readHeader(conn)
	if !ok {
		doc.Status = StatusHeaderParseFailure
		return doc, ""
	}
	meta := hdr.meta

	switch hdr.status[0] {
	case '1':
		doc.Status = StatusInputRequired
		doc.Prompt = meta
		if input == nil {
			return doc, ""
		}
		// Room for the original URL, '?' and the \r\n terminator.
		answer, ok := input(meta, maxRequestLen-len(target)-3)
		if !ok {
			return doc, ""
		}
		return doc, target + "?" + answer

	case '2':
		mediaType := meta
		if mediaType == "" {
			mediaType = "text/gemini"
		}
		if !strings.HasPrefix(mediaType, "text") {
			doc.Status = StatusNotText
			doc.Meta = meta
			return doc, ""
		}
		doc.Status = StatusSuccess
		doc.Meta = meta
		doc.Content = collect(conn)
		if strings.HasPrefix(mediaType, "text/gemini") {
			doc.Elements = gemtext.Parse(doc.Content)
		} else {
			doc.Elements = gemtext.ParseRaw(doc.Content)
		}
		return doc, ""

	case '3':
		if HasScheme(meta) {
			return doc, meta
		}
		return doc, ResolveRelative(target, meta)

	case '4':
		doc.Status = StatusTemporaryFailure
		doc.Meta = meta
		return doc, ""
	case '5':
		doc.Status = StatusPermanentFailure
		doc.Meta = meta
		return doc, ""
	case '6':
		doc.Status = StatusCertificateRequired
		doc.Meta = meta
		return doc, ""
	default:
		doc.Status = StatusHeaderParseFailure
		return doc, ""
	}
}

type header struct {
	status [2]byte
	meta   string
}

// readHeader reads single bytes until the \r\n terminator shows up,
// then splits "<2-digit status><SP><meta>". Reading byte by byte is
// slow but the header is tiny, and it guarantees no body bytes are
// consumed by accident.
func readHeader(conn io.Reader) (header, bool) {
	var h header
	raw := make([]byte, 0, maxHeaderLen)
	one := make([]byte, 1)

	for {
		n, err := conn.Read(one)
		if n > 0 {
			raw = append(raw, one[0])
		}
		if len(raw) >= 2 && raw[len(raw)-2] == '\r' && raw[len(raw)-1] == '\n' {
			break
		}
		if err != nil || len(raw) >= maxHeaderLen {
			return h, false
		}
	}

	if len(raw) < 4 {
		return h, false
	}
	if !isDigit(raw[0]) || !isDigit(raw[1]) {
		return h, false
	}
	h.status[0], h.status[1] = raw[0], raw[1]
	h.meta = strings.TrimSpace(string(raw[2 : len(raw)-2]))
	return h, true
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// collect reads the stream in fixed-size chunks straight into the
// buffer's spare capacity until the server closes the connection.
// The protocol has no length header; end of content is end of
// stream.
func collect(conn io.Reader) []byte {
	buf := buffer.New[byte](chunkSize)
	for {
		buf.EnsureCapacity(buf.Len() + chunkSize)
		n, err := conn.Read(buf.Spare()[:chunkSize])
		if n > 0 {
			buf.Advance(n)
		}
		if err != nil {
			return buf.Items()
		}
	}
}
