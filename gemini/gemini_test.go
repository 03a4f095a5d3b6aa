package gemini_test

import (
	"context"
	"net"
	"testing"
	"time"

	"git.sr.ht/~petros/astro/gemini"
	"git.sr.ht/~petros/astro/gemini/gemtext"
	"github.com/stretchr/testify/require"
)

func TestFetchSuccess(t *testing.T) {
	srv := startServer(t, "20 text/gemini\r\n# Hi\nSome paragraph.")
	url := srv.url("/page.gmi")

	doc := gemini.Fetch(context.Background(), clientConfig(), url, nil)

	require.Equal(t, gemini.StatusSuccess, doc.Status)
	require.Equal(t, url, doc.URL)
	require.Equal(t, "text/gemini", doc.Meta)
	require.Equal(t, []string{url + "\r\n"}, srv.requestLines())

	require.Len(t, doc.Elements, 2)
	require.Equal(t, gemtext.Heading1, doc.Elements[0].Type)
	require.Equal(t, "# Hi", doc.Elements[0].Text(doc.Content))
	require.Equal(t, gemtext.Paragraph, doc.Elements[1].Type)
}

func TestFetchEmptyMetaDefaultsToGemtext(t *testing.T) {
	srv := startServer(t, "20\r\n# Hi")
	doc := gemini.Fetch(context.Background(), clientConfig(), srv.url("/"), nil)

	require.Equal(t, gemini.StatusSuccess, doc.Status)
	require.Len(t, doc.Elements, 1)
	require.Equal(t, gemtext.Heading1, doc.Elements[0].Type)
}

func TestFetchPlainTextIsRaw(t *testing.T) {
	srv := startServer(t, "20 text/plain\r\n# not a heading\nline two")
	doc := gemini.Fetch(context.Background(), clientConfig(), srv.url("/"), nil)

	require.Equal(t, gemini.StatusSuccess, doc.Status)
	require.Len(t, doc.Elements, 2)
	require.Equal(t, gemtext.Preformatted, doc.Elements[0].Type)
	require.Equal(t, gemtext.Preformatted, doc.Elements[1].Type)
}

func TestFetchNotText(t *testing.T) {
	srv := startServer(t, "20 image/png\r\nPNGBYTES")
	doc := gemini.Fetch(context.Background(), clientConfig(), srv.url("/img.png"), nil)

	require.Equal(t, gemini.StatusNotText, doc.Status)
	require.Empty(t, doc.Content, "no body is collected for non-text content")
}

func TestFetchRedirect(t *testing.T) {
	// First connection answers with a host-relative redirect, the
	// second serves the target. Each hop must be a new connection.
	srv := startServer(t,
		"31 /b\r\n",
		"20 text/gemini\r\n# B",
	)
	doc := gemini.Fetch(context.Background(), clientConfig(), srv.url("/a"), nil)

	require.Equal(t, gemini.StatusSuccess, doc.Status)
	require.Equal(t, srv.url("/b"), doc.URL, "document URL reflects the redirect target")
	lines := srv.requestLines()
	require.Len(t, lines, 2, "redirect opens a second connection")
	require.Equal(t, srv.url("/a")+"\r\n", lines[0])
	require.Equal(t, srv.url("/b")+"\r\n", lines[1])
	require.Len(t, doc.Elements, 1)
	require.Equal(t, "# B", doc.Elements[0].Text(doc.Content))
}

func TestFetchAbsoluteRedirect(t *testing.T) {
	target := startServer(t, "20 text/gemini\r\n# Other")
	srv := startServer(t, "30 "+target.url("/")+"\r\n")

	doc := gemini.Fetch(context.Background(), clientConfig(), srv.url("/a"), nil)

	require.Equal(t, gemini.StatusSuccess, doc.Status)
	require.Equal(t, target.url("/"), doc.URL)
	require.Len(t, srv.requestLines(), 1)
	require.Len(t, target.requestLines(), 1)
}

func TestFetchRedirectLoop(t *testing.T) {
	responses := make([]string, 20)
	for i := range responses {
		responses[i] = "31 /loop\r\n"
	}
	srv := startServer(t, responses...)

	doc := gemini.Fetch(context.Background(), clientConfig(), srv.url("/loop"), nil)
	require.Equal(t, gemini.StatusPermanentFailure, doc.Status)
	require.Equal(t, "redirect chain too long", doc.Meta)
}

func TestFetchInputContinuation(t *testing.T) {
	srv := startServer(t,
		"10 Search query\r\n",
		"20 text/gemini\r\n# Results",
	)
	url := srv.url("/search")

	var prompt string
	input := func(p string, maxLen int) (string, bool) {
		prompt = p
		require.Positive(t, maxLen)
		return "hello%20there", true
	}
	doc := gemini.Fetch(context.Background(), clientConfig(), url, input)

	require.Equal(t, "Search query", prompt)
	require.Equal(t, gemini.StatusSuccess, doc.Status)
	require.Equal(t, url+"?hello%20there", doc.URL)
	lines := srv.requestLines()
	require.Len(t, lines, 2)
	require.Equal(t, url+"?hello%20there\r\n", lines[1])
}

func TestFetchInputWithoutCallback(t *testing.T) {
	srv := startServer(t, "10 Give me words\r\n")
	doc := gemini.Fetch(context.Background(), clientConfig(), srv.url("/"), nil)

	require.Equal(t, gemini.StatusInputRequired, doc.Status)
	require.Equal(t, "Give me words", doc.Prompt)
	require.Len(t, srv.requestLines(), 1)
}

func TestFetchStatusMapping(t *testing.T) {
	tests := []struct {
		response string
		want     gemini.Status
		meta     string
	}{
		{"40 try later\r\n", gemini.StatusTemporaryFailure, "try later"},
		{"51 not found\r\n", gemini.StatusPermanentFailure, "not found"},
		{"60 need cert\r\n", gemini.StatusCertificateRequired, "need cert"},
		{"99 what\r\n", gemini.StatusHeaderParseFailure, ""},
		{"ab cd\r\n", gemini.StatusHeaderParseFailure, ""},
		{"2\r\n", gemini.StatusHeaderParseFailure, ""},
	}
	for _, tc := range tests {
		srv := startServer(t, tc.response)
		doc := gemini.Fetch(context.Background(), clientConfig(), srv.url("/"), nil)
		require.Equal(t, tc.want, doc.Status, "response %q", tc.response)
		require.Equal(t, tc.meta, doc.Meta, "response %q", tc.response)
	}
}

func TestFetchTruncatedHeader(t *testing.T) {
	// Server closes without ever sending the \r\n terminator.
	srv := startServer(t, "20 text/gemini")
	doc := gemini.Fetch(context.Background(), clientConfig(), srv.url("/"), nil)
	require.Equal(t, gemini.StatusHeaderParseFailure, doc.Status)
}

func TestFetchResolveFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// .invalid never resolves (RFC 2606).
	doc := gemini.Fetch(ctx, clientConfig(), "gemini://host.invalid/", nil)
	require.Equal(t, gemini.StatusResolveFailure, doc.Status)
}

func TestFetchConnectionFailure(t *testing.T) {
	// Grab a port nothing listens on.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	doc := gemini.Fetch(context.Background(), clientConfig(), "gemini://"+addr+"/", nil)
	require.Equal(t, gemini.StatusConnectionFailure, doc.Status)
}

func TestFetchHandshakeFailure(t *testing.T) {
	// A plain TCP listener that closes immediately: no TLS on the
	// other side.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	doc := gemini.Fetch(context.Background(), clientConfig(), "gemini://"+ln.Addr().String()+"/", nil)
	require.Equal(t, gemini.StatusHandshakeFailure, doc.Status)
}

func TestFetchBadURL(t *testing.T) {
	doc := gemini.Fetch(context.Background(), clientConfig(), "::not a url::", nil)
	require.NotNil(t, doc)
	require.Equal(t, gemini.StatusResolveFailure, doc.Status)
}
