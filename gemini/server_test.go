package gemini_test

import (
	"bufio"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"sync"
	"testing"
	"time"
)

// testServer is a minimal in-process Gemini server. Each accepted
// connection reads one request line and passes it to the handler,
// which writes the raw response.
type testServer struct {
	listener net.Listener
	addr     string

	mu       sync.Mutex
	requests []string
}

func selfSignedCert(t *testing.T) tls.Certificate {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1)},
		DNSNames:     []string{"localhost"},
	}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}
}

// startServer serves responses in order, one per connection. A plain
// string is written as-is after the request line has been read.
func startServer(t *testing.T, responses ...string) *testServer {
	t.Helper()
	cfg := &tls.Config{Certificates: []tls.Certificate{selfSignedCert(t)}}
	ln, err := tls.Listen("tcp", "127.0.0.1:0", cfg)
	if err != nil {
		t.Fatal(err)
	}
	srv := &testServer{listener: ln, addr: ln.Addr().String()}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for i := 0; ; i++ {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			resp := ""
			if i < len(responses) {
				resp = responses[i]
			}
			go func(conn net.Conn, resp string) {
				defer conn.Close()
				line, err := bufio.NewReader(conn).ReadString('\n')
				if err != nil {
					return
				}
				srv.mu.Lock()
				srv.requests = append(srv.requests, line)
				srv.mu.Unlock()
				if resp != "" {
					_, _ = conn.Write([]byte(resp))
				}
			}(conn, resp)
		}
	}()
	return srv
}

func (s *testServer) url(path string) string {
	return "gemini://" + s.addr + path
}

func (s *testServer) requestLines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func clientConfig() *tls.Config {
	return &tls.Config{InsecureSkipVerify: true}
}
