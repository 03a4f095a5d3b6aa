package gemini

import (
	"context"
	"crypto/tls"
	"net"
)

// DefaultPort is the well-known Gemini TCP port.
const DefaultPort = "1965"

// dialTLS resolves host, opens a TCP connection to the first
// resolved address and performs the TLS handshake with the shared
// client config. On failure the returned status tells the stage that
// failed; the connection is never left open.
func dialTLS(ctx context.Context, cfg *tls.Config, host, port string) (*tls.Conn, Status) {
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil || len(addrs) == 0 {
		return nil, StatusResolveFailure
	}

	var d net.Dialer
	raw, err := d.DialContext(ctx, "tcp", net.JoinHostPort(addrs[0].IP.String(), port))
	if err != nil {
		return nil, StatusConnectionFailure
	}

	// The connection was dialed by IP, so SNI and certificate checks
	// need the hostname set explicitly.
	cfg = cfg.Clone()
	if cfg.ServerName == "" {
		cfg.ServerName = host
	}

	conn := tls.Client(raw, cfg)
	if err := conn.HandshakeContext(ctx); err != nil {
		raw.Close()
		return nil, StatusHandshakeFailure
	}
	return conn, StatusSuccess
}
