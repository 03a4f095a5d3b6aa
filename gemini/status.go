package gemini

// Status is the outcome of a single fetch. Every fetch ends with one
// of these on the resulting Document; failures are never surfaced as
// Go errors to the caller.
type Status int

const (
	StatusSuccess Status = iota
	StatusInputRequired
	StatusTemporaryFailure
	StatusPermanentFailure
	StatusCertificateRequired
	StatusResolveFailure
	StatusConnectionFailure
	StatusHandshakeFailure
	StatusHeaderParseFailure
	StatusNotText
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInputRequired:
		return "input-required"
	case StatusTemporaryFailure:
		return "temporary-failure"
	case StatusPermanentFailure:
		return "permanent-failure"
	case StatusCertificateRequired:
		return "client-certificate-required"
	case StatusResolveFailure:
		return "ip-resolve-failure"
	case StatusConnectionFailure:
		return "server-connection-failure"
	case StatusHandshakeFailure:
		return "tls-handshake-failure"
	case StatusHeaderParseFailure:
		return "header-parse-failure"
	case StatusNotText:
		return "not-text"
	}
	return "unknown"
}

// Failed reports whether the fetch ended without usable page content.
func (s Status) Failed() bool {
	return s != StatusSuccess && s != StatusInputRequired
}
