package browser

import (
	"crypto/sha256"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrCertChanged is returned when a host presents a certificate that
// does not match its pinned fingerprint.
var ErrCertChanged = errors.New("certificate has changed since it was first seen")

// CertStore pins server certificates on first use. Fingerprints are
// kept per host in a JSON file next to the bookmarks.
type CertStore struct {
	mu           sync.Mutex
	Fingerprints map[string]string `json:"fingerprints"`
	path         string
}

func LoadCerts(path string) (*CertStore, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &CertStore{path: path}, nil
		}
		return nil, fmt.Errorf("could not open cert store: %w", err)
	}
	defer f.Close()
	cs := CertStore{path: path}
	if err := json.NewDecoder(f).Decode(&cs); err != nil {
		return nil, fmt.Errorf("could not decode cert store: %w", err)
	}
	return &cs, nil
}

func fingerprint(cert *x509.Certificate) string {
	sum := sha256.Sum256(cert.Raw)
	return fmt.Sprintf("%x", sum)
}

// Check verifies cert against the pin for host, pinning it when the
// host has not been seen before.
func (cs *CertStore) Check(host string, cert *x509.Certificate) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	pinned, ok := cs.Fingerprints[host]
	if !ok {
		if cs.Fingerprints == nil {
			cs.Fingerprints = make(map[string]string)
		}
		cs.Fingerprints[host] = fingerprint(cert)
		return cs.save()
	}
	if pinned != fingerprint(cert) {
		return ErrCertChanged
	}
	return nil
}

// Forget drops the pin for host so the next connection re-pins.
func (cs *CertStore) Forget(host string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.Fingerprints, host)
	return cs.save()
}

func (cs *CertStore) save() error {
	if cs.path == "" {
		return nil
	}
	f, err := os.Create(cs.path)
	if err != nil {
		return fmt.Errorf("could not write cert store: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(cs)
}
