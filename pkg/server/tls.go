package server

import (
	"crypto/tls"
	"fmt"
)

// LoadTLSConfig reads a PEM certificate chain and private key and returns a
// server TLS configuration. Gemini requires TLS 1.2 or newer.
func LoadTLSConfig(certFile, keyFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("load key pair (cert %s, key %s): %w", certFile, keyFile, err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
