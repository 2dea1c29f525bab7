package websocketclient

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// ErrIncompleteKeyPair is returned when only one of CertFile and KeyFile is set.
var ErrIncompleteKeyPair = errors.New("client certificate needs both cert and key files")

// buildTLSClientConfig returns nil when TLS is disabled so the default
// transport is used for wss:// URLs.
func buildTLSClientConfig(cfg types.TLSConfig) (*tls.Config, error) {
	if !cfg.UseTLS {
		return nil, nil
	}

	out := &tls.Config{
		MinVersion: cfg.MinTLSVersion,
		MaxVersion: cfg.MaxTLSVersion,
		ServerName: cfg.SubjectAlternativeName,
	}
	if out.MinVersion == 0 {
		out.MinVersion = tls.VersionTLS12
	}
	if out.MaxVersion == 0 {
		out.MaxVersion = tls.VersionTLS13
	}

	switch {
	case cfg.CertFile == "" && cfg.KeyFile == "":
	case cfg.CertFile == "" || cfg.KeyFile == "":
		return nil, ErrIncompleteKeyPair
	default:
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load client key pair: %w", err)
		}
		out.Certificates = []tls.Certificate{cert}
	}

	if cfg.CAFile != "" {
		pem, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates parsed from %s", cfg.CAFile)
		}
		out.RootCAs = pool
	}

	return out, nil
}
