package builder

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// ErrNoCAFile is returned by TLSFromCAFiles when none of the candidates exist.
var ErrNoCAFile = errors.New("no CA bundle found")

// TLSFromCAFiles builds a TLS 1.2+ client config trusting every candidate
// bundle that exists. Missing candidates are skipped so one config can serve
// hosts with different CA locations; a candidate that exists but holds no
// certificate is an error. serverName, when set, overrides SNI.
func TLSFromCAFiles(candidates []string, serverName string) (*tls.Config, error) {
	pool := x509.NewCertPool()
	loaded := 0
	for _, p := range candidates {
		p = filepath.Clean(p)
		st, err := os.Stat(p)
		if err != nil || st.IsDir() {
			continue
		}
		pem, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read CA %s: %w", p, err)
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates in %s", p)
		}
		loaded++
	}
	if loaded == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoCAFile, candidates)
	}
	return &tls.Config{MinVersion: tls.VersionTLS12, RootCAs: pool, ServerName: serverName}, nil
}

// SASLMechanism maps a mechanism name to kafka-go. Names are matched case
// insensitively with '_' read as '-'; empty means SCRAM-SHA-256.
func SASLMechanism(user, pass, mech string) (sasl.Mechanism, error) {
	switch strings.ToUpper(strings.ReplaceAll(mech, "_", "-")) {
	case "", "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, user, pass)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, user, pass)
	case "PLAIN":
		return plain.Mechanism{Username: user, Password: pass}, nil
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism %q", mech)
	}
}

type KafkaSecurityOption func(*types.KafkaSecurity)

// NewKafkaSecurity starts from a 10s dual-stack dialer.
func NewKafkaSecurity(opts ...KafkaSecurityOption) *types.KafkaSecurity {
	sec := &types.KafkaSecurity{DialerTO: 10 * time.Second, DualStack: true}
	for _, o := range opts {
		if o != nil {
			o(sec)
		}
	}
	return sec
}

func KafkaSecurityWithTLS(cfg *tls.Config) KafkaSecurityOption {
	return func(s *types.KafkaSecurity) { s.TLS = cfg }
}

func KafkaSecurityWithSASL(mech sasl.Mechanism) KafkaSecurityOption {
	return func(s *types.KafkaSecurity) { s.SASL = mech }
}

func KafkaSecurityWithClientID(id string) KafkaSecurityOption {
	return func(s *types.KafkaSecurity) { s.ClientID = id }
}

// KafkaSecurityWithDialer ignores a non-positive timeout.
func KafkaSecurityWithDialer(timeout time.Duration, dualStack bool) KafkaSecurityOption {
	return func(s *types.KafkaSecurity) {
		if timeout > 0 {
			s.DialerTO = timeout
		}
		s.DualStack = dualStack
	}
}
