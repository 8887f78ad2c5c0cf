package security

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSConfig configures a client connection to a TLS endpoint, optionally
// presenting a client certificate.
type TLSConfig struct {
	// CAFile verifies the server against a private CA instead of the system roots.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`
	// CertFile and KeyFile enable mutual TLS. Both or neither.
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`
	KeyFile  string `yaml:"key_file" mapstructure:"key_file"`
	// ServerName overrides the name checked against the server certificate.
	ServerName string `yaml:"server_name" mapstructure:"server_name"`
	// SkipVerify disables server verification. Local development only.
	SkipVerify bool `yaml:"skip_verify" mapstructure:"skip_verify"`
}

// Enabled reports whether any TLS option is set. A nil config is disabled.
func (c *TLSConfig) Enabled() bool {
	return c != nil && (c.CAFile != "" || c.CertFile != "" || c.ServerName != "" || c.SkipVerify)
}

// Validate checks that the certificate options are consistent.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	if (c.CertFile == "") != (c.KeyFile == "") {
		return fmt.Errorf("tls: cert_file and key_file must be set together")
	}
	return nil
}

// ClientConfig builds the crypto/tls client configuration, or nil when
// nothing is configured and the transport defaults apply.
func (c *TLSConfig) ClientConfig() (*tls.Config, error) {
	if !c.Enabled() {
		return nil, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		ServerName:         c.ServerName,
		InsecureSkipVerify: c.SkipVerify, //nolint:gosec // opt-in for local sidecars
	}

	if c.CAFile != "" {
		pem, err := os.ReadFile(c.CAFile)
		if err != nil {
			return nil, fmt.Errorf("tls: read ca_file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("tls: no certificate found in %s", c.CAFile)
		}
		cfg.RootCAs = pool
	}

	if c.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("tls: load client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}
