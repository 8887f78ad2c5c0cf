package security

import (
	"crypto/tls"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/voicecheck/security/tlstest"
)

func TestTLSConfig_DisabledYieldsNil(t *testing.T) {
	var nilCfg *TLSConfig
	for name, c := range map[string]*TLSConfig{"nil": nilCfg, "zero": {}} {
		if c.Enabled() {
			t.Errorf("%s: expected disabled", name)
		}
		got, err := c.ClientConfig()
		if err != nil || got != nil {
			t.Errorf("%s: expected nil config, got %v %v", name, got, err)
		}
	}
}

func TestTLSConfig_ClientConfig(t *testing.T) {
	certs := tlstest.Generate(t)

	cfg := &TLSConfig{CAFile: certs.CAFile, CertFile: certs.CertFile, KeyFile: certs.KeyFile, ServerName: "localhost"}
	got, err := cfg.ClientConfig()
	if err != nil {
		t.Fatalf("ClientConfig: %v", err)
	}
	if got.RootCAs == nil {
		t.Error("expected the CA pool to be loaded")
	}
	if len(got.Certificates) != 1 {
		t.Errorf("expected one client certificate, got %d", len(got.Certificates))
	}
	if got.MinVersion != tls.VersionTLS12 || got.ServerName != "localhost" || got.InsecureSkipVerify {
		t.Errorf("unexpected config %+v", got)
	}
}

func TestTLSConfig_Errors(t *testing.T) {
	certs := tlstest.Generate(t)
	tests := []struct {
		name string
		cfg  TLSConfig
		want string
	}{
		{"cert without key", TLSConfig{CertFile: certs.CertFile}, "set together"},
		{"key without cert", TLSConfig{CAFile: certs.CAFile, KeyFile: certs.KeyFile}, "set together"},
		{"missing ca", TLSConfig{CAFile: filepath.Join(t.TempDir(), "ca.pem")}, "read ca_file"},
		{"garbage ca", TLSConfig{CAFile: tlstest.WriteGarbage(t, "ca.pem")}, "no certificate"},
		{"swapped pair", TLSConfig{CertFile: certs.KeyFile, KeyFile: certs.CertFile}, "client certificate"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.cfg.ClientConfig()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
