package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// checkValidationErr asserts err is nil when want is empty, otherwise that
// it contains want.
func checkValidationErr(t *testing.T, err error, want string) {
	t.Helper()
	if want == "" {
		assert.NoError(t, err)
		return
	}
	assert.Error(t, err)
	assert.Contains(t, err.Error(), want)
}

func TestValidateTLSMode(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr string
	}{
		{name: "disabled mode", tls: TLSConfig{Mode: "disabled"}},
		{
			name: "server mode valid",
			tls:  TLSConfig{Mode: "server", CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem"},
		},
		{
			name: "mutual mode valid",
			tls:  TLSConfig{Mode: "mutual", CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem", CAFile: "/path/to/ca.pem"},
		},
		{name: "invalid mode", tls: TLSConfig{Mode: "invalid"}, wantErr: "invalid TLS mode: invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkValidationErr(t, validateTLSMode(tt.tls), tt.wantErr)
		})
	}
}

func TestValidateServerModeTLS(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr string
	}{
		{
			name: "valid with files",
			tls:  TLSConfig{CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem"},
		},
		{
			name: "valid with content",
			tls:  TLSConfig{CertContent: "cert-content", KeyContent: "key-content"},
		},
		{
			name:    "missing certificate",
			tls:     TLSConfig{KeyFile: "/path/to/key.pem"},
			wantErr: "TLS certificate and key are required for server mode",
		},
		{
			name:    "missing key",
			tls:     TLSConfig{CertFile: "/path/to/cert.pem"},
			wantErr: "TLS certificate and key are required for server mode",
		},
		{
			name:    "duplicate cert sources",
			tls:     TLSConfig{CertFile: "/path/to/cert.pem", CertContent: "cert-content", KeyFile: "/path/to/key.pem"},
			wantErr: "cannot specify both certFile and certContent",
		},
		{
			name:    "duplicate key sources",
			tls:     TLSConfig{CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem", KeyContent: "key-content"},
			wantErr: "cannot specify both keyFile and keyContent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkValidationErr(t, validateServerModeTLS(tt.tls), tt.wantErr)
		})
	}
}

func TestValidateMutualModeTLS(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr string
	}{
		{
			name: "valid with files",
			tls:  TLSConfig{CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem", CAFile: "/path/to/ca.pem"},
		},
		{
			name: "valid with content",
			tls:  TLSConfig{CertContent: "cert-content", KeyContent: "key-content", CAContent: "ca-content"},
		},
		{
			name: "valid with require policy",
			tls:  TLSConfig{CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem", CAFile: "/path/to/ca.pem", ClientAuthPolicy: "require"},
		},
		{
			name:    "missing CA",
			tls:     TLSConfig{CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem"},
			wantErr: "CA certificate is required for mutual TLS mode",
		},
		{
			name:    "duplicate CA sources",
			tls:     TLSConfig{CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem", CAFile: "/path/to/ca.pem", CAContent: "ca-content"},
			wantErr: "cannot specify both caFile and caContent",
		},
		{
			name:    "invalid client auth policy",
			tls:     TLSConfig{CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem", CAFile: "/path/to/ca.pem", ClientAuthPolicy: "invalid"},
			wantErr: "invalid clientAuthPolicy: invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkValidationErr(t, validateMutualModeTLS(tt.tls), tt.wantErr)
		})
	}
}

func TestValidateCertAndKeyRequired(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		mode    string
		wantErr bool
	}{
		{
			name: "both files provided",
			tls:  TLSConfig{CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem"},
			mode: "server mode",
		},
		{
			name: "both content provided",
			tls:  TLSConfig{CertContent: "cert-content", KeyContent: "key-content"},
			mode: "mutual mode",
		},
		{
			name: "mixed sources valid",
			tls:  TLSConfig{CertFile: "/path/to/cert.pem", KeyContent: "key-content"},
			mode: "server mode",
		},
		{name: "missing certificate", tls: TLSConfig{KeyFile: "/path/to/key.pem"}, mode: "server mode", wantErr: true},
		{name: "missing key", tls: TLSConfig{CertFile: "/path/to/cert.pem"}, mode: "mutual mode", wantErr: true},
		{name: "both missing", tls: TLSConfig{}, mode: "server mode", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCertAndKeyRequired(tt.tls, tt.mode)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "TLS certificate and key are required")
			assert.Contains(t, err.Error(), tt.mode)
		})
	}
}

func TestValidateCARequired(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr bool
	}{
		{name: "CA file provided", tls: TLSConfig{CAFile: "/path/to/ca.pem"}},
		{name: "CA content provided", tls: TLSConfig{CAContent: "ca-content"}},
		{name: "no CA provided", tls: TLSConfig{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := ""
			if tt.wantErr {
				want = "CA certificate is required for mutual TLS mode"
			}
			checkValidationErr(t, validateCARequired(tt.tls), want)
		})
	}
}

func TestValidateNoDuplicateCertSources(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr string
	}{
		{name: "no duplicates", tls: TLSConfig{CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem"}},
		{name: "content only", tls: TLSConfig{CertContent: "cert-content", KeyContent: "key-content"}},
		{name: "mixed sources valid", tls: TLSConfig{CertFile: "/path/to/cert.pem", KeyContent: "key-content"}},
		{
			name:    "duplicate cert sources",
			tls:     TLSConfig{CertFile: "/path/to/cert.pem", CertContent: "cert-content"},
			wantErr: "cannot specify both certFile and certContent",
		},
		{
			name:    "duplicate key sources",
			tls:     TLSConfig{KeyFile: "/path/to/key.pem", KeyContent: "key-content"},
			wantErr: "cannot specify both keyFile and keyContent",
		},
		{
			// The cert check fires first when both pairs are duplicated.
			name:    "both duplicates",
			tls:     TLSConfig{CertFile: "/path/to/cert.pem", CertContent: "cert-content", KeyFile: "/path/to/key.pem", KeyContent: "key-content"},
			wantErr: "cannot specify both certFile and certContent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkValidationErr(t, validateNoDuplicateCertSources(tt.tls), tt.wantErr)
		})
	}
}

func TestValidateCANoDuplicateSource(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr bool
	}{
		{name: "CA file only", tls: TLSConfig{CAFile: "/path/to/ca.pem"}},
		{name: "CA content only", tls: TLSConfig{CAContent: "ca-content"}},
		{name: "no CA", tls: TLSConfig{}},
		{name: "duplicate CA sources", tls: TLSConfig{CAFile: "/path/to/ca.pem", CAContent: "ca-content"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := ""
			if tt.wantErr {
				want = "cannot specify both caFile and caContent"
			}
			checkValidationErr(t, validateCANoDuplicateSource(tt.tls), want)
		})
	}
}

func TestValidateClientAuthPolicy(t *testing.T) {
	for _, policy := range []string{"require", "request", "verify", ""} {
		t.Run("accepts "+policy, func(t *testing.T) {
			assert.NoError(t, validateClientAuthPolicy(TLSConfig{ClientAuthPolicy: policy}))
		})
	}

	t.Run("rejects unknown policy", func(t *testing.T) {
		err := validateClientAuthPolicy(TLSConfig{ClientAuthPolicy: "invalid"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid clientAuthPolicy")
		assert.Contains(t, err.Error(), "must be 'require', 'request', or 'verify'")
	})
}

func TestValidateTLSVersion(t *testing.T) {
	for _, version := range []string{"", "1.2", "1.3"} {
		t.Run("accepts "+version, func(t *testing.T) {
			assert.NoError(t, validateTLSVersion(TLSConfig{MinVersion: version}))
		})
	}

	for _, version := range []string{"1.1", "invalid"} {
		t.Run("rejects "+version, func(t *testing.T) {
			err := validateTLSVersion(TLSConfig{MinVersion: version})
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid TLS minVersion")
			assert.Contains(t, err.Error(), "must be '1.2' or '1.3'")
		})
	}
}

func TestValidateTLSConfigIntegration(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr string
	}{
		{
			name: "complete valid server config",
			tls:  TLSConfig{Mode: "server", CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem", MinVersion: "1.2"},
		},
		{
			name: "complete valid mutual config",
			tls: TLSConfig{
				Mode:             "mutual",
				CertContent:      "cert-content",
				KeyContent:       "key-content",
				CAContent:        "ca-content",
				ClientAuthPolicy: "require",
				MinVersion:       "1.3",
			},
		},
		{name: "disabled TLS", tls: TLSConfig{Mode: "disabled"}},
		{
			name:    "invalid mode with valid certs",
			tls:     TLSConfig{Mode: "invalid", CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem"},
			wantErr: "invalid TLS mode: invalid",
		},
		{
			name:    "valid mode with invalid version",
			tls:     TLSConfig{Mode: "server", CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem", MinVersion: "1.0"},
			wantErr: "invalid TLS minVersion: 1.0",
		},
		{
			name:    "server mode missing certificates",
			tls:     TLSConfig{Mode: "server", MinVersion: "1.2"},
			wantErr: "TLS certificate and key are required for server mode",
		},
		{
			name:    "mutual mode missing CA",
			tls:     TLSConfig{Mode: "mutual", CertFile: "/path/to/cert.pem", KeyFile: "/path/to/key.pem"},
			wantErr: "CA certificate is required for mutual TLS mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Server: ServerConfig{TLS: tt.tls}}
			checkValidationErr(t, cfg.ValidateTLSConfig(), tt.wantErr)
		})
	}
}
