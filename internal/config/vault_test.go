package config

import (
	"os"
	"path/filepath"
	"testing"

	"resumelens/internal/errors"

	"github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("debug")
	require.NoError(t, err)
	return logger
}

func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    int64
		wantErr bool
	}{
		{name: "int64 value", input: int64(42), want: 42},
		{name: "float64 value", input: float64(42.0), want: 42},
		{name: "string value", input: "42", want: 42},
		{name: "invalid string value", input: "not-a-number", wantErr: true},
		{name: "unsupported type", input: []string{"42"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVersionValue(tt.input, "test/path")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadSingleCertificate(t *testing.T) {
	logger := testLogger(t)

	tests := []struct {
		name      string
		data      map[string]any
		wantCount int
		wantValue string
	}{
		{
			name:      "valid certificate content",
			data:      map[string]any{"cert": "-----BEGIN CERTIFICATE-----\ntest-cert\n-----END CERTIFICATE-----"},
			wantCount: 1,
			wantValue: "-----BEGIN CERTIFICATE-----\ntest-cert\n-----END CERTIFICATE-----",
		},
		{name: "empty certificate content", data: map[string]any{"cert": ""}},
		{name: "missing certificate key", data: map[string]any{"other": "value"}},
		{name: "non-string certificate value", data: map[string]any{"cert": 123}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target string
			count := loadSingleCertificate(&VaultSecret{Data: tt.data}, "cert", &target, "TLS certificate content", logger)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantValue, target)
		})
	}
}

func TestResolveVaultToken(t *testing.T) {
	logger := testLogger(t)

	writeTokenFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "vault-token")
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
		return path
	}

	t.Run("token from config", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{Token: "direct-token"}, logger)
		assert.NoError(t, err)
		assert.Equal(t, "direct-token", token)
	})

	t.Run("token from file is trimmed", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{TokenFile: writeTokenFile(t, "  file-token  \n")}, logger)
		assert.NoError(t, err)
		assert.Equal(t, "file-token", token)
	})

	t.Run("missing token file", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{TokenFile: "/nonexistent/token/file"}, logger)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read vault token file")
	})

	t.Run("no token provided", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{}, logger)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "vault token is required")
	})

	t.Run("whitespace-only token file", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{TokenFile: writeTokenFile(t, "   \n  \n")}, logger)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "vault token is required")
	})
}

func TestValidateTLSDeprecatedFields(t *testing.T) {
	logger := testLogger(t)

	t.Run("content-based fields pass", func(t *testing.T) {
		err := validateTLSDeprecatedFields(&VaultSecret{Data: map[string]any{
			"cert": "cert-content",
			"key":  "key-content",
			"ca":   "ca-content",
		}}, logger)
		assert.NoError(t, err)
	})

	for _, field := range []string{"cert_file", "key_file", "ca_file"} {
		t.Run("rejects "+field, func(t *testing.T) {
			err := validateTLSDeprecatedFields(&VaultSecret{Data: map[string]any{field: "/some/path"}}, logger)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), field)
			assert.Contains(t, err.Error(), "no longer supported")
		})
	}
}

func TestLoadTLSCertificateContent(t *testing.T) {
	logger := testLogger(t)
	config := &Config{}

	tlsData := &VaultSecret{Data: map[string]any{
		"cert": "cert-content",
		"key":  "key-content",
		"ca":   "ca-content",
	}}

	assert.Equal(t, 3, loadTLSCertificateContent(config, tlsData, logger))
	assert.Equal(t, "cert-content", config.Server.TLS.CertContent)
	assert.Equal(t, "key-content", config.Server.TLS.KeyContent)
	assert.Equal(t, "ca-content", config.Server.TLS.CAContent)
}

func TestLoadTLSCertificateContentPartial(t *testing.T) {
	logger := testLogger(t)
	config := &Config{}

	tlsData := &VaultSecret{Data: map[string]any{"cert": "cert-content"}}

	assert.Equal(t, 1, loadTLSCertificateContent(config, tlsData, logger))
	assert.Equal(t, "cert-content", config.Server.TLS.CertContent)
	assert.Empty(t, config.Server.TLS.KeyContent)
	assert.Empty(t, config.Server.TLS.CAContent)
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	config := &Config{Vault: VaultConfig{Enabled: false}}
	assert.NoError(t, ApplyVaultSecrets(config, testLogger(t)))
}

func TestParseInt64(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "positive", input: "42", want: 42},
		{name: "negative", input: "-42", want: -42},
		{name: "zero", input: "0", want: 0},
		{name: "not a number", input: "not-a-number", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "float string", input: "42.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInt64(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVaultClientExtractSecretData(t *testing.T) {
	vc := &VaultClient{logger: testLogger(t)}

	tests := []struct {
		name    string
		secret  *api.Secret
		want    map[string]any
		wantErr bool
	}{
		{
			name: "valid KVv2 secret",
			secret: &api.Secret{Data: map[string]any{
				"data": map[string]any{"key1": "value1", "key2": "value2"},
			}},
			want: map[string]any{"key1": "value1", "key2": "value2"},
		},
		{
			name:    "missing data field",
			secret:  &api.Secret{Data: map[string]any{"metadata": map[string]any{}}},
			wantErr: true,
		},
		{
			name:    "data field wrong type",
			secret:  &api.Secret{Data: map[string]any{"data": "not-a-map"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vc.extractSecretData(tt.secret, "secret/test")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVaultClientExtractSecretVersion(t *testing.T) {
	vc := &VaultClient{logger: testLogger(t)}

	tests := []struct {
		name    string
		secret  *api.Secret
		want    int64
		wantErr bool
	}{
		{
			name: "version as int64",
			secret: &api.Secret{Data: map[string]any{
				"metadata": map[string]any{"version": int64(42)},
			}},
			want: 42,
		},
		{
			name: "version as float64",
			secret: &api.Secret{Data: map[string]any{
				"metadata": map[string]any{"version": float64(42)},
			}},
			want: 42,
		},
		{
			name:    "missing metadata field",
			secret:  &api.Secret{Data: map[string]any{"data": map[string]any{}}},
			wantErr: true,
		},
		{
			name: "missing version field",
			secret: &api.Secret{Data: map[string]any{
				"metadata": map[string]any{"other": "value"},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vc.extractSecretVersion(tt.secret, "secret/test")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
