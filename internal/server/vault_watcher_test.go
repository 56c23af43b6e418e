package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"resumelens/internal/config"
)

// MockVaultClient serves canned secrets keyed by path.
type MockVaultClient struct {
	secrets map[string]*config.VaultSecret
}

func (m *MockVaultClient) GetSecretV2(path string) (*config.VaultSecret, error) {
	return m.secrets[path], nil
}

func (m *MockVaultClient) GetStringSecret(path, key string) (string, error) {
	if secret, exists := m.secrets[path]; exists {
		if value, ok := secret.Data[key].(string); ok {
			return value, nil
		}
	}
	return "", nil
}

func (m *MockVaultClient) GetStringSliceSecret(path, key string) ([]string, error) {
	if secret, exists := m.secrets[path]; exists {
		if value, ok := secret.Data[key].([]string); ok {
			return value, nil
		}
	}
	return nil, nil
}

func newTestVaultWatcher(client VaultClientInterface) *VaultWatcher {
	return &VaultWatcher{
		client:         client,
		secretPath:     "secret/data/test",
		pollInterval:   time.Minute,
		reloadCallback: func(data *CertificateData, err error) {},
		logger:         nil,
		stopChan:       make(chan struct{}),
		reloadChan:     make(chan struct{}, 1),
	}
}

func TestVaultWatcherFetchNewCertsFromVault(t *testing.T) {
	vw := newTestVaultWatcher(&MockVaultClient{
		secrets: map[string]*config.VaultSecret{
			"secret/data/test": {
				Data: map[string]any{
					"cert": "new-cert-content",
					"key":  "new-key-content",
					"ca":   "new-ca-content",
				},
				Version: 1,
			},
		},
	})

	data, err := vw.fetchNewCertsFromVault()
	require.NoError(t, err)
	require.Equal(t, "new-cert-content", data.CertContent)
	require.Equal(t, "new-key-content", data.KeyContent)
	require.Equal(t, "new-ca-content", data.CAContent)
}

func TestVaultWatcherCheckForUpdates(t *testing.T) {
	vw := newTestVaultWatcher(&MockVaultClient{
		secrets: map[string]*config.VaultSecret{
			"secret/data/test": {
				Data:    map[string]any{},
				Version: 2,
			},
		},
	})

	// The first check moves the tracked version from 0 to 2.
	changed, err := vw.checkForUpdates()
	require.NoError(t, err)
	require.True(t, changed, "version bump should be detected")

	// The version has not moved since, so nothing to report.
	changed, err = vw.checkForUpdates()
	require.NoError(t, err)
	require.False(t, changed, "unchanged version should not trigger a reload")
}
