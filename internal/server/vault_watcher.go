package server

import (
	"fmt"
	"sync"
	"time"

	"resumelens/internal/config"
	"resumelens/internal/errors"
)

// VaultClientInterface is the slice of the Vault client the server needs.
// Kept as an interface so watcher tests can substitute a fake.
type VaultClientInterface interface {
	GetSecretV2(path string) (*config.VaultSecret, error)
	GetStringSecret(path, key string) (string, error)
	GetStringSliceSecret(path, key string) ([]string, error)
}

// CertificateData carries certificate material read from a Vault secret.
type CertificateData struct {
	CertContent string
	KeyContent  string
	CAContent   string
}

// VaultReloadCallback receives new certificate data, or the error that
// prevented fetching it.
type VaultReloadCallback func(data *CertificateData, err error)

// VaultWatcher polls a KV v2 secret and fires the callback whenever the
// secret version increases. Version comparison keeps the poll cheap: the
// certificate content is only fetched after a change is detected.
type VaultWatcher struct {
	mu sync.RWMutex

	client         VaultClientInterface
	secretPath     string
	pollInterval   time.Duration
	reloadCallback VaultReloadCallback
	logger         *errors.Logger

	stopChan    chan struct{}
	reloadChan  chan struct{}
	running     bool
	lastVersion int64
}

func NewVaultWatcher(client VaultClientInterface, secretPath string, pollInterval time.Duration, reloadCallback VaultReloadCallback, logger *errors.Logger) *VaultWatcher {
	return &VaultWatcher{
		client:         client,
		secretPath:     secretPath,
		pollInterval:   pollInterval,
		reloadCallback: reloadCallback,
		logger:         logger,
		stopChan:       make(chan struct{}),
		reloadChan:     make(chan struct{}, 1),
	}
}

func (vw *VaultWatcher) Start() error {
	vw.mu.Lock()
	defer vw.mu.Unlock()
	if vw.running {
		return fmt.Errorf("vault watcher is already running")
	}
	vw.running = true
	go vw.pollLoop()
	if vw.logger != nil {
		vw.logger.Info("Vault watcher started", "secret_path", vw.secretPath, "poll_interval", vw.pollInterval)
	}
	return nil
}

func (vw *VaultWatcher) Stop() error {
	vw.mu.Lock()
	defer vw.mu.Unlock()
	if !vw.running {
		return nil
	}
	close(vw.stopChan)
	vw.running = false
	if vw.logger != nil {
		vw.logger.Info("Vault watcher stopped")
	}
	return nil
}

func (vw *VaultWatcher) pollLoop() {
	ticker := time.NewTicker(vw.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			vw.poll()
		case <-vw.stopChan:
			return
		}
	}
}

// poll runs one version check and, on change, delivers fresh certificate
// data to the callback. Poll errors are logged and retried next tick.
func (vw *VaultWatcher) poll() {
	changed, err := vw.checkForUpdates()
	if err != nil {
		if vw.logger != nil {
			vw.logger.LogError(err, "Failed to check Vault for updates")
		}
		return
	}
	if !changed {
		return
	}

	if vw.logger != nil {
		vw.logger.Info("Vault secret changed, fetching new certificate data...")
	}

	data, err := vw.fetchNewCertsFromVault()
	if err != nil {
		if vw.logger != nil {
			vw.logger.LogError(err, "Failed to fetch new certificate data from Vault")
		}
		vw.reloadCallback(nil, err)
		return
	}

	if vw.logger != nil {
		vw.logger.Info("New certificate data fetched from Vault, triggering reload")
	}
	vw.reloadCallback(data, nil)
}

// checkForUpdates reads the secret metadata and reports whether its version
// moved past the last one seen.
func (vw *VaultWatcher) checkForUpdates() (bool, error) {
	secret, err := vw.client.GetSecretV2(vw.secretPath)
	if err != nil {
		return false, fmt.Errorf("failed to read secret: %w", err)
	}
	if secret.Version > vw.lastVersion {
		vw.lastVersion = secret.Version
		return true, nil
	}
	return false, nil
}

// fetchNewCertsFromVault pulls whichever of cert/key/ca keys the secret
// carries; absent keys leave the corresponding field empty.
func (vw *VaultWatcher) fetchNewCertsFromVault() (*CertificateData, error) {
	secret, err := vw.client.GetSecretV2(vw.secretPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch new TLS data from vault: %w", err)
	}

	data := &CertificateData{}
	if cert, ok := secret.Data["cert"].(string); ok {
		data.CertContent = cert
	}
	if key, ok := secret.Data["key"].(string); ok {
		data.KeyContent = key
	}
	if ca, ok := secret.Data["ca"].(string); ok {
		data.CAContent = ca
	}
	return data, nil
}

// Status reports watcher state for the health endpoint.
func (vw *VaultWatcher) Status() map[string]any {
	vw.mu.RLock()
	defer vw.mu.RUnlock()
	return map[string]any{
		"running":       vw.running,
		"poll_interval": vw.pollInterval.String(),
		"secret_path":   vw.secretPath,
		"last_version":  vw.lastVersion,
	}
}
