package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"
	"time"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ReloadCallback is invoked after every reload attempt, successful or not.
type ReloadCallback func(success bool, err error)

// CertificateMetrics is a snapshot of reload activity.
type CertificateMetrics struct {
	ReloadCount        int64
	ReloadSuccessCount int64
	ReloadFailureCount int64
	LastReloadTime     time.Time
	LastReloadSuccess  bool
	LastReloadError    string
}

// CertificateManager keeps the TLS certificates the server hands out in
// handshakes, reloading them when a file watcher or Vault watcher reports a
// change. All certificate access goes through it so a reload never races a
// handshake.
type CertificateManager struct {
	mu sync.RWMutex

	serverCert *tls.Certificate
	clientCert *tls.Certificate
	caCertPool *x509.CertPool

	serverCertExpiry time.Time
	clientCertExpiry time.Time
	lastReloadTime   time.Time

	fileWatcher  *CertWatcher
	vaultWatcher *VaultWatcher

	config           *config.TLSConfig
	autoReloadConfig *config.AutoReloadConfig
	vaultClient      VaultClientInterface

	reloadCallbacks []ReloadCallback
	logger          *errors.Logger

	observabilityManager *observability.ObservabilityManager

	reloadCount        int64
	reloadSuccessCount int64
	reloadFailureCount int64
	lastReloadSuccess  bool
	lastReloadError    string
}

func NewCertificateManager(tlsConfig *config.TLSConfig, autoReloadConfig *config.AutoReloadConfig, vaultClient VaultClientInterface, om *observability.ObservabilityManager, logger *errors.Logger) *CertificateManager {
	return &CertificateManager{
		config:               tlsConfig,
		autoReloadConfig:     autoReloadConfig,
		vaultClient:          vaultClient,
		logger:               logger,
		observabilityManager: om,
	}
}

// Start performs the initial certificate load and brings up whichever
// watchers the auto-reload configuration enables.
func (cm *CertificateManager) Start() error {
	if err := cm.loadCertificates(); err != nil {
		return fmt.Errorf("failed to load initial certificates: %w", err)
	}

	cm.StartExpiryMonitoring()

	if err := cm.startFileWatcher(); err != nil {
		return err
	}
	return cm.startVaultWatcher()
}

// Stop shuts down any running watchers.
func (cm *CertificateManager) Stop() error {
	if cm.fileWatcher != nil {
		if err := cm.fileWatcher.Stop(); err != nil {
			if cm.logger != nil {
				cm.logger.LogError(err, "Failed to stop file watcher")
			}
			return err
		}
	}
	if cm.vaultWatcher != nil {
		if err := cm.vaultWatcher.Stop(); err != nil {
			if cm.logger != nil {
				cm.logger.LogError(err, "Failed to stop Vault watcher")
			}
			return err
		}
	}
	if cm.logger != nil {
		cm.logger.Info("Certificate manager stopped")
	}
	return nil
}

func (cm *CertificateManager) startFileWatcher() error {
	if cm.autoReloadConfig == nil || !cm.autoReloadConfig.FileWatcher.Enabled {
		return nil
	}
	// Nothing to watch when certificates come from inline content only.
	if cm.config.CertFile == "" && cm.config.KeyFile == "" && cm.config.CAFile == "" {
		return nil
	}

	watcher, err := NewCertWatcher(
		cm.config.CertFile,
		cm.config.KeyFile,
		cm.config.CAFile,
		cm.autoReloadConfig.FileWatcher.DebounceDelay,
		cm.triggerReload,
		cm.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	cm.fileWatcher = watcher

	if cm.logger != nil {
		cm.logger.Info("Certificate file watcher started",
			"cert_file", cm.config.CertFile,
			"key_file", cm.config.KeyFile,
			"ca_file", cm.config.CAFile)
	}
	return nil
}

func (cm *CertificateManager) startVaultWatcher() error {
	if cm.autoReloadConfig == nil || !cm.autoReloadConfig.VaultWatcher.Enabled {
		return nil
	}
	// The Vault watcher only makes sense for content-sourced certificates.
	if cm.config.CertContent == "" && cm.config.KeyContent == "" && cm.config.CAContent == "" {
		return nil
	}
	if cm.vaultClient == nil {
		if cm.logger != nil {
			cm.logger.Warn("Vault watcher enabled but Vault client is nil")
		}
		return nil
	}

	vw := NewVaultWatcher(
		cm.vaultClient,
		cm.autoReloadConfig.VaultWatcher.SecretPath,
		cm.autoReloadConfig.VaultWatcher.PollInterval,
		cm.applyVaultCertData,
		cm.logger,
	)
	if err := vw.Start(); err != nil {
		return fmt.Errorf("failed to start Vault watcher: %w", err)
	}
	cm.vaultWatcher = vw

	if cm.logger != nil {
		cm.logger.Info("Vault watcher started",
			"secret_path", cm.autoReloadConfig.VaultWatcher.SecretPath,
			"poll_interval", cm.autoReloadConfig.VaultWatcher.PollInterval)
	}
	return nil
}

// applyVaultCertData receives fresh certificate material from the Vault
// watcher, folds it into the config, and reloads.
func (cm *CertificateManager) applyVaultCertData(data *CertificateData, err error) {
	if err != nil {
		if cm.logger != nil {
			cm.logger.LogError(err, "Failed to fetch new certificate data from Vault")
		}
		return
	}

	cm.mu.Lock()
	if data.CertContent != "" {
		cm.config.CertContent = data.CertContent
	}
	if data.KeyContent != "" {
		cm.config.KeyContent = data.KeyContent
	}
	if data.CAContent != "" {
		cm.config.CAContent = data.CAContent
	}
	cm.mu.Unlock()

	cm.triggerReload()
}

// GetServerCertificate is installed as tls.Config.GetCertificate so every
// handshake sees the most recently loaded certificate.
func (cm *CertificateManager) GetServerCertificate(hello *tls.ClientHelloInfo) (*tls.Certificate, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.serverCert == nil {
		return nil, fmt.Errorf("no server certificate available")
	}
	if time.Now().After(cm.serverCertExpiry) {
		if cm.logger != nil {
			cm.logger.LogError(fmt.Errorf("server certificate expired"), "Server certificate expired",
				"expiry", cm.serverCertExpiry,
				"server_name", hello.ServerName)
		}
		return nil, fmt.Errorf("server certificate expired")
	}

	if cm.autoReloadConfig != nil && cm.autoReloadConfig.PreemptiveRenewal > 0 {
		renewAt := cm.serverCertExpiry.Add(-cm.autoReloadConfig.PreemptiveRenewal)
		if time.Now().After(renewAt) {
			go cm.triggerPreemptiveRenewal()
		}
	}

	return cm.serverCert, nil
}

// GetClientCertificate returns the certificate presented to upstream servers
// in mutual TLS.
func (cm *CertificateManager) GetClientCertificate() (*tls.Certificate, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.clientCert == nil {
		return nil, fmt.Errorf("no client certificate available")
	}
	if time.Now().After(cm.clientCertExpiry) {
		if cm.logger != nil {
			cm.logger.LogError(fmt.Errorf("client certificate expired"), "Client certificate expired", "expiry", cm.clientCertExpiry)
		}
		return nil, fmt.Errorf("client certificate expired")
	}
	return cm.clientCert, nil
}

func (cm *CertificateManager) GetCACertPool() *x509.CertPool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.caCertPool
}

// VerifyPeerCertificate validates a peer leaf certificate against the
// current CA pool. Installed on the tls.Config in mutual mode so that a CA
// rotation takes effect without a server restart.
func (cm *CertificateManager) VerifyPeerCertificate(rawCerts [][]byte, verifiedChains [][]*x509.Certificate) error {
	if len(rawCerts) == 0 {
		return fmt.Errorf("no peer certificates provided")
	}

	cert, err := x509.ParseCertificate(rawCerts[0])
	if err != nil {
		return fmt.Errorf("failed to parse peer certificate: %w", err)
	}

	pool := cm.GetCACertPool()
	if pool == nil {
		return fmt.Errorf("no CA certificate pool available")
	}

	if _, err := cert.Verify(x509.VerifyOptions{Roots: pool}); err != nil {
		return fmt.Errorf("peer certificate verification failed: %w", err)
	}
	return nil
}

// ReloadCertificates forces a reload outside the watcher paths.
func (cm *CertificateManager) ReloadCertificates() error {
	return cm.loadCertificates()
}

func (cm *CertificateManager) AddReloadCallback(callback ReloadCallback) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.reloadCallbacks = append(cm.reloadCallbacks, callback)
}

// CheckExpiry reports how long until the earliest loaded certificate
// expires. Negative when already expired.
func (cm *CertificateManager) CheckExpiry() (time.Duration, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	var earliest time.Time
	if !cm.serverCertExpiry.IsZero() {
		earliest = cm.serverCertExpiry
	}
	if !cm.clientCertExpiry.IsZero() && (earliest.IsZero() || cm.clientCertExpiry.Before(earliest)) {
		earliest = cm.clientCertExpiry
	}
	if earliest.IsZero() {
		return 0, fmt.Errorf("no certificates loaded")
	}
	return time.Until(earliest), nil
}

func (cm *CertificateManager) GetMetrics() *CertificateMetrics {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	return &CertificateMetrics{
		ReloadCount:        cm.reloadCount,
		ReloadSuccessCount: cm.reloadSuccessCount,
		ReloadFailureCount: cm.reloadFailureCount,
		LastReloadTime:     cm.lastReloadTime,
		LastReloadSuccess:  cm.lastReloadSuccess,
		LastReloadError:    cm.lastReloadError,
	}
}

// loadCertificates reads certificate material from files or inline content
// and swaps it in under the write lock.
func (cm *CertificateManager) loadCertificates() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	var serverCert *tls.Certificate
	hasPair := (cm.config.CertFile != "" && cm.config.KeyFile != "") ||
		(cm.config.CertContent != "" && cm.config.KeyContent != "")
	if hasPair {
		pair, err := cm.loadKeyPair()
		if err != nil {
			return err
		}
		if err := cm.readServerExpiry(&pair); err != nil {
			return err
		}
		serverCert = &pair
	}

	caPool, err := cm.loadCAPool()
	if err != nil {
		return err
	}

	cm.serverCert = serverCert
	cm.clientCert = nil
	cm.caCertPool = caPool
	cm.lastReloadTime = time.Now()

	cm.reloadCount++
	cm.reloadSuccessCount++
	cm.lastReloadSuccess = true
	cm.lastReloadError = ""
	cm.recordReloadMetric(true, nil)
	cm.notifyCallbacks(cm.reloadCallbacks, true, nil)

	if cm.logger != nil {
		cm.logger.Info("Certificates reloaded successfully",
			"server_cert_expiry", cm.serverCertExpiry,
			"reload_time", cm.lastReloadTime)
	}
	return nil
}

// loadKeyPair prefers inline content (the Vault path) over files.
func (cm *CertificateManager) loadKeyPair() (tls.Certificate, error) {
	if cm.config.CertContent != "" && cm.config.KeyContent != "" {
		return tls.X509KeyPair([]byte(cm.config.CertContent), []byte(cm.config.KeyContent))
	}
	return tls.LoadX509KeyPair(cm.config.CertFile, cm.config.KeyFile)
}

func (cm *CertificateManager) readServerExpiry(cert *tls.Certificate) error {
	if len(cert.Certificate) == 0 {
		return nil
	}
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return fmt.Errorf("failed to parse server certificate: %w", err)
	}
	cm.serverCertExpiry = leaf.NotAfter
	return nil
}

// loadCAPool builds the client-verification pool; only mutual mode needs one.
func (cm *CertificateManager) loadCAPool() (*x509.CertPool, error) {
	if cm.config.Mode != "mutual" {
		return nil, nil
	}

	var pem []byte
	switch {
	case cm.config.CAContent != "":
		pem = []byte(cm.config.CAContent)
	case cm.config.CAFile != "":
		data, err := os.ReadFile(cm.config.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA file: %w", err)
		}
		pem = data
	}
	if len(pem) == 0 {
		return nil, nil
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("failed to parse CA certificate")
	}
	return pool, nil
}

// triggerReload is the entry point for both watchers.
func (cm *CertificateManager) triggerReload() {
	if cm.logger != nil {
		cm.logger.Info("Certificate reload triggered by file watcher")
	}

	if err := cm.loadCertificates(); err != nil {
		cm.mu.Lock()
		cm.reloadCount++
		cm.reloadFailureCount++
		cm.lastReloadSuccess = false
		cm.lastReloadError = err.Error()
		callbacks := make([]ReloadCallback, len(cm.reloadCallbacks))
		copy(callbacks, cm.reloadCallbacks)
		cm.mu.Unlock()

		cm.recordReloadMetric(false, err)
		if cm.logger != nil {
			cm.logger.LogError(err, "Failed to reload certificates")
		}
		cm.notifyCallbacks(callbacks, false, err)
	}
}

func (cm *CertificateManager) notifyCallbacks(callbacks []ReloadCallback, success bool, err error) {
	for _, cb := range callbacks {
		go cb(success, err)
	}
}

func (cm *CertificateManager) triggerPreemptiveRenewal() {
	if cm.logger != nil {
		cm.logger.Info("Triggering preemptive certificate renewal")
	}
	// File-sourced certificates are simply re-read; an external process is
	// expected to have renewed them in place.
	cm.triggerReload()
}

func (cm *CertificateManager) recordReloadMetric(success bool, err error) {
	if cm.observabilityManager == nil {
		return
	}
	metrics := cm.observabilityManager.GetMetrics()
	if metrics == nil {
		return
	}

	ctx := context.Background()
	attrs := []attribute.KeyValue{
		attribute.String("cert_type", "server"),
	}
	if success {
		attrs = append(attrs, attribute.String("status", "success"))
	} else {
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		attrs = append(attrs,
			attribute.String("status", "failure"),
			attribute.String("error", msg))
	}
	metrics.CertReloadCount.Add(ctx, 1, metric.WithAttributes(attrs...))

	cm.updateExpiryMetrics()
}

func (cm *CertificateManager) updateExpiryMetrics() {
	if cm.observabilityManager == nil {
		return
	}
	metrics := cm.observabilityManager.GetMetrics()
	if metrics == nil {
		return
	}

	ctx := context.Background()
	now := time.Now()

	if !cm.serverCertExpiry.IsZero() {
		metrics.CertExpiryTime.Record(ctx, cm.serverCertExpiry.Sub(now).Seconds(),
			metric.WithAttributes(attribute.String("cert_type", "server")))
	}
	if !cm.clientCertExpiry.IsZero() {
		metrics.CertExpiryTime.Record(ctx, cm.clientCertExpiry.Sub(now).Seconds(),
			metric.WithAttributes(attribute.String("cert_type", "client")))
	}
}

// StartExpiryMonitoring refreshes the expiry gauge once a minute so the
// metric stays current between reloads.
func (cm *CertificateManager) StartExpiryMonitoring() {
	if cm.observabilityManager == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			cm.mu.RLock()
			cm.updateExpiryMetrics()
			cm.mu.RUnlock()
		}
	}()

	if cm.logger != nil {
		cm.logger.Info("Certificate expiry monitoring started")
	}
}
