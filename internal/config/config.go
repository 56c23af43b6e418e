package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root of all runtime configuration. Values are resolved in
// precedence order: Vault secrets, then the config file, then environment
// variables (RESUMELENS_* with dots mapped to underscores), then defaults.
type Config struct {
	Analysis      AnalysisConfig      `mapstructure:"analysis"`
	Server        ServerConfig        `mapstructure:"server"`
	App           AppConfig           `mapstructure:"app"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AnalysisConfig carries the global analysis limits plus per-operation
// overrides. Unset override fields fall back to the global values.
type AnalysisConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxInputSize int64         `mapstructure:"maxInputSize"`

	Match     OperationConfig `mapstructure:"match"`
	Bullet    OperationConfig `mapstructure:"bullet"`
	Statement OperationConfig `mapstructure:"statement"`
}

// OperationConfig overrides the global analysis limits for one operation.
// Nil fields mean "inherit".
type OperationConfig struct {
	Timeout      *time.Duration `mapstructure:"timeout"`
	MaxInputSize *int64         `mapstructure:"maxInputSize"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`

	TLS TLSConfig `mapstructure:"tls"`

	// APIKeys lists the keys accepted by the authentication middleware.
	APIKeys []string `mapstructure:"apiKeys"`

	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

// TLSConfig configures TLS and mutual TLS. Certificates may come from
// files (CertFile/KeyFile/CAFile) or as PEM content (CertContent etc.)
// when sourced from Vault; content wins when both are present.
type TLSConfig struct {
	Mode     string `mapstructure:"mode"` // disabled, server, mutual
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
	CAFile   string `mapstructure:"caFile"` // required for mutual mode unless CAContent is set

	CertContent string `mapstructure:"certContent"`
	KeyContent  string `mapstructure:"keyContent"`
	CAContent   string `mapstructure:"caContent"`

	MinVersion       string   `mapstructure:"minVersion"`   // "1.2" or "1.3"
	CipherSuites     []string `mapstructure:"cipherSuites"` // empty means Go defaults
	ClientAuthPolicy string   `mapstructure:"clientAuthPolicy"`

	InsecureSkipVerify bool   `mapstructure:"insecureSkipVerify"` // dev only
	ServerName         string `mapstructure:"serverName"`

	AutoReload AutoReloadConfig `mapstructure:"autoReload"`
}

// AutoReloadConfig controls automatic certificate reloading.
type AutoReloadConfig struct {
	Enabled           bool               `mapstructure:"enabled"`
	CheckInterval     time.Duration      `mapstructure:"checkInterval"`
	PreemptiveRenewal time.Duration      `mapstructure:"preemptiveRenewal"`
	MaxRetries        int                `mapstructure:"maxRetries"`
	RetryDelay        time.Duration      `mapstructure:"retryDelay"`
	FileWatcher       FileWatcherConfig  `mapstructure:"fileWatcher"`
	VaultWatcher      VaultWatcherConfig `mapstructure:"vaultWatcher"`
}

// FileWatcherConfig controls filesystem-based certificate watching.
type FileWatcherConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	DebounceDelay time.Duration `mapstructure:"debounceDelay"`
}

// VaultWatcherConfig controls Vault-based certificate polling.
type VaultWatcherConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	PollInterval   time.Duration `mapstructure:"pollInterval"`
	AutoRenew      bool          `mapstructure:"autoRenew"`
	RenewThreshold time.Duration `mapstructure:"renewThreshold"`
	SecretPath     string        `mapstructure:"secretPath"`
}

// RateLimitConfig configures the token-bucket rate limiter.
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	RequestsPerMin int           `mapstructure:"requestsPerMin"`
	BurstCapacity  int           `mapstructure:"burstCapacity"`
	ByIP           bool          `mapstructure:"byIP"`
	ByAPIKey       bool          `mapstructure:"byAPIKey"`
	Window         time.Duration `mapstructure:"window"`
}

// AppConfig holds application-wide settings shared by the CLI and server.
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// ObservabilityConfig configures tracing, metrics and their exporters.
type ObservabilityConfig struct {
	Enabled         bool                `mapstructure:"enabled"`
	ServiceName     string              `mapstructure:"serviceName"`
	ServiceVersion  string              `mapstructure:"serviceVersion"`
	ServiceInstance string              `mapstructure:"serviceInstance"`
	ConsoleOutput   bool                `mapstructure:"consoleOutput"`
	SampleRate      float64             `mapstructure:"sampleRate"`
	Tracing         TracingConfig       `mapstructure:"tracing"`
	Metrics         MetricsConfig       `mapstructure:"metrics"`
	CustomMetrics   CustomMetricsConfig `mapstructure:"customMetrics"`
	Console         ConsoleConfig       `mapstructure:"console"`
	Prometheus      PrometheusConfig    `mapstructure:"prometheus"`
	OTLP            OTLPConfig          `mapstructure:"otlp"`
	HealthCheck     HealthCheckConfig   `mapstructure:"healthCheck"`
}

type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sampleRate"`
}

type MetricsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

type ConsoleConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	PrettyPrint bool `mapstructure:"prettyPrint"`
}

// CustomMetricsConfig toggles the application-level metric groups.
type CustomMetricsConfig struct {
	Analysis        AnalysisMetricsConfig       `mapstructure:"analysis"`
	BusinessMetrics BusinessMetricsConfig       `mapstructure:"businessMetrics"`
	Infrastructure  InfrastructureMetricsConfig `mapstructure:"infrastructure"`
}

type AnalysisMetricsConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	TrackDuration bool `mapstructure:"trackDuration"`
	TrackScores   bool `mapstructure:"trackScores"`
}

type BusinessMetricsConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	TrackSuccessRates bool `mapstructure:"trackSuccessRates"`
	TrackContentSizes bool `mapstructure:"trackContentSizes"`
}

type InfrastructureMetricsConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	TrackRateLimits bool `mapstructure:"trackRateLimits"`
	TrackCertExpiry bool `mapstructure:"trackCertExpiry"`
}

type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Port     string `mapstructure:"port"`
}

type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

type HealthCheckConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoadConfig builds the configuration from defaults, an optional YAML
// config file and RESUMELENS_* environment variables, then validates it.
func LoadConfig() (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	v := viper.New()
	setDefaults(v)
	log.Println("[CONFIG] Applied default configuration values")

	v.SetEnvPrefix("RESUMELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	log.Println("[CONFIG] Configured environment variable handling with prefix 'RESUMELENS'")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/resumelens/")
	v.AddConfigPath("$HOME/.resumelens")
	v.AddConfigPath(".")
	log.Println("[CONFIG] Configured config file search paths: /etc/resumelens/, $HOME/.resumelens, .")

	// A missing config file is fine; any other read error is not.
	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Successfully loaded config file: %s", configFileUsed)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	log.Println("[CONFIG] Successfully unmarshaled configuration")

	config.applyFallbacks()
	log.Println("[CONFIG] Applied configuration fallbacks and environment variable overrides")

	config.logSources(configFileUsed)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Analysis limits. The global values act as fallbacks for any
	// operation that does not override them.
	v.SetDefault("analysis.timeout", 10*time.Second)
	v.SetDefault("analysis.maxInputSize", 256*1024)
	v.SetDefault("analysis.match.timeout", 15*time.Second) // full-document matching needs more headroom
	v.SetDefault("analysis.bullet.timeout", 5*time.Second)
	v.SetDefault("analysis.bullet.maxInputSize", 4*1024) // a single bullet point
	v.SetDefault("analysis.statement.timeout", 5*time.Second)
	v.SetDefault("analysis.statement.maxInputSize", 8*1024)

	// Server.
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	v.SetDefault("server.apiKeys", []string{})

	// TLS.
	v.SetDefault("server.tls.mode", "disabled")
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.caFile", "")
	v.SetDefault("server.tls.minVersion", "1.2")
	v.SetDefault("server.tls.cipherSuites", []string{})
	v.SetDefault("server.tls.clientAuthPolicy", "require")
	v.SetDefault("server.tls.insecureSkipVerify", false)
	v.SetDefault("server.tls.serverName", "")

	// Certificate auto-reload.
	v.SetDefault("server.tls.autoReload.enabled", true)
	v.SetDefault("server.tls.autoReload.checkInterval", 30*time.Second)
	v.SetDefault("server.tls.autoReload.preemptiveRenewal", 72*time.Hour)
	v.SetDefault("server.tls.autoReload.maxRetries", 3)
	v.SetDefault("server.tls.autoReload.retryDelay", 10*time.Second)
	v.SetDefault("server.tls.autoReload.fileWatcher.enabled", true)
	v.SetDefault("server.tls.autoReload.fileWatcher.debounceDelay", time.Second)
	v.SetDefault("server.tls.autoReload.vaultWatcher.enabled", false)
	v.SetDefault("server.tls.autoReload.vaultWatcher.pollInterval", 5*time.Minute)
	v.SetDefault("server.tls.autoReload.vaultWatcher.autoRenew", true)
	v.SetDefault("server.tls.autoReload.vaultWatcher.renewThreshold", 24*time.Hour)
	v.SetDefault("server.tls.autoReload.vaultWatcher.secretPath", "")

	// Rate limiting.
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// Application.
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 1024*1024)

	// Vault.
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.tlsCerts", "")

	// Observability. ServiceVersion falls back to the app version and
	// ServiceInstance is derived from the hostname when left empty.
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "resumelens")
	v.SetDefault("observability.serviceVersion", "")
	v.SetDefault("observability.serviceInstance", "")
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)
	v.SetDefault("observability.customMetrics.analysis.enabled", true)
	v.SetDefault("observability.customMetrics.analysis.trackDuration", true)
	v.SetDefault("observability.customMetrics.analysis.trackScores", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackSuccessRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackCertExpiry", true)
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
}

// Validate rejects configurations the rest of the application cannot run with.
func (c *Config) Validate() error {
	if c.Analysis.Timeout <= 0 {
		return fmt.Errorf("analysis timeout must be positive")
	}
	if c.Analysis.MaxInputSize <= 0 {
		return fmt.Errorf("analysis maxInputSize must be positive")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	if err := c.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("TLS configuration error: %w", err)
	}

	return nil
}

// applyOperationDefaults fills nil override fields from the global limits.
func (c *Config) applyOperationDefaults(opCfg *OperationConfig) {
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.Analysis.Timeout
	}
	if opCfg.MaxInputSize == nil {
		opCfg.MaxInputSize = &c.Analysis.MaxInputSize
	}
}

// GetMatchConfig returns the effective limits for match operations.
func (c *Config) GetMatchConfig() OperationConfig {
	config := c.Analysis.Match
	c.applyOperationDefaults(&config)
	return config
}

// GetBulletConfig returns the effective limits for bullet analysis.
func (c *Config) GetBulletConfig() OperationConfig {
	config := c.Analysis.Bullet
	c.applyOperationDefaults(&config)
	return config
}

// GetStatementConfig returns the effective limits for statement building.
func (c *Config) GetStatementConfig() OperationConfig {
	config := c.Analysis.Statement
	c.applyOperationDefaults(&config)
	return config
}

// applyFallbacks fills gaps viper cannot express: comma-separated API keys
// from a single env var, mode-dependent TLS defaults, and derived
// observability identity.
func (c *Config) applyFallbacks() {
	if len(c.Server.APIKeys) == 0 {
		if apiKeysEnv := os.Getenv("RESUMELENS_SERVER_APIKEYS"); apiKeysEnv != "" {
			keys := strings.Split(apiKeysEnv, ",")
			for i, key := range keys {
				keys[i] = strings.TrimSpace(key)
			}
			c.Server.APIKeys = keys
		}
	}

	if c.Server.TLS.Mode == "mutual" && c.Server.TLS.ClientAuthPolicy == "" {
		c.Server.TLS.ClientAuthPolicy = "require"
	}
	if c.Server.TLS.MinVersion == "" && c.Server.TLS.Mode != "disabled" {
		c.Server.TLS.MinVersion = "1.2"
	}

	if c.Observability.ServiceInstance == "" {
		instance := c.Observability.ServiceName + "-1"
		if hostname, err := os.Hostname(); err == nil {
			instance = fmt.Sprintf("%s-%s", c.Observability.ServiceName, hostname)
		}
		c.Observability.ServiceInstance = instance
	}

	// Debug logging implies console observability output.
	if c.App.LogLevel == "debug" && !c.Observability.ConsoleOutput {
		c.Observability.ConsoleOutput = true
	}
}

// logSources prints where the effective configuration came from. Values
// that look like credentials are masked.
func (c *Config) logSources(configFileUsed string) {
	log.Println("[CONFIG] === Configuration Sources Summary ===")

	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	envVars := []string{
		"RESUMELENS_SERVER_PORT",
		"RESUMELENS_SERVER_HOST",
		"RESUMELENS_SERVER_APIKEYS",
		"RESUMELENS_APP_LOGLEVEL",
		"RESUMELENS_VAULT_ENABLED",
	}

	log.Println("[CONFIG] Environment variables:")
	found := 0
	for _, envVar := range envVars {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if strings.Contains(strings.ToLower(envVar), "key") {
			value = "***MASKED***"
		}
		log.Printf("[CONFIG]   %s=%s", envVar, value)
		found++
	}
	if found == 0 {
		log.Println("[CONFIG]   None set")
	}

	log.Println("[CONFIG] === Key Configuration Values ===")
	log.Printf("[CONFIG] Server Host: %s", c.Server.Host)
	log.Printf("[CONFIG] Server Port: %s", c.Server.Port)
	log.Printf("[CONFIG] Log Level: %s", c.App.LogLevel)
	log.Printf("[CONFIG] TLS Mode: %s", c.Server.TLS.Mode)
	log.Printf("[CONFIG] Vault Enabled: %t", c.Vault.Enabled)
	log.Printf("[CONFIG] Observability Enabled: %t", c.Observability.Enabled)
	log.Printf("[CONFIG] Analysis Timeout: %s", c.Analysis.Timeout)
	log.Println("[CONFIG] =====================================")
}
