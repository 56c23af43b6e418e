package server

import (
	"time"

	"resumelens/internal/ats"
	"resumelens/internal/config"
	resumelensErrors "resumelens/internal/errors"
)

// MatchRequest is the body for POST /api/v1/match. Either ResumeText or a
// structured Resume must be set.
type MatchRequest struct {
	JobDescription string      `json:"jobDescription"`
	ResumeText     string      `json:"resumeText,omitempty"`
	Resume         *ats.Resume `json:"resume,omitempty"`
}

// BulletRequest is the body for POST /api/v1/bullet.
type BulletRequest struct {
	Text string `json:"text"`
}

// StatementRequest is the body for POST /api/v1/statement.
type StatementRequest struct {
	PatternID string            `json:"patternId"`
	Values    map[string]string `json:"values"`
}

// ErrorResponse is the JSON shape of every error the API returns.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server carries the runtime state of the HTTP server.
type Server struct {
	Host    string
	Port    string
	Version string

	AppConfig *config.Config

	TLSConfig          config.TLSConfig
	CertificateManager *CertificateManager

	// APIKeys is keyed by accepted key for O(1) auth checks.
	APIKeys map[string]bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	MaxRequestSize int64

	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	Logger *resumelensErrors.Logger
}

// ServerConfig gathers the constructor arguments for NewServer.
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer builds a Server. The rate limiter is only constructed when
// rate limiting is enabled; a nil RateLimiter disables the middleware.
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *resumelensErrors.Logger) *Server {
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
