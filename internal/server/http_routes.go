package server

import (
	"net/http"
	"strings"

	"resumelens/internal/observability"
)

// setupRoutes builds the mux. Analysis endpoints go through rate limiting,
// authentication and the request size cap; health, stats and the read-only
// pattern listing stay open.
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	rateLimited := s.createRateLimitMiddleware(om)
	sizeLimited := s.requestSizeLimitMiddleware()
	protect := func(h http.HandlerFunc) http.HandlerFunc {
		return rateLimited(s.authMiddleware(sizeLimited(h)))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/stats", s.statsHandler)
	mux.HandleFunc("/patterns", s.createPatternsHandler(om))
	mux.HandleFunc("/match", protect(s.createMatchHandler(om)))
	mux.HandleFunc("/bullet", protect(s.createBulletHandler(om)))
	mux.HandleFunc("/statement", protect(s.createStatementHandler(om)))

	return mux
}

// authMiddleware enforces API key authentication. With no keys configured
// the handler chain is open.
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(s.APIKeys) == 0 {
			next(w, r)
			return
		}

		apiKey := requestAPIKey(r)
		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"client_ip", r.RemoteAddr,
			"api_key_prefix", maskAPIKey(apiKey))
		next(w, r)
	}
}

// requestAPIKey pulls the key from X-API-Key, falling back to a Bearer
// token in the Authorization header.
func requestAPIKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return after
	}
	return ""
}

// requestSizeLimitMiddleware caps request bodies at MaxRequestSize.
func (s *Server) requestSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}
			next(w, r)
		}
	}
}

// maskAPIKey keeps at most the first 8 characters for log lines.
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
