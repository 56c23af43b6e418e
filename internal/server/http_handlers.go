package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"resumelens/internal/coach"
	"resumelens/internal/types"
)

// healthHandler reports service health. The analysis probes exercise the
// real pipelines, so a broken pattern library or scorer shows up here.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	analysisStatus, analysisHealthy := s.checkAnalysisHealth()
	response := map[string]any{
		"status":   "healthy",
		"service":  "resumelens",
		"version":  s.Version,
		"analysis": analysisStatus,
	}

	healthy := analysisHealthy
	if certStatus, certHealthy := s.checkCertificateHealth(); certStatus != nil {
		response["certificates"] = certStatus
		healthy = healthy && certHealthy
	}

	if !healthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkAnalysisHealth runs small probe inputs through each analysis
// pipeline and reports per-operation availability.
func (s *Server) checkAnalysisHealth() (map[string]any, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.AppConfig.Observability.HealthCheck.Timeout)
	defer cancel()

	service := coach.NewService(s.Logger)
	status := make(map[string]any)
	healthy := true

	matchProbe := types.MatchResumeInput{
		JobDescription: "Go developer",
		ResumeText:     "Go developer",
	}
	if result, err := service.MatchResume(ctx, matchProbe); err == nil {
		status["match"] = map[string]any{"available": true, "probe_score": result.Score}
	} else {
		status["match"] = map[string]any{"available": false, "error": fmt.Sprintf("Match probe failed: %v", err)}
		healthy = false
	}

	bulletProbe := types.AnalyzeBulletInput{Text: "Responsible for testing"}
	if result, err := service.AnalyzeBullet(ctx, bulletProbe); err == nil {
		status["bullet"] = map[string]any{"available": true, "probe_score": result.Score}
	} else {
		status["bullet"] = map[string]any{"available": false, "error": fmt.Sprintf("Bullet probe failed: %v", err)}
		healthy = false
	}

	patterns := service.ListPatterns()
	status["patterns"] = map[string]any{
		"available":     len(patterns.Patterns) > 0,
		"pattern_count": len(patterns.Patterns),
	}
	if len(patterns.Patterns) == 0 {
		healthy = false
	}

	return status, healthy
}

// checkCertificateHealth reports certificate expiry, watcher and reload
// state. Returns nil when TLS is not managed.
func (s *Server) checkCertificateHealth() (map[string]any, bool) {
	if s.CertificateManager == nil {
		return nil, true
	}

	timeToExpiry, err := s.CertificateManager.CheckExpiry()
	if err != nil {
		return map[string]any{
			"healthy": false,
			"error":   fmt.Sprintf("Failed to check certificate expiry: %v", err),
		}, false
	}

	status := map[string]any{
		"time_to_expiry_hours": int(timeToExpiry.Hours()),
		"time_to_expiry":       timeToExpiry.String(),
	}

	healthy := true
	switch {
	case timeToExpiry <= 0:
		healthy = false
		status["status"] = "expired"
		status["message"] = "Certificate has expired"
	case timeToExpiry <= 24*time.Hour:
		healthy = false
		status["status"] = "critical"
		status["message"] = "Certificate expires within 24 hours"
	case timeToExpiry <= 7*24*time.Hour:
		status["status"] = "warning"
		status["message"] = "Certificate expires within 7 days"
	default:
		status["status"] = "ok"
		status["message"] = "Certificate is valid"
	}
	status["healthy"] = healthy

	if s.TLSConfig.AutoReload.Enabled {
		autoReload := map[string]any{
			"enabled":               true,
			"file_watcher_enabled":  s.TLSConfig.AutoReload.FileWatcher.Enabled,
			"vault_watcher_enabled": s.TLSConfig.AutoReload.VaultWatcher.Enabled,
		}
		if fw := s.CertificateManager.fileWatcher; fw != nil {
			autoReload["file_watcher_running"] = fw.IsRunning()
			autoReload["watched_files"] = fw.GetWatchedFiles()
		}
		if vw := s.CertificateManager.vaultWatcher; vw != nil {
			autoReload["vault_watcher_status"] = vw.Status()
		}
		status["auto_reload"] = autoReload
	} else {
		status["auto_reload"] = map[string]any{"enabled": false}
	}

	if metrics := s.CertificateManager.GetMetrics(); metrics != nil {
		status["metrics"] = map[string]any{
			"reload_count":         metrics.ReloadCount,
			"reload_success_count": metrics.ReloadSuccessCount,
			"reload_failure_count": metrics.ReloadFailureCount,
			"last_reload_time":     metrics.LastReloadTime,
			"last_reload_success":  metrics.LastReloadSuccess,
			"last_reload_error":    metrics.LastReloadError,
		}
	}

	return status, healthy
}

// statsHandler exposes request-size limits and rate-limiter state.
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "resumelens",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{"enabled": false}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest decodes the request body into v. The body is already
// capped by MaxBytesReader, so an oversized request surfaces here as a
// MaxBytesError.
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// writeErrorResponse sends a JSON error payload with the given status.
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: error, Message: message}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
