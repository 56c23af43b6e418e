package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"resumelens/internal/coach"
	"resumelens/internal/observability"
	"resumelens/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createMatchHandler wraps the match handler with observability
func (s *Server) createMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.match")
		defer span.End()

		// Parse request
		var req MatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.ResumeText) == "" && req.Resume == nil {
			err := fmt.Errorf("missing resume")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume", "resumeText or resume field is required", http.StatusBadRequest)
			return
		}

		// Size validation
		if len(req.JobDescription) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("job description too large: %d chars", len(req.JobDescription))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large", fmt.Sprintf("jobDescription exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}
		if len(req.ResumeText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume too large", fmt.Sprintf("resumeText exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("operation", "match"),
		)

		input := types.MatchResumeInput{
			JobDescription: req.JobDescription,
			ResumeText:     req.ResumeText,
			Resume:         req.Resume,
		}

		service := coach.NewService(s.Logger)

		// Track analysis operation with observability
		metrics := om.GetMetrics()
		var result types.MatchResumeOutput
		err := metrics.TrackAnalysis(ctx, "match", func(ctx context.Context) *observability.AnalysisResult {
			output, opErr := service.MatchResume(ctx, input)
			result = output
			analysisResult := &observability.AnalysisResult{Error: opErr}
			if opErr == nil {
				analysisResult.Score = &result.Score
			}
			return analysisResult
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "analysis"))
			metrics.RecordBusinessMetric(ctx, "resume_matched", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to match resume", err.Error(), http.StatusBadRequest)
			return
		}

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "resume_matched", true, om,
			attribute.Int("match.score", result.Score))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("match.score", result.Score),
			attribute.String("match.label", result.Label),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createBulletHandler wraps the bullet handler with observability
func (s *Server) createBulletHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.bullet")
		defer span.End()

		var req BulletRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if len(req.Text) > int(s.MaxRequestSize) {
			err := fmt.Errorf("bullet too large: %d chars", len(req.Text))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Bullet too large", fmt.Sprintf("text exceeds recommended size limit of %d characters", s.MaxRequestSize), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.bullet_length", len(req.Text)),
			attribute.String("operation", "bullet"),
		)

		input := types.AnalyzeBulletInput{Text: req.Text}

		service := coach.NewService(s.Logger)

		metrics := om.GetMetrics()
		var result types.AnalyzeBulletOutput
		err := metrics.TrackAnalysis(ctx, "bullet", func(ctx context.Context) *observability.AnalysisResult {
			output, opErr := service.AnalyzeBullet(ctx, input)
			result = output
			analysisResult := &observability.AnalysisResult{Error: opErr}
			if opErr == nil {
				analysisResult.Score = &result.Score
			}
			return analysisResult
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "bullet_analyzed", false, om)
			writeErrorResponse(w, "Failed to analyze bullet", err.Error(), http.StatusBadRequest)
			return
		}

		metrics.RecordBusinessMetric(ctx, "bullet_analyzed", true, om,
			attribute.Int("bullet.score", result.Score),
			attribute.Bool("bullet.can_strengthen", result.CanStrengthen))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("bullet.score", result.Score),
			attribute.Bool("bullet.can_strengthen", result.CanStrengthen),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createStatementHandler wraps the statement handler with observability
func (s *Server) createStatementHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.statement")
		defer span.End()

		var req StatementRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.PatternID) == "" {
			err := fmt.Errorf("missing pattern id")
			span.RecordError(err)
			writeErrorResponse(w, "Missing pattern id", "patternId field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.pattern_id", req.PatternID),
			attribute.Int("request.field_count", len(req.Values)),
			attribute.String("operation", "statement"),
		)

		input := types.BuildStatementInput{
			PatternID: req.PatternID,
			Values:    req.Values,
		}

		service := coach.NewService(s.Logger)

		metrics := om.GetMetrics()
		var result types.BuildStatementOutput
		err := metrics.TrackAnalysis(ctx, "statement", func(ctx context.Context) *observability.AnalysisResult {
			output, opErr := service.BuildStatement(ctx, input)
			result = output
			return &observability.AnalysisResult{Error: opErr}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "statement_built", false, om)
			writeErrorResponse(w, "Failed to build statement", err.Error(), http.StatusBadRequest)
			return
		}

		metrics.RecordBusinessMetric(ctx, "statement_built", true, om,
			attribute.String("pattern_id", result.PatternID),
			attribute.Bool("complete", result.Complete))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Bool("statement.complete", result.Complete),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createPatternsHandler wraps the patterns handler with observability
func (s *Server) createPatternsHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		_, span := tracer.Start(ctx, "api.patterns")
		defer span.End()

		service := coach.NewService(s.Logger)
		result := service.ListPatterns()

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("pattern_count", len(result.Patterns)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
