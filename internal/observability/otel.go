package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"resumelens/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ObservabilityConfig is the flat subset of settings the manager needs at
// construction time. The full config is kept alongside for the nested
// custom-metrics and OTLP toggles.
type ObservabilityConfig struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	ConsoleOutput  bool
	PrettyPrint    bool
	SampleRate     float64
	Prometheus     PrometheusConfig
}

// Metrics bundles every instrument the application records.
type Metrics struct {
	AnalysisDuration metric.Float64Histogram
	AnalysisCount    metric.Int64Counter
	AnalysisErrors   metric.Int64Counter

	MatchScore  metric.Int64Histogram
	BulletScore metric.Int64Histogram

	ResumesMatched  metric.Int64Counter
	BulletsAnalyzed metric.Int64Counter
	StatementsBuilt metric.Int64Counter

	CertReloadCount metric.Int64Counter
	CertExpiryTime  metric.Float64Gauge

	RateLimitHits metric.Int64Counter
}

// ObservabilityManager owns the OpenTelemetry tracer and meter providers
// and tears them down on Shutdown.
type ObservabilityManager struct {
	config           ObservabilityConfig
	fullConfig       *config.Config
	tracerProvider   *trace.TracerProvider
	meterProvider    *sdkmetric.MeterProvider
	metrics          *Metrics
	shutdownFuncs    []func(context.Context) error
	prometheusServer *http.ServeMux
}

// NewObservabilityManager wires up tracing and metrics. A disabled config
// yields an inert manager whose methods are all no-ops.
func NewObservabilityManager(obsConfig ObservabilityConfig, fullConfig *config.Config) (*ObservabilityManager, error) {
	om := &ObservabilityManager{config: obsConfig, fullConfig: fullConfig}
	if !obsConfig.Enabled {
		return om, nil
	}

	res, err := om.newResource()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize resource: %w", err)
	}
	if err := om.initTracing(res); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := om.initMetrics(res); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	return om, nil
}

// newResource builds the shared OpenTelemetry resource describing this
// service instance.
func (om *ObservabilityManager) newResource() (*resource.Resource, error) {
	instance := "resumelens-1"
	if om.fullConfig != nil && om.fullConfig.Observability.ServiceInstance != "" {
		instance = om.fullConfig.Observability.ServiceInstance
	}
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(om.config.ServiceName),
			semconv.ServiceVersion(om.config.ServiceVersion),
			attribute.String("service.instance.id", instance),
		),
	)
}

func (om *ObservabilityManager) initTracing(res *resource.Resource) error {
	var exporter trace.SpanExporter
	var err error
	switch {
	case om.config.ConsoleOutput:
		opts := []stdouttrace.Option{}
		if om.config.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err = stdouttrace.New(opts...)
	case om.fullConfig != nil && om.fullConfig.Observability.OTLP.Enabled:
		exporter, err = om.newOTLPTraceExporter()
	default:
		// Spans are still created for context propagation and span
		// attributes even when nothing exports them.
		exporter = &noOpSpanExporter{}
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(om.config.SampleRate)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	om.tracerProvider = tp
	om.shutdownFuncs = append(om.shutdownFuncs, tp.Shutdown)
	return nil
}

func (om *ObservabilityManager) initMetrics(res *resource.Resource) error {
	readers, err := om.metricReaders()
	if err != nil {
		return err
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, reader := range readers {
		opts = append(opts, sdkmetric.WithReader(reader))
	}
	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)

	om.meterProvider = mp
	om.shutdownFuncs = append(om.shutdownFuncs, mp.Shutdown)

	return om.initInstruments()
}

// metricReaders assembles the configured exporters: console for
// development, OTLP push, and Prometheus scrape. With none configured a
// manual reader keeps the meter provider functional.
func (om *ObservabilityManager) metricReaders() ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader

	if om.config.ConsoleOutput {
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create console metric exporter: %w", err)
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(om.collectionInterval())))
	}

	if om.fullConfig != nil && om.fullConfig.Observability.OTLP.Enabled {
		reader, err := om.newOTLPMetricReader()
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics reader: %w", err)
		}
		readers = append(readers, reader)
	}

	if om.config.Prometheus.Enabled {
		reader, mux, err := SetupPrometheusExporter(om.config.Prometheus)
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		if reader != nil {
			readers = append(readers, reader)
			om.prometheusServer = mux
			if err := StartPrometheusServer(mux, om.config.Prometheus.Port); err != nil {
				return nil, fmt.Errorf("failed to start Prometheus server: %w", err)
			}
		}
	}

	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}
	return readers, nil
}

// initInstruments registers every application instrument on the meter.
func (om *ObservabilityManager) initInstruments() error {
	meter := om.meterProvider.Meter(om.config.ServiceName)
	om.metrics = &Metrics{}
	var err error

	om.metrics.AnalysisDuration, err = meter.Float64Histogram(
		"resumelens_analysis_duration_seconds",
		metric.WithDescription("Time spent running analysis operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis duration metric: %w", err)
	}

	om.metrics.AnalysisCount, err = meter.Int64Counter(
		"resumelens_analysis_requests_total",
		metric.WithDescription("Total number of analysis operations"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis count metric: %w", err)
	}

	om.metrics.AnalysisErrors, err = meter.Int64Counter(
		"resumelens_analysis_errors_total",
		metric.WithDescription("Total number of analysis operation errors"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis error count metric: %w", err)
	}

	om.metrics.MatchScore, err = meter.Int64Histogram(
		"resumelens_match_score",
		metric.WithDescription("Distribution of ATS match scores (0-100)"),
	)
	if err != nil {
		return fmt.Errorf("failed to create match score metric: %w", err)
	}

	om.metrics.BulletScore, err = meter.Int64Histogram(
		"resumelens_bullet_score",
		metric.WithDescription("Distribution of bullet strength scores (0-100)"),
	)
	if err != nil {
		return fmt.Errorf("failed to create bullet score metric: %w", err)
	}

	om.metrics.ResumesMatched, err = meter.Int64Counter(
		"resumelens_resumes_matched_total",
		metric.WithDescription("Total number of resumes matched against job descriptions"),
	)
	if err != nil {
		return fmt.Errorf("failed to create resumes matched metric: %w", err)
	}

	om.metrics.BulletsAnalyzed, err = meter.Int64Counter(
		"resumelens_bullets_analyzed_total",
		metric.WithDescription("Total number of bullet points analyzed"),
	)
	if err != nil {
		return fmt.Errorf("failed to create bullets analyzed metric: %w", err)
	}

	om.metrics.StatementsBuilt, err = meter.Int64Counter(
		"resumelens_statements_built_total",
		metric.WithDescription("Total number of statements built from templates"),
	)
	if err != nil {
		return fmt.Errorf("failed to create statements built metric: %w", err)
	}

	om.metrics.CertReloadCount, err = meter.Int64Counter(
		"resumelens_cert_reloads_total",
		metric.WithDescription("Total number of certificate reloads"),
	)
	if err != nil {
		return fmt.Errorf("failed to create certificate reload count metric: %w", err)
	}

	// Populated by the certificate manager's expiry monitor.
	om.metrics.CertExpiryTime, err = meter.Float64Gauge(
		"resumelens_cert_expiry_seconds",
		metric.WithDescription("Seconds until certificate expiry"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create certificate expiry time metric: %w", err)
	}

	om.metrics.RateLimitHits, err = meter.Int64Counter(
		"resumelens_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return nil
}

// GetMetrics never returns nil; callers on the disabled path get inert
// instruments.
func (om *ObservabilityManager) GetMetrics() *Metrics {
	if om.metrics == nil {
		return &Metrics{}
	}
	return om.metrics
}

// HTTPMiddleware wraps handlers with otelhttp instrumentation.
func (om *ObservabilityManager) HTTPMiddleware() func(http.Handler) http.Handler {
	if !om.config.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}
	return otelhttp.NewMiddleware(
		om.config.ServiceName,
		otelhttp.WithTracerProvider(om.tracerProvider),
		otelhttp.WithMeterProvider(om.meterProvider),
	)
}

// Tracer returns a tracer, or a noop one when observability is disabled.
func (om *ObservabilityManager) Tracer(name string) oteltrace.Tracer {
	if !om.config.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown flushes and stops every provider that was started.
func (om *ObservabilityManager) Shutdown(ctx context.Context) error {
	for _, shutdown := range om.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// AnalysisResult carries the outcome of an analysis operation back to the
// instrumentation layer. Score is nil for operations that do not produce one.
type AnalysisResult struct {
	Error error
	Score *int
}

// TrackAnalysis runs fn inside a span and records duration, count, error
// and score metrics for it. With uninitialized metrics fn just runs.
func (m *Metrics) TrackAnalysis(ctx context.Context, operation string, fn func(context.Context) *AnalysisResult, om *ObservabilityManager) error {
	if m.AnalysisDuration == nil {
		result := fn(ctx)
		if result != nil {
			return result.Error
		}
		return nil
	}

	tracer := otel.Tracer("resumelens.analysis")
	ctx, span := tracer.Start(ctx, "analysis."+operation)
	defer span.End()

	start := time.Now()
	result := fn(ctx)
	duration := time.Since(start).Seconds()

	var err error
	if result != nil {
		err = result.Error
	}

	if om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.Analysis.Enabled {
		m.recordAnalysis(ctx, operation, err, duration, result, om, span)
	}

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("error", true))
	}
	return err
}

func (m *Metrics) recordAnalysis(ctx context.Context, operation string, err error, duration float64, result *AnalysisResult, om *ObservabilityManager, span oteltrace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}

	if om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.Analysis.TrackDuration {
		m.AnalysisDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
	}
	m.AnalysisCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	if err != nil {
		m.AnalysisErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}

	if result != nil && result.Score != nil {
		// Scores always land on the span; the histogram is gated.
		span.SetAttributes(attribute.Int("analysis.score", *result.Score))
		if om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.Analysis.TrackScores {
			switch operation {
			case "match":
				if m.MatchScore != nil {
					m.MatchScore.Record(ctx, int64(*result.Score), metric.WithAttributes(attrs...))
				}
			case "bullet":
				if m.BulletScore != nil {
					m.BulletScore.Record(ctx, int64(*result.Score), metric.WithAttributes(attrs...))
				}
			}
		}
	}

	span.SetAttributes(attrs...)
}

// RecordBusinessMetric bumps the counter named by metricType with a
// success attribute plus any extra attributes the caller supplies.
func (m *Metrics) RecordBusinessMetric(ctx context.Context, metricType string, success bool, om *ObservabilityManager, attributes ...attribute.KeyValue) {
	if om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.BusinessMetrics.Enabled {
		return
	}

	attrs := append([]attribute.KeyValue{attribute.Bool("success", success)}, attributes...)

	switch metricType {
	case "resume_matched":
		if m.ResumesMatched != nil {
			m.ResumesMatched.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	case "bullet_analyzed":
		if m.BulletsAnalyzed != nil {
			m.BulletsAnalyzed.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	case "statement_built":
		if m.StatementsBuilt != nil {
			m.StatementsBuilt.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	case "rate_limit_hit":
		if om != nil && om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.Infrastructure.TrackRateLimits {
			return
		}
		if m.RateLimitHits != nil {
			m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	}
}

type noOpSpanExporter struct{}

func (n *noOpSpanExporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	return nil
}

func (n *noOpSpanExporter) Shutdown(ctx context.Context) error { return nil }

func (om *ObservabilityManager) newOTLPTraceExporter() (trace.SpanExporter, error) {
	otlpConfig := om.fullConfig.Observability.OTLP

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(otlpConfig.Endpoint)}
	if otlpConfig.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}
	return exporter, nil
}

func (om *ObservabilityManager) newOTLPMetricReader() (sdkmetric.Reader, error) {
	otlpConfig := om.fullConfig.Observability.OTLP

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpointURL(otlpConfig.Endpoint)}
	if otlpConfig.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}
	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(om.collectionInterval())), nil
}

func (om *ObservabilityManager) collectionInterval() time.Duration {
	if om.fullConfig != nil {
		return om.fullConfig.Observability.Metrics.CollectionInterval
	}
	return 15 * time.Second
}
