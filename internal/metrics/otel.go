package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and
// optional OTLP exporter. It returns a Recorder, the Prometheus HTTP handler,
// and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "scout-data-service"
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx             context.Context
	meter           metric.Meter
	sourceAttempts  metric.Int64Counter
	sourceErrors    metric.Int64Counter
	sourceLatencyMs metric.Float64Histogram
	rateLimitHits   metric.Int64Counter
	retryAfterMs    metric.Float64Histogram
	upserts         metric.Int64Counter
	skips           metric.Int64Counter
	unmatched       metric.Int64Counter
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("scout-data-service")
	ctx := context.Background()

	sourceAttempts, err := meter.Int64Counter("source_attempts_total")
	if err != nil {
		return nil, err
	}
	sourceErrors, err := meter.Int64Counter("source_errors_total")
	if err != nil {
		return nil, err
	}
	sourceLatency, err := meter.Float64Histogram("source_duration_ms")
	if err != nil {
		return nil, err
	}
	rateLimitHits, err := meter.Int64Counter("source_rate_limit_hits_total")
	if err != nil {
		return nil, err
	}
	retryAfter, err := meter.Float64Histogram("source_retry_after_ms")
	if err != nil {
		return nil, err
	}
	upserts, err := meter.Int64Counter("reconcile_upserts_total")
	if err != nil {
		return nil, err
	}
	skips, err := meter.Int64Counter("reconcile_skips_total")
	if err != nil {
		return nil, err
	}
	unmatched, err := meter.Int64Counter("reconcile_unmatched_total")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:             ctx,
		meter:           meter,
		sourceAttempts:  sourceAttempts,
		sourceErrors:    sourceErrors,
		sourceLatencyMs: sourceLatency,
		rateLimitHits:   rateLimitHits,
		retryAfterMs:    retryAfter,
		upserts:         upserts,
		skips:           skips,
		unmatched:       unmatched,
	}, nil
}

func (o *otelInstruments) recordSourceAttempt(source string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrSource, source)}
	o.recordCounter(o.sourceAttempts, 1, attrs...)
	o.recordHistogram(o.sourceLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.sourceErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordRateLimit(source string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrSource, source)}
	o.recordCounter(o.rateLimitHits, 1, attrs...)
	if retryAfter > 0 {
		o.recordHistogram(o.retryAfterMs, float64(retryAfter.Milliseconds()), attrs...)
	}
}

func (o *otelInstruments) recordUpserts(entity string, count int) {
	if o == nil {
		return
	}
	o.recordCounter(o.upserts, int64(count), attribute.String(AttrEntity, entity))
}

func (o *otelInstruments) recordSkips(entity string, count int) {
	if o == nil {
		return
	}
	o.recordCounter(o.skips, int64(count), attribute.String(AttrEntity, entity))
}

func (o *otelInstruments) recordUnmatched(entity string, count int) {
	if o == nil {
		return
	}
	o.recordCounter(o.unmatched, int64(count), attribute.String(AttrEntity, entity))
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if hist == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
