package metrics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const (
	defaultServiceName = "bbmi-data-export"
	meterName          = "bbmi-data-export"
	otlpInterval       = 15 * time.Second
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
	writeTextfile     = prometheus.WriteToTextfile
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	TextfilePath string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter on a
// private registry and an optional OTLP exporter. The returned shutdown writes
// the registry to TextfilePath, when set, for the node-exporter textfile
// collector before flushing and stopping the meter provider.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	promReader, gatherer, err := promReaderFactory()
	if err != nil {
		return nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		var textErr error
		if cfg.TextfilePath != "" {
			textErr = exportTextfile(cfg.TextfilePath, gatherer)
		}
		return errors.Join(textErr, provider.Shutdown(c))
	}

	return rec, shutdown, nil
}

func exportTextfile(path string, gatherer prometheus.Gatherer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := writeTextfile(path, gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
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
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(otlpInterval)), nil
}

type otelInstruments struct {
	ctx               context.Context
	meter             metric.Meter
	exportRuns        metric.Int64Counter
	exportErrors      metric.Int64Counter
	exportLatencyMs   metric.Float64Histogram
	rowsRead          metric.Int64Counter
	rowsRejected      metric.Int64Counter
	recordsWritten    metric.Int64Counter
	providerAttempts  metric.Int64Counter
	providerErrors    metric.Int64Counter
	providerLatencyMs metric.Float64Histogram
	rateLimitHits     metric.Int64Counter
	retryAfterMs      metric.Float64Histogram
}

func prometheusComponents() (sdkmetric.Reader, prometheus.Gatherer, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, reg, nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter(meterName)
	ctx := context.Background()

	exportRuns, err := meter.Int64Counter("export_runs_total")
	if err != nil {
		return nil, err
	}
	exportErrors, err := meter.Int64Counter("export_errors_total")
	if err != nil {
		return nil, err
	}
	exportLatency, err := meter.Float64Histogram("export_duration_ms")
	if err != nil {
		return nil, err
	}
	rowsRead, err := meter.Int64Counter("export_rows_read_total")
	if err != nil {
		return nil, err
	}
	rowsRejected, err := meter.Int64Counter("export_rows_rejected_total")
	if err != nil {
		return nil, err
	}
	recordsWritten, err := meter.Int64Counter("export_records_written_total")
	if err != nil {
		return nil, err
	}

	providerAttempts, err := meter.Int64Counter("provider_attempts_total")
	if err != nil {
		return nil, err
	}
	providerErrors, err := meter.Int64Counter("provider_errors_total")
	if err != nil {
		return nil, err
	}
	providerLatency, err := meter.Float64Histogram("provider_duration_ms")
	if err != nil {
		return nil, err
	}
	rateLimitHits, err := meter.Int64Counter("provider_rate_limit_hits_total")
	if err != nil {
		return nil, err
	}
	retryAfter, err := meter.Float64Histogram("provider_retry_after_ms")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:               ctx,
		meter:             meter,
		exportRuns:        exportRuns,
		exportErrors:      exportErrors,
		exportLatencyMs:   exportLatency,
		rowsRead:          rowsRead,
		rowsRejected:      rowsRejected,
		recordsWritten:    recordsWritten,
		providerAttempts:  providerAttempts,
		providerErrors:    providerErrors,
		providerLatencyMs: providerLatency,
		rateLimitHits:     rateLimitHits,
		retryAfterMs:      retryAfter,
	}, nil
}

func (o *otelInstruments) recordExport(job string, e Export) {
	if o == nil {
		return
	}
	outcome := OutcomeSuccess
	if e.Err != nil {
		outcome = OutcomeError
	}
	jobAttr := attribute.String(AttrJob, job)
	o.recordCounter(o.exportRuns, 1, jobAttr, attribute.String(AttrOutcome, outcome))
	o.recordHistogram(o.exportLatencyMs, float64(e.Duration.Milliseconds()), jobAttr)
	if e.Err != nil {
		o.recordCounter(o.exportErrors, 1, jobAttr)
	}
	o.recordCounter(o.rowsRead, int64(e.RowsRead), jobAttr)
	o.recordCounter(o.recordsWritten, int64(e.RecordsWritten), jobAttr)
}

func (o *otelInstruments) recordRejected(job, reason string, n int) {
	if o == nil {
		return
	}
	o.recordCounter(o.rowsRejected, int64(n),
		attribute.String(AttrJob, job),
		attribute.String(AttrReason, reason),
	)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.providerAttempts, 1, attrs...)
	o.recordHistogram(o.providerLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.providerErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.rateLimitHits, 1, attrs...)
	if retryAfter > 0 {
		o.recordHistogram(o.retryAfterMs, float64(retryAfter.Milliseconds()), attrs...)
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil || value == 0 {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
