package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records linefmt metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordLine records one formatted line. kind is empty on success and
	// names the error kind otherwise.
	RecordLine(ctx context.Context, kind string)

	// RecordRun records a run completion.
	RecordRun(ctx context.Context, success bool, duration time.Duration)

	// RecordOutputSize records the number of bytes a run wrote.
	RecordOutputSize(ctx context.Context, sizeBytes int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	linesFormatted metric.Int64Counter
	lineErrors     metric.Int64Counter
	runs           metric.Int64Counter
	runLatency     metric.Float64Histogram
	outputSize     metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel metrics instance.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("linefmt")

	linesFormatted, err := meter.Int64Counter("linefmt.lines.formatted",
		metric.WithDescription("Number of template lines formatted"),
	)
	if err != nil {
		return nil, err
	}

	lineErrors, err := meter.Int64Counter("linefmt.lines.errors",
		metric.WithDescription("Number of template lines that failed to format"),
	)
	if err != nil {
		return nil, err
	}

	runs, err := meter.Int64Counter("linefmt.runs",
		metric.WithDescription("Number of generator runs"),
	)
	if err != nil {
		return nil, err
	}

	runLatency, err := meter.Float64Histogram("linefmt.run.latency_ms",
		metric.WithDescription("Generator run latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	outputSize, err := meter.Int64Histogram("linefmt.output.size_bytes",
		metric.WithDescription("Bytes written per run"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		linesFormatted: linesFormatted,
		lineErrors:     lineErrors,
		runs:           runs,
		runLatency:     runLatency,
		outputSize:     outputSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordLine records one formatted line.
func (m *otelMetrics) RecordLine(ctx context.Context, kind string) {
	if kind == "" {
		m.linesFormatted.Add(ctx, 1)
		return
	}
	m.lineErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordRun records a run.
func (m *otelMetrics) RecordRun(ctx context.Context, success bool, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.Bool("success", success))
	m.runs.Add(ctx, 1, attrs)
	m.runLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

// RecordOutputSize records the bytes written by a run.
func (m *otelMetrics) RecordOutputSize(ctx context.Context, sizeBytes int64) {
	m.outputSize.Record(ctx, sizeBytes)
}
