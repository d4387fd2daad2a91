package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/divide/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (development, staging, production).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider should be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns the divide meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metric names.
const (
	MetricCalls          = "divide.calls"
	MetricElements       = "divide.elements"
	MetricDuration       = "divide.duration"
	MetricWorkers        = "divide.workers"
	MetricWorkerFailures = "divide.worker.failures"
)

// DivideMetrics holds the instruments recorded by every divide call.
type DivideMetrics struct {
	calls    metric.Int64Counter
	elements metric.Int64Counter
	duration metric.Float64Histogram
	workers  metric.Int64Histogram
	failures metric.Int64Counter
}

// NewDivideMetrics creates the divide instruments on the given meter.
func NewDivideMetrics(meter metric.Meter) (*DivideMetrics, error) {
	calls, err := meter.Int64Counter(MetricCalls,
		metric.WithDescription("Number of divide calls by strategy, path and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCalls, err)
	}

	elements, err := meter.Int64Counter(MetricElements,
		metric.WithDescription("Number of input elements handed to divide calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricElements, err)
	}

	duration, err := meter.Float64Histogram(MetricDuration,
		metric.WithDescription("Wall time of divide calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricDuration, err)
	}

	workers, err := meter.Int64Histogram(MetricWorkers,
		metric.WithDescription("Workers started per parallel divide call"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricWorkers, err)
	}

	failures, err := meter.Int64Counter(MetricWorkerFailures,
		metric.WithDescription("Worker failures by strategy and kind (panic, error)"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricWorkerFailures, err)
	}

	return &DivideMetrics{
		calls:    calls,
		elements: elements,
		duration: duration,
		workers:  workers,
		failures: failures,
	}, nil
}

var (
	defaultMetrics     *DivideMetrics
	defaultMetricsOnce sync.Once
)

// DefaultDivideMetrics returns instruments bound to the global meter
// provider. They record nothing until a provider is installed.
func DefaultDivideMetrics() *DivideMetrics {
	defaultMetricsOnce.Do(func() {
		m, err := NewDivideMetrics(Meter())
		if err != nil {
			logger.Warn("divide metrics unavailable", logger.Fields(logger.FieldError, err.Error()))
			return
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

// RecordCall records a finished divide call.
func (m *DivideMetrics) RecordCall(ctx context.Context, strategy, path, status string, elements, workers int, duration time.Duration) {
	if m == nil {
		return
	}
	m.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.String("path", path),
		attribute.String("status", status),
	))
	byStrategy := metric.WithAttributes(attribute.String("strategy", strategy))
	m.elements.Add(ctx, int64(elements), byStrategy)
	m.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.String("path", path),
	))
	if workers > 0 {
		m.workers.Record(ctx, int64(workers), byStrategy)
	}
}

// RecordWorkerFailure records a worker that stopped on a panic or an error.
func (m *DivideMetrics) RecordWorkerFailure(ctx context.Context, strategy, kind string) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.String("kind", kind),
	))
}
