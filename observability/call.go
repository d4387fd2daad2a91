package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Call statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
	StatusPanic = "panic"
)

// Call tracks one divide call: its span, its timing and the metrics
// recorded when it ends. A nil Metrics silently skips metric recording.
type Call struct {
	Strategy  string
	Path      string
	Length    int
	Workers   int
	RunID     string
	StartTime time.Time
	Metrics   *DivideMetrics

	ctx  context.Context
	span trace.Span
}

// StartCall starts the span for a divide call. spanName is one of the Span*
// constants. The returned context carries the span.
func StartCall(ctx context.Context, metrics *DivideMetrics, spanName, strategy, path string, length int) (context.Context, *Call) {
	ctx, span := StartSpan(ctx, spanName, trace.WithAttributes(
		attribute.String(AttrStrategy, strategy),
		attribute.String(AttrPath, path),
		attribute.Int(AttrLength, length),
	))
	return ctx, &Call{
		Strategy:  strategy,
		Path:      path,
		Length:    length,
		StartTime: time.Now(),
		Metrics:   metrics,
		ctx:       ctx,
		span:      span,
	}
}

// Dispatched records the worker fan-out of a parallel call.
func (c *Call) Dispatched(workers int, runID string) {
	c.Workers = workers
	c.RunID = runID
	c.span.SetAttributes(
		attribute.Int(AttrWorkers, workers),
		attribute.String(AttrRunID, runID),
	)
}

// WorkerFailed records a failed worker on the span and in metrics.
// kind is StatusPanic or StatusError.
func (c *Call) WorkerFailed(kind string, index int, err error) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrStatus, kind),
		attribute.Int(AttrIndex, index),
	}
	if err != nil {
		attrs = append(attrs, attribute.String(AttrErrorMessage, err.Error()))
	}
	c.span.AddEvent("worker.failed", trace.WithAttributes(attrs...))
	c.Metrics.RecordWorkerFailure(c.ctx, c.Strategy, kind)
}

// End ends the span and records the call metrics. status is one of the
// Status* constants.
func (c *Call) End(status string, err error) {
	duration := time.Since(c.StartTime)

	if err != nil {
		SetSpanError(c.span, err)
	}
	c.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	c.span.End()

	c.Metrics.RecordCall(c.ctx, c.Strategy, c.Path, status, c.Length, c.Workers, duration)
}

// Duration returns the elapsed time since the call started.
func (c *Call) Duration() time.Duration {
	return time.Since(c.StartTime)
}
