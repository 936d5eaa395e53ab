// Package observe holds the OpenTelemetry instruments of the service and
// the Prometheus bridge that exposes them on /metrics.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/heartmarshall/reading-copilot"

// Metrics holds every instrument. All fields are safe for concurrent use.
type Metrics struct {
	// AnalysisDuration tracks AI analysis latency per sentence.
	AnalysisDuration metric.Float64Histogram
	// AnalysisRequests counts analysis attempts by outcome:
	//   attribute.String("status", "ok"|"cached"|"skipped"|"rate_limited"|"invalid"|"unavailable"|"error")
	AnalysisRequests metric.Int64Counter
	// ChatRequests counts chat calls by attribute.String("mode", "sync"|"stream").
	ChatRequests metric.Int64Counter

	AnnotateDuration metric.Float64Histogram
	AnnotatedItems   metric.Int64Counter
	UnmatchedItems   metric.Int64Counter

	// BreakerTransitions counts circuit breaker state changes by "to".
	BreakerTransitions metric.Int64Counter

	// HTTPRequestDuration uses attributes "method", "route" and "status".
	HTTPRequestDuration metric.Float64Histogram
}

var (
	aiBuckets     = []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60}
	renderBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25}
)

// NewMetrics creates every instrument on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.AnalysisDuration, err = m.Float64Histogram("copilot.analysis.duration",
		metric.WithDescription("Latency of AI sentence analysis."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(aiBuckets...),
	); err != nil {
		return nil, err
	}
	if met.AnalysisRequests, err = m.Int64Counter("copilot.analysis.requests",
		metric.WithDescription("Sentence analysis attempts by status."),
	); err != nil {
		return nil, err
	}
	if met.ChatRequests, err = m.Int64Counter("copilot.chat.requests",
		metric.WithDescription("Reading coach chat calls by mode."),
	); err != nil {
		return nil, err
	}
	if met.AnnotateDuration, err = m.Float64Histogram("copilot.annotate.duration",
		metric.WithDescription("Time spent annotating one page of paragraphs."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(renderBuckets...),
	); err != nil {
		return nil, err
	}
	if met.AnnotatedItems, err = m.Int64Counter("copilot.annotate.items",
		metric.WithDescription("Knowledge items placed into rendered text."),
	); err != nil {
		return nil, err
	}
	if met.UnmatchedItems, err = m.Int64Counter("copilot.annotate.unmatched",
		metric.WithDescription("Knowledge items that found no span in their sentence."),
	); err != nil {
		return nil, err
	}
	if met.BreakerTransitions, err = m.Int64Counter("copilot.breaker.transitions",
		metric.WithDescription("Circuit breaker state changes by target state."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("copilot.http.request.duration",
		metric.WithDescription("HTTP request latency by method, route and status."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// RecordAnalysis records one analysis attempt. A zero elapsed skips the
// latency histogram (cache hits and rejections never reach the model).
func (m *Metrics) RecordAnalysis(ctx context.Context, status string, elapsed time.Duration) {
	m.AnalysisRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	if elapsed > 0 {
		m.AnalysisDuration.Record(ctx, elapsed.Seconds())
	}
}

// RecordAnnotate records one render pass.
func (m *Metrics) RecordAnnotate(ctx context.Context, elapsed time.Duration, matched, unmatched int) {
	m.AnnotateDuration.Record(ctx, elapsed.Seconds())
	m.AnnotatedItems.Add(ctx, int64(matched))
	m.UnmatchedItems.Add(ctx, int64(unmatched))
}

// RecordChat counts a chat call.
func (m *Metrics) RecordChat(ctx context.Context, mode string) {
	m.ChatRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", mode)))
}

// RecordBreakerTransition counts a breaker state change.
func (m *Metrics) RecordBreakerTransition(ctx context.Context, name, to string) {
	m.BreakerTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("breaker", name),
		attribute.String("to", to),
	))
}
