// internal/common/observability/metrics.go
package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	enhanceCounter  otelmetric.Int64Counter
	enhanceDuration otelmetric.Float64Histogram
	modelCalls      otelmetric.Int64Counter
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	enhanceCounter, _ := meter.Int64Counter(
		"enhance.requests",
		otelmetric.WithDescription("Number of enhancement requests processed"),
	)

	enhanceDuration, _ := meter.Float64Histogram(
		"enhance.duration",
		otelmetric.WithDescription("Enhancement pipeline duration"),
		otelmetric.WithUnit("ms"),
	)

	modelCalls, _ := meter.Int64Counter(
		"model.calls",
		otelmetric.WithDescription("External model calls by outcome"),
	)

	return &Observability{
		meterProvider:   provider,
		meter:           meter,
		enhanceCounter:  enhanceCounter,
		enhanceDuration: enhanceDuration,
		modelCalls:      modelCalls,
	}
}

func (o *Observability) RecordEnhance(ctx context.Context, status string) {
	if o.enhanceCounter != nil {
		o.enhanceCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordEnhanceDuration(ctx context.Context, duration time.Duration, status string) {
	if o.enhanceDuration != nil {
		o.enhanceDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

// RecordModelCall tracks external model outcomes: ok, unavailable, timeout,
// unauthenticated, quality_rejected.
func (o *Observability) RecordModelCall(ctx context.Context, outcome string) {
	if o.modelCalls != nil {
		o.modelCalls.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("outcome", outcome),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
