// Package telemetry wires OpenTelemetry tracing.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/kailas-cloud/savedobjects/internal/version"
)

// TracerOption configures NewTracerProvider.
type TracerOption func(t *tracerConfig)

// WithOTLPEndpoint sets the collector address (host:port).
func WithOTLPEndpoint(endpoint string) TracerOption {
	return func(t *tracerConfig) { t.endpoint = endpoint }
}

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) TracerOption {
	return func(t *tracerConfig) { t.serviceName = name }
}

// WithSamplingRatio sets the fraction of traces sampled.
func WithSamplingRatio(ratio float64) TracerOption {
	return func(t *tracerConfig) { t.samplingRatio = ratio }
}

type tracerConfig struct {
	endpoint      string
	serviceName   string
	samplingRatio float64
}

// NewTracerProvider builds a batching OTLP/gRPC tracer provider and installs
// it as the global provider. Callers must Shutdown it on exit.
func NewTracerProvider(ctx context.Context, opts ...TracerOption) (*sdktrace.TracerProvider, error) {
	cfg := &tracerConfig{serviceName: "savedobjects"}
	for _, opt := range opts {
		opt(cfg)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", cfg.serviceName),
			attribute.String("service.version", version.Version),
		))
	if err != nil {
		return nil, fmt.Errorf("tracing resource: %w", err)
	}

	exp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(cfg.endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.samplingRatio))),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exp)),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	otel.SetTracerProvider(tp)

	return tp, nil
}

// TraceError marks span as failed with err.
func TraceError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
