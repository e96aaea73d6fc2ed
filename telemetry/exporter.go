package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/zam-dot/contrastscope/contrast"
)

const (
	serviceName    = "contrastscope"
	serviceVersion = "0.3.0"
)

// Exporter sends audit metrics to an OTEL collector.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	elementsTotal metric.Int64Counter
	errorsTotal   metric.Int64Counter
	auditsTotal   metric.Int64Counter
	ratioHist     metric.Float64Histogram
}

// NewExporter builds an OTLP/gRPC exporter. It fails when telemetry is
// disabled so callers can fall back to NewNoOpRecorder.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}
	reader := sdkmetric.NewPeriodicReader(exp)

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	return newExporter(sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	))
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	elementsTotal, err := meter.Int64Counter(
		"contrastscope_elements_total",
		metric.WithDescription("Text elements evaluated, by conformance level"),
		metric.WithUnit("{element}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating elements counter: %w", err)
	}

	errorsTotal, err := meter.Int64Counter(
		"contrastscope_evaluation_errors_total",
		metric.WithDescription("Text elements that could not be evaluated"),
		metric.WithUnit("{element}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating errors counter: %w", err)
	}

	auditsTotal, err := meter.Int64Counter(
		"contrastscope_audits_total",
		metric.WithDescription("Completed audits"),
		metric.WithUnit("{audit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating audits counter: %w", err)
	}

	ratioHist, err := meter.Float64Histogram(
		"contrastscope_contrast_ratio",
		metric.WithDescription("Contrast ratio of evaluated text"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 4.5, 7, 10, 15, 21),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ratio histogram: %w", err)
	}

	return &Exporter{
		provider:      provider,
		elementsTotal: elementsTotal,
		errorsTotal:   errorsTotal,
		auditsTotal:   auditsTotal,
		ratioHist:     ratioHist,
	}, nil
}

// RecordAudit records one report.
func (e *Exporter) RecordAudit(ctx context.Context, target string, r contrast.Report) error {
	targetAttr := attribute.String("target", target)

	for _, c := range r.Results {
		opt := metric.WithAttributes(
			targetAttr,
			attribute.String("level", c.Level.String()),
			attribute.Bool("large_text", c.Large),
		)
		e.elementsTotal.Add(ctx, 1, opt)
		e.ratioHist.Record(ctx, c.Ratio, opt)
	}

	if r.Summary.Errors > 0 {
		e.errorsTotal.Add(ctx, int64(r.Summary.Errors), metric.WithAttributes(targetAttr))
	}
	e.auditsTotal.Add(ctx, 1, metric.WithAttributes(targetAttr))
	return nil
}

// Close shuts down the provider and flushes pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
