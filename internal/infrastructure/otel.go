package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"marketlens/pkg/contracts"
)

const (
	ServiceName = "marketlens"
	MeterName   = "marketlens"
)

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Logger         *slog.Logger
}

// InitOTel initializes tracing and metrics providers. The meter provider has
// no reader attached; callers that want an exporter register their own via
// otel.SetMeterProvider before extraction starts.
func InitOTel(ctx context.Context, logger *slog.Logger) (*OTelProviders, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(contracts.Version),
		attribute.String("data.format.version", contracts.DataFormatVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create otel resource: %w", err)
	}

	traceExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)

	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res))
	otel.SetMeterProvider(meterProvider)

	logger.InfoContext(ctx, "opentelemetry initialized",
		slog.String("service", ServiceName),
		slog.String("build", contracts.VersionString()),
		slog.String("data_format", contracts.DataFormatVersion))

	return &OTelProviders{
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
		Tracer:         tracerProvider.Tracer(ServiceName),
		Meter:          meterProvider.Meter(MeterName),
		Logger:         logger,
	}, nil
}

// Shutdown flushes and stops the providers.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	if err := p.TracerProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}
	if err := p.MeterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}

// ExtractionMetrics holds the instruments recorded during report extraction.
type ExtractionMetrics struct {
	RowsProcessed    metric.Int64Counter
	RecordsExtracted metric.Int64Counter
	Warnings         metric.Int64Counter
	OutliersFlagged  metric.Int64Counter
}

// NewExtractionMetrics creates the extraction counters on the global meter.
func NewExtractionMetrics() (*ExtractionMetrics, error) {
	meter := otel.Meter(MeterName)

	rows, err := meter.Int64Counter("extraction.rows_processed",
		metric.WithDescription("Raw sheet rows examined during extraction"))
	if err != nil {
		return nil, fmt.Errorf("failed to create rows_processed counter: %w", err)
	}

	records, err := meter.Int64Counter("extraction.records_extracted",
		metric.WithDescription("Normalized metric records produced"))
	if err != nil {
		return nil, fmt.Errorf("failed to create records_extracted counter: %w", err)
	}

	warnings, err := meter.Int64Counter("extraction.warnings",
		metric.WithDescription("Non-fatal row-level extraction warnings"))
	if err != nil {
		return nil, fmt.Errorf("failed to create warnings counter: %w", err)
	}

	outliers, err := meter.Int64Counter("extraction.outliers_flagged",
		metric.WithDescription("Values flagged outside semantic bounds"))
	if err != nil {
		return nil, fmt.Errorf("failed to create outliers_flagged counter: %w", err)
	}

	return &ExtractionMetrics{
		RowsProcessed:    rows,
		RecordsExtracted: records,
		Warnings:         warnings,
		OutliersFlagged:  outliers,
	}, nil
}

// RecordBatch records the per-batch totals with the batch ID attribute.
func (m *ExtractionMetrics) RecordBatch(ctx context.Context, batchID string, rows, records, warnings, outliers int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("batch_id", batchID))
	m.RowsProcessed.Add(ctx, int64(rows), attrs)
	m.RecordsExtracted.Add(ctx, int64(records), attrs)
	m.Warnings.Add(ctx, int64(warnings), attrs)
	m.OutliersFlagged.Add(ctx, int64(outliers), attrs)
}
