package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// OTelConfig configures the OTLP/HTTP exporter.
type OTelConfig struct {
	// Endpoint is the OTLP collector host:port, e.g. "localhost:4318".
	Endpoint string

	// ServiceName tags exported spans. Defaults to "storevoice".
	ServiceName string

	// Insecure disables TLS toward the collector (local agents).
	Insecure bool
}

// OTel exports events as spans through an OTLP/HTTP trace exporter. Spans
// are batched off the hot path; a lost batch is invisible to callers.
type OTel struct {
	tracer trace.Tracer
	logger *slog.Logger
}

// NewOTel creates the exporter-backed sink. The returned shutdown function
// flushes pending spans and should run during process teardown.
func NewOTel(ctx context.Context, cfg OTelConfig, logger *slog.Logger) (*OTel, func(context.Context) error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "storevoice"
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(sdkresource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	)

	return &OTel{
		tracer: provider.Tracer("storevoice/telemetry"),
		logger: logger,
	}, provider.Shutdown, nil
}

// Emit records the event as a zero-duration span. Export happens in the
// provider's batch goroutine; this call never blocks on the network.
func (o *OTel) Emit(ctx context.Context, event Event) {
	_, span := o.tracer.Start(ctx, event.Type, trace.WithAttributes(
		attribute.String("operation", event.Operation),
		attribute.String("tier", event.Tier),
		attribute.Bool("cache_hit", event.CacheHit),
		attribute.Int64("latency_ms", event.LatencyMs),
		attribute.Bool("success", event.Success),
		attribute.String("conversation_id", event.ConversationID),
	))
	if !event.Success {
		span.SetStatus(codes.Error, event.ErrorClass)
		if event.ErrorClass != "" {
			span.SetAttributes(attribute.String("error_class", event.ErrorClass))
		}
	}
	span.End()
}
