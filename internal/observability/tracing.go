package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/imbecis/app-imbecis/internal/config"
	"github.com/imbecis/app-imbecis/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ServiceName identifies the process in exported traces
const ServiceName = "app-imbecis"

// shutdownTimeout bounds the final span flush
const shutdownTimeout = 5 * time.Second

var tracerProvider *sdktrace.TracerProvider

// InitTracer installs an OTLP tracer provider when cfg enables tracing.
// Otherwise the global no-op provider stays in place and spans cost nothing.
func InitTracer(ctx context.Context, cfg *config.Config) error {
	if cfg == nil || !cfg.TracingEnabled {
		logging.Logger.Info("tracing is disabled")
		return nil
	}

	// the connection is established lazily on first export
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.TracingEndpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	)
	if err != nil {
		return fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		_ = exporter.Shutdown(ctx)
		return fmt.Errorf("creating trace resource: %w", err)
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(cfg.TracingSampleRatio)),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logging.Logger.Info("tracer initialized",
		zap.String("endpoint", cfg.TracingEndpoint),
		zap.Float64("sample_ratio", cfg.TracingSampleRatio))
	return nil
}

// newSampler follows the caller's sampling decision and keeps ratio of the
// traces started here
func newSampler(ratio float64) sdktrace.Sampler {
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

func newResource(ctx context.Context, cfg *config.Config) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(ServiceName),
			semconv.ServiceVersionKey.String("v1"),
			semconv.DeploymentEnvironmentKey.String(cfg.Environment),
			attribute.String("imbecis.api_base_url", cfg.APIBaseURL),
			attribute.String("imbecis.locale", cfg.Locale),
		),
	)
}

// ShutdownTracer flushes pending spans and releases the provider
func ShutdownTracer(ctx context.Context) error {
	if tracerProvider == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	err := tracerProvider.Shutdown(ctx)
	tracerProvider = nil
	if err != nil {
		return fmt.Errorf("shutting down tracer provider: %w", err)
	}
	return nil
}
