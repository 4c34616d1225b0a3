package observability

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/config"
)

// EnableTracing installs a Jaeger-backed tracer provider. It is a no-op when
// tracing is disabled in config.
func (o *Observability) EnableTracing(cfg config.TracingConfig, version string) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.JaegerEndpoint == "" {
		return fmt.Errorf("tracing enabled without jaeger endpoint")
	}

	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
	if err != nil {
		return fmt.Errorf("create jaeger exporter: %w", err)
	}

	o.tracerProvider = newTracerProvider(o.serviceName, version, cfg.SampleRatio, sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(o.tracerProvider)
	return nil
}

func newTracerProvider(serviceName, version string, ratio float64, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	)
	opts = append(opts,
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)
	return sdktrace.NewTracerProvider(opts...)
}
