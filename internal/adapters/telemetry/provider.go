package telemetry

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
)

// Provider owns the tracer handed to the engine and the SDK pipeline behind it.
type Provider struct {
	tp     *sdktrace.TracerProvider
	tracer ports.Tracer
}

// NewProvider builds a provider from cfg. When tracing is disabled the tracer
// is a no-op. Otherwise spans are exported as JSON to w.
func NewProvider(cfg domain.TelemetryConfig, w io.Writer) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: NewNoOpTracer()}, nil
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, err
	}
	return NewProviderWithProcessor(cfg, sdktrace.NewBatchSpanProcessor(exporter)), nil
}

// NewProviderWithProcessor builds an enabled provider around sp.
func NewProviderWithProcessor(cfg domain.TelemetryConfig, sp sdktrace.SpanProcessor) *Provider {
	name := cfg.ServiceName
	if name == "" {
		name = domain.DefaultServiceName
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(sp),
	)
	return &Provider{tp: tp, tracer: NewOTelTracer(tp, name)}
}

// Tracer returns the tracer for this provider.
func (p *Provider) Tracer() ports.Tracer {
	return p.tracer
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tp == nil {
		return nil
	}
	return p.tp.Shutdown(ctx)
}
