// Package telemetry wires the global OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/kdbg-dev/kdbg/pkg/version"
)

// endpointEnvVar gates trace export. Without it the no-op global tracer
// stays installed and spans cost nothing.
const endpointEnvVar = "OTEL_EXPORTER_OTLP_ENDPOINT"

// ShutdownFunc flushes buffered spans, it must be called before exit.
type ShutdownFunc func(ctx context.Context) error

// Setup installs an OTLP/gRPC trace exporter as the global tracer provider
// when OTEL_EXPORTER_OTLP_ENDPOINT is set. Otherwise it leaves the no-op
// default in place and the returned shutdown does nothing.
func Setup(ctx context.Context) (ShutdownFunc, error) {
	if os.Getenv(endpointEnvVar) == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res := resource.NewWithAttributes(semconv.SchemaURL,
		semconv.ServiceName("kdbg"),
		semconv.ServiceVersion(version.Get()),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
