// Package tracing настраивает глобальный TracerProvider OpenTelemetry.
package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const serviceName = "upload_demo"

// Shutdown сбрасывает накопленные спаны и останавливает провайдер.
type Shutdown func(context.Context) error

// Setup устанавливает глобальный провайдер для экспортёра exporter:
// "none" оставляет no-op провайдер otel, "stdout" пишет спаны в w в формате JSON.
func Setup(exporter string, w io.Writer) (Shutdown, error) {
	switch exporter {
	case "", "none":
		return func(context.Context) error { return nil }, nil
	case "stdout":
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", exporter)
	}

	exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("stdout exporter: %w", err)
	}

	tp := NewProvider(sdktrace.WithBatcher(exp))
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// NewProvider создаёт провайдер с ресурсом сервиса и переданными опциями.
func NewProvider(opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName))
	return sdktrace.NewTracerProvider(append([]sdktrace.TracerProviderOption{sdktrace.WithResource(res)}, opts...)...)
}
