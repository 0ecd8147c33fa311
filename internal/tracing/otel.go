package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	providerMu sync.Mutex
	provider   *sdktrace.TracerProvider
	spanFile   io.Closer
)

type providerConfig struct {
	version   string
	traceFile string
	maxSizeMB int
}

// ProviderOption configures InitOpenTelemetry.
type ProviderOption func(*providerConfig)

// WithServiceVersion sets the service.version resource attribute.
func WithServiceVersion(version string) ProviderOption {
	return func(c *providerConfig) {
		c.version = version
	}
}

// WithTraceFile exports finished spans as JSON to path, rotated at
// maxSizeMB. Without it spans are only kept in-process.
func WithTraceFile(path string, maxSizeMB int) ProviderOption {
	return func(c *providerConfig) {
		c.traceFile = path
		c.maxSizeMB = maxSizeMB
	}
}

// InitOpenTelemetry installs the global tracer provider. While a provider
// is installed further calls are no-ops; after ShutdownOpenTelemetry the
// next call installs a fresh one.
func InitOpenTelemetry(serviceName string, opts ...ProviderOption) error {
	providerMu.Lock()
	defer providerMu.Unlock()
	if provider != nil {
		return nil
	}

	cfg := providerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	attrs := []attribute.KeyValue{semconv.ServiceName(serviceName)}
	if cfg.version != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.version))
	}
	res, err := resource.New(context.Background(), resource.WithAttributes(attrs...))
	if err != nil {
		return fmt.Errorf("failed to create trace resource: %w", err)
	}

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithResource(res),
	}

	var file io.WriteCloser
	if cfg.traceFile != "" {
		if cfg.maxSizeMB <= 0 {
			cfg.maxSizeMB = 10
		}
		file = &lumberjack.Logger{
			Filename:   cfg.traceFile,
			MaxSize:    cfg.maxSizeMB,
			MaxBackups: 3,
		}
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(file))
		if err != nil {
			file.Close()
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		// Commands are short-lived, so spans are written as they end.
		tpOpts = append(tpOpts, sdktrace.WithSyncer(exporter))
	}

	provider = sdktrace.NewTracerProvider(tpOpts...)
	spanFile = file
	otel.SetTracerProvider(provider)
	return nil
}

// ShutdownOpenTelemetry flushes and shuts down the installed provider and
// closes its trace file.
func ShutdownOpenTelemetry(ctx context.Context) error {
	providerMu.Lock()
	tp, file := provider, spanFile
	provider, spanFile = nil, nil
	providerMu.Unlock()

	if tp == nil {
		return nil
	}
	err := tp.Shutdown(ctx)
	if file != nil {
		err = errors.Join(err, file.Close())
	}
	return err
}

// StartSpan starts a span and ensures trace_id is propagated in the tracing context package.
func StartSpan(ctx context.Context, tracerName, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, spanName, trace.WithAttributes(attrs...))

	if GetTraceID(ctx) == "" {
		sc := span.SpanContext()
		if sc.IsValid() {
			ctx = WithTraceID(ctx, sc.TraceID().String())
		}
	}

	return ctx, span
}

// FailSpan records err on span and marks it failed.
func FailSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
