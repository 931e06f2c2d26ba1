package trace

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"slices"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	defaultServiceName = "panellayout"
	instrumentation    = "panellayout/workspace"
	attrPrefix         = "panellayout."
)

// OTLPConfig selects where command spans are exported.
type OTLPConfig struct {
	Endpoint    string // host:port; empty disables export
	ServiceName string
	Insecure    bool
}

// OTLPConfigFromEnv reads OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_SERVICE_NAME and
// OTEL_EXPORTER_OTLP_INSECURE. Export is plain HTTP unless the last is
// "false".
func OTLPConfigFromEnv() OTLPConfig {
	cfg := OTLPConfig{
		Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName: os.Getenv("OTEL_SERVICE_NAME"),
		Insecure:    true,
	}
	if v, err := strconv.ParseBool(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")); err == nil {
		cfg.Insecure = v
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}
	return cfg
}

// OTLPExporter forwards finished command spans to an OTLP/HTTP collector.
// A nil *OTLPExporter is valid and exports nothing.
type OTLPExporter struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// NewOTLPExporter returns nil, nil when cfg has no endpoint.
func NewOTLPExporter(ctx context.Context, cfg OTLPConfig) (*OTLPExporter, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter for %s: %w", cfg.Endpoint, err)
	}
	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceNameKey.String(cfg.ServiceName))
	return newOTLPExporter(sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)), nil
}

func newOTLPExporter(provider *sdktrace.TracerProvider) *OTLPExporter {
	return &OTLPExporter{provider: provider, tracer: provider.Tracer(instrumentation)}
}

// ExportSpan re-creates span in the OTLP trace named by span.TraceID, with
// its original start and end times.
func (e *OTLPExporter) ExportSpan(ctx context.Context, span *Span) error {
	if e == nil {
		return nil
	}
	traceID, err := hexToTraceID(span.TraceID)
	if err != nil {
		return err
	}
	// Only the trace ID is carried over; the SDK picks a new span ID.
	parent := oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID:    traceID,
		TraceFlags: oteltrace.FlagsSampled,
	})
	_, out := e.tracer.Start(
		oteltrace.ContextWithSpanContext(ctx, parent),
		span.Name,
		oteltrace.WithTimestamp(span.StartTime),
		oteltrace.WithSpanKind(oteltrace.SpanKindInternal),
		oteltrace.WithAttributes(spanAttributes(span)...),
	)
	out.End(oteltrace.WithTimestamp(span.End()))
	return nil
}

// spanAttributes namespaces span attributes under "panellayout.", sorted by
// key. Ids get an ".id" suffix; "changed" and "groups" keep their types.
func spanAttributes(span *Span) []attribute.KeyValue {
	keys := make([]string, 0, len(span.Attributes))
	for k := range span.Attributes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	attrs := make([]attribute.KeyValue, 0, len(keys))
	for _, k := range keys {
		v := span.Attributes[k]
		switch k {
		case "group", "tab", "target":
			attrs = append(attrs, attribute.String(attrPrefix+k+".id", v))
		case "changed":
			b, err := strconv.ParseBool(v)
			if err != nil {
				attrs = append(attrs, attribute.String(attrPrefix+k, v))
				continue
			}
			attrs = append(attrs, attribute.Bool(attrPrefix+k, b))
		case "groups":
			n, err := strconv.Atoi(v)
			if err != nil {
				attrs = append(attrs, attribute.String(attrPrefix+k, v))
				continue
			}
			attrs = append(attrs, attribute.Int(attrPrefix+k, n))
		default:
			attrs = append(attrs, attribute.String(attrPrefix+k, v))
		}
	}
	return attrs
}

func hexToTraceID(s string) (oteltrace.TraceID, error) {
	var id oteltrace.TraceID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("trace id %q: %w", s, err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("trace id %q: want %d bytes, got %d", s, len(id), len(b))
	}
	copy(id[:], b)
	return id, nil
}

// Shutdown flushes buffered spans.
func (e *OTLPExporter) Shutdown(ctx context.Context) error {
	if e == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}
