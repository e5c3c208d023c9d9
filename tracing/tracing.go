package tracing

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/viant/visitgate"

// Kind is a span kind
type Kind string

const (
	KindInternal Kind = "INTERNAL"
	KindClient   Kind = "CLIENT"
	KindProducer Kind = "PRODUCER"
)

func (k Kind) otel() trace.SpanKind {
	switch k {
	case KindClient:
		return trace.SpanKindClient
	case KindProducer:
		return trace.SpanKindProducer
	}
	return trace.SpanKindInternal
}

// Options controls provider setup
type Options struct {
	ServiceName    string
	ServiceVersion string
	// OutputFile receives stdout exporter output; os.Stdout when empty
	OutputFile string
	// Exporter replaces the stdout exporter when set (OTLP, in-memory test exporters)
	Exporter sdktrace.SpanExporter
}

var (
	setupOnce sync.Once
	setupErr  error
)

// Setup installs the global tracer provider. Only the first call has effect;
// later calls return the first call's error.
func Setup(options Options) error {
	setupOnce.Do(func() {
		setupErr = install(options)
	})
	return setupErr
}

func install(options Options) error {
	exporter := options.Exporter
	if exporter == nil {
		var w io.Writer = os.Stdout
		if options.OutputFile != "" {
			f, err := os.Create(options.OutputFile)
			if err != nil {
				return fmt.Errorf("failed to create trace output: %w", err)
			}
			w = f
		}
		var err error
		if exporter, err = stdouttrace.New(stdouttrace.WithWriter(w)); err != nil {
			return err
		}
	}
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", options.ServiceName),
			attribute.String("service.version", options.ServiceVersion),
		),
	)
	if err != nil {
		return err
	}
	otel.SetTracerProvider(sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	))
	return nil
}

// Span wraps an OpenTelemetry span; a nil *Span is a no-op
type Span struct {
	span trace.Span
}

// StartSpan starts a child span of ctx
func StartSpan(ctx context.Context, name string, kind Kind) (context.Context, *Span) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, name, trace.WithSpanKind(kind.otel()))
	return ctx, &Span{span: span}
}

// Attr sets a string, bool or int attribute; other values are formatted with %v
func (s *Span) Attr(key string, value interface{}) *Span {
	if s == nil {
		return s
	}
	var kv attribute.KeyValue
	switch actual := value.(type) {
	case string:
		kv = attribute.String(key, actual)
	case bool:
		kv = attribute.Bool(key, actual)
	case int:
		kv = attribute.Int(key, actual)
	default:
		kv = attribute.String(key, fmt.Sprintf("%v", actual))
	}
	s.span.SetAttributes(kv)
	return s
}

// End records err (or OK) and ends the span
func (s *Span) End(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
