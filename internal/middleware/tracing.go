package middleware

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/s1natex/todos-cli-GO/internal/tasks"
)

const (
	TracingNone   = "none"
	TracingStdout = "stdout"
	TracingOTLP   = "otlp"
)

// SetupTracing installs a global tracer provider for the given exporter.
// stdout spans go to w; otlp reads the standard OTEL_EXPORTER_OTLP_* env.
// The returned func flushes pending spans and must be called before exit.
func SetupTracing(ctx context.Context, exporter string, w io.Writer) (func(context.Context) error, error) {
	var (
		exp sdktrace.SpanExporter
		err error
	)
	switch exporter {
	case "", TracingNone:
		return func(context.Context) error { return nil }, nil
	case TracingStdout:
		exp, err = stdouttrace.New(stdouttrace.WithWriter(w))
	case TracingOTLP:
		exp, err = otlptracehttp.New(ctx)
	default:
		return nil, fmt.Errorf("unknown tracing exporter %q", exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s exporter: %w", exporter, err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", "todos"))),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

type tracingRepo struct {
	next tasks.Repository
	tr   trace.Tracer
}

// Tracing opens one span per repository call.
func Tracing(next tasks.Repository) tasks.Repository {
	return &tracingRepo{next: next, tr: otel.Tracer("store")}
}

func (r *tracingRepo) Add(ctx context.Context, description string) (tasks.Task, error) {
	ctx, span := r.tr.Start(ctx, "store.add")
	defer span.End()

	t, err := r.next.Add(ctx, description)
	span.SetAttributes(attribute.Int64("todo.id", t.ID))
	finish(span, err)
	return t, err
}

func (r *tracingRepo) List(ctx context.Context) ([]tasks.Task, error) {
	ctx, span := r.tr.Start(ctx, "store.list")
	defer span.End()

	out, err := r.next.List(ctx)
	span.SetAttributes(attribute.Int("todo.count", len(out)))
	finish(span, err)
	return out, err
}

func (r *tracingRepo) Update(ctx context.Context, id int64, status bool) (tasks.Task, error) {
	ctx, span := r.tr.Start(ctx, "store.update", trace.WithAttributes(
		attribute.Int64("todo.id", id),
		attribute.Bool("todo.status", status),
	))
	defer span.End()

	t, err := r.next.Update(ctx, id, status)
	finish(span, err)
	return t, err
}

func (r *tracingRepo) Delete(ctx context.Context, id int64) error {
	ctx, span := r.tr.Start(ctx, "store.delete", trace.WithAttributes(attribute.Int64("todo.id", id)))
	defer span.End()

	err := r.next.Delete(ctx, id)
	finish(span, err)
	return err
}

func finish(span trace.Span, err error) {
	span.SetAttributes(attribute.String("store.result", result(err)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
