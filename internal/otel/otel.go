package otel

import (
	"context"
	"sync"

	eventbus "github.com/yahelnachum/graphql-query-generator/internal/eventbus"
	events "github.com/yahelnachum/graphql-query-generator/internal/events"
	runid "github.com/yahelnachum/graphql-query-generator/internal/runid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// TracerName identifies spans produced for generation runs.
const TracerName = "graphql-query-generator"

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	detach := Attach(otel.Tracer(TracerName))

	return func(ctx context.Context) error {
		detach()
		return tp.Shutdown(ctx)
	}, nil
}

// Attach subscribes a span recorder to the global bus. Each run gets one
// "querygen.generate" span; bound variables are recorded as span events.
func Attach(tracer trace.Tracer) (detach func()) {
	s := &subscriber{tracer: tracer}
	return s.register()
}

type subscriber struct {
	tracer trace.Tracer
	spans  sync.Map // rid -> trace.Span
}

func (s *subscriber) register() func() {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.GenerateStart) {
			rid, _ := runid.FromContext(ctx)
			_, span := s.tracer.Start(ctx, "querygen.generate")
			span.SetAttributes(
				attribute.String("querygen.run_id", rid),
				attribute.Int64("querygen.seed", e.Seed),
				attribute.String("graphql.operation.type", e.Operation),
				attribute.String("querygen.root_type", e.RootType),
			)
			s.spans.Store(rid, span)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.VariableBound) {
			rid, _ := runid.FromContext(ctx)
			v, ok := s.spans.Load(rid)
			if !ok {
				return
			}
			v.(trace.Span).AddEvent("variable.bound", trace.WithAttributes(
				attribute.String("graphql.variable.name", e.Name),
				attribute.String("graphql.variable.type", e.Type),
				attribute.Bool("querygen.slicing", e.Optional),
			))
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.GenerateFinish) {
			rid, _ := runid.FromContext(ctx)
			v, ok := s.spans.LoadAndDelete(rid)
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(
				attribute.String("querygen.root_field", e.RootField),
				attribute.Int("querygen.field_count", e.Fields),
				attribute.Int("querygen.variable_count", e.Variables),
			)
			if e.Err != nil {
				span.RecordError(e.Err)
				span.SetStatus(codes.Error, e.Err.Error())
			}
			span.End()
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
