package otel

import (
	"context"
	"sync"

	eventbus "github.com/cobbinma/gleamql/internal/eventbus"
	events "github.com/cobbinma/gleamql/internal/events"
	sendid "github.com/cobbinma/gleamql/internal/sendid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers
// that trace each send and its transport round trip.
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

	sub := &subscriber{tracer: otel.Tracer("gleamql")}
	sub.register()

	return tp.Shutdown, nil
}

type subscriber struct {
	tracer         trace.Tracer
	sendSpans      sync.Map // send id -> trace.Span
	transportSpans sync.Map // send id -> trace.Span
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e events.SendStart) {
		id, _ := sendid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "graphql.send")
		span.SetAttributes(
			attribute.String("graphql.operation.name", e.OperationName),
			attribute.String("graphql.operation.type", e.OperationKind),
		)
		s.sendSpans.Store(id, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.SendFinish) {
		id, _ := sendid.FromContext(ctx)
		v, ok := s.sendSpans.LoadAndDelete(id)
		if !ok {
			return
		}
		span := v.(trace.Span)
		if e.Err != nil {
			span.RecordError(e.Err)
		}
		span.End()
	})

	eventbus.Subscribe(func(ctx context.Context, e events.TransportStart) {
		id, _ := sendid.FromContext(ctx)
		parent := ctx
		if v, ok := s.sendSpans.Load(id); ok {
			parent = trace.ContextWithSpan(ctx, v.(trace.Span))
		}
		_, span := s.tracer.Start(parent, "graphql.transport")
		span.SetAttributes(semconv.HTTPRequestContentLengthKey.Int(e.RequestBytes))
		s.transportSpans.Store(id, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.TransportFinish) {
		id, _ := sendid.FromContext(ctx)
		v, ok := s.transportSpans.LoadAndDelete(id)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(
			semconv.HTTPStatusCodeKey.Int(e.StatusCode),
			semconv.HTTPResponseContentLengthKey.Int(e.ResponseBytes),
		)
		if e.Err != nil {
			span.RecordError(e.Err)
		}
		span.End()
	})
}
