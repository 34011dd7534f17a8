package middleware

import (
	"context"

	"github.com/ShigekuniWork/ocypode/pkg/protocol"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for codec spans.
const defaultTracerName = "ocypode"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "ocypode").
	TracerName string

	// TracerProvider supplies the tracer. Default: otel.GetTracerProvider().
	TracerProvider trace.TracerProvider

	// Filter determines which commands to trace.
	// Return true to trace, false to skip. If nil, everything is traced.
	// Frames whose command cannot be read are always traced.
	Filter func(cmd protocol.Command) bool

	// AttributeExtractor adds custom attributes for a successfully
	// encoded or decoded message.
	AttributeExtractor func(m protocol.Message) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithCommandFilter sets a filter function for commands.
func WithCommandFilter(filter func(cmd protocol.Command) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(m protocol.Message) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every encode and decode.
//
// Each span carries the role, command and frame size. Failures are recorded
// on the span together with their protocol.ErrorKind.
//
// Example:
//
//	codec := middleware.Chain(protocol.NewServerCodec(),
//	    middleware.OpenTelemetry(middleware.WithTracerName("broker")),
//	)
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	config.tracer = tp.Tracer(config.TracerName)

	return func(next protocol.Codec) protocol.Codec {
		return &tracingCodec{next: next, config: config}
	}
}

type tracingCodec struct {
	next   protocol.Codec
	config OTelConfig
}

func (c *tracingCodec) Role() protocol.Role {
	return c.next.Role()
}

func (c *tracingCodec) Encode(m protocol.Message) ([]byte, error) {
	return c.EncodeContext(context.Background(), m)
}

func (c *tracingCodec) Decode(frame []byte) (protocol.Message, error) {
	return c.DecodeContext(context.Background(), frame)
}

func (c *tracingCodec) EncodeContext(ctx context.Context, m protocol.Message) ([]byte, error) {
	if m == nil || !c.traced(m.Command(), true) {
		return EncodeContext(ctx, c.next, m)
	}

	ctx, span := c.start(ctx, "encode", m.Command().String())
	defer span.End()

	frame, err := EncodeContext(ctx, c.next, m)
	c.finish(span, m, len(frame), err)
	return frame, err
}

func (c *tracingCodec) DecodeContext(ctx context.Context, frame []byte) (protocol.Message, error) {
	if !c.traced(frameCommand(frame)) {
		return DecodeContext(ctx, c.next, frame)
	}

	ctx, span := c.start(ctx, "decode", commandLabel(frame))
	defer span.End()

	msg, err := DecodeContext(ctx, c.next, frame)
	c.finish(span, msg, len(frame), err)
	return msg, err
}

func (c *tracingCodec) traced(cmd protocol.Command, known bool) bool {
	if c.config.Filter == nil || !known {
		return true
	}
	return c.config.Filter(cmd)
}

func (c *tracingCodec) start(ctx context.Context, op, command string) (context.Context, trace.Span) {
	return c.config.tracer.Start(ctx, "ocypode."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("ocypode.role", c.next.Role().String()),
			attribute.String("ocypode.op", op),
			attribute.String("ocypode.command", command),
		),
	)
}

func (c *tracingCodec) finish(span trace.Span, m protocol.Message, size int, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("ocypode.error_kind", protocol.ErrorKind(err)))
		span.SetStatus(codes.Error, err.Error())
		return
	}

	span.SetAttributes(
		attribute.Int("ocypode.frame_size", size),
		attribute.Int("ocypode.flags", int(m.Flags())),
	)
	if c.config.AttributeExtractor != nil {
		span.SetAttributes(c.config.AttributeExtractor(m)...)
	}
	span.SetStatus(codes.Ok, "")
}
