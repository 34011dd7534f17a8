// Package middleware provides observability decorators for protocol codecs.
//
// A Middleware wraps a protocol.Codec and returns a Codec with the same
// role and behaviour. Decorators compose with Chain:
//
//	codec := middleware.Chain(protocol.NewServerCodec(),
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	    middleware.OpenTelemetry(middleware.WithTracerName("ocypode")),
//	)
//
// # Prometheus Metrics
//
// The Prometheus middleware records, per role and direction:
//   - ocypode_frames_total: frames encoded or decoded, by command and status
//   - ocypode_codec_errors_total: failures, by error kind (see protocol.ErrorKind)
//   - ocypode_frame_size_bytes: histogram of frame sizes
//   - ocypode_codec_duration_seconds: histogram of encode/decode latency
//
// Expose them with promhttp:
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// # OpenTelemetry Tracing
//
// The OpenTelemetry middleware starts a span for each encode and decode.
// It uses the global tracer provider unless WithTracerProvider is given.
// Callers holding a request context should use EncodeContext and
// DecodeContext so spans join the caller's trace:
//
//	msg, err := middleware.DecodeContext(r.Context(), codec, frame)
package middleware
