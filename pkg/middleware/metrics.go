package middleware

import (
	"context"
	"time"

	"github.com/ShigekuniWork/ocypode/pkg/protocol"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "ocypode").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// DurationBuckets are the histogram buckets for codec latency.
	DurationBuckets []float64

	// SizeBuckets are the histogram buckets for frame sizes in bytes.
	SizeBuckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the latency histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.DurationBuckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:       "ocypode",
		DurationBuckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		SizeBuckets:     prometheus.ExponentialBuckets(16, 4, 8), // 16B to 256KB
		Registry:        prometheus.DefaultRegisterer,
	}
}

// Metrics holds the codec collectors. One Metrics can instrument any number
// of codecs; collectors are registered once, when it is created.
type Metrics struct {
	framesTotal   *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	frameSize     *prometheus.HistogramVec
	codecDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the codec collectors.
// It panics if they are already registered with the same registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		framesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_total",
			Help:        "Total number of frames encoded or decoded",
			ConstLabels: config.ConstLabels,
		}, []string{"role", "op", "command", "status"}),

		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "codec_errors_total",
			Help:        "Total number of encode and decode failures by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"role", "op", "kind"}),

		frameSize: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frame_size_bytes",
			Help:        "Size of encoded and decoded frames in bytes",
			ConstLabels: config.ConstLabels,
			Buckets:     config.SizeBuckets,
		}, []string{"role", "op"}),

		codecDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "codec_duration_seconds",
			Help:        "Encode and decode latency in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.DurationBuckets,
		}, []string{"role", "op"}),
	}
}

// Middleware returns a decorator that records into m.
func (m *Metrics) Middleware() Middleware {
	return func(next protocol.Codec) protocol.Codec {
		return &metricsCodec{next: next, m: m, role: next.Role().String()}
	}
}

// Prometheus creates middleware that collects codec metrics.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	codec := middleware.Chain(protocol.NewServerCodec(),
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	)
func Prometheus(opts ...MetricsOption) Middleware {
	return NewMetrics(opts...).Middleware()
}

type metricsCodec struct {
	next protocol.Codec
	m    *Metrics
	role string
}

func (c *metricsCodec) Role() protocol.Role {
	return c.next.Role()
}

func (c *metricsCodec) Encode(m protocol.Message) ([]byte, error) {
	return c.EncodeContext(context.Background(), m)
}

func (c *metricsCodec) Decode(frame []byte) (protocol.Message, error) {
	return c.DecodeContext(context.Background(), frame)
}

func (c *metricsCodec) EncodeContext(ctx context.Context, m protocol.Message) ([]byte, error) {
	start := time.Now()
	frame, err := EncodeContext(ctx, c.next, m)
	c.record("encode", messageLabel(m), len(frame), start, err)
	return frame, err
}

func (c *metricsCodec) DecodeContext(ctx context.Context, frame []byte) (protocol.Message, error) {
	start := time.Now()
	msg, err := DecodeContext(ctx, c.next, frame)
	c.record("decode", commandLabel(frame), len(frame), start, err)
	return msg, err
}

func (c *metricsCodec) record(op, command string, size int, start time.Time, err error) {
	c.m.codecDuration.WithLabelValues(c.role, op).Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = "error"
		c.m.errorsTotal.WithLabelValues(c.role, op, protocol.ErrorKind(err)).Inc()
	} else {
		c.m.frameSize.WithLabelValues(c.role, op).Observe(float64(size))
	}
	c.m.framesTotal.WithLabelValues(c.role, op, command, status).Inc()
}
