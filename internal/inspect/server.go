// Package inspect serves an HTTP API for decoding frames and validating
// topics, with Prometheus metrics of the codecs it runs.
package inspect

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/ShigekuniWork/ocypode/internal/config"
	"github.com/ShigekuniWork/ocypode/pkg/middleware"
	"github.com/ShigekuniWork/ocypode/pkg/protocol"
	"github.com/ShigekuniWork/ocypode/pkg/topic"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures a Server.
type Options struct {
	// Addr is the listen address.
	Addr string

	// Limits bounds decoded frames.
	Limits protocol.Limits

	// TracerName names the tracer for codec spans.
	TracerName string

	// MetricsNamespace prefixes exported metrics.
	MetricsNamespace string

	// Logger receives request logs. Default: slog.Default().
	Logger *slog.Logger
}

// Server is the inspection HTTP service.
type Server struct {
	addr     string
	limits   protocol.Limits
	codecs   map[protocol.Role]protocol.Codec
	registry *prometheus.Registry
	logger   *slog.Logger
	router   chi.Router
}

// New creates a Server with its own metrics registry.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	namespace := opts.MetricsNamespace
	if namespace == "" {
		namespace = "ocypode"
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(middleware.WithRegistry(registry), middleware.WithNamespace(namespace))

	observe := []middleware.Middleware{
		metrics.Middleware(),
		middleware.OpenTelemetry(middleware.WithTracerName(opts.TracerName)),
	}
	limit := protocol.WithLimits(opts.Limits)

	s := &Server{
		addr:   opts.Addr,
		limits: opts.Limits,
		codecs: map[protocol.Role]protocol.Codec{
			protocol.RoleServer: middleware.Chain(protocol.NewServerCodec(limit), observe...),
			protocol.RoleClient: middleware.Chain(protocol.NewClientCodec(limit), observe...),
		},
		registry: registry,
		logger:   logger.With("component", "inspect"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/decode", s.handleDecode)
		r.Get("/topics/{kind}", s.handleTopic)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Registry returns the server's metrics registry.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// maxBody is the largest request body accepted by /v1/decode: a maximal
// frame, or its hex encoding plus whitespace. Unlimited codecs fall back to
// the configured default frame size.
func (s *Server) maxBody() int64 {
	frameMax := int64(config.DefaultMaxFrameSize)
	if s.limits.MaxFrameSize != 0 {
		frameMax = int64(s.limits.MaxFrameSize)
	}
	return 2*(frameMax+protocol.MaxFixedHeaderLen) + 1024
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	roleName := r.URL.Query().Get("role")
	if roleName == "" {
		roleName = protocol.RoleServer.String()
	}
	role, err := protocol.ParseRole(roleName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody()))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
		return
	}

	frame, err := frameFromBody(r.Header.Get("Content-Type"), body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	m, err := middleware.DecodeContext(r.Context(), s.codecs[role], frame)
	if err != nil {
		s.logger.Debug("decode failed", "role", role, "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: protocol.ErrorKind(err)})
		return
	}
	writeJSON(w, http.StatusOK, Describe(m))
}

// frameFromBody returns the raw frame of a request body. text/plain bodies
// carry the frame as hex, whitespace ignored.
func frameFromBody(contentType string, body []byte) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType != "text/plain" {
		return body, nil
	}
	return DecodeHex(string(body))
}

// DecodeHex decodes a hex string, ignoring whitespace.
func DecodeHex(s string) ([]byte, error) {
	cleaned := strings.Join(strings.Fields(s), "")
	frame, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("inspect: invalid hex: %w", err)
	}
	return frame, nil
}

func (s *Server) handleTopic(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")

	switch kind := chi.URLParam(r, "kind"); kind {
	case "topic":
		t, err := topic.New(value)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, DescribeTopic(t))
	case "filter":
		f, err := topic.NewFilter(value)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, DescribeFilter(f))
	default:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown topic kind %q", kind)})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
