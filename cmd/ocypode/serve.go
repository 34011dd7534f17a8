package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ShigekuniWork/ocypode/internal/inspect"
	"github.com/ShigekuniWork/ocypode/internal/logging"
	"github.com/spf13/cobra"
)

func serveCmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the inspection HTTP service",
		Long: `Run the inspection HTTP service.

Endpoints:
  POST /v1/decode?role=server|client   decode a frame (hex when text/plain)
  GET  /v1/topics/{topic|filter}?value= validate a topic or filter
  GET  /metrics                        Prometheus metrics
  GET  /healthz                        liveness

Examples:
  ocypode serve
  ocypode serve --addr :4280 --config ./ocypode.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Inspect.Addr = addr
			}

			logger := logging.Configure(logging.Config{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
			})

			srv := inspect.New(inspect.Options{
				Addr:             cfg.Inspect.Addr,
				Limits:           cfg.CodecLimits(),
				TracerName:       cfg.Inspect.TracerName,
				MetricsNamespace: cfg.Inspect.MetricsNamespace,
				Logger:           logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	return cmd
}
