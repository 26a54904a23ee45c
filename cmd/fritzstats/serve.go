package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fritzstats/fritzstats/internal/collector"
	"github.com/fritzstats/fritzstats/internal/config"
	"github.com/fritzstats/fritzstats/internal/exporter"
)

var (
	serveConfigPath string
	serveListen     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Prometheus exporter",
	Long: "serve exposes the DSL statistics on /metrics. Every scrape polls the device once.\n" +
		"The config file is watched; device and logging changes apply to the next scrape.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(serveConfigPath)
		if err != nil {
			return err
		}
		if err := setupLogging(cfg.Logging); err != nil {
			return err
		}
		listen := cfg.Serve.Listen
		if serveListen != "" {
			listen = serveListen
		}

		col, err := collector.New(cfg.Device)
		if err != nil {
			return err
		}
		handler := exporter.NewHandler(col)

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		reloads := &reloader{
			handler:    handler,
			setLogging: setupLogging,
			bound:      listen,
			lastListen: cfg.Serve.Listen,
		}
		go func() {
			if err := config.Watch(ctx, serveConfigPath, reloads.apply); err != nil {
				slog.Error("serve: config watcher stopped", "err", err)
			}
		}()

		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte("fritzstats exporter: metrics at /metrics\n"))
		})

		srv := &http.Server{
			Addr:              listen,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		errc := make(chan error, 1)
		go func() {
			slog.Info("serve: listening", "addr", listen, "host", cfg.Device.Host)
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		slog.Info("serve: shutting down")
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		return srv.Shutdown(shutdownCtx)
	},
}

// reloader applies reloaded configs to a running exporter. apply is only
// called from the watch goroutine.
type reloader struct {
	handler    *exporter.Handler
	setLogging func(config.Logging) error
	// bound is the address the server listens on.
	bound string
	// lastListen is serve.listen from the last config seen.
	lastListen string
}

func (r *reloader) apply(updated *config.Config) {
	if err := r.setLogging(updated.Logging); err != nil {
		slog.Error("serve: logging not reloaded", "err", err)
	}
	if updated.Serve.Listen != r.lastListen {
		slog.Warn("serve: listen address changes need a restart",
			"listen", updated.Serve.Listen, "bound", r.bound)
		r.lastListen = updated.Serve.Listen
	}

	c, err := collector.New(updated.Device)
	if err != nil {
		slog.Error("serve: device config not reloaded", "err", err)
		return
	}
	r.handler.Store(c)
	slog.Info("serve: device config reloaded", "host", c.Host())
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "fritzstats.yaml", "Path to the YAML config file")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address, overrides serve.listen")
}
