package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/sigstream/metrics"
)

type app struct {
	configPath  string
	verbose     bool
	metricsAddr string
	flags       Config

	cfg    Config
	logger *slog.Logger
	// always set by setup, demos instrument unconditionally
	metrics *metrics.Collector
	server  *http.Server
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg := DefaultConfig()
	if a.configPath != "" {
		loaded, err := LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	a.cfg = cfg.merge(a.flags)
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	if a.cfg.Seed == 0 {
		a.cfg.Seed = time.Now().UnixNano()
	}

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	registry := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	a.metrics = collector

	if a.metricsAddr != "" {
		a.server = &http.Server{
			Addr:              a.metricsAddr,
			Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server stopped", "addr", a.metricsAddr, "error", err)
			}
		}()
		a.logger.Info("serving metrics", "addr", a.metricsAddr)
	}

	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	return a.server.Shutdown(ctx)
}

func (a *app) rand() *rand.Rand {
	return rand.New(rand.NewPCG(uint64(a.cfg.Seed), 0))
}

// syncWriter serializes lines written from ticker and timer goroutines.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *syncWriter) printf(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()

	fmt.Fprintf(w.w, format+"\n", args...)
}
