package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/OCharnyshevich/blockgrid/internal/config"
	"github.com/OCharnyshevich/blockgrid/internal/engine"
	"github.com/OCharnyshevich/blockgrid/internal/metrics"
	"github.com/OCharnyshevich/blockgrid/pkg/block"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "blockgrid.yaml", "config file path")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.StringVar(&cfg.Generator, "generator", cfg.Generator, "overworld generator (overworld, flat)")
	flag.StringVar(&cfg.Dimension, "dimension", cfg.Dimension, "dimension active at startup")
	flag.IntVar(&cfg.RenderDistance, "render-distance", cfg.RenderDistance, "load radius in chunks")
	flag.IntVar(&cfg.MaxRebuilds, "max-rebuilds", cfg.MaxRebuilds, "mesh rebuilds per tick")
	flag.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "ticks per second")
	flag.Float64Var(&cfg.MaxFrameDelta, "max-frame-delta", cfg.MaxFrameDelta, "frame delta limit in seconds")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for edit journals")
	flag.StringVar(&cfg.Journal, "journal", cfg.Journal, "edit journal backend (memory, file, badger)")
	flag.BoolVar(&cfg.CompressEdits, "compress-edits", cfg.CompressEdits, "zstd-compress the file journal")
	flag.StringVar(&cfg.BlocksFile, "blocks", cfg.BlocksFile, "block definitions file, empty for built-in")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "metrics listen address, empty to disable")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	fromFile, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicit)

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))

	reg, err := loadRegistry(cfg.BlocksFile)
	if err != nil {
		log.Error("load blocks", "error", err)
		os.Exit(1)
	}
	log.Info("block registry loaded", "blocks", reg.Len())

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector())
	m := metrics.NewWorld("blockgrid", promReg)

	eng, err := engine.New(cfg, reg, log, m)
	if err != nil {
		log.Error("start engine", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metricsMux(promReg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("metrics listening", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server", "error", err)
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	if err := eng.Run(ctx); err != nil {
		log.Error("engine error", "error", err)
	}
	if err := eng.Close(); err != nil {
		log.Error("close engine", "error", err)
		os.Exit(1)
	}
}

func loadRegistry(path string) (*block.Registry, error) {
	if path == "" {
		return block.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return block.Load(f)
}

func metricsMux(g prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(g))
	return mux
}
