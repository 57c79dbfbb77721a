package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/capacity"
	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/fhd"
	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/pipeline"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/config"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/logger"
)

func main() {
	var httpAddr string
	var configPath string
	var logLevel string
	var precompute bool

	flag.StringVar(&httpAddr, "http-addr", ":8080", "HTTP listen address")
	flag.StringVar(&configPath, "config", "", "path to YAML config (defaults apply when empty)")
	flag.StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flag.BoolVar(&precompute, "precompute", false, "run the pipeline at startup instead of on first request")
	flag.Parse()

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			logger.Error("failed to load config", "path", configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger.SetDefault(logger.NewText(cfg.LogLevel, os.Stdout))

	if err := cfg.EnsureDirs(); err != nil {
		logger.Error("failed to bootstrap directories", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	store := fhd.NewSnapshotStore(pipeline.New(cfg, nil, logger.Default))
	estimator := capacity.NewEstimator(cfg)

	if precompute {
		if _, err := store.Latest(ctx); err != nil {
			logger.Error("startup pipeline run failed", "error", err)
			stop()
			os.Exit(1)
		}
	}

	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           fhd.NewHTTPServer(store, estimator).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", httpAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown requested")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
}
