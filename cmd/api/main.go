package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbarese/transfer-sim/external/heartbeat"
	"github.com/mbarese/transfer-sim/internal/app"
	"github.com/mbarese/transfer-sim/internal/config"
	"github.com/mbarese/transfer-sim/internal/observability"
	"github.com/mbarese/transfer-sim/internal/platform/logging"
	"github.com/mbarese/transfer-sim/internal/platform/resilience"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	baseLogger := logging.NewJSON(cfg.LogLevel)
	appLogger, stopBetterStack, err := observability.InitBetterStackLogger(cfg, baseLogger)
	if err != nil {
		baseLogger.Error("init betterstack", "error", err)
		os.Exit(1)
	}
	logging.SetDefault(appLogger)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logging.SlogLevel(cfg.LogLevel),
	}))

	stopUptrace, err := observability.InitUptrace(cfg, appLogger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof server", "error", err)
		os.Exit(1)
	}

	srv, err := app.NewHTTPServer(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.HeartbeatEnabled {
		notifier := heartbeat.NewNotifier(heartbeat.NotifierConfig{
			URL:         cfg.HeartbeatURL,
			Service:     cfg.ServiceName,
			Environment: cfg.AppEnv,
			Interval:    cfg.HeartbeatInterval,
			Timeout:     cfg.HeartbeatTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.HeartbeatCircuitEnabled,
				FailureThreshold: cfg.HeartbeatCircuitFailureCount,
				OpenTimeout:      cfg.HeartbeatCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.HeartbeatCircuitHalfOpenMaxReq,
			},
		}, logger)
		go notifier.Run(ctx)
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
		logger.Error("stop pprof server", "error", err)
	}
	if err := stopPyroscope(); err != nil {
		logger.Error("stop pyroscope", "error", err)
	}
	if err := stopUptrace(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}
	if err := stopBetterStack(shutdownCtx); err != nil {
		logger.Error("shutdown betterstack", "error", err)
	}

	logger.Info("http server stopped")
}
