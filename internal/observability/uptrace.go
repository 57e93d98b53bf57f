package observability

import (
	"context"
	"strings"

	"github.com/mbarese/transfer-sim/internal/config"
	"github.com/mbarese/transfer-sim/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// InitUptrace wires the global OpenTelemetry providers to Uptrace and, when
// log forwarding is on, installs the logging mirror. The returned shutdown
// flushes pending telemetry.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	disable := func(reason string) (func(context.Context) error, error) {
		logging.SetMirror(nil)
		logger.Info("uptrace disabled", "reason", reason)
		return func(context.Context) error { return nil }, nil
	}

	if !cfg.UptraceEnabled {
		return disable("UPTRACE_ENABLED=false")
	}
	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		return disable("UPTRACE_DSN empty")
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)

	if cfg.UptraceLogsEnabled {
		logging.SetMirror(newUptraceLogMirror(cfg.ServiceVersion))
	} else {
		logging.SetMirror(nil)
	}

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.UptraceLogsEnabled,
	)

	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		return uptrace.Shutdown(ctx)
	}, nil
}
