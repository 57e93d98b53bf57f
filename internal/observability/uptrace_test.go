package observability

import (
	"context"
	"testing"

	"github.com/mbarese/transfer-sim/internal/config"
	"github.com/mbarese/transfer-sim/internal/platform/logging"
)

func TestInitUptrace_DisabledPaths(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
	}{
		{
			name: "toggled off",
			cfg: config.Config{
				UptraceEnabled: false,
				ServiceName:    "transfer-sim-api",
				ServiceVersion: "dev",
				AppEnv:         config.EnvDev,
			},
		},
		{
			name: "enabled but dsn blank",
			cfg: config.Config{
				UptraceEnabled: true,
				UptraceDSN:     "   ",
				ServiceName:    "transfer-sim-api",
				ServiceVersion: "dev",
				AppEnv:         config.EnvDev,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shutdown, err := InitUptrace(tc.cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("InitUptrace: %v", err)
			}
			if shutdown == nil {
				t.Fatalf("InitUptrace returned nil shutdown")
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown: %v", err)
			}
		})
	}
}
