package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestDropMirroredRecord(t *testing.T) {
	t.Parallel()

	if !dropMirroredRecord("http request", []any{"path", "/healthz"}) {
		t.Fatal("liveness access log must be dropped")
	}
	if dropMirroredRecord("http request", []any{"path", "/v1/players"}) {
		t.Fatal("player traffic must be mirrored")
	}
	if dropMirroredRecord("heartbeat request", []any{"path", "/healthz"}) {
		t.Fatal("only access log events are filtered")
	}
}

func TestLogArgsToAttributes(t *testing.T) {
	t.Parallel()

	attrs := logArgsToAttributes([]any{"season", "2025-26", "playerCount", 12, "payload"})
	if len(attrs) != 3 {
		t.Fatalf("got %d attributes, want 3", len(attrs))
	}
	if attrs[0].Key != "season" || attrs[0].Value.AsString() != "2025-26" {
		t.Fatalf("season attribute = %v", attrs[0])
	}
	if attrs[1].Key != "playerCount" || attrs[1].Value.AsInt64() != 12 {
		t.Fatalf("playerCount attribute = %v", attrs[1])
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("dangling key attribute = %v", attrs[2])
	}
}

func TestLogValue_ScalarsAndContainers(t *testing.T) {
	t.Parallel()

	if v := logValue(90*time.Minute, 0); v.AsString() != "1h30m0s" {
		t.Fatalf("duration value = %q", v.AsString())
	}
	if v := logValue(errors.New("player not found"), 0); v.AsString() != "player not found" {
		t.Fatalf("error value = %q", v.AsString())
	}

	m := logValue(map[string]any{"shots": 11, "win": true}, 0)
	if m.Kind() != otellog.KindMap {
		t.Fatalf("map kind = %s", m.Kind())
	}
	if items := m.AsMap(); len(items) != 2 {
		t.Fatalf("map items = %d, want 2", len(items))
	}

	s := logValue([]string{"EPL", "La Liga"}, 0)
	if s.Kind() != otellog.KindSlice {
		t.Fatalf("slice kind = %s", s.Kind())
	}
}

func TestSeverityForLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level zapcore.Level
		want  otellog.Severity
	}{
		{zapcore.DebugLevel, otellog.SeverityDebug},
		{zapcore.InfoLevel, otellog.SeverityInfo},
		{zapcore.WarnLevel, otellog.SeverityWarn},
		{zapcore.ErrorLevel, otellog.SeverityError},
		{zapcore.PanicLevel, otellog.SeverityFatal},
	}
	for _, tc := range cases {
		if got := severityForLevel(tc.level); got != tc.want {
			t.Fatalf("severityForLevel(%s) = %s, want %s", tc.level, got, tc.want)
		}
	}
}
