package observability

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mbarese/transfer-sim/internal/config"
	"github.com/mbarese/transfer-sim/internal/platform/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const betterStackQueueSize = 1024

// InitBetterStackLogger returns a logger that writes JSON to stdout and,
// when enabled, ships records at or above BetterStackMinLevel to Better
// Stack from a background worker. The returned flush drains the ship queue.
func InitBetterStackLogger(cfg config.Config, baseLogger *logging.Logger) (*logging.Logger, func(context.Context) error, error) {
	if baseLogger == nil {
		baseLogger = logging.NewJSON(cfg.LogLevel)
	}

	if !cfg.BetterStackEnabled {
		baseLogger.Info("betterstack log shipping disabled")
		return baseLogger, func(context.Context) error { return nil }, nil
	}

	endpoint := betterStackIngestURL(cfg.BetterStackEndpoint)
	if endpoint == "" {
		return nil, nil, fmt.Errorf("betterstack: endpoint required")
	}

	shipper := newLogShipper(endpoint, strings.TrimSpace(cfg.BetterStackToken), cfg.BetterStackTimeout)

	enc := betterStackEncoderConfig()
	tee := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stdout), cfg.LogLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(shipper), cfg.BetterStackMinLevel),
	)

	logger := logging.FromZap(zap.New(tee, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
	logger.Info("betterstack enabled",
		"endpoint", endpoint,
		"min_level", cfg.BetterStackMinLevel.String(),
		"service_name", cfg.ServiceName,
		"environment", cfg.AppEnv,
	)

	flush := func(ctx context.Context) error {
		if ctx == nil {
			ctx = context.Background()
		}
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
		}
		if err := shipper.Close(ctx); err != nil {
			return fmt.Errorf("flush betterstack shipper: %w", err)
		}
		if err := logger.Sync(); err != nil && !syncErrIsHarmless(err) {
			return err
		}
		return nil
	}

	return logger, flush, nil
}

func betterStackIngestURL(raw string) string {
	v := strings.TrimSpace(raw)
	switch {
	case v == "":
		return ""
	case strings.HasPrefix(v, "http://"), strings.HasPrefix(v, "https://"):
		return v
	default:
		return "https://" + v
	}
}

func betterStackEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// logShipper posts encoded log lines to an HTTP ingest endpoint from a
// single background worker so logging never blocks a request path.
type logShipper struct {
	endpoint string
	token    string
	client   *http.Client

	mu      sync.RWMutex
	sealed  bool
	pending chan []byte
	done    chan struct{}
	lost    atomic.Uint64
}

func newLogShipper(endpoint, token string, timeout time.Duration) *logShipper {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	s := &logShipper{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: timeout},
		pending:  make(chan []byte, betterStackQueueSize),
		done:     make(chan struct{}),
	}
	go s.drain()

	return s
}

// Write queues one encoded record. zap reuses p after Write returns, so the
// line is copied before it crosses the channel. A full queue drops the
// record instead of stalling the caller.
func (s *logShipper) Write(p []byte) (int, error) {
	line := bytes.TrimSpace(p)
	if len(line) == 0 {
		return len(p), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sealed {
		return len(p), nil
	}

	queued := make([]byte, len(line))
	copy(queued, line)

	select {
	case s.pending <- queued:
	default:
		if n := s.lost.Add(1); n == 1 || n%100 == 0 {
			fmt.Fprintf(os.Stderr, "betterstack queue full; dropped logs=%d\n", n)
		}
	}

	return len(p), nil
}

func (s *logShipper) drain() {
	defer close(s.done)
	for line := range s.pending {
		s.post(line)
	}
}

func (s *logShipper) post(line []byte) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.endpoint, bytes.NewReader(line))
	if err != nil {
		fmt.Fprintf(os.Stderr, "betterstack request: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "betterstack ship: %v\n", err)
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		fmt.Fprintf(os.Stderr, "betterstack ship status=%d\n", resp.StatusCode)
	}
}

// Close seals the queue and waits for the worker to flush it, observing ctx.
// Writes arriving after Close are discarded.
func (s *logShipper) Close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if !s.sealed {
		s.sealed = true
		close(s.pending)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func syncErrIsHarmless(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "bad file descriptor") || strings.Contains(msg, "invalid argument")
}
