package heartbeat

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/mbarese/transfer-sim/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var errHeartbeatTransient = crerr.New("heartbeat transient failure")

type NotifierConfig struct {
	URL            string
	Service        string
	Environment    string
	Interval       time.Duration
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Notifier reports process liveness to an external uptime monitor.
type Notifier struct {
	client         *http.Client
	url            string
	service        string
	environment    string
	interval       time.Duration
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewNotifier(cfg NotifierConfig, logger *slog.Logger) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Notifier{
		client: &http.Client{
			Timeout: timeout,
		},
		url:            strings.TrimSpace(cfg.URL),
		service:        strings.TrimSpace(cfg.Service),
		environment:    strings.TrimSpace(cfg.Environment),
		interval:       interval,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type beatPayload struct {
	Service     string    `json:"service,omitempty"`
	Environment string    `json:"environment,omitempty"`
	Status      string    `json:"status"`
	SentAt      time.Time `json:"sentAt"`
}

// Run sends one beat immediately and then one per interval until ctx is
// canceled. Failures are logged and retried on the next tick.
func (n *Notifier) Run(ctx context.Context) {
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	if err := n.Ping(ctx); err != nil {
		n.logger.WarnContext(ctx, "heartbeat failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			n.logger.InfoContext(ctx, "heartbeat stopped", "reason", ctx.Err())
			return
		case <-ticker.C:
			if err := n.Ping(ctx); err != nil {
				n.logger.WarnContext(ctx, "heartbeat failed", "error", err)
			}
		}
	}
}

// Ping posts a single liveness report.
func (n *Notifier) Ping(ctx context.Context) error {
	if n.circuitEnabled {
		if err := n.breaker.Allow(); err != nil {
			n.logger.WarnContext(ctx, "heartbeat circuit breaker rejected request", "state", n.breaker.State())
			return fmt.Errorf("heartbeat target is temporarily unavailable: %w", err)
		}
	}

	beatURL, err := validateHTTPURL(n.url)
	if err != nil {
		return crerr.Wrap(err, "invalid HEARTBEAT_URL")
	}

	body, err := sonic.Marshal(beatPayload{
		Service:     n.service,
		Environment: n.environment,
		Status:      "ok",
		SentAt:      time.Now().UTC(),
	})
	if err != nil {
		return crerr.Wrap(err, "marshal heartbeat payload")
	}
	curlPreview := buildHeartbeatCurlPreview(beatURL, string(body))

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("heartbeat.url", beatURL),
			attribute.String("heartbeat.request_curl_preview", curlPreview),
		)
	}
	n.logger.DebugContext(ctx, "heartbeat request", "url", beatURL, "curl_preview", curlPreview)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, beatURL, strings.NewReader(string(body)))
	if err != nil {
		return crerr.Wrap(err, "create heartbeat request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: post heartbeat url=%s: %v", errHeartbeatTransient, beatURL, err)
		n.recordCircuitResult(callErr)
		return callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if isHeartbeatRetryableStatus(resp.StatusCode) {
			callErr := fmt.Errorf(
				"%w: post heartbeat status=%d url=%s body=%s",
				errHeartbeatTransient,
				resp.StatusCode,
				beatURL,
				strings.TrimSpace(string(raw)),
			)
			n.recordCircuitResult(callErr)
			return callErr
		}

		callErr := fmt.Errorf(
			"post heartbeat status=%d url=%s body=%s",
			resp.StatusCode,
			beatURL,
			strings.TrimSpace(string(raw)),
		)
		n.recordCircuitResult(callErr)
		return callErr
	}

	n.recordCircuitResult(nil)
	return nil
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return candidate, nil
}

func buildHeartbeatCurlPreview(beatURL, body string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(beatURL))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func (n *Notifier) recordCircuitResult(err error) {
	if !n.circuitEnabled || n.breaker == nil {
		return
	}
	if err == nil {
		n.breaker.RecordSuccess()
		return
	}
	if isHeartbeatCircuitFailure(err) {
		n.breaker.RecordFailure()
		return
	}
	n.breaker.RecordSuccess()
}

func isHeartbeatCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errHeartbeatTransient)
}

func isHeartbeatRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
