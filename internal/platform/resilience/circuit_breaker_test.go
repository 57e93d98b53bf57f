package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold int, cooldown time.Duration, probes int) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(threshold, cooldown, probes)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b.clock = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	b, _ := newTestBreaker(3, 10*time.Second, 1)

	for i := 0; i < 2; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("closed breaker refused call %d: %v", i, err)
		}
		b.RecordFailure()
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("breaker tripped below threshold: %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("breaker did not trip at threshold: %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("open breaker allowed a call: %v", err)
	}
}

func TestCircuitBreaker_SuccessResetsFailureStreak(t *testing.T) {
	t.Parallel()

	b, _ := newTestBreaker(2, 10*time.Second, 1)

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()

	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("non-consecutive failures tripped the breaker: %s", state)
	}
}

func TestCircuitBreaker_ProbationClosesAfterSuccessfulProbes(t *testing.T) {
	t.Parallel()

	b, now := newTestBreaker(1, 5*time.Second, 2)

	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("breaker open, Allow returned %v", err)
	}

	*now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("cooldown elapsed but state is %s", state)
	}

	// Probe budget is two. Both probes are admitted, a third caller is not.
	if err := b.Allow(); err != nil {
		t.Fatalf("first probe refused: %v", err)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("second probe refused: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("probe budget exceeded, Allow returned %v", err)
	}

	b.RecordSuccess()
	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("probes succeeded but state is %s", state)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("closed breaker refused traffic: %v", err)
	}
}

func TestCircuitBreaker_FailedProbeRestartsCooldown(t *testing.T) {
	t.Parallel()

	b, now := newTestBreaker(1, 5*time.Second, 1)

	b.RecordFailure()
	*now = now.Add(6 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("probe refused: %v", err)
	}
	b.RecordFailure()

	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("failed probe left state %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("re-tripped breaker allowed a call: %v", err)
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("second probation refused: %v", err)
	}
	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("recovered probe left state %s", state)
	}
}

func TestNormalizeCircuitBreakerConfig_FillsDefaults(t *testing.T) {
	t.Parallel()

	got := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: false})
	def := DefaultCircuitBreakerConfig()

	if got.Enabled {
		t.Fatal("normalize must not flip Enabled")
	}
	if got.FailureThreshold != def.FailureThreshold {
		t.Fatalf("FailureThreshold = %d, want %d", got.FailureThreshold, def.FailureThreshold)
	}
	if got.OpenTimeout != def.OpenTimeout {
		t.Fatalf("OpenTimeout = %s, want %s", got.OpenTimeout, def.OpenTimeout)
	}
	if got.HalfOpenMaxReq != def.HalfOpenMaxReq {
		t.Fatalf("HalfOpenMaxReq = %d, want %d", got.HalfOpenMaxReq, def.HalfOpenMaxReq)
	}
}
