package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned by Allow while the breaker refuses traffic.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitState names the observable phases of a breaker.
type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

type breakerPhase int

const (
	phaseClosed breakerPhase = iota
	phaseOpen
	phaseHalfOpen
)

// CircuitBreaker guards an outbound dependency with the usual
// closed/open/half-open cycle. Build one with NewCircuitBreaker; the zero
// value has no clock and will panic.
type CircuitBreaker struct {
	maxFailures int
	cooldown    time.Duration
	probeBudget int

	mu         sync.Mutex
	phase      breakerPhase
	failures   int
	openedAt   time.Time
	probesOut  int
	probesGood int
	clock      func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	if openTimeout <= 0 {
		openTimeout = 15 * time.Second
	}
	if halfOpenMaxReq < 1 {
		halfOpenMaxReq = 1
	}

	return &CircuitBreaker{
		maxFailures: failureThreshold,
		cooldown:    openTimeout,
		probeBudget: halfOpenMaxReq,
		clock:       time.Now,
	}
}

// Allow reports whether a call may proceed. Once the cooldown after a trip
// has elapsed, at most halfOpenMaxReq probe calls run concurrently; further
// callers are refused until those probes settle.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.phase {
	case phaseOpen:
		if b.clock().Sub(b.openedAt) < b.cooldown {
			return ErrCircuitOpen
		}
		b.beginProbation()
		fallthrough
	case phaseHalfOpen:
		if b.probesOut >= b.probeBudget {
			return ErrCircuitOpen
		}
		b.probesOut++
	}

	return nil
}

// RecordSuccess settles one call as successful. Enough successful probes
// with none left in flight close the breaker again.
func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.phase {
	case phaseClosed:
		b.failures = 0
	case phaseHalfOpen:
		if b.probesOut > 0 {
			b.probesOut--
		}
		b.probesGood++
		if b.probesGood >= b.probeBudget && b.probesOut == 0 {
			b.reset()
		}
	}
}

// RecordFailure settles one call as failed. The maxFailures-th consecutive
// failure while closed trips the breaker; any failed probe re-trips it and
// restarts the cooldown.
func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.phase {
	case phaseClosed:
		b.failures++
		if b.failures >= b.maxFailures {
			b.trip()
		}
	case phaseHalfOpen:
		if b.probesOut > 0 {
			b.probesOut--
		}
		b.trip()
	case phaseOpen:
		b.openedAt = b.clock()
	}
}

// State reports the phase an Allow call would observe right now.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.phase {
	case phaseOpen:
		if b.clock().Sub(b.openedAt) >= b.cooldown {
			return CircuitStateHalfOpen
		}
		return CircuitStateOpen
	case phaseHalfOpen:
		return CircuitStateHalfOpen
	default:
		return CircuitStateClosed
	}
}

func (b *CircuitBreaker) trip() {
	b.phase = phaseOpen
	b.openedAt = b.clock()
	b.probesOut = 0
	b.probesGood = 0
}

func (b *CircuitBreaker) beginProbation() {
	b.phase = phaseHalfOpen
	b.probesOut = 0
	b.probesGood = 0
}

func (b *CircuitBreaker) reset() {
	b.phase = phaseClosed
	b.failures = 0
	b.probesOut = 0
	b.probesGood = 0
	b.openedAt = time.Time{}
}
