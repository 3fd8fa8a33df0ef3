// Package resilience provides reliability patterns for external service calls.
package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned when the circuit breaker is open and rejecting calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type state int

const (
	stateClosed state = iota
	stateOpen
	stateHalfOpen
)

// Breaker implements a circuit breaker for protecting a backing source.
// It tracks consecutive failures and opens the circuit when a threshold is
// reached. After the open timeout a single probe call is admitted; its
// result decides whether the circuit closes again or reopens.
type Breaker struct {
	mu          sync.Mutex
	state       state
	failures    int
	maxFailures int
	timeout     time.Duration
	openedAt    time.Time
	probing     bool
	onOpen      func()
	now         func() time.Time // for testing
}

// NewBreaker creates a circuit breaker that opens after maxFailures
// consecutive failures and stays open for the given timeout before admitting
// a probe.
func NewBreaker(maxFailures int, timeout time.Duration) *Breaker {
	return &Breaker{
		maxFailures: maxFailures,
		timeout:     timeout,
		now:         time.Now,
	}
}

// SetOnOpen registers a hook invoked on every closed-or-probe to open
// transition. Optional.
func (b *Breaker) SetOnOpen(fn func()) {
	b.onOpen = fn
}

// Execute runs fn if the circuit admits the call, and returns ErrCircuitOpen
// otherwise. While half-open, only one call at a time may probe.
func (b *Breaker) Execute(fn func() error) error {
	if !b.allowRequest() {
		return ErrCircuitOpen
	}

	err := fn()

	b.mu.Lock()
	var opened bool
	if err != nil {
		opened = b.onFailure()
	} else {
		b.onSuccess()
	}
	b.mu.Unlock()

	if opened && b.onOpen != nil {
		b.onOpen()
	}
	return err
}

func (b *Breaker) allowRequest() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateClosed:
		return true
	case stateOpen:
		if b.now().Sub(b.openedAt) >= b.timeout {
			b.state = stateHalfOpen
			b.probing = true
			return true
		}
		return false
	case stateHalfOpen:
		if b.probing {
			return false
		}
		b.probing = true
		return true
	}
	return false
}

// onFailure must be called with b.mu held. Reports whether the circuit
// transitioned to open.
func (b *Breaker) onFailure() bool {
	b.probing = false
	b.failures++
	if b.state == stateHalfOpen || b.failures >= b.maxFailures {
		wasOpen := b.state == stateOpen
		b.state = stateOpen
		b.openedAt = b.now()
		return !wasOpen
	}
	return false
}

// onSuccess must be called with b.mu held.
func (b *Breaker) onSuccess() {
	b.probing = false
	b.failures = 0
	b.state = stateClosed
}
