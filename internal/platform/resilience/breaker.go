package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// Breaker stops calls to a failing dependency for a cooldown, then lets a few probes through.
type Breaker struct {
	name    string
	enabled bool

	threshold int
	cooldown  time.Duration
	probes    int

	mu        sync.Mutex
	state     State
	failures  int
	openedAt  time.Time
	inFlight  int
	successes int

	now      func() time.Time
	onChange func(name string, from, to State)
}

func NewBreaker(name string, cfg BreakerConfig) *Breaker {
	cfg = cfg.Normalize()
	return &Breaker{
		name:      name,
		enabled:   cfg.Enabled,
		threshold: cfg.FailureThreshold,
		cooldown:  cfg.OpenTimeout,
		probes:    cfg.HalfOpenMaxReq,
		state:     StateClosed,
		now:       time.Now,
	}
}

func (b *Breaker) Name() string {
	return b.name
}

// OnStateChange registers a hook invoked under the breaker lock on every transition.
func (b *Breaker) OnStateChange(fn func(name string, from, to State)) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Do runs fn when the breaker admits the call and records its outcome.
// A cancelled or expired caller context is not held against the dependency.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if !b.enabled {
		return fn(ctx)
	}
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn(ctx)
	switch {
	case err == nil:
		b.Success()
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		b.release()
	default:
		b.Failure()
	}
	return err
}

func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cooldown {
			return ErrCircuitOpen
		}
		b.transition(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.inFlight >= b.probes {
			return ErrCircuitOpen
		}
		b.inFlight++
	}

	return nil
}

func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.dropInFlight()
		b.successes++
		if b.successes >= b.probes && b.inFlight == 0 {
			b.transition(StateClosed)
		}
	}
}

func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.threshold {
			b.transition(StateOpen)
		}
	case StateHalfOpen:
		b.dropInFlight()
		b.transition(StateOpen)
	case StateOpen:
		b.openedAt = b.now()
	}
}

// State reports the effective state; an open breaker past its cooldown reads as half open.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cooldown {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen {
		b.dropInFlight()
	}
}

func (b *Breaker) dropInFlight() {
	if b.inFlight > 0 {
		b.inFlight--
	}
}

func (b *Breaker) transition(to State) {
	from := b.state
	b.state = to
	b.failures = 0
	b.inFlight = 0
	b.successes = 0
	switch to {
	case StateOpen:
		b.openedAt = b.now()
	case StateClosed:
		b.openedAt = time.Time{}
	}
	if b.onChange != nil && from != to {
		b.onChange(b.name, from, to)
	}
}
