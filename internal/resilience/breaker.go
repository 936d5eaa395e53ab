// Package resilience guards calls to the AI provider with a circuit breaker.
package resilience

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrCircuitOpen is returned without calling the guarded function while the
// breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the operating mode of a Breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// BreakerConfig tunes a Breaker. Zero fields fall back to defaults.
type BreakerConfig struct {
	Name string
	// MaxFailures consecutive failures open the breaker. Default 5.
	MaxFailures int
	// ResetTimeout is how long the breaker stays open before probing. Default 30s.
	ResetTimeout time.Duration
	// HalfOpenMax successful probes close the breaker again. Default 1.
	HalfOpenMax int
	// OnStateChange is called outside the lock after every transition.
	OnStateChange func(name string, from, to State)
}

// Breaker is a closed / open / half-open circuit breaker. Caller
// cancellations never count as failures.
type Breaker struct {
	name         string
	maxFailures  int
	resetTimeout time.Duration
	halfOpenMax  int
	onChange     func(string, State, State)
	log          *slog.Logger
	now          func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probes   int
	probeOK  int
}

// NewBreaker creates a Breaker in the closed state.
func NewBreaker(log *slog.Logger, cfg BreakerConfig) *Breaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = 30 * time.Second
	}
	if cfg.HalfOpenMax <= 0 {
		cfg.HalfOpenMax = 1
	}
	return &Breaker{
		name:         cfg.Name,
		maxFailures:  cfg.MaxFailures,
		resetTimeout: cfg.ResetTimeout,
		halfOpenMax:  cfg.HalfOpenMax,
		onChange:     cfg.OnStateChange,
		log:          log.With("breaker", cfg.Name),
		now:          time.Now,
	}
}

// Execute runs fn unless the breaker is open.
func (b *Breaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	probe, err := b.admit()
	if err != nil {
		return err
	}

	err = fn(ctx)
	if err != nil && (ctx.Err() != nil || errors.Is(err, context.Canceled)) {
		b.release(probe)
		return err
	}
	b.record(probe, err == nil)
	return err
}

// State returns the current state. An open breaker whose timeout elapsed
// reports half-open; the transition itself happens on the next call.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.resetTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) admit() (probe bool, err error) {
	b.mu.Lock()
	from := b.state
	switch b.state {
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.resetTimeout {
			b.mu.Unlock()
			return false, ErrCircuitOpen
		}
		b.state = StateHalfOpen
		b.probes = 0
		b.probeOK = 0
	case StateHalfOpen:
		if b.probes >= b.halfOpenMax {
			b.mu.Unlock()
			return false, ErrCircuitOpen
		}
	}
	probe = b.state == StateHalfOpen
	if probe {
		b.probes++
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
	return probe, nil
}

// release returns a probe slot without judging the provider.
func (b *Breaker) release(probe bool) {
	if !probe {
		return
	}
	b.mu.Lock()
	if b.state == StateHalfOpen && b.probes > 0 {
		b.probes--
	}
	b.mu.Unlock()
}

func (b *Breaker) record(probe, ok bool) {
	b.mu.Lock()
	from := b.state
	switch {
	case ok && probe:
		b.probeOK++
		if b.probeOK >= b.halfOpenMax {
			b.state = StateClosed
			b.failures = 0
		}
	case ok:
		b.failures = 0
	case probe:
		b.state = StateOpen
		b.openedAt = b.now()
	default:
		b.failures++
		if b.failures >= b.maxFailures && b.state == StateClosed {
			b.state = StateOpen
			b.openedAt = b.now()
		}
	}
	to, failures := b.state, b.failures
	b.mu.Unlock()

	if from != to {
		b.log.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
			slog.Int("consecutive_failures", failures))
	}
	b.notify(from, to)
}

func (b *Breaker) notify(from, to State) {
	if from != to && b.onChange != nil {
		b.onChange(b.name, from, to)
	}
}
