package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests")
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// MaxRequests is the number of trial calls allowed while half-open
	MaxRequests uint32
	// Interval clears the closed-state counts periodically; zero keeps them
	Interval time.Duration
	// Cooldown is how long the breaker stays open before probing again
	Cooldown time.Duration
	// ReadyToTrip decides, after a failure, whether the breaker opens
	ReadyToTrip func(counts Counts) bool
	// OnStateChange is called with the lock released after every transition
	OnStateChange func(name string, from State, to State)
}

// DefaultSettings trips after five consecutive failures and probes again
// after thirty seconds.
func DefaultSettings() Settings {
	return Settings{
		MaxRequests: 1,
		Cooldown:    30 * time.Second,
		ReadyToTrip: ConsecutiveFailures(5),
	}
}

// ConsecutiveFailures returns a ReadyToTrip that opens after n failures in a row
func ConsecutiveFailures(n uint32) func(Counts) bool {
	return func(c Counts) bool {
		return c.ConsecutiveFailures >= n
	}
}

// Counts holds the statistics of the current generation
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

type transition struct {
	from, to State
}

// Breaker stops calling a failing dependency until it has had time to recover
type Breaker struct {
	name     string
	settings Settings

	mu         sync.Mutex
	state      State
	generation uint64
	counts     Counts
	expiry     time.Time
}

// New creates a circuit breaker, filling zero settings from DefaultSettings
func New(name string, settings Settings) *Breaker {
	defaults := DefaultSettings()
	if settings.MaxRequests == 0 {
		settings.MaxRequests = defaults.MaxRequests
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = defaults.Cooldown
	}
	if settings.ReadyToTrip == nil {
		settings.ReadyToTrip = defaults.ReadyToTrip
	}

	b := &Breaker{
		name:     name,
		settings: settings,
		state:    StateClosed,
	}
	if settings.Interval > 0 {
		b.expiry = time.Now().Add(settings.Interval)
	}
	return b
}

// Name returns the name of the circuit breaker
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state, advancing open to half-open once the
// cooldown has elapsed
func (b *Breaker) State() State {
	b.mu.Lock()
	state, _, changed := b.currentState(time.Now())
	b.mu.Unlock()

	b.notify(changed)
	return state
}

// Counts returns a copy of the current generation's counts
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts
}

// Execute runs fn if the breaker admits it. An error caused by ctx being
// cancelled counts as neither success nor failure.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	generation, err := b.beforeRequest()
	if err != nil {
		return err
	}

	defer func() {
		if e := recover(); e != nil {
			b.afterRequest(generation, outcomeFailure)
			panic(e)
		}
	}()

	err = fn(ctx)
	switch {
	case err == nil:
		b.afterRequest(generation, outcomeSuccess)
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		b.afterRequest(generation, outcomeAbandoned)
	default:
		b.afterRequest(generation, outcomeFailure)
	}
	return err
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailure
	outcomeAbandoned
)

func (b *Breaker) beforeRequest() (uint64, error) {
	b.mu.Lock()
	state, generation, changed := b.currentState(time.Now())

	var err error
	switch {
	case state == StateOpen:
		err = ErrCircuitOpen
	case state == StateHalfOpen && b.counts.Requests >= b.settings.MaxRequests:
		err = ErrTooManyRequests
	default:
		b.counts.Requests++
	}
	b.mu.Unlock()

	b.notify(changed)
	return generation, err
}

func (b *Breaker) afterRequest(before uint64, result outcome) {
	b.mu.Lock()
	now := time.Now()
	state, generation, changed := b.currentState(now)

	if generation == before {
		switch result {
		case outcomeSuccess:
			changed = append(changed, b.onSuccess(state, now)...)
		case outcomeFailure:
			changed = append(changed, b.onFailure(state, now)...)
		case outcomeAbandoned:
			// a half-open probe that was abandoned frees its slot
			if state == StateHalfOpen && b.counts.Requests > 0 {
				b.counts.Requests--
			}
		}
	}
	b.mu.Unlock()

	b.notify(changed)
}

func (b *Breaker) onSuccess(state State, now time.Time) []transition {
	b.counts.TotalSuccesses++
	b.counts.ConsecutiveSuccesses++
	b.counts.ConsecutiveFailures = 0

	if state == StateHalfOpen && b.counts.ConsecutiveSuccesses >= b.settings.MaxRequests {
		return b.setState(StateClosed, now)
	}
	return nil
}

func (b *Breaker) onFailure(state State, now time.Time) []transition {
	switch state {
	case StateClosed:
		b.counts.TotalFailures++
		b.counts.ConsecutiveFailures++
		b.counts.ConsecutiveSuccesses = 0
		if b.settings.ReadyToTrip(b.counts) {
			return b.setState(StateOpen, now)
		}
	case StateHalfOpen:
		return b.setState(StateOpen, now)
	}
	return nil
}

// currentState must be called with mu held
func (b *Breaker) currentState(now time.Time) (State, uint64, []transition) {
	var changed []transition
	switch b.state {
	case StateClosed:
		if !b.expiry.IsZero() && b.expiry.Before(now) {
			b.newGeneration(now)
		}
	case StateOpen:
		if b.expiry.Before(now) {
			changed = b.setState(StateHalfOpen, now)
		}
	}
	return b.state, b.generation, changed
}

// setState must be called with mu held
func (b *Breaker) setState(state State, now time.Time) []transition {
	if b.state == state {
		return nil
	}

	prev := b.state
	b.state = state
	b.newGeneration(now)

	return []transition{{from: prev, to: state}}
}

func (b *Breaker) newGeneration(now time.Time) {
	b.generation++
	b.counts = Counts{}

	switch b.state {
	case StateClosed:
		if b.settings.Interval > 0 {
			b.expiry = now.Add(b.settings.Interval)
		} else {
			b.expiry = time.Time{}
		}
	case StateOpen:
		b.expiry = now.Add(b.settings.Cooldown)
	default:
		b.expiry = time.Time{}
	}
}

func (b *Breaker) notify(changed []transition) {
	if b.settings.OnStateChange == nil {
		return
	}
	for _, t := range changed {
		b.settings.OnStateChange(b.name, t.from, t.to)
	}
}
