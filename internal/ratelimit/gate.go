package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultMaxConcurrent  = 3
	defaultMinDelay       = 100 * time.Millisecond
	defaultCooldownDelay  = 2 * time.Second
	defaultCooldownWindow = 10 * time.Second
)

// Params configures a Gate. Zero-valued fields fall back to defaults.
type Params struct {
	MaxConcurrent  int
	MinDelay       time.Duration
	CooldownDelay  time.Duration
	CooldownWindow time.Duration
}

// Gate bounds concurrent requests to one provider and spaces them out,
// slowing down further while the provider is cooling down after throttling.
// Safe for use from multiple goroutines.
type Gate struct {
	sem            chan struct{}
	minDelay       time.Duration
	cooldownDelay  time.Duration
	cooldownWindow time.Duration

	mu          sync.Mutex
	nextAllowed time.Time

	lastThrottled atomic.Int64 // unix nanos of the last rate-limit signal
}

// NewGate constructs a gate with the given parameters.
func NewGate(params Params) *Gate {
	maxConcurrent := params.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	minDelay := params.MinDelay
	if minDelay <= 0 {
		minDelay = defaultMinDelay
	}
	cooldownDelay := params.CooldownDelay
	if cooldownDelay <= 0 {
		cooldownDelay = defaultCooldownDelay
	}
	cooldownWindow := params.CooldownWindow
	if cooldownWindow <= 0 {
		cooldownWindow = defaultCooldownWindow
	}
	return &Gate{
		sem:            make(chan struct{}, maxConcurrent),
		minDelay:       minDelay,
		cooldownDelay:  cooldownDelay,
		cooldownWindow: cooldownWindow,
	}
}

// Acquire blocks until a request slot is available and the inter-request
// spacing has elapsed, or the context is done. Callers must Release the slot
// when the request completes.
func (g *Gate) Acquire(ctx context.Context) error {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := g.waitTurn(ctx); err != nil {
		<-g.sem
		return err
	}
	return nil
}

// Release frees a slot taken by Acquire.
func (g *Gate) Release() {
	select {
	case <-g.sem:
	default:
	}
}

// Do runs fn under the gate, reporting throttling back into the cool-down
// state when fn returns a rate-limit error as determined by isRateLimit.
func (g *Gate) Do(ctx context.Context, fn func(context.Context) error, isRateLimit func(error) bool) error {
	if err := g.Acquire(ctx); err != nil {
		return err
	}
	defer g.Release()

	err := fn(ctx)
	if err != nil && isRateLimit != nil && isRateLimit(err) {
		g.ReportThrottled()
	}
	return err
}

// ReportThrottled records that the provider signaled rate limiting; the gate
// stays in its cool-down state for the configured window.
func (g *Gate) ReportThrottled() {
	g.lastThrottled.Store(time.Now().UnixNano())
}

// CoolingDown reports whether the gate is still inside the cool-down window
// following the last throttle signal.
func (g *Gate) CoolingDown() bool {
	last := g.lastThrottled.Load()
	if last == 0 {
		return false
	}
	return time.Since(time.Unix(0, last)) < g.cooldownWindow
}

// Reset clears throttle state and request spacing (used in tests).
func (g *Gate) Reset() {
	g.lastThrottled.Store(0)
	g.mu.Lock()
	g.nextAllowed = time.Time{}
	g.mu.Unlock()
}

// waitTurn enforces the baseline spacing between requests plus the extra
// cool-down delay while throttled. Each caller claims its slot in line under
// the lock, then sleeps outside it.
func (g *Gate) waitTurn(ctx context.Context) error {
	delay := g.minDelay
	if g.CoolingDown() {
		delay += g.cooldownDelay
	}

	g.mu.Lock()
	now := time.Now()
	turn := g.nextAllowed
	if turn.Before(now) {
		turn = now
	}
	g.nextAllowed = turn.Add(delay)
	g.mu.Unlock()

	wait := time.Until(turn)
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
