package limiter

import (
	"context"
	"sync"
	"time"
)

// Timer provides time for rate limiting and report generation.
type Timer interface {
	Now() time.Time
	Sleep(ctx context.Context, duration time.Duration) error
}

// Clock is the real-time Timer implementation.
type Clock struct{}

func NewClock() Clock {
	return Clock{}
}

func (Clock) Now() time.Time {
	return time.Now()
}

func (Clock) Sleep(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Limiter enforces a minimum delay between consecutive requests.
// A nil Limiter never blocks.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
	clock    Timer
}

// New creates a limiter using real time. A non-positive interval yields nil.
func New(interval time.Duration) *Limiter {
	return NewWithTimer(interval, nil)
}

// NewWithTimer creates a limiter with a custom clock.
func NewWithTimer(interval time.Duration, clock Timer) *Limiter {
	if interval <= 0 {
		return nil
	}

	if clock == nil {
		clock = Clock{}
	}

	return &Limiter{
		interval: interval,
		clock:    clock,
	}
}

// Wait blocks until at least the configured interval has passed since the
// previous Wait returned, or until the context is cancelled. The first call
// returns immediately.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	now := l.clock.Now()

	if l.next.IsZero() || !now.Before(l.next) {
		l.next = now.Add(l.interval)
		l.mu.Unlock()

		return nil
	}

	wait := l.next.Sub(now)
	l.next = l.next.Add(l.interval)
	l.mu.Unlock()

	return l.clock.Sleep(ctx, wait)
}

// Hosts keeps one Limiter per target host so concurrent fetch workers are
// serialized per host instead of globally. A nil Hosts never blocks.
type Hosts struct {
	mu       sync.Mutex
	interval time.Duration
	clock    Timer
	byHost   map[string]*Limiter
}

// NewHosts creates a per-host limiter set. A non-positive interval yields nil.
func NewHosts(interval time.Duration, clock Timer) *Hosts {
	if interval <= 0 {
		return nil
	}

	if clock == nil {
		clock = Clock{}
	}

	return &Hosts{
		interval: interval,
		clock:    clock,
		byHost:   map[string]*Limiter{},
	}
}

// Get returns the limiter for host, creating it on first use.
func (h *Hosts) Get(host string) *Limiter {
	if h == nil {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if limiter, ok := h.byHost[host]; ok {
		return limiter
	}

	limiter := NewWithTimer(h.interval, h.clock)
	h.byHost[host] = limiter

	return limiter
}

// Wait applies the host's limiter, creating it on first use.
func (h *Hosts) Wait(ctx context.Context, host string) error {
	return h.Get(host).Wait(ctx)
}
