package ratelimit

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Pacer enforces a randomized pause between consecutive requests to the same
// job site. The first request goes out immediately; every later one waits a
// delay drawn uniformly from [minDelay, maxDelay].
type Pacer struct {
	mu       sync.Mutex
	started  bool
	minDelay time.Duration
	maxDelay time.Duration
	jitter   func() float64 // returns a value in [0, 1)
}

// NewPacer creates a pacer for one site. maxDelay below minDelay is raised to minDelay.
func NewPacer(minDelay, maxDelay time.Duration) *Pacer {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Pacer{
		minDelay: minDelay,
		maxDelay: maxDelay,
		jitter:   rand.Float64,
	}
}

// Wait blocks for the next delay unless this is the first request.
// Returns an error if the context is cancelled while waiting.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	if !p.started {
		p.started = true
		p.mu.Unlock()
		return nil
	}
	delay := p.nextDelay()
	p.mu.Unlock()

	if delay <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("pacer wait: %w", ctx.Err())
	case <-time.After(delay):
	}
	return nil
}

// Reset makes the next Wait return immediately, as at the start of a run.
func (p *Pacer) Reset() {
	p.mu.Lock()
	p.started = false
	p.mu.Unlock()
}

// nextDelay must be called with mu held.
func (p *Pacer) nextDelay() time.Duration {
	span := p.maxDelay - p.minDelay
	if span <= 0 {
		return p.minDelay
	}
	return p.minDelay + time.Duration(p.jitter()*float64(span))
}
