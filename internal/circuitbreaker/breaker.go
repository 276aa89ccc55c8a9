// Package circuitbreaker suspends order submission after repeated failures.
// It never retries on the user's behalf; it only refuses new submissions
// until a cooldown elapses, at which point the user may try again.
package circuitbreaker

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Breaker tracks consecutive submission failures. While open, Allow returns
// false; the breaker half-opens after the cooldown and closes again on the
// next success.
type Breaker struct {
	threshold int
	cooldown  time.Duration
	logger    *zap.Logger
	now       func() time.Time

	mu           sync.Mutex
	consecutive  int
	openedAt     time.Time
	open         bool
	stateChanges int
}

// Config holds breaker configuration.
type Config struct {
	// FailureThreshold is the number of consecutive failures that opens the
	// breaker.
	FailureThreshold int
	// Cooldown is how long submissions stay suspended once open.
	Cooldown time.Duration
	Logger   *zap.Logger
}

// New creates a closed breaker.
func New(cfg *Config) *Breaker {
	b := &Breaker{
		threshold: cfg.FailureThreshold,
		cooldown:  cfg.Cooldown,
		logger:    cfg.Logger,
		now:       time.Now,
	}

	BreakerOpen.Set(0)
	return b
}

// Allow reports whether a submission may proceed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return true
	}

	if b.now().Sub(b.openedAt) >= b.cooldown {
		// Half-open: let one submission through; RecordSuccess closes,
		// RecordFailure re-opens.
		return true
	}

	return false
}

// RecordSuccess resets the failure count and closes the breaker.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutive = 0
	if b.open {
		b.open = false
		b.stateChanges++
		BreakerOpen.Set(0)
		BreakerStateChanges.Inc()
		b.logger.Info("submission-breaker-closed")
	}
}

// RecordFailure increments the failure count and opens the breaker at the
// threshold.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutive++
	BreakerConsecutiveFailures.Set(float64(b.consecutive))

	if b.consecutive >= b.threshold {
		b.openedAt = b.now()
		if !b.open {
			b.open = true
			b.stateChanges++
			BreakerOpen.Set(1)
			BreakerStateChanges.Inc()
			b.logger.Warn("submission-breaker-opened",
				zap.Int("consecutive_failures", b.consecutive),
				zap.Duration("cooldown", b.cooldown))
		}
	}
}

// Status holds the breaker state for debugging and HTTP endpoints.
type Status struct {
	Open                bool      `json:"open"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	OpenedAt            time.Time `json:"opened_at,omitempty"`
}

// GetStatus returns the current breaker state.
func (b *Breaker) GetStatus() Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Status{
		Open:                b.open,
		ConsecutiveFailures: b.consecutive,
		OpenedAt:            b.openedAt,
	}
}
