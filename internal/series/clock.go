package series

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Clock recomputes the countdown once per tick from a free-running wall-clock
// sample. The countdown itself is a pure function of (expiry, now); the clock
// only holds the latest snapshot. Stop must be called on teardown so the
// ticker goroutine does not leak.
type Clock struct {
	expiryMs int64
	interval time.Duration
	logger   *zap.Logger

	mu      sync.RWMutex
	current Remaining

	done     chan struct{}
	stopOnce sync.Once
}

// NewClock creates a clock for the given expiry and starts ticking.
func NewClock(expiryMs int64, interval time.Duration, logger *zap.Logger) *Clock {
	c := &Clock{
		expiryMs: expiryMs,
		interval: interval,
		logger:   logger,
		current:  CountdownAt(expiryMs, time.Now().UnixMilli()),
		done:     make(chan struct{}),
	}

	SecondsToExpiry.Set(float64(c.current.Ms) / 1000)

	go c.loop()
	return c
}

func (c *Clock) loop() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			snap := CountdownAt(c.expiryMs, time.Now().UnixMilli())

			c.mu.Lock()
			c.current = snap
			c.mu.Unlock()

			CountdownTicksTotal.Inc()
			SecondsToExpiry.Set(float64(snap.Ms) / 1000)
		}
	}
}

// Remaining returns the latest countdown snapshot.
func (c *Clock) Remaining() Remaining {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// ExpiryMs returns the resolved expiry in epoch milliseconds.
func (c *Clock) ExpiryMs() int64 {
	return c.expiryMs
}

// Stop cancels the ticker goroutine. Safe to call more than once.
func (c *Clock) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		c.logger.Debug("countdown-clock-stopped")
	})
}
