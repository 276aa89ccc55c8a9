// Package notify delivers transient user-facing notifications, the terminal
// analog of toast messages: fire-and-forget, never blocking, never fatal.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Notifier receives transient user-facing messages.
type Notifier interface {
	// Success reports a successful user action.
	Success(msg string)
	// Error reports a failed user action.
	Error(msg string)
}

// LogNotifier writes notifications to the application log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Success logs a success notification.
func (n *LogNotifier) Success(msg string) {
	n.logger.Info("notification", zap.String("kind", "success"), zap.String("message", msg))
}

// Error logs an error notification.
func (n *LogNotifier) Error(msg string) {
	n.logger.Warn("notification", zap.String("kind", "error"), zap.String("message", msg))
}

// Collector records notifications for assertions in tests.
type Collector struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Success records a success notification.
func (c *Collector) Success(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Successes = append(c.Successes, msg)
}

// Error records an error notification.
func (c *Collector) Error(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Errors = append(c.Errors, msg)
}
