// Package shelfmetrics defines the metrics surface the client exposes to
// callers who want observability into behavior resolution, batch dispatch,
// stream pagination, and config reload. Collection is optional: every
// constructor returns nil when metrics are not enabled, and every Record/
// Observe method is a nil-receiver no-op, so passing nil costs nothing.
package shelfmetrics

import (
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mu       sync.Mutex
	registry *prometheus.Registry
	enabled  atomic.Bool
)

// InitRegistry creates the process-wide Prometheus registry metrics are
// published to. Calling it more than once replaces the registry; existing
// collectors bound to the old one keep reporting to it.
func InitRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()

	registry = prometheus.NewRegistry()
	enabled.Store(true)
	return registry
}

// GetRegistry returns the current registry, or nil if InitRegistry hasn't
// been called.
func GetRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	return registry
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	return enabled.Load()
}

// Reset clears the registry. Used in tests that need isolated metric state
// between cases.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = nil
	enabled.Store(false)
}
