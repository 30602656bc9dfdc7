package shelfindex

import (
	"context"
	"time"

	"github.com/marmos91/shelf/internal/logger"
	"github.com/marmos91/shelf/pkg/shelf"
)

// Lister is the subset of shelftransport.Transport the monitor needs.
// Defined locally rather than importing shelftransport so this package
// stays usable against any index-metadata source, not just a live cluster
// connection.
type Lister interface {
	ListIndexes(ctx context.Context) ([]shelf.IndexMetadata, error)
}

// Monitor polls a Lister at a fixed interval and republishes the result
// into a Cache, the same ticker/ctx.Done daemon shape shelfconfig's
// Watcher uses for config hot reload — the library's other optional
// background thread the library is allowed to carry.
type Monitor struct {
	lister   Lister
	cache    *Cache
	interval time.Duration
}

// NewMonitor constructs a Monitor. interval below one second is raised to
// one second; a metadata refresh has no business polling faster than a
// config reload does.
func NewMonitor(lister Lister, cache *Cache, interval time.Duration) *Monitor {
	if interval < time.Second {
		interval = time.Second
	}
	return &Monitor{lister: lister, cache: cache, interval: interval}
}

// Run blocks, refreshing the cache on every tick until ctx is cancelled.
// It performs one refresh immediately so the cache is populated before the
// first tick fires. Callers run this in its own goroutine and cancel ctx
// when the owning cluster handle closes.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.refreshOnce(ctx); err != nil {
		logger.Warn("index monitor initial refresh failed", logger.Err(err))
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := m.refreshOnce(ctx); err != nil {
				logger.Warn("index monitor refresh failed", logger.Err(err))
			}
		}
	}
}

func (m *Monitor) refreshOnce(ctx context.Context) error {
	start := time.Now()

	indexes, err := m.lister.ListIndexes(ctx)
	if err != nil {
		return err
	}
	if err := m.cache.Replace(ctx, indexes); err != nil {
		return err
	}

	logger.Debug("index metadata refreshed",
		logger.KeyCount(len(indexes)),
		logger.DurationMs(logger.Duration(start)),
	)
	return nil
}
