package shelfconfig

import (
	"context"
	"fmt"
	"time"

	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfmetrics"
)

// Loader parses a declarative config
// source into a shelfbehavior.Registry and, when Watch is enabled, runs a
// background Watcher that republishes on every valid change. Compile
// failures or validation failures never reach the registry — the previous
// generation keeps serving.
type Loader struct {
	registry *shelfbehavior.Registry
	watcher  *Watcher
	metrics  shelfmetrics.ConfigMetrics
}

// NewLoader constructs a Loader around an already-validated Config,
// compiling and publishing its initial generation synchronously.
func NewLoader(cfg *Config) (*Loader, error) {
	l := &Loader{
		registry: shelfbehavior.NewRegistry(),
		metrics:  shelfmetrics.NewConfigMetrics(),
	}
	if err := l.reload(cfg, "initial"); err != nil {
		return nil, err
	}
	return l, nil
}

// Registry returns the live shelfbehavior.Registry. Sessions resolving
// Settings by name hold onto this; sessions that captured a *Behavior
// directly at construction are unaffected by later reloads.
func (l *Loader) Registry() *shelfbehavior.Registry {
	return l.registry
}

// WithMetrics attaches a ConfigMetrics sink for reload observability.
func (l *Loader) WithMetrics(m shelfmetrics.ConfigMetrics) *Loader {
	l.metrics = m
	return l
}

func (l *Loader) reload(cfg *Config, source string) error {
	start := time.Now()

	specs, system, err := Compile(cfg)
	if err != nil {
		if l.metrics != nil {
			l.metrics.RecordReload(source, time.Since(start), err)
		}
		return err
	}

	behaviors, err := shelfbehavior.Compile(specs)
	if err != nil {
		if l.metrics != nil {
			l.metrics.RecordReload(source, time.Since(start), err)
		}
		return fmt.Errorf("compiling behavior tree: %w", err)
	}

	l.registry.Publish(behaviors, system)
	if l.metrics != nil {
		l.metrics.RecordReload(source, time.Since(start), nil)
		l.metrics.SetGeneration(source, l.registry.Generation())
	}
	return nil
}

// StartWatching launches the background watcher goroutine against source, polling/watching per
// watchCfg. It returns nil at once when watching is disabled and returns
// the error at once when the watcher's initial load fails; otherwise it
// blocks until ctx is cancelled. Callers run it in its own
// goroutine and cancel ctx to tear it down, matching the "daemons that
// must terminate when the owning cluster handle is closed" requirement.
func (l *Loader) StartWatching(ctx context.Context, source Source, watchCfg WatchConfig) error {
	if !watchCfg.Enabled {
		return nil
	}
	l.watcher = NewWatcher(source, watchCfg.PollInterval, func(cfg *Config) error {
		ApplyDefaults(cfg)
		if err := Validate(cfg); err != nil {
			return err
		}
		return l.reload(cfg, source.Name())
	})
	return l.watcher.Run(ctx)
}
