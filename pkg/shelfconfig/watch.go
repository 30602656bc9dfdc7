package shelfconfig

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/marmos91/shelf/internal/logger"
	"github.com/marmos91/shelf/pkg/shelftrace"
)

// Source is anything a Watcher can poll for a new Config generation: a
// local file, or one of the source/postgres and source/sqlite centralized
// config planes.
type Source interface {
	// Load reads and decodes the current configuration.
	Load(ctx context.Context) (*Config, error)

	// Name identifies the source kind for logging ("file", "postgres",
	// "sqlite").
	Name() string
}

// ReloadFunc is invoked with a newly validated Config on every successful
// reload. It returns an error if the caller rejects the new config (e.g. a
// behavior tree compile failure); the watcher logs and keeps the previous
// generation in that case, matching the hot reload contract's "a partial
// parse must leave the existing registry intact."
type ReloadFunc func(cfg *Config) error

// FileSource is a Source backed by a local config file, watched with
// fsnotify for change events instead of polling.
type FileSource struct {
	path string
}

// NewFileSource returns a Source that loads configPath on demand.
func NewFileSource(configPath string) *FileSource {
	return &FileSource{path: configPath}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Load(ctx context.Context) (*Config, error) {
	return Load(s.path)
}

// Watcher polls a Source at a configurable interval and publishes
// successfully validated reloads through onReload.
type Watcher struct {
	source     Source
	interval   time.Duration
	onReload   ReloadFunc
	generation int64
}

// NewWatcher constructs a Watcher. interval must be at least one second
// per the hot reload contract; callers that pass less get one
// second.
func NewWatcher(source Source, interval time.Duration, onReload ReloadFunc) *Watcher {
	if interval < time.Second {
		interval = time.Second
	}
	return &Watcher{source: source, interval: interval, onReload: onReload}
}

// Run blocks, reloading on every tick (or on fsnotify events, for a
// *FileSource) until ctx is cancelled. It always performs an initial load
// before entering the loop.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.reloadOnce(ctx); err != nil {
		return err
	}

	if fileSrc, ok := w.source.(*FileSource); ok {
		return w.runFsnotify(ctx, fileSrc)
	}
	return w.runPoll(ctx)
}

func (w *Watcher) runPoll(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = w.reloadOnce(ctx)
		}
	}
}

func (w *Watcher) runFsnotify(ctx context.Context, src *FileSource) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(src.path); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				_ = w.reloadOnce(ctx)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("config watcher error", logger.Err(err), logger.Source(src.Name()))
		}
	}
}

func (w *Watcher) reloadOnce(ctx context.Context) error {
	start := time.Now()
	ctx, span := shelftrace.StartConfigReloadSpan(ctx, w.source.Name())
	defer span.End()

	cfg, err := w.source.Load(ctx)
	if err != nil {
		logger.Warn("config reload failed", logger.Source(w.source.Name()), logger.Err(err), logger.DurationMs(logger.Duration(start)))
		return err
	}

	if err := w.onReload(cfg); err != nil {
		logger.Warn("config reload rejected", logger.Source(w.source.Name()), logger.Err(err), logger.DurationMs(logger.Duration(start)))
		return err
	}

	w.generation++
	logger.Info("config reloaded", logger.Source(w.source.Name()), logger.DurationMs(logger.Duration(start)))
	return nil
}
