package shelfconfig_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfconfig"
)

// staticSource serves a fixed sequence of configs, one per Load call,
// repeating the last one once the sequence is exhausted.
type staticSource struct {
	configs []*shelfconfig.Config
	calls   int
}

func (s *staticSource) Name() string { return "static" }

func (s *staticSource) Load(ctx context.Context) (*shelfconfig.Config, error) {
	i := s.calls
	if i >= len(s.configs) {
		i = len(s.configs) - 1
	}
	s.calls++
	return s.configs[i], nil
}

func validConfigWith(name string, abandonAfter time.Duration) *shelfconfig.Config {
	cfg := shelfconfig.GetDefaultConfig()
	cfg.Behaviors = map[string]shelfconfig.BehaviorConfig{
		name: {
			Parent: "DEFAULT",
			Scopes: map[string]shelfconfig.SparseSettings{
				"All": {AbandonAfter: &abandonAfter},
			},
		},
	}
	return cfg
}

func TestLoader_RejectedReloadKeepsPreviousGeneration(t *testing.T) {
	loader, err := shelfconfig.NewLoader(validConfigWith("app", 5*time.Second))
	require.NoError(t, err)

	app, ok := loader.Registry().Get("app")
	require.True(t, ok)
	resolved := app.Resolve(shelfbehavior.KindRead, shelfbehavior.ShapePoint, shelfbehavior.ModeAny)
	require.Equal(t, 5*time.Second, resolved.AbandonAfter)

	// A malformed generation: unknown scope key, rejected at validation.
	bad := shelfconfig.GetDefaultConfig()
	bad.Behaviors = map[string]shelfconfig.BehaviorConfig{
		"app": {Scopes: map[string]shelfconfig.SparseSettings{"Bogus": {}}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &staticSource{configs: []*shelfconfig.Config{bad}}
	err = loader.StartWatching(ctx, src, shelfconfig.WatchConfig{Enabled: true, PollInterval: time.Second})
	assert.Error(t, err)

	// The registry still serves the previously valid generation.
	app, ok = loader.Registry().Get("app")
	require.True(t, ok)
	resolved = app.Resolve(shelfbehavior.KindRead, shelfbehavior.ShapePoint, shelfbehavior.ModeAny)
	assert.Equal(t, 5*time.Second, resolved.AbandonAfter)
}

func TestLoader_ValidReloadPublishesNewGeneration(t *testing.T) {
	loader, err := shelfconfig.NewLoader(validConfigWith("app", 5*time.Second))
	require.NoError(t, err)
	before := loader.Registry().Generation()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The watcher's initial load publishes generation two; cancel before
	// the first poll tick so Run returns promptly.
	src := &staticSource{configs: []*shelfconfig.Config{validConfigWith("app", 1*time.Second)}}
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	err = loader.StartWatching(ctx, src, shelfconfig.WatchConfig{Enabled: true, PollInterval: time.Second})
	assert.ErrorIs(t, err, context.Canceled)

	assert.Greater(t, loader.Registry().Generation(), before)

	app, ok := loader.Registry().Get("app")
	require.True(t, ok)
	resolved := app.Resolve(shelfbehavior.KindRead, shelfbehavior.ShapePoint, shelfbehavior.ModeAny)
	assert.Equal(t, 1*time.Second, resolved.AbandonAfter)
}
