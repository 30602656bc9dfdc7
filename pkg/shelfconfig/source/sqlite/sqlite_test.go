package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marmos91/shelf/pkg/shelfconfig"
)

func TestSource_PublishAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.db")

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	ctx := context.Background()
	cfg := shelfconfig.GetDefaultConfig()
	cfg.Logging.Level = "DEBUG"

	gen, err := src.Publish(ctx, cfg)
	require.NoError(t, err)
	require.Equal(t, int64(1), gen)

	loaded, err := src.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "DEBUG", loaded.Logging.Level)
}

func TestSource_LoadReturnsLatestGeneration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.db")

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	ctx := context.Background()

	first := shelfconfig.GetDefaultConfig()
	first.Logging.Level = "INFO"
	_, err = src.Publish(ctx, first)
	require.NoError(t, err)

	second := shelfconfig.GetDefaultConfig()
	second.Logging.Level = "WARN"
	_, err = src.Publish(ctx, second)
	require.NoError(t, err)

	loaded, err := src.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "WARN", loaded.Logging.Level)
}
