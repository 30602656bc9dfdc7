package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/marmos91/shelf/pkg/shelfconfig"
)

func startPostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("shelf"),
		tcpostgres.WithUsername("shelf"),
		tcpostgres.WithPassword("shelf"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestSource_PublishAndLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration test in short mode")
	}

	dsn := startPostgres(t)
	ctx := context.Background()

	src, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer src.Close()

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
	if testing.Short() {
		t.Skip("skipping testcontainers integration test in short mode")
	}

	dsn := startPostgres(t)
	ctx := context.Background()

	src, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer src.Close()

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
