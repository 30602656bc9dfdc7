// Package postgres implements a centralized shelfconfig.Source backed by
// Postgres: a fleet of clients polling the same table share one config
// plane instead of each reading its own file.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"gopkg.in/yaml.v3"

	"github.com/marmos91/shelf/pkg/shelfconfig"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Source loads the active configuration generation from a Postgres table.
// Writers (an operator tool, not this package) insert a new row per
// generation; Load always returns the highest generation.
type Source struct {
	pool *pgxpool.Pool
}

// Open connects to Postgres and applies pending migrations.
func Open(ctx context.Context, dsn string) (*Source, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("shelfconfig/source/postgres: connect: %w", err)
	}

	if err := migrateUp(dsn); err != nil {
		pool.Close()
		return nil, fmt.Errorf("shelfconfig/source/postgres: migrate: %w", err)
	}

	return &Source{pool: pool}, nil
}

func migrateUp(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return err
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "shelf_config", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func (s *Source) Name() string { return "postgres" }

// Load fetches the highest-generation config row and decodes it.
func (s *Source) Load(ctx context.Context) (*shelfconfig.Config, error) {
	var generation int64
	var payload string

	row := s.pool.QueryRow(ctx, `
		SELECT generation, payload
		FROM shelf_config_generations
		ORDER BY generation DESC
		LIMIT 1
	`)
	if err := row.Scan(&generation, &payload); err != nil {
		return nil, fmt.Errorf("shelfconfig/source/postgres: load generation: %w", err)
	}

	var cfg shelfconfig.Config
	if err := yaml.Unmarshal([]byte(payload), &cfg); err != nil {
		return nil, fmt.Errorf("shelfconfig/source/postgres: decode generation %d: %w", generation, err)
	}

	shelfconfig.ApplyDefaults(&cfg)
	if err := shelfconfig.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("shelfconfig/source/postgres: validate generation %d: %w", generation, err)
	}

	return &cfg, nil
}

// Publish inserts a new config generation. The source of truth is
// append-only: generations are never updated in place, so a reader never
// observes a row mid-write.
func (s *Source) Publish(ctx context.Context, cfg *shelfconfig.Config) (int64, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return 0, fmt.Errorf("shelfconfig/source/postgres: marshal: %w", err)
	}

	var generation int64
	row := s.pool.QueryRow(ctx, `
		INSERT INTO shelf_config_generations (payload)
		VALUES ($1)
		RETURNING generation
	`, string(data))
	if err := row.Scan(&generation); err != nil {
		return 0, fmt.Errorf("shelfconfig/source/postgres: publish: %w", err)
	}

	return generation, nil
}

// Close releases the underlying connection pool.
func (s *Source) Close() {
	s.pool.Close()
}
