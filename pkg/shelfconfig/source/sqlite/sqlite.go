// Package sqlite implements an embeddable, single-node shelfconfig.Source
// for deployments that don't want to stand up Postgres for one small
// settings table.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/marmos91/shelf/pkg/shelfconfig"
)

// generationRow is the GORM model backing the single config table.
type generationRow struct {
	Generation int64 `gorm:"primaryKey;autoIncrement"`
	Payload    string
	CreatedAt  time.Time
}

func (generationRow) TableName() string { return "shelf_config_generations" }

// Source loads the active configuration generation from an embedded
// SQLite database file.
type Source struct {
	db *gorm.DB
}

// Open opens (creating if absent) the SQLite database at path and runs the
// auto-migration for the generation table.
func Open(path string) (*Source, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("shelfconfig/source/sqlite: open: %w", err)
	}

	if err := db.AutoMigrate(&generationRow{}); err != nil {
		return nil, fmt.Errorf("shelfconfig/source/sqlite: migrate: %w", err)
	}

	return &Source{db: db}, nil
}

func (s *Source) Name() string { return "sqlite" }

// Load fetches the highest-generation config row and decodes it.
func (s *Source) Load(ctx context.Context) (*shelfconfig.Config, error) {
	var row generationRow
	if err := s.db.WithContext(ctx).Order("generation DESC").First(&row).Error; err != nil {
		return nil, fmt.Errorf("shelfconfig/source/sqlite: load generation: %w", err)
	}

	var cfg shelfconfig.Config
	if err := yaml.Unmarshal([]byte(row.Payload), &cfg); err != nil {
		return nil, fmt.Errorf("shelfconfig/source/sqlite: decode generation %d: %w", row.Generation, err)
	}

	shelfconfig.ApplyDefaults(&cfg)
	if err := shelfconfig.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("shelfconfig/source/sqlite: validate generation %d: %w", row.Generation, err)
	}

	return &cfg, nil
}

// Publish inserts a new config generation.
func (s *Source) Publish(ctx context.Context, cfg *shelfconfig.Config) (int64, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return 0, fmt.Errorf("shelfconfig/source/sqlite: marshal: %w", err)
	}

	row := generationRow{Payload: string(data)}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("shelfconfig/source/sqlite: publish: %w", err)
	}

	return row.Generation, nil
}

// Close releases the underlying database handle.
func (s *Source) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
