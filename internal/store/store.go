// Package store persists per-period legal configs in a local sqlite
// database. Updates are last-writer-wins per period key; a period with no
// stored config resolves to the computed year default.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/sobres/envelope-planner/internal/domain"
)

// ConfigStore is the sqlite-backed MonthlyLegalConfig repository.
type ConfigStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dbPath and runs
// migrations.
func Open(dbPath string) (*ConfigStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &ConfigStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *ConfigStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save upserts the config for a period after validating it.
func (s *ConfigStore) Save(ctx context.Context, period domain.Period, cfg domain.MonthlyLegalConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("refusing to store invalid config for %s: %w", period, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO legal_configs (period, config, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(period) DO UPDATE SET
			config = excluded.config,
			updated_at = CURRENT_TIMESTAMP`,
		period.Key(), string(data))
	if err != nil {
		return fmt.Errorf("save config for %s: %w", period, err)
	}
	return nil
}

// Get loads the stored config for a period. The second return value is
// false when no config is stored for the period.
func (s *ConfigStore) Get(ctx context.Context, period domain.Period) (domain.MonthlyLegalConfig, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT config FROM legal_configs WHERE period = ?`, period.Key()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MonthlyLegalConfig{}, false, nil
	}
	if err != nil {
		return domain.MonthlyLegalConfig{}, false, fmt.Errorf("load config for %s: %w", period, err)
	}

	var cfg domain.MonthlyLegalConfig
	if err := yaml.Unmarshal([]byte(data), &cfg); err != nil {
		return domain.MonthlyLegalConfig{}, false, fmt.Errorf("decode config for %s: %w", period, err)
	}
	return cfg, true, nil
}

// Resolve returns the stored config for a period or the computed year
// default when none is stored. Absence is never an error.
func (s *ConfigStore) Resolve(ctx context.Context, period domain.Period) (domain.MonthlyLegalConfig, error) {
	cfg, ok, err := s.Get(ctx, period)
	if err != nil {
		return domain.MonthlyLegalConfig{}, err
	}
	if !ok {
		return domain.DefaultLegalConfig(period.Year), nil
	}
	return cfg, nil
}

// Delete removes the stored config for a period, reverting the period to
// the computed default. Deleting a missing period is a no-op.
func (s *ConfigStore) Delete(ctx context.Context, period domain.Period) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM legal_configs WHERE period = ?`, period.Key())
	if err != nil {
		return fmt.Errorf("delete config for %s: %w", period, err)
	}
	return nil
}

// ListPeriods returns the keys of all periods with a stored config, in
// ascending order.
func (s *ConfigStore) ListPeriods(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT period FROM legal_configs ORDER BY period`)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()

	var periods []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}
