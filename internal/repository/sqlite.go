// Package store persists generation telemetry. Scenarios themselves are
// never stored; each row records the token spend and outcome of one attempt.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"scenariod/internal/domain"
)

// Store is the persistence interface for generation telemetry.
type Store interface {
	RecordGeneration(ctx context.Context, rec *domain.GenerationRecord) error
	UsageSummary(ctx context.Context) (*domain.UsageSummary, error)
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS generations (
			generation_id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			prompt_chars INTEGER NOT NULL,
			input_tokens INTEGER NOT NULL,
			output_tokens INTEGER NOT NULL,
			cost_usd REAL NOT NULL,
			duration_ms INTEGER NOT NULL,
			warning_count INTEGER NOT NULL,
			status TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// RecordGeneration inserts one generation attempt.
func (s *SQLiteStore) RecordGeneration(ctx context.Context, rec *domain.GenerationRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations (generation_id, model, prompt_chars, input_tokens, output_tokens, cost_usd, duration_ms, warning_count, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.GenerationID, rec.Model, rec.PromptChars, rec.InputTokens, rec.OutputTokens,
		rec.CostUSD, rec.DurationMs, rec.WarningCount, rec.Status, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

// UsageSummary aggregates the recorded attempts.
func (s *SQLiteStore) UsageSummary(ctx context.Context) (*domain.UsageSummary, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'ok' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status != 'ok' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0),
			COALESCE(SUM(cost_usd), 0)
		 FROM generations`)

	var summary domain.UsageSummary
	if err := row.Scan(&summary.Generations, &summary.Succeeded, &summary.Failed,
		&summary.InputTokens, &summary.OutputTokens, &summary.CostUSD); err != nil {
		return nil, fmt.Errorf("failed to load usage summary: %w", err)
	}
	return &summary, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
