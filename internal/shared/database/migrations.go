package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
)

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT NOW()
	)`

// RunMigrations applies every .sql file in fsys that schema_migrations does
// not list yet, in lexical order. Each file runs in its own transaction
// together with its bookkeeping row.
func (db *DB) RunMigrations(ctx context.Context, fsys fs.FS) error {
	logger := slog.With("component", "migrations")

	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	files, err := migrationFiles(fsys)
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}

	applied := 0
	for _, file := range files {
		ran, err := db.applyMigration(ctx, fsys, file)
		if err != nil {
			logger.Error("Migration failed", "migration", file, "error", err)
			return fmt.Errorf("migration %s: %w", file, err)
		}
		if ran {
			applied++
		}
	}

	logger.Info("Database schema up to date", "migrations", len(files), "applied", applied)
	return nil
}

func migrationFiles(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(name, ".sql") {
			files = append(files, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func (db *DB) applyMigration(ctx context.Context, fsys fs.FS, file string) (bool, error) {
	version := path.Base(file)

	var done bool
	err := db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", version).Scan(&done)
	if err != nil || done {
		return false, err
	}

	content, err := fs.ReadFile(fsys, file)
	if err != nil {
		return false, err
	}

	slog.Info("Applying migration", "component", "migrations", "migration", version, "size_bytes", len(content))
	err = db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version)
		return err
	})
	return err == nil, err
}
