// Package store implements C3: the single-file row-store with a manually
// maintained FTS index, embedding blobs and idempotent schema migration,
// grounded on the teacher's internal/db package (github.com/glebarez/sqlite
// driving gorm.io/gorm) but generalized to the full clipboard_items schema
// and the spec's exact/FTS/semantic search contracts.
package store

import (
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps a single SQLite-family database file holding clipboard_items,
// clipboard_fts and config.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if absent) the database at path, applies the
// non-negotiable PRAGMAs, and runs the idempotent migration. Failure here is
// fatal to the front-end process per §7.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.applyPragmas(); err != nil {
		return nil, fmt.Errorf("store: pragmas: %w", err)
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	slog.Info("store opened", "path", path)
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// applyPragmas sets the PRAGMAs required by §4.3: WAL journal,
// synchronous=NORMAL, a ~64MB page cache, in-memory temp store, and foreign
// keys on.
func (s *Store) applyPragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=-64000",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if err := s.db.Exec(p).Error; err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
