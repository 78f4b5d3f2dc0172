package store

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Sathamlet92/clipboard/internal/model"
)

// migrate runs the idempotent schema migration of §4.3: create the table and
// FTS index if absent, otherwise add any missing columns. Unlike the
// teacher's FTS triggers, the FTS index here is never trigger-maintained —
// every write path goes through upsertFTS/deleteFTSRow explicitly (§4.3's
// "maintained manually" invariant).
func (s *Store) migrate() error {
	exists, err := s.tableExists("clipboard_items")
	if err != nil {
		return err
	}

	if !exists {
		if err := s.createSchema(); err != nil {
			return err
		}
	} else if err := s.addMissingColumns(); err != nil {
		return err
	}

	if err := s.createFTSTable(); err != nil {
		return err
	}
	return s.createIndexes()
}

func (s *Store) tableExists(name string) (bool, error) {
	var count int64
	err := s.db.Raw(
		"SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?", name,
	).Scan(&count).Error
	return count > 0, err
}

func (s *Store) createSchema() error {
	var cols []string
	for _, c := range schemaColumns {
		switch c.name {
		case "id":
			cols = append(cols, "id INTEGER PRIMARY KEY AUTOINCREMENT")
		default:
			cols = append(cols, fmt.Sprintf("%s %s", c.name, c.ddl))
		}
	}
	ddl := fmt.Sprintf("CREATE TABLE clipboard_items (%s)", strings.Join(cols, ", "))
	if err := s.db.Exec(ddl).Error; err != nil {
		return err
	}
	return s.db.Exec(
		"CREATE TABLE IF NOT EXISTS config (key TEXT PRIMARY KEY, value TEXT NOT NULL)",
	).Error
}

// addMissingColumns diffs the live column set against schemaColumns and adds
// whatever is missing, then — if content_type is the column being added and
// a legacy mime_type column exists — backfills content_type from mime_type.
func (s *Store) addMissingColumns() error {
	existing, err := s.existingColumns()
	if err != nil {
		return err
	}

	_, hadMimeType := existing["mime_type"]
	var addedContentType bool

	for _, c := range schemaColumns {
		if c.name == "id" || existing[c.name] {
			continue
		}
		ddl := fmt.Sprintf("ALTER TABLE clipboard_items ADD COLUMN %s %s", c.name, c.ddl)
		if err := s.db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("add column %s: %w", c.name, err)
		}
		slog.Info("migrated clipboard_items: added column", "column", c.name)
		if c.name == "content_type" {
			addedContentType = true
		}
	}

	if addedContentType && hadMimeType {
		if err := s.backfillContentTypeFromMime(); err != nil {
			return err
		}
	}

	if err := s.db.Exec(
		"CREATE TABLE IF NOT EXISTS config (key TEXT PRIMARY KEY, value TEXT NOT NULL)",
	).Error; err != nil {
		return err
	}
	return nil
}

func (s *Store) existingColumns() (map[string]bool, error) {
	type colInfo struct {
		Name string `gorm:"column:name"`
	}
	var cols []colInfo
	if err := s.db.Raw("PRAGMA table_info(clipboard_items)").Scan(&cols).Error; err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(cols))
	for _, c := range cols {
		out[c.Name] = true
	}
	return out, nil
}

// backfillContentTypeFromMime copies the legacy mime_type column's values
// into content_type, mapped through the same classification rule used at
// capture time (§4.1's content-type mapping).
func (s *Store) backfillContentTypeFromMime() error {
	type legacyRow struct {
		ID       uint64
		MimeType string
	}
	var rows []legacyRow
	if err := s.db.Raw("SELECT id, mime_type FROM clipboard_items").Scan(&rows).Error; err != nil {
		return err
	}
	for _, r := range rows {
		label := mapMimeToContentType(r.MimeType).String()
		if err := s.db.Exec(
			"UPDATE clipboard_items SET content_type=? WHERE id=?", label, r.ID,
		).Error; err != nil {
			return err
		}
	}
	slog.Info("migrated clipboard_items: backfilled content_type from mime_type", "rows", len(rows))
	return nil
}

func mapMimeToContentType(mime string) model.ContentType {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return model.Image
	case strings.HasPrefix(mime, "text/html"):
		return model.Text
	default:
		return model.Text
	}
}

func (s *Store) createFTSTable() error {
	return s.db.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS clipboard_fts USING fts5(
			content_as_text, ocr_text, code_language, source_app,
			tokenize = 'porter unicode61'
		)
	`).Error
}

func (s *Store) createIndexes() error {
	stmts := []string{
		"CREATE INDEX IF NOT EXISTS idx_clipboard_items_timestamp ON clipboard_items(timestamp DESC)",
		"CREATE INDEX IF NOT EXISTS idx_clipboard_items_content_type ON clipboard_items(content_type)",
		"CREATE INDEX IF NOT EXISTS idx_clipboard_items_is_password ON clipboard_items(is_password)",
		"CREATE INDEX IF NOT EXISTS idx_clipboard_items_source_app ON clipboard_items(source_app)",
	}
	for _, stmt := range stmts {
		if err := s.db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
