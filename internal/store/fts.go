package store

import (
	"log/slog"

	"github.com/Sathamlet92/clipboard/internal/model"
)

// upsertFTS writes (or rewrites) the FTS row for id. FTS5 has no native
// upsert, so this deletes any existing row by rowid before inserting — the
// manual equivalent of the trigger-based sync the teacher repo uses, per the
// "maintained manually" invariant in §4.3.
//
// A failure here is logged and swallowed (§7's "FTS sync failure" policy):
// the row remains in clipboard_items but will not match FTS queries until a
// future update or an explicit fts-rebuild succeeds.
func (s *Store) upsertFTS(it model.Item) {
	if err := s.deleteFTSRow(it.ID); err != nil {
		slog.Error("fts sync: delete failed", "id", it.ID, "error", err)
		return
	}
	err := s.db.Exec(
		"INSERT INTO clipboard_fts(rowid, content_as_text, ocr_text, code_language, source_app) VALUES (?, ?, ?, ?, ?)",
		it.ID, it.TextContent(), it.OCRText, it.CodeLanguage, it.SourceApp,
	).Error
	if err != nil {
		slog.Error("fts sync: insert failed", "id", it.ID, "error", err)
	}
}

func (s *Store) deleteFTSRow(id uint64) error {
	return s.db.Exec("DELETE FROM clipboard_fts WHERE rowid=?", id).Error
}

// RebuildFTS drops and rewrites every FTS row from clipboard_items, for
// operators recovering from a partial sync failure.
func (s *Store) RebuildFTS() error {
	if err := s.db.Exec("DELETE FROM clipboard_fts").Error; err != nil {
		return err
	}
	var rows []row
	if err := s.db.Find(&rows).Error; err != nil {
		return err
	}
	for _, r := range rows {
		s.upsertFTS(itemFromRow(r))
	}
	slog.Info("fts index rebuilt", "rows", len(rows))
	return nil
}
