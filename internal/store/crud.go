package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sathamlet92/clipboard/internal/model"
	"gorm.io/gorm"
)

// Insert writes a new item and its FTS row, returning the assigned id.
func (s *Store) Insert(ctx context.Context, it *model.Item) (uint64, error) {
	it.Normalize()
	r := rowFromItem(it)
	r.ID = 0 // let AUTOINCREMENT assign it
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return 0, fmt.Errorf("store: insert: %w", err)
	}
	it.ID = r.ID
	s.upsertFTS(*it)
	return it.ID, nil
}

// Get reconstructs an item by id. ok is false when no row exists.
func (s *Store) Get(ctx context.Context, id uint64) (model.Item, bool, error) {
	var r row
	err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, false, nil
	}
	if err != nil {
		return model.Item{}, false, fmt.Errorf("store: get %d: %w", id, err)
	}
	return itemFromRow(r), true, nil
}

// GetRecent returns up to limit items ordered by timestamp descending.
func (s *Store) GetRecent(ctx context.Context, limit int) ([]model.Item, error) {
	var rows []row
	q := s.db.WithContext(ctx).Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: get_recent: %w", err)
	}
	return itemsFromRows(rows), nil
}

// Update refreshes every mutable field of it (all but ID and Timestamp,
// which is never mutated post-insert) and its FTS row.
func (s *Store) Update(ctx context.Context, it *model.Item) error {
	it.Normalize()
	r := rowFromItem(it)
	res := s.db.WithContext(ctx).Model(&row{}).Where("id = ?", it.ID).Updates(map[string]any{
		"content":       r.Content,
		"content_type":  r.ContentType,
		"ocr_text":      r.OCRText,
		"embedding":     r.Embedding,
		"source_app":    r.SourceApp,
		"is_password":   r.IsPassword,
		"is_encrypted":  r.IsEncrypted,
		"metadata":      r.Metadata,
		"thumbnail":     r.Thumbnail,
		"code_language": r.CodeLanguage,
	})
	if res.Error != nil {
		return fmt.Errorf("store: update %d: %w", it.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store: update %d: no such item", it.ID)
	}
	s.upsertFTS(*it)
	return nil
}

// Delete removes a single item and its FTS row. ok reports whether a row
// was actually removed.
func (s *Store) Delete(ctx context.Context, id uint64) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&row{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("store: delete %d: %w", id, res.Error)
	}
	if res.RowsAffected > 0 {
		if err := s.deleteFTSRow(id); err != nil {
			return true, fmt.Errorf("store: delete fts row %d: %w", id, err)
		}
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll removes every item and the entire FTS index ("clear all").
func (s *Store) DeleteAll(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec("DELETE FROM clipboard_items").Error; err != nil {
		return fmt.Errorf("store: delete_all: %w", err)
	}
	if err := s.db.WithContext(ctx).Exec("DELETE FROM clipboard_fts").Error; err != nil {
		return fmt.Errorf("store: delete_all fts: %w", err)
	}
	return nil
}

func itemsFromRows(rows []row) []model.Item {
	out := make([]model.Item, len(rows))
	for i, r := range rows {
		out[i] = itemFromRow(r)
	}
	return out
}
