package store

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Sathamlet92/clipboard/internal/model"
)

// SearchExact implements §4.3's search_exact: a case-insensitive LIKE scan
// across the text-bearing fields (content as text is skipped for images,
// since their content is binary), ordered by timestamp descending.
func (s *Store) SearchExact(ctx context.Context, q string, limit int) ([]model.Item, error) {
	like := "%" + q + "%"
	var rows []row
	err := s.db.WithContext(ctx).
		Where(
			"(content_type != 'Image' AND content LIKE ? COLLATE NOCASE) OR "+
				"ocr_text LIKE ? COLLATE NOCASE OR "+
				"code_language LIKE ? COLLATE NOCASE OR "+
				"source_app LIKE ? COLLATE NOCASE OR "+
				"content_type LIKE ? COLLATE NOCASE",
			like, like, like, like, like,
		).
		Order("timestamp DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: search_exact: %w", err)
	}
	return itemsFromRows(rows), nil
}

// SearchFTS implements §4.3's search_fts: a raw FTS5 MATCH query, with no
// ordering guarantee beyond the engine's own rank default.
func (s *Store) SearchFTS(ctx context.Context, q string, limit int) ([]model.Item, error) {
	var rows []row
	err := s.db.WithContext(ctx).Raw(`
		SELECT clipboard_items.* FROM clipboard_items
		JOIN clipboard_fts ON clipboard_fts.rowid = clipboard_items.id
		WHERE clipboard_fts MATCH ?
		LIMIT ?
	`, q, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: search_fts: %w", err)
	}
	return itemsFromRows(rows), nil
}

// maxSemanticScan bounds search_by_embedding to the most recent items with
// a non-null embedding, per §4.9's "at most the 100 most recent items".
const maxSemanticScan = 100

// SearchByEmbedding implements §4.3/§4.9's search_by_embedding: scan the
// most recent items with a non-null embedding of matching dimension, rank by
// cosine similarity descending, and return the top limit.
func (s *Store) SearchByEmbedding(ctx context.Context, v []float32, limit int) ([]model.Item, error) {
	if len(v) == 0 {
		return nil, nil
	}

	var rows []row
	err := s.db.WithContext(ctx).
		Where("embedding IS NOT NULL AND length(embedding) > 0").
		Order("timestamp DESC").
		Limit(maxSemanticScan).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: search_by_embedding: %w", err)
	}

	var candidates []scoredItem
	for _, r := range rows {
		it := itemFromRow(r)
		if len(it.Embedding) != len(v) {
			continue
		}
		candidates = append(candidates, scoredItem{it, cosineSimilarity(v, it.Embedding)})
	}

	sortScoredDesc(candidates)

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]model.Item, len(candidates))
	for i, c := range candidates {
		out[i] = c.item
	}
	return out, nil
}

type scoredItem struct {
	item  model.Item
	score float32
}

func sortScoredDesc(s []scoredItem) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].score > s[j-1].score; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

func cosineSimilarity(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

// ContentExists implements §4.3's content_exists: an exact blob match, plus
// the OCR-vs-text dedup rule of §4.8 — a non-empty text candidate also
// counts as a duplicate when its trimmed form equals the trimmed OCR text
// of any existing image.
func (s *Store) ContentExists(ctx context.Context, content []byte) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&row{}).Where("content = ?", content).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("store: content_exists: %w", err)
	}
	if count > 0 {
		return true, nil
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return false, nil
	}

	var ocrRows []string
	err = s.db.WithContext(ctx).Model(&row{}).
		Where("content_type = 'Image' AND ocr_text != ''").
		Pluck("ocr_text", &ocrRows).Error
	if err != nil {
		return false, fmt.Errorf("store: content_exists ocr scan: %w", err)
	}
	for _, ocr := range ocrRows {
		if strings.TrimSpace(ocr) == trimmed {
			return true, nil
		}
	}
	return false, nil
}
