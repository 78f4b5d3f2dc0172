// Package search implements C9: query expansion and the hybrid
// exact/FTS/semantic search merge with strict lane priority.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sathamlet92/clipboard/internal/model"
)

// Store is the subset of *store.Store the search engine needs.
type Store interface {
	SearchExact(ctx context.Context, q string, limit int) ([]model.Item, error)
	SearchFTS(ctx context.Context, q string, limit int) ([]model.Item, error)
	SearchByEmbedding(ctx context.Context, v []float32, limit int) ([]model.Item, error)
	GetRecent(ctx context.Context, limit int) ([]model.Item, error)
}

// Embedder is C7's surface, needed to embed the query for the semantic lane.
type Embedder interface {
	Available() bool
	GenerateEmbedding(text string) []float32
}

// laneFactor bounds each lane's fetch size relative to the requested limit,
// per §4.9's "capped by limit x factor per lane".
const laneFactor = 3

// minSemanticTermLen is §4.9's |term| >= 3 gate for the semantic lane.
const minSemanticTermLen = 3

// Engine is the §4.9 capability.
type Engine struct {
	store    Store
	embedder Embedder
}

// New builds an Engine. embedder may be nil, in which case the semantic
// lane is always skipped.
func New(st Store, embedder Embedder) *Engine {
	return &Engine{store: st, embedder: embedder}
}

// Search implements the full §4.9 pipeline: expand, run three lanes per
// term, merge with EXACT > FTS > SEMANTIC priority, dedup by id, cap at
// limit. An empty query returns the most recent items.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]model.Item, error) {
	if limit <= 0 {
		limit = 50
	}

	terms := ExpandQuery(query)
	if len(terms) == 0 {
		return e.store.GetRecent(ctx, limit)
	}

	laneLimit := limit * laneFactor

	var exact, fts, semantic []model.Item
	seenExact := map[uint64]bool{}
	seenFTS := map[uint64]bool{}
	seenSemantic := map[uint64]bool{}

	for _, term := range terms {
		items, err := e.store.SearchExact(ctx, term, laneLimit)
		if err != nil {
			return nil, fmt.Errorf("search: exact lane: %w", err)
		}
		exact = appendDeduped(exact, seenExact, items, laneLimit)

		items, err = e.searchFTSLane(ctx, term, laneLimit)
		if err != nil {
			return nil, fmt.Errorf("search: fts lane: %w", err)
		}
		fts = appendDeduped(fts, seenFTS, items, laneLimit)

		if e.embedder != nil && e.embedder.Available() && len(term) >= minSemanticTermLen {
			vec := e.embedder.GenerateEmbedding(term)
			if len(vec) > 0 {
				items, err = e.store.SearchByEmbedding(ctx, vec, laneLimit)
				if err != nil {
					return nil, fmt.Errorf("search: semantic lane: %w", err)
				}
				semantic = appendDeduped(semantic, seenSemantic, items, laneLimit)
			}
		}
	}

	exact = resortExactLane(exact, terms[0])

	return mergeLanes(limit, exact, fts, semantic), nil
}

func (e *Engine) searchFTSLane(ctx context.Context, term string, laneLimit int) ([]model.Item, error) {
	ftsQuery := term
	if strings.ContainsAny(term, " \t") {
		ftsQuery = `"` + term + `"`
	}
	items, err := e.store.SearchFTS(ctx, ftsQuery, laneLimit)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 && ftsQuery != term {
		items, err = e.store.SearchFTS(ctx, term, laneLimit)
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}

func appendDeduped(dst []model.Item, seen map[uint64]bool, items []model.Item, cap int) []model.Item {
	for _, it := range items {
		if len(dst) >= cap {
			break
		}
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		dst = append(dst, it)
	}
	return dst
}

// exactMatchClass ranks an item within the exact lane: 0 = equals the
// query, 1 = prefix match, 2 = everything else.
func exactMatchClass(it model.Item, query string) int {
	text := strings.ToLower(it.TextContent())
	q := strings.ToLower(query)
	switch {
	case text == q:
		return 0
	case strings.HasPrefix(text, q):
		return 1
	default:
		return 2
	}
}

// resortExactLane implements §4.9's exact-lane re-sort: equal > prefix >
// other, then timestamp descending within each class. A stable insertion
// sort mirrors the store's own scored-list sort style.
func resortExactLane(items []model.Item, query string) []model.Item {
	classes := make([]int, len(items))
	for i, it := range items {
		classes[i] = exactMatchClass(it, query)
	}
	for i := 1; i < len(items); i++ {
		for j := i; j > 0; j-- {
			if classes[j] < classes[j-1] ||
				(classes[j] == classes[j-1] && items[j].TimestampMillis > items[j-1].TimestampMillis) {
				items[j], items[j-1] = items[j-1], items[j]
				classes[j], classes[j-1] = classes[j-1], classes[j]
			} else {
				break
			}
		}
	}
	return items
}

// mergeLanes implements §4.9's strict-priority merge: EXACT, then FTS, then
// SEMANTIC, deduplicated by id and capped at limit.
func mergeLanes(limit int, lanes ...[]model.Item) []model.Item {
	seen := map[uint64]bool{}
	out := make([]model.Item, 0, limit)
	for _, lane := range lanes {
		for _, it := range lane {
			if len(out) >= limit {
				return out
			}
			if seen[it.ID] {
				continue
			}
			seen[it.ID] = true
			out = append(out, it)
		}
	}
	return out
}
