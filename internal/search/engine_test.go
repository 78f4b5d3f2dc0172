package search

import (
	"context"
	"testing"

	"github.com/Sathamlet92/clipboard/internal/model"
)

type fakeStore struct {
	exact     map[string][]model.Item
	fts       map[string][]model.Item
	semantic  []model.Item
	recent    []model.Item
}

func (f *fakeStore) SearchExact(ctx context.Context, q string, limit int) ([]model.Item, error) {
	return f.exact[q], nil
}

func (f *fakeStore) SearchFTS(ctx context.Context, q string, limit int) ([]model.Item, error) {
	return f.fts[q], nil
}

func (f *fakeStore) SearchByEmbedding(ctx context.Context, v []float32, limit int) ([]model.Item, error) {
	return f.semantic, nil
}

func (f *fakeStore) GetRecent(ctx context.Context, limit int) ([]model.Item, error) {
	return f.recent, nil
}

type fakeEmbedder struct{ vec []float32 }

func (f fakeEmbedder) Available() bool                        { return true }
func (f fakeEmbedder) GenerateEmbedding(text string) []float32 { return f.vec }

func TestSearchEmptyQueryReturnsRecent(t *testing.T) {
	st := &fakeStore{recent: []model.Item{{ID: 1}, {ID: 2}}}
	e := New(st, nil)
	got, err := e.Search(context.Background(), "  ", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 recent items, got %d", len(got))
	}
}

func TestSearchExactBeatsFTSBeatsSemantic(t *testing.T) {
	st := &fakeStore{
		exact:    map[string][]model.Item{"hello": {{ID: 1}}},
		fts:      map[string][]model.Item{"hello": {{ID: 2}}},
		semantic: []model.Item{{ID: 3}},
	}
	e := New(st, fakeEmbedder{vec: []float32{1, 2, 3}})
	got, err := e.Search(context.Background(), "hello", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].ID != 1 || got[1].ID != 2 || got[2].ID != 3 {
		t.Fatalf("expected [1 2 3] priority order, got %v", ids(got))
	}
}

func TestSearchDedupsAcrossLanes(t *testing.T) {
	st := &fakeStore{
		exact:    map[string][]model.Item{"hello": {{ID: 1}}},
		fts:      map[string][]model.Item{"hello": {{ID: 1}, {ID: 2}}},
		semantic: []model.Item{{ID: 1}, {ID: 2}, {ID: 3}},
	}
	e := New(st, fakeEmbedder{vec: []float32{1}})
	got, err := e.Search(context.Background(), "hello", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 unique items, got %v", ids(got))
	}
}

func TestSearchRespectsLimit(t *testing.T) {
	st := &fakeStore{
		exact: map[string][]model.Item{"hello": {{ID: 1}, {ID: 2}, {ID: 3}}},
	}
	e := New(st, nil)
	got, err := e.Search(context.Background(), "hello", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
}

func TestSearchSkipsSemanticForShortTerms(t *testing.T) {
	st := &fakeStore{semantic: []model.Item{{ID: 1}}}
	e := New(st, fakeEmbedder{vec: []float32{1}})
	got, err := e.Search(context.Background(), "xy", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results (semantic gated by |term|>=3 and no exact/fts fixtures), got %v", ids(got))
	}
}

func TestFTSLaneQuotesMultiWordTerms(t *testing.T) {
	st := &fakeStore{fts: map[string][]model.Item{`"hello world"`: {{ID: 5}}}}
	e := &Engine{store: st}
	items, err := e.searchFTSLane(context.Background(), "hello world", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != 5 {
		t.Fatalf("expected quoted-phrase match, got %v", ids(items))
	}
}

func TestFTSLaneFallsBackToRawTermWhenPhraseEmpty(t *testing.T) {
	st := &fakeStore{fts: map[string][]model.Item{"hello world": {{ID: 6}}}}
	e := &Engine{store: st}
	items, err := e.searchFTSLane(context.Background(), "hello world", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != 6 {
		t.Fatalf("expected raw-term fallback match, got %v", ids(items))
	}
}

func TestResortExactLaneOrdersEqualThenPrefixThenOther(t *testing.T) {
	items := []model.Item{
		{ID: 1, Content: []byte("hello world"), TimestampMillis: 1},
		{ID: 2, Content: []byte("hello"), TimestampMillis: 2},
		{ID: 3, Content: []byte("xhellox"), TimestampMillis: 3},
	}
	got := resortExactLane(items, "hello")
	if got[0].ID != 2 {
		t.Errorf("expected exact match first, got %v", ids(got))
	}
	if got[1].ID != 1 {
		t.Errorf("expected prefix match second, got %v", ids(got))
	}
	if got[2].ID != 3 {
		t.Errorf("expected other match last, got %v", ids(got))
	}
}

func TestResortExactLaneOrdersByTimestampWithinClass(t *testing.T) {
	items := []model.Item{
		{ID: 1, Content: []byte("zzz"), TimestampMillis: 1},
		{ID: 2, Content: []byte("zzz"), TimestampMillis: 5},
	}
	got := resortExactLane(items, "hello")
	if got[0].ID != 2 {
		t.Errorf("expected newer item first within same class, got %v", ids(got))
	}
}

func ids(items []model.Item) []uint64 {
	out := make([]uint64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
