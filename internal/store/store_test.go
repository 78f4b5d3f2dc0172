package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Sathamlet92/clipboard/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	it := &model.Item{
		Content:         []byte("hello world"),
		Type:            model.Text,
		SourceApp:       "firefox",
		TimestampMillis: 1000,
	}
	id, err := s.Insert(ctx, it)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected nonzero id")
	}

	got, ok, err := s.Get(ctx, id)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(got.Content) != "hello world" || got.Type != model.Text {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestCodeLanguageInvariant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	it := &model.Item{Content: []byte("x"), Type: model.Text, TimestampMillis: 1}
	id, err := s.Insert(ctx, it)
	if err != nil {
		t.Fatal(err)
	}

	it.ID = id
	it.CodeLanguage = "JSON"
	if err := s.Update(ctx, it); err != nil {
		t.Fatal(err)
	}

	got, _, _ := s.Get(ctx, id)
	if got.Type != model.Code {
		t.Errorf("expected Code after setting code_language, got %v", got.Type)
	}
}

func TestContentExistsDedup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exists, err := s.ContentExists(ctx, []byte("abc"))
	if err != nil || exists {
		t.Fatalf("expected not found, got exists=%v err=%v", exists, err)
	}

	if _, err := s.Insert(ctx, &model.Item{Content: []byte("abc"), Type: model.Text, TimestampMillis: 1}); err != nil {
		t.Fatal(err)
	}
	exists, err = s.ContentExists(ctx, []byte("abc"))
	if err != nil || !exists {
		t.Fatalf("expected duplicate detected, got exists=%v err=%v", exists, err)
	}

	img := &model.Item{Content: []byte("PNGDATA"), Type: model.Image, TimestampMillis: 2, OCRText: "class Foo {}"}
	if _, err := s.Insert(ctx, img); err != nil {
		t.Fatal(err)
	}
	exists, err = s.ContentExists(ctx, []byte("  class Foo {}  "))
	if err != nil || !exists {
		t.Fatalf("expected text-vs-ocr dedup to trigger, got exists=%v err=%v", exists, err)
	}
}

func TestSearchExactAndFTS(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Insert(ctx, &model.Item{Content: []byte("class Foo {}"), Type: model.Code, CodeLanguage: "C#", TimestampMillis: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Insert(ctx, &model.Item{Content: []byte("unrelated text"), Type: model.Text, TimestampMillis: 2}); err != nil {
		t.Fatal(err)
	}

	exact, err := s.SearchExact(ctx, "Foo", 10)
	if err != nil || len(exact) != 1 {
		t.Fatalf("SearchExact: len=%d err=%v", len(exact), err)
	}

	fts, err := s.SearchFTS(ctx, "Foo", 10)
	if err != nil || len(fts) != 1 {
		t.Fatalf("SearchFTS: len=%d err=%v", len(fts), err)
	}
}

func TestSearchByEmbeddingRanksBySimilarity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Insert(ctx, &model.Item{Content: []byte("a"), Type: model.Text, TimestampMillis: 1, Embedding: []float32{1, 0}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Insert(ctx, &model.Item{Content: []byte("b"), Type: model.Text, TimestampMillis: 2, Embedding: []float32{0, 1}}); err != nil {
		t.Fatal(err)
	}

	results, err := s.SearchByEmbedding(ctx, []float32{0.9, 0.1}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || string(results[0].Content) != "a" {
		t.Fatalf("expected [a,b] order, got %v", results)
	}
}

func TestMigrationIdempotence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s1, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	cols1, err := s1.existingColumns()
	if err != nil {
		t.Fatal(err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	cols2, err := s2.existingColumns()
	if err != nil {
		t.Fatal(err)
	}

	if len(cols1) != len(cols2) {
		t.Errorf("column set changed across re-open: %v vs %v", cols1, cols2)
	}
}

func TestDeleteAndDeleteAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, _ := s.Insert(ctx, &model.Item{Content: []byte("x"), Type: model.Text, TimestampMillis: 1})
	ok, err := s.Delete(ctx, id)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	ok, err = s.Delete(ctx, id)
	if err != nil || ok {
		t.Fatalf("second Delete should be no-op: ok=%v err=%v", ok, err)
	}

	s.Insert(ctx, &model.Item{Content: []byte("y"), Type: model.Text, TimestampMillis: 2})
	s.Insert(ctx, &model.Item{Content: []byte("z"), Type: model.Text, TimestampMillis: 3})
	if err := s.DeleteAll(ctx); err != nil {
		t.Fatal(err)
	}
	items, err := s.GetRecent(ctx, 10)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty store after DeleteAll, got %d items, err=%v", len(items), err)
	}
}
