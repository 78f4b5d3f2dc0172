package enrich

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Sathamlet92/clipboard/internal/model"
)

type fakeStore struct {
	mu      sync.Mutex
	items   map[uint64]model.Item
	nextID  uint64
	exists  map[string]bool
	updates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: map[uint64]model.Item{}, exists: map[string]bool{}}
}

func (f *fakeStore) ContentExists(ctx context.Context, content []byte) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exists[string(content)], nil
}

func (f *fakeStore) Insert(ctx context.Context, it *model.Item) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	it.ID = f.nextID
	f.items[it.ID] = *it
	f.exists[string(it.Content)] = true
	return it.ID, nil
}

func (f *fakeStore) Get(ctx context.Context, id uint64) (model.Item, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	return it, ok, nil
}

func (f *fakeStore) Update(ctx context.Context, it *model.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	it.Normalize()
	f.items[it.ID] = *it
	f.updates++
	return nil
}

type fakeDetector struct{ label string }

func (f fakeDetector) DetectCodeLanguage(text string) string { return f.label }

type fakeEmbedder struct {
	available bool
	vec       []float32
}

func (f fakeEmbedder) Available() bool                        { return f.available }
func (f fakeEmbedder) GenerateEmbedding(text string) []float32 { return f.vec }

type fakeOCR struct {
	available bool
	text      string
}

func (f fakeOCR) Available() bool               { return f.available }
func (f fakeOCR) ExtractText(image []byte) string { return f.text }

func waitForUpdates(t *testing.T, st *fakeStore, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st.mu.Lock()
		got := st.updates
		st.mu.Unlock()
		if got >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d updates", n)
}

func TestHandleDropsEmptyPayload(t *testing.T) {
	st := newFakeStore()
	p := New(st, nil, nil, nil, nil)
	_, ok, err := p.Handle(context.Background(), Event{})
	if err != nil || ok {
		t.Fatalf("expected drop, got ok=%v err=%v", ok, err)
	}
}

func TestHandleDropsDuplicate(t *testing.T) {
	st := newFakeStore()
	p := New(st, nil, nil, nil, nil)
	ev := Event{Data: []byte("hello"), TimestampMS: 1}
	_, ok, err := p.Handle(context.Background(), ev)
	if err != nil || !ok {
		t.Fatalf("first insert should succeed, got ok=%v err=%v", ok, err)
	}
	_, ok, err = p.Handle(context.Background(), ev)
	if err != nil || ok {
		t.Fatalf("duplicate should be dropped, got ok=%v err=%v", ok, err)
	}
}

func TestHandleClassifiesURL(t *testing.T) {
	st := newFakeStore()
	p := New(st, nil, nil, nil, nil)
	id, ok, err := p.Handle(context.Background(), Event{Data: []byte("https://example.com/path"), TimestampMS: 1})
	if err != nil || !ok {
		t.Fatalf("insert failed: ok=%v err=%v", ok, err)
	}
	it, _, _ := st.Get(context.Background(), id)
	if it.Type != model.URL {
		t.Errorf("expected URL classification, got %v", it.Type)
	}
}

func TestHandleClassifiesImageByMime(t *testing.T) {
	st := newFakeStore()
	p := New(st, nil, nil, nil, nil)
	id, ok, err := p.Handle(context.Background(), Event{Data: []byte{0x89, 0x50}, MimeType: "image/png", TimestampMS: 1})
	if err != nil || !ok {
		t.Fatalf("insert failed: ok=%v err=%v", ok, err)
	}
	it, _, _ := st.Get(context.Background(), id)
	if it.Type != model.Image {
		t.Errorf("expected Image classification, got %v", it.Type)
	}
}

func TestLanguageDetectionEnrichesTextItem(t *testing.T) {
	st := newFakeStore()
	var notified int
	var mu sync.Mutex
	p := New(st, fakeDetector{label: "Go"}, nil, nil, func() {
		mu.Lock()
		notified++
		mu.Unlock()
	})
	id, ok, err := p.Handle(context.Background(), Event{Data: []byte("package main"), TimestampMS: 1})
	if err != nil || !ok {
		t.Fatalf("insert failed: ok=%v err=%v", ok, err)
	}
	waitForUpdates(t, st, 1)
	it, _, _ := st.Get(context.Background(), id)
	if it.CodeLanguage != "Go" || it.Type != model.Code {
		t.Errorf("expected Go/Code, got %q/%v", it.CodeLanguage, it.Type)
	}
	mu.Lock()
	defer mu.Unlock()
	if notified == 0 {
		t.Error("expected items_updated notification")
	}
}

func TestEmbeddingSkippedWhenUnavailable(t *testing.T) {
	st := newFakeStore()
	p := New(st, nil, fakeEmbedder{available: false}, nil, nil)
	id, ok, err := p.Handle(context.Background(), Event{Data: []byte("hello"), TimestampMS: 1})
	if err != nil || !ok {
		t.Fatalf("insert failed: ok=%v err=%v", ok, err)
	}
	time.Sleep(20 * time.Millisecond)
	it, _, _ := st.Get(context.Background(), id)
	if it.Embedding != nil {
		t.Errorf("expected no embedding, got %v", it.Embedding)
	}
}

func TestOCREnrichesImageAndReembeds(t *testing.T) {
	st := newFakeStore()
	p := New(st,
		fakeDetector{label: ""},
		fakeEmbedder{available: true, vec: []float32{1, 2, 3}},
		fakeOCR{available: true, text: "recognized text"},
		nil,
	)
	id, ok, err := p.Handle(context.Background(), Event{Data: []byte{0x1, 0x2}, MimeType: "image/png", TimestampMS: 1})
	if err != nil || !ok {
		t.Fatalf("insert failed: ok=%v err=%v", ok, err)
	}
	waitForUpdates(t, st, 2)
	it, _, _ := st.Get(context.Background(), id)
	if it.OCRText != "recognized text" {
		t.Errorf("expected OCR text, got %q", it.OCRText)
	}
	if it.Type != model.Image {
		t.Errorf("expected type to remain Image, got %v", it.Type)
	}
	if len(it.Embedding) == 0 {
		t.Error("expected an embedding to be set from OCR text")
	}
}

func TestOCRDetectsCodeLanguageButKeepsImageType(t *testing.T) {
	st := newFakeStore()
	p := New(st,
		fakeDetector{label: "C#"},
		fakeEmbedder{available: true, vec: []float32{1, 2, 3}},
		fakeOCR{available: true, text: "class Foo {}"},
		nil,
	)
	id, ok, err := p.Handle(context.Background(), Event{Data: []byte{0x1, 0x2}, MimeType: "image/png", TimestampMS: 1})
	if err != nil || !ok {
		t.Fatalf("insert failed: ok=%v err=%v", ok, err)
	}
	waitForUpdates(t, st, 2)
	it, _, _ := st.Get(context.Background(), id)
	if it.Type != model.Image {
		t.Errorf("expected type to remain Image per §4.8, got %v", it.Type)
	}
	if it.CodeLanguage != "C#" {
		t.Errorf("expected code_language to be set from OCR text, got %q", it.CodeLanguage)
	}
	if it.OCRText != "class Foo {}" {
		t.Errorf("expected OCR text, got %q", it.OCRText)
	}
}

func TestEmbeddingTextConcatenatesFields(t *testing.T) {
	it := model.Item{Content: []byte("hi"), OCRText: "ocr", CodeLanguage: "Go"}
	it.Normalize()
	got := embeddingText(it)
	want := "hi\nocr\nlanguage: Go\ntype: Code"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}
