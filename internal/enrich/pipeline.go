// Package enrich implements C8: the dedup/classify/insert pipeline driven
// by inbound transport events, followed by independent background
// enrichment tasks (language detection, embedding, OCR).
package enrich

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Sathamlet92/clipboard/internal/classify"
	"github.com/Sathamlet92/clipboard/internal/model"
)

// Store is the subset of *store.Store the pipeline needs.
type Store interface {
	ContentExists(ctx context.Context, content []byte) (bool, error)
	Insert(ctx context.Context, it *model.Item) (uint64, error)
	Get(ctx context.Context, id uint64) (model.Item, bool, error)
	Update(ctx context.Context, it *model.Item) error
}

// LanguageDetector is C6's surface, reused from classify.LanguageDetector.
type LanguageDetector = classify.LanguageDetector

// Embedder is C7's surface.
type Embedder interface {
	Available() bool
	GenerateEmbedding(text string) []float32
}

// OCR is C5's surface.
type OCR interface {
	Available() bool
	ExtractText(image []byte) string
}

// Event is the normalized form of an inbound ClipboardEvent (§6), already
// stripped of the transport's wire representation.
type Event struct {
	Data        []byte
	SourceApp   string
	WindowTitle string
	TimestampMS int64
	MimeType    string
}

// Pipeline is the §4.8 capability: dedup, classify, insert, then fan out
// background enrichment. nowFunc defaults to time.Now and exists for tests.
type Pipeline struct {
	store     Store
	detector  LanguageDetector
	embedder  Embedder
	ocr       OCR
	nowFunc   func() int64
	onUpdated func()
}

// New builds a Pipeline. detector, embedder and ocr may be nil, in which
// case the corresponding enrichment task is skipped entirely. onUpdated is
// invoked after every successful write; it may be nil.
func New(st Store, detector LanguageDetector, embedder Embedder, ocr OCR, onUpdated func()) *Pipeline {
	return &Pipeline{
		store:     st,
		detector:  detector,
		embedder:  embedder,
		ocr:       ocr,
		nowFunc:   func() int64 { return time.Now().UnixMilli() },
		onUpdated: onUpdated,
	}
}

// Handle implements §4.8 steps 1-5 for a single inbound event. It returns
// the inserted item's id and false if nothing was inserted (empty payload
// or duplicate).
func (p *Pipeline) Handle(ctx context.Context, ev Event) (uint64, bool, error) {
	isImage := looksLikeImage(ev.MimeType)

	dedupBytes := ev.Data
	if len(dedupBytes) == 0 {
		return 0, false, nil
	}

	exists, err := p.store.ContentExists(ctx, dedupBytes)
	if err != nil {
		return 0, false, err
	}
	if exists {
		return 0, false, nil
	}

	it := &model.Item{
		Content:         ev.Data,
		MimeType:        ev.MimeType,
		SourceApp:       ev.SourceApp,
		TimestampMillis: ev.TimestampMS,
		Metadata:        ev.WindowTitle,
	}
	if it.TimestampMillis == 0 {
		it.TimestampMillis = p.nowFunc()
	}

	if isImage {
		it.Type = model.Image
		it.MimeType = "image/png"
	} else {
		it.Type = model.Text
		if classify.IsURLLike(string(ev.Data)) {
			it.Type = model.URL
		}
	}

	id, err := p.store.Insert(ctx, it)
	if err != nil {
		return 0, false, err
	}

	p.spawnEnrichment(id, *it)
	return id, true, nil
}

func (p *Pipeline) spawnEnrichment(id uint64, inserted model.Item) {
	if inserted.Type == model.Text && p.detector != nil {
		go p.runLanguageDetection(id)
	}
	if p.embedder != nil && p.embedder.Available() {
		go p.runEmbedding(id)
	}
	if inserted.Type == model.Image && p.ocr != nil {
		go p.runOCR(id)
	}
}

func (p *Pipeline) notify() {
	if p.onUpdated != nil {
		p.onUpdated()
	}
}

func (p *Pipeline) runLanguageDetection(id uint64) {
	ctx := context.Background()
	it, ok, err := p.store.Get(ctx, id)
	if err != nil || !ok {
		return
	}
	label := classify.DetectCodeLanguage(p.detector, it.TextContent())
	if label == "" {
		return
	}
	it.Type = model.Code
	it.CodeLanguage = label
	if err := p.store.Update(ctx, &it); err != nil {
		slog.Debug("enrich: language detection update failed", "id", id, "error", err)
		return
	}
	p.notify()
}

func (p *Pipeline) runEmbedding(id uint64) {
	ctx := context.Background()
	it, ok, err := p.store.Get(ctx, id)
	if err != nil || !ok {
		return
	}
	vec := p.embedder.GenerateEmbedding(embeddingText(it))
	if len(vec) == 0 {
		return
	}
	it.Embedding = vec
	if err := p.store.Update(ctx, &it); err != nil {
		slog.Debug("enrich: embedding update failed", "id", id, "error", err)
		return
	}
	p.notify()
}

func (p *Pipeline) runOCR(id uint64) {
	ctx := context.Background()
	it, ok, err := p.store.Get(ctx, id)
	if err != nil || !ok {
		return
	}
	text := p.ocr.ExtractText(it.Content)
	if text == "" {
		return
	}
	it.OCRText = text
	if p.detector != nil {
		if label := classify.DetectCodeLanguage(p.detector, text); label != "" {
			it.CodeLanguage = label
		}
	}
	if p.embedder != nil && p.embedder.Available() {
		if vec := p.embedder.GenerateEmbedding(embeddingText(it)); len(vec) > 0 {
			it.Embedding = vec
		}
	}
	if err := p.store.Update(ctx, &it); err != nil {
		slog.Debug("enrich: ocr update failed", "id", id, "error", err)
		return
	}
	p.notify()
}

// embeddingText implements §4.8 step 5's embedding_text construction.
func embeddingText(it model.Item) string {
	var lines []string
	if txt := it.TextContent(); txt != "" {
		lines = append(lines, txt)
	}
	if it.OCRText != "" {
		lines = append(lines, it.OCRText)
	}
	if it.CodeLanguage != "" {
		lines = append(lines, "language: "+it.CodeLanguage)
	}
	lines = append(lines, "type: "+it.ContentTypeLabel())
	return strings.Join(lines, "\n")
}

func looksLikeImage(mime string) bool {
	return strings.HasPrefix(strings.ToLower(mime), "image/")
}
