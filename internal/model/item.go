// Package model defines the persistent clipboard item and its content-type
// variant, shared by the store, classifier, enrichment pipeline and search
// engine.
package model

import (
	"database/sql/driver"
	"fmt"
)

// ContentType is the classified variant of a clipboard item's payload.
type ContentType int

const (
	Text ContentType = iota
	Code
	Image
	URL
)

// contentTypeLabels mirrors ContentType as the stable string stored in
// clipboard_items.content_type.
var contentTypeLabels = [...]string{"Text", "Code", "Image", "Url"}

// String returns the stable label used in storage and logs.
func (t ContentType) String() string {
	if int(t) < 0 || int(t) >= len(contentTypeLabels) {
		return "Text"
	}
	return contentTypeLabels[t]
}

// ParseContentType maps a stored label back to a ContentType, defaulting to
// Text for unrecognized labels.
func ParseContentType(label string) ContentType {
	for i, l := range contentTypeLabels {
		if l == label {
			return ContentType(i)
		}
	}
	return Text
}

// Value implements driver.Valuer so ContentType can be written directly by
// GORM as its stable text label.
func (t ContentType) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner, the inverse of Value.
func (t *ContentType) Scan(v any) error {
	switch s := v.(type) {
	case string:
		*t = ParseContentType(s)
	case []byte:
		*t = ParseContentType(string(s))
	case nil:
		*t = Text
	default:
		return fmt.Errorf("model: cannot scan %T into ContentType", v)
	}
	return nil
}

// Item is the single persistent clipboard history entity (§3 of the spec).
//
// Embedding is stored packed as little-endian float32 in the store and
// unpacked here as a float32 slice; for non-image items, CodeLanguage
// non-empty must always imply Type == Code, enforced by Normalize on every
// read and write. Images may carry a non-empty CodeLanguage (OCR text
// detected as code) while remaining Type == Image, per §4.8.
type Item struct {
	ID                uint64
	Content           []byte
	Type              ContentType
	MimeType          string
	SourceApp         string
	TimestampMillis   int64
	OCRText           string
	CodeLanguage      string
	Embedding         []float32
	IsPassword        bool
	IsEncrypted       bool
	Metadata          string
	Thumbnail         []byte
}

// Normalize enforces the invariant CodeLanguage != "" <=> Type == Code for
// non-image items. Images are exempt: OCR text may be classified as code
// (CodeLanguage set) while Type stays Image, per §4.8's "still labeled as
// image — type remains Image for images". It must be called after any read
// that reconstructs an Item from storage and before any write.
func (it *Item) Normalize() {
	if it.Type == Image {
		return
	}
	if it.CodeLanguage != "" {
		it.Type = Code
	} else if it.Type == Code {
		it.Type = Text
	}
}

// ContentTypeLabel mirrors Type as the stable text stored alongside it.
func (it *Item) ContentTypeLabel() string {
	return it.Type.String()
}

// TextContent returns Content decoded as UTF-8 text, or "" for images (whose
// Content is encoded image bytes, never indexed as text).
func (it *Item) TextContent() string {
	if it.Type == Image {
		return ""
	}
	return string(it.Content)
}
