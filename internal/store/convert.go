package store

import "github.com/Sathamlet92/clipboard/internal/model"

func rowFromItem(it *model.Item) row {
	return row{
		ID:           it.ID,
		Content:      it.Content,
		ContentType:  it.Type.String(),
		OCRText:      it.OCRText,
		Embedding:    packEmbedding(it.Embedding),
		SourceApp:    it.SourceApp,
		Timestamp:    it.TimestampMillis,
		IsPassword:   it.IsPassword,
		IsEncrypted:  it.IsEncrypted,
		Metadata:     it.Metadata,
		Thumbnail:    it.Thumbnail,
		CodeLanguage: it.CodeLanguage,
	}
}

// itemFromRow reconstructs an Item, recomputing Type from the stored label
// and then forcing Code whenever code_language is non-empty, except for
// images, which keep Type == Image regardless of code_language (§4.3's
// "forces Code" note, the invariant in §3, and §4.8's image exception).
func itemFromRow(r row) model.Item {
	it := model.Item{
		ID:              r.ID,
		Content:         r.Content,
		Type:            model.ParseContentType(r.ContentType),
		OCRText:         r.OCRText,
		Embedding:       unpackEmbedding(r.Embedding),
		SourceApp:       r.SourceApp,
		TimestampMillis: r.Timestamp,
		IsPassword:      r.IsPassword,
		IsEncrypted:     r.IsEncrypted,
		Metadata:        r.Metadata,
		Thumbnail:       r.Thumbnail,
		CodeLanguage:    r.CodeLanguage,
	}
	it.Normalize()
	return it
}
