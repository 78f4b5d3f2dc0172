package store

// row is the GORM-mapped shape of clipboard_items (§4.3). Column order and
// names mirror the schema table in the spec exactly so the manual migration
// in migrate.go can diff against it.
type row struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Content      []byte `gorm:"column:content;not null"`
	ContentType  string `gorm:"column:content_type;not null"`
	OCRText      string `gorm:"column:ocr_text"`
	Embedding    []byte `gorm:"column:embedding"`
	SourceApp    string `gorm:"column:source_app"`
	Timestamp    int64  `gorm:"column:timestamp;not null"`
	IsPassword   bool   `gorm:"column:is_password;not null;default:false"`
	IsEncrypted  bool   `gorm:"column:is_encrypted;not null;default:false"`
	Metadata     string `gorm:"column:metadata"`
	Thumbnail    []byte `gorm:"column:thumbnail"`
	CodeLanguage string `gorm:"column:code_language"`
}

func (row) TableName() string { return "clipboard_items" }

// configRow backs the config(key, value) table (§4.3).
type configRow struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value;not null"`
}

func (configRow) TableName() string { return "config" }

// schemaColumns lists clipboard_items columns in declaration order, used by
// the manual migration to detect what is missing from an older database.
var schemaColumns = []struct {
	name string
	ddl  string
}{
	{"id", "INTEGER"},
	{"content", "BLOB NOT NULL"},
	{"content_type", "TEXT NOT NULL DEFAULT 'Text'"},
	{"ocr_text", "TEXT"},
	{"embedding", "BLOB"},
	{"source_app", "TEXT"},
	{"timestamp", "INTEGER NOT NULL DEFAULT 0"},
	{"is_password", "BOOL NOT NULL DEFAULT 0"},
	{"is_encrypted", "BOOL NOT NULL DEFAULT 0"},
	{"metadata", "TEXT"},
	{"thumbnail", "BLOB"},
	{"code_language", "TEXT"},
}
