// Package ocr is C5's black-box text-extraction boundary: image bytes in,
// recognized text out, backed by the Tesseract engine.
package ocr

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Engine lazily wraps a Tesseract client. A failed first use permanently
// disables it for the process lifetime, mirroring the ML adapters.
type Engine struct {
	dataPathCandidates []string

	once    sync.Once
	client  *gosseract.Client
	disable string
}

// New returns an Engine that prefers a user-local tessdata directory and
// falls back to the system-wide install location.
func New(userTessdataDir string) *Engine {
	return &Engine{
		dataPathCandidates: []string{
			userTessdataDir,
			"/usr/share/tessdata",
			"/usr/share/tesseract-ocr/5/tessdata",
			"/usr/share/tesseract-ocr/4.00/tessdata",
		},
	}
}

func (e *Engine) init() {
	e.once.Do(func() {
		dataPath := e.resolveDataPath()
		if dataPath == "" {
			e.disable = "ocr: no tessdata directory found"
			slog.Warn("ocr disabled", "reason", e.disable)
			return
		}

		client := gosseract.NewClient()
		if err := client.SetTessdataPrefix(dataPath); err != nil {
			e.disable = err.Error()
			slog.Warn("ocr disabled", "reason", err)
			client.Close()
			return
		}

		e.client = client
	})
}

func (e *Engine) resolveDataPath() string {
	for _, dir := range e.dataPathCandidates {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

// Available reports whether the OCR engine initialized successfully.
func (e *Engine) Available() bool {
	e.init()
	return e.disable == ""
}

// ExtractText runs Tesseract over image bytes and returns the recognized
// text, or "" if OCR is unavailable or recognition fails.
func (e *Engine) ExtractText(image []byte) string {
	e.init()
	if e.disable != "" || len(image) == 0 {
		return ""
	}

	if err := e.client.SetImageFromBytes(image); err != nil {
		slog.Debug("ocr set image failed", "error", err)
		return ""
	}

	text, err := e.client.Text()
	if err != nil {
		slog.Debug("ocr recognition failed", "error", err)
		return ""
	}
	return text
}

// Close releases the underlying Tesseract client, if one was ever created.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// DefaultUserTessdataDir returns the per-user tessdata location under home,
// the same directory config.Paths.TessdataDir resolves.
func DefaultUserTessdataDir(home string) string {
	return filepath.Join(home, ".clipboard-manager", "models", "tessdata")
}
