// Package config centralizes the on-disk paths under $HOME/.clipboard-manager
// (home resolved via xdg.Home) and a SetupLogging helper for the slog
// wiring, generalized from the teacher's cmd/root.go.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// appDirName is §6's fixed, non-XDG home directory: $HOME/.clipboard-manager.
const appDirName = ".clipboard-manager"

// Paths resolves every on-disk location named in §6's "Persisted state".
type Paths struct {
	Root string
}

// New resolves Paths against $HOME, via xdg.Home (the same resolved-home
// var the teacher's cmd/root.go reads xdg.DataHome alongside). HOME is
// required, per §6.
func New() (Paths, error) {
	if xdg.Home == "" {
		return Paths{}, errors.New("config: HOME is required")
	}
	return Paths{Root: filepath.Join(xdg.Home, appDirName)}, nil
}

// DatabasePath is the single store file (§4.3).
func (p Paths) DatabasePath() string {
	return filepath.Join(p.Root, "clipboard.db")
}

// EmbeddingModelPath is C7's ONNX model file.
func (p Paths) EmbeddingModelPath() string {
	return filepath.Join(p.Root, "models", "ml", "embedding-model.onnx")
}

// LanguageModelPath is C6's ONNX model file.
func (p Paths) LanguageModelPath() string {
	return filepath.Join(p.Root, "models", "language-detection", "model.onnx")
}

// LanguageModelDir holds vocab.json, merges.txt and labels.txt alongside
// LanguageModelPath.
func (p Paths) LanguageModelDir() string {
	return filepath.Join(p.Root, "models", "language-detection")
}

// TessdataDir is the user-local OCR language data directory, tried before
// falling back to /usr/share/tessdata (§6).
func (p Paths) TessdataDir() string {
	return filepath.Join(p.Root, "models", "tessdata")
}

// EnsureRoot creates Root (and its parents) if absent.
func (p Paths) EnsureRoot() error {
	return os.MkdirAll(p.Root, 0o755)
}

// DefaultDaemonAddress is §6's daemon default address.
const DefaultDaemonAddress = "unix:///tmp/clipboard-daemon.sock"
