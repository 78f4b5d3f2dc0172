// Package paste invokes the platform clipboard writer and URL opener named
// in §6's external interfaces, generalized from the teacher's set command
// (which shelled out to wl-copy directly).
package paste

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/Sathamlet92/clipboard/internal/model"
)

// ToClipboard writes it back to the system clipboard via wl-copy. Images
// and text both go through stdin; wl-copy infers handling from --type when
// a mime type is given.
func ToClipboard(it model.Item) error {
	args := []string{}
	if it.MimeType != "" {
		args = append(args, "--type", it.MimeType)
	}
	cmd := exec.Command("wl-copy", args...)
	cmd.Stdin = bytes.NewReader(it.Content)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("paste: wl-copy: %w", err)
	}
	return nil
}

// OpenURL hands url to xdg-open, used for URL-classified items.
func OpenURL(url string) error {
	if err := exec.Command("xdg-open", url).Run(); err != nil {
		return fmt.Errorf("paste: xdg-open: %w", err)
	}
	return nil
}
