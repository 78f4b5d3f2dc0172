package wayland

import "testing"

func TestMimeTierOrdering(t *testing.T) {
	cases := []struct{ a, b string }{
		{"image/png", "text/plain"},
		{"text/plain", "UTF8_STRING"},
		{"UTF8_STRING", "text/markdown"},
		{"text/markdown", "application/octet-stream"},
	}
	for _, c := range cases {
		if mimeTier(c.a) >= mimeTier(c.b) {
			t.Errorf("expected %q to rank higher than %q", c.a, c.b)
		}
	}
}

func TestMimeTierRejectsMetadata(t *testing.T) {
	for _, m := range []string{"SAVE_TARGETS", "TARGETS", "MULTIPLE", "TIMESTAMP", "chromium/x-source-url"} {
		if mimeTier(m) != -1 {
			t.Errorf("expected %q to be rejected as metadata", m)
		}
	}
}

func TestMimeChoiceStickyImage(t *testing.T) {
	var c mimeChoice
	c.consider("text/plain")
	c.consider("image/png")
	c.consider("text/plain;charset=utf-8")
	if c.chosen != "image/png" {
		t.Fatalf("expected image/png to stick, got %q", c.chosen)
	}
}

func TestMimeChoicePrefersHigherTier(t *testing.T) {
	var c mimeChoice
	c.consider("text/markdown")
	c.consider("text/plain")
	if c.chosen != "text/plain" {
		t.Fatalf("expected text/plain to win over text/markdown, got %q", c.chosen)
	}
}

func TestMimeChoiceIgnoresMetadata(t *testing.T) {
	var c mimeChoice
	c.consider("TARGETS")
	if c.chosen != "" {
		t.Fatalf("expected metadata to be ignored, got %q", c.chosen)
	}
}

func TestMimeChoiceReset(t *testing.T) {
	var c mimeChoice
	c.consider("image/png")
	c.reset()
	if c.chosen != "" || c.haveImage {
		t.Fatal("expected reset to clear the choice")
	}
	c.consider("text/plain")
	if c.chosen != "text/plain" {
		t.Fatalf("expected reset offer to accept a new mime, got %q", c.chosen)
	}
}
