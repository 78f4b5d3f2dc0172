package classify

import "testing"

func TestIsURLLike(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"plain https", "https://example.com/path", true},
		{"with www", "https://www.example.com", true},
		{"trimmed", "  https://example.com  ", true},
		{"not url", "hello world", false},
		{"newline rejected", "https://example.com\nfoo", false},
		{"too long", "https://example.com/" + string(make([]byte, maxURLLength)), false},
		{"ftp unsupported", "ftp://example.com", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsURLLike(c.in); got != c.want {
				t.Errorf("IsURLLike(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestIsJSONLike(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"simple object", `{"a":1}`, true},
		{"array", `[1,2,3]`, true},
		{"nested", `{"a":{"b":[1,2]}}`, true},
		{"object without colon", `{"a"}`, false},
		{"unbalanced", `{"a":1`, false},
		{"colon inside string only", `["a:b"]`, true},
		{"plain text", "hello", false},
		{"escaped quote", `{"a":"\""}`, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsJSONLike(c.in); got != c.want {
				t.Errorf("IsJSONLike(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

type fakeDetector string

func (f fakeDetector) DetectCodeLanguage(string) string { return string(f) }

func TestDetectCodeLanguage(t *testing.T) {
	if got := DetectCodeLanguage(fakeDetector("C#"), `{"a":1}`); got != "C#" {
		t.Errorf("detector label should win, got %q", got)
	}
	if got := DetectCodeLanguage(fakeDetector(""), `{"a":1}`); got != "JSON" {
		t.Errorf("should fall back to JSON, got %q", got)
	}
	if got := DetectCodeLanguage(nil, "plain text"); got != "" {
		t.Errorf("should return empty, got %q", got)
	}
}
