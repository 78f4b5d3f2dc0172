package model

import "testing"

func TestNormalizeSetsCodeForNonImage(t *testing.T) {
	it := Item{Type: Text, CodeLanguage: "Go"}
	it.Normalize()
	if it.Type != Code {
		t.Errorf("expected Code, got %v", it.Type)
	}
}

func TestNormalizeClearsCodeWhenLanguageEmpty(t *testing.T) {
	it := Item{Type: Code}
	it.Normalize()
	if it.Type != Text {
		t.Errorf("expected Text, got %v", it.Type)
	}
}

func TestNormalizeKeepsImageTypeWithCodeLanguage(t *testing.T) {
	it := Item{Type: Image, CodeLanguage: "C#"}
	it.Normalize()
	if it.Type != Image {
		t.Errorf("expected Image to survive a non-empty code_language, got %v", it.Type)
	}
	if it.CodeLanguage != "C#" {
		t.Errorf("expected code_language to be preserved, got %q", it.CodeLanguage)
	}
}
