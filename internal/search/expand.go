package search

import "strings"

// typoMap implements §4.9's small typo correction table.
var typoMap = map[string]string{
	"chsarp":     "csharp",
	"cahrp":      "csharp",
	"javascritp": "javascript",
	"pyhton":     "python",
}

// csharpFamily and codeFamily are the domain synonym groups added when the
// normalized query matches, per §4.9.
var csharpFamily = []string{"c#", "csharp", "c sharp", "cs", "dotnet", ".net", "code", "codigo"}
var codeFamily = []string{"code", "codigo", "código", "snippet", "programming"}

// codeIntentTokens are language names / code synonyms that, when present
// as the whole query or as one of its words, also pull in every codeFamily
// term.
var codeIntentTokens = map[string]bool{
	"c#": true, "csharp": true, "c sharp": true, "cs": true, "dotnet": true, ".net": true,
	"python": true, "javascript": true, "typescript": true, "java": true, "golang": true,
	"go": true, "rust": true, "ruby": true, "php": true, "kotlin": true, "swift": true,
	"code": true, "codigo": true, "código": true, "snippet": true, "programming": true,
}

// ExpandQuery implements §4.9's query expansion: trim/lower-case, apply the
// typo map, then extend with domain synonyms. The normalized query is
// always first.
func ExpandQuery(raw string) []string {
	q := strings.ToLower(strings.TrimSpace(raw))
	if q == "" {
		return nil
	}
	if fixed, ok := typoMap[q]; ok {
		q = fixed
	}

	terms := []string{q}
	seen := map[string]bool{q: true}
	add := func(t string) {
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}

	isCSharpIntent := false
	for _, t := range csharpFamily {
		if q == t {
			isCSharpIntent = true
			break
		}
	}
	if isCSharpIntent {
		for _, t := range csharpFamily {
			add(t)
		}
	}

	isCodeIntent := isCSharpIntent
	if !isCodeIntent {
		for _, t := range codeFamily {
			if q == t {
				isCodeIntent = true
				break
			}
		}
	}
	if codeIntentTokens[q] {
		isCodeIntent = true
	}
	for _, word := range strings.Fields(q) {
		if codeIntentTokens[word] {
			isCodeIntent = true
		}
	}

	if isCodeIntent {
		for _, t := range codeFamily {
			add(t)
		}
	}

	return terms
}
