package langdetect

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// spaceMarker is the visible space marker prefixed to the first character
// of each pretoken, per §4.6.
const spaceMarker = "Ġ"

// mergeRank maps an adjacent token pair to its priority: lower is merged
// first, mirroring the line order of merges.txt.
type mergeRank map[[2]string]int

// loadMerges parses merges.txt: one "a b" pair per line, with an optional
// leading "#"-prefixed header line ignored.
func loadMerges(r io.Reader) (mergeRank, error) {
	ranks := mergeRank{}
	scanner := bufio.NewScanner(r)
	rank := 0
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first && strings.HasPrefix(line, "#") {
			first = false
			continue
		}
		first = false
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}
		ranks[[2]string{parts[0], parts[1]}] = rank
		rank++
	}
	return ranks, scanner.Err()
}

// pretokenize splits text on whitespace, then splits each resulting word so
// that punctuation characters become their own tokens (§4.6).
func pretokenize(text string) []string {
	var out []string
	for _, word := range strings.Fields(text) {
		out = append(out, splitPunctuation(word)...)
	}
	return out
}

func splitPunctuation(word string) []string {
	var out []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur = append(cur, r)
			continue
		}
		flush()
		out = append(out, string(r))
	}
	flush()
	return out
}

// bpeEncodeWord implements byte-pair encoding of a single pretoken: the
// first character is prefixed with spaceMarker, then the lowest-ranked
// adjacent pair is repeatedly merged until no mergeable pair remains.
//
// Testable property: bpeEncodeWord is a pure function of (word, ranks)
// alone.
func bpeEncodeWord(word string, ranks mergeRank) []string {
	runes := []rune(word)
	if len(runes) == 0 {
		return nil
	}
	pieces := make([]string, len(runes))
	for i, r := range runes {
		pieces[i] = string(r)
	}
	pieces[0] = spaceMarker + pieces[0]

	for {
		bestRank := -1
		bestIdx := -1
		for i := 0; i < len(pieces)-1; i++ {
			pair := [2]string{pieces[i], pieces[i+1]}
			if r, ok := ranks[pair]; ok && (bestRank == -1 || r < bestRank) {
				bestRank = r
				bestIdx = i
			}
		}
		if bestIdx == -1 {
			break
		}
		merged := pieces[bestIdx] + pieces[bestIdx+1]
		pieces = append(pieces[:bestIdx], append([]string{merged}, pieces[bestIdx+2:]...)...)
	}
	return pieces
}

// maxInputChars is the truncation length applied before tokenizing (§4.6).
const maxInputChars = 2000

// maxTokens is the hard cap on token count, BOS/EOS inclusive (§4.6).
const maxTokens = 512

// bpeEncode tokenizes text into vocabulary ids, beginning with bosID and
// ending with eosID, mapping unknown pieces to unkID.
func bpeEncode(text string, ranks mergeRank, vocab map[string]int64, unkID, bosID, eosID int64) []int64 {
	if r := []rune(text); len(r) > maxInputChars {
		text = string(r[:maxInputChars])
	}

	ids := make([]int64, 0, maxTokens)
	ids = append(ids, bosID)

	for _, pretok := range pretokenize(text) {
		for _, piece := range bpeEncodeWord(pretok, ranks) {
			if len(ids) >= maxTokens-1 {
				break
			}
			id, ok := vocab[piece]
			if !ok {
				id = unkID
			}
			ids = append(ids, id)
		}
		if len(ids) >= maxTokens-1 {
			break
		}
	}

	ids = append(ids, eosID)
	if len(ids) > maxTokens {
		ids = ids[:maxTokens]
		ids[maxTokens-1] = eosID
	}
	return ids
}
