// Package embedvec implements C7: Unigram (Viterbi) tokenization over an
// ONNX sentence-embedding model, with mean pooling over the output hidden
// states.
package embedvec

import (
	"math"
	"strings"
)

// metaspace is the U+2581 prefix marking the start of a word, per §4.7.
const metaspace = "▁"

// unkPenalty is applied when no vocabulary piece covers a position; the
// Viterbi search falls back to advancing by one UTF-8 character (§4.7).
const unkPenalty = -20.0

// vocabEntry is one (piece, score) pair from the Unigram model, addressed
// by its index (the token id) in the ordered vocabulary.
type vocabEntry struct {
	id    int64
	score float32
}

// unigramEncodePiece runs the Viterbi segmentation of a single metaspace-
// prefixed piece over its byte positions, maximizing the sum of piece log
// scores (§4.7, §8 property 6). Ties are broken by whichever update is
// examined first, since only strictly greater scores replace the running
// best.
func unigramEncodePiece(piece string, vocab map[string]vocabEntry, maxPieceBytes int, unkID int64) []int64 {
	n := len(piece)
	if n == 0 {
		return []int64{unkID}
	}

	const negInf = math.MinInt32 // effectively -inf for our score range
	best := make([]float64, n+1)
	prev := make([]int, n+1)
	prevID := make([]int64, n+1)
	for i := range best {
		best[i] = negInf
		prev[i] = -1
		prevID[i] = unkID
	}
	best[0] = 0

	for i := 0; i < n; i++ {
		if best[i] == negInf {
			continue
		}

		maxLen := maxPieceBytes
		if n-i < maxLen {
			maxLen = n - i
		}

		foundPiece := false
		for length := 1; length <= maxLen; length++ {
			candidate := piece[i : i+length]
			entry, ok := vocab[candidate]
			if !ok {
				continue
			}
			foundPiece = true
			j := i + length
			score := best[i] + float64(entry.score)
			if score > best[j] {
				best[j] = score
				prev[j] = i
				prevID[j] = entry.id
			}
		}

		if !foundPiece {
			length := nextUTF8Len(piece, i)
			j := i + length
			if j > n {
				j = n
			}
			score := best[i] + unkPenalty
			if score > best[j] {
				best[j] = score
				prev[j] = i
				prevID[j] = unkID
			}
		}
	}

	if best[n] == negInf {
		return []int64{unkID}
	}

	var ids []int64
	for pos := n; pos > 0; {
		p := prev[pos]
		if p < 0 {
			break
		}
		ids = append(ids, prevID[pos])
		pos = p
	}
	if len(ids) == 0 {
		return []int64{unkID}
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids
}

func nextUTF8Len(s string, offset int) int {
	if offset >= len(s) {
		return 1
	}
	c := s[offset]
	switch {
	case c&0x80 == 0x00:
		return 1
	case c&0xE0 == 0xC0:
		if offset+2 <= len(s) {
			return 2
		}
	case c&0xF0 == 0xE0:
		if offset+3 <= len(s) {
			return 3
		}
	case c&0xF8 == 0xF0:
		if offset+4 <= len(s) {
			return 4
		}
	}
	return 1
}

func whitespaceSplit(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	return words
}
