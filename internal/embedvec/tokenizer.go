package embedvec

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

const defaultMaxLength = 128
const minMaxLength = 8

// unigramTokenizer holds everything extracted from tokenizer.json (§4.7).
type unigramTokenizer struct {
	vocab         map[string]vocabEntry
	maxPieceBytes int
	unkID         int64
	padID         int64
	bosID         int64
	eosID         int64
	maxLength     int
}

// loadTokenizer reads and validates a HuggingFace-style tokenizer.json,
// failing unless model.type == "Unigram".
func loadTokenizer(path string) (*unigramTokenizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root := gjson.ParseBytes(data)

	model := root.Get("model")
	if model.Get("type").String() != "Unigram" {
		return nil, fmt.Errorf("embedvec: unsupported tokenizer type %q (expected Unigram)", model.Get("type").String())
	}

	tok := &unigramTokenizer{
		maxLength: defaultMaxLength,
	}

	if v := model.Get("unk_id"); v.Exists() {
		tok.unkID = v.Int()
	}

	if v := root.Get("truncation.max_length"); v.Exists() {
		tok.maxLength = int(v.Int())
	}
	if tok.maxLength < minMaxLength {
		tok.maxLength = defaultMaxLength
	}

	if v := root.Get("padding.pad_id"); v.Exists() {
		tok.padID = v.Int()
	}

	tok.bosID = specialTokenID(root, "<s>")
	tok.eosID = specialTokenID(root, "</s>")

	vocabArr := model.Get("vocab")
	if !vocabArr.IsArray() {
		return nil, fmt.Errorf("embedvec: tokenizer.json model.vocab is not an array")
	}
	tok.vocab = make(map[string]vocabEntry)
	vocabArr.ForEach(func(idx, entry gjson.Result) bool {
		if !entry.IsArray() {
			return true
		}
		parts := entry.Array()
		if len(parts) < 2 {
			return true
		}
		piece := parts[0].String()
		score := float32(parts[1].Float())
		id := idx.Int()
		tok.vocab[piece] = vocabEntry{id: id, score: score}
		if len(piece) > tok.maxPieceBytes {
			tok.maxPieceBytes = len(piece)
		}
		return true
	})
	if len(tok.vocab) == 0 {
		return nil, fmt.Errorf("embedvec: tokenizer.json vocab is empty")
	}

	return tok, nil
}

func specialTokenID(root gjson.Result, token string) int64 {
	path := fmt.Sprintf("post_processor.special_tokens.%s.ids.0", escapeGJSONKey(token))
	return root.Get(path).Int()
}

// escapeGJSONKey escapes gjson path metacharacters ('.', '*', '?', '|') in a
// literal map key such as "<s>" or "</s>".
func escapeGJSONKey(key string) string {
	out := make([]byte, 0, len(key)*2)
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '|':
			out = append(out, '\\')
		}
		out = append(out, key[i])
	}
	return string(out)
}

// tokenize implements §4.7's whitespace+metaspace+Viterbi tokenization,
// including BOS/EOS, padding and the "last token stays EOS" truncation
// rule.
func (t *unigramTokenizer) tokenize(text string) []int64 {
	ids := make([]int64, 0, t.maxLength)
	ids = append(ids, t.bosID)

	for _, word := range whitespaceSplit(text) {
		if len(ids) >= t.maxLength-1 {
			break
		}
		piece := metaspace + word
		encoded := unigramEncodePiece(piece, t.vocab, t.maxPieceBytes, t.unkID)
		for _, id := range encoded {
			if len(ids) >= t.maxLength-1 {
				break
			}
			ids = append(ids, id)
		}
	}

	ids = append(ids, t.eosID)

	if len(ids) > t.maxLength {
		ids = ids[:t.maxLength]
		ids[t.maxLength-1] = t.eosID
	} else {
		for len(ids) < t.maxLength {
			ids = append(ids, t.padID)
		}
	}
	return ids
}
