package embedvec

import "testing"

func newTestTokenizer() *unigramTokenizer {
	return &unigramTokenizer{
		vocab: map[string]vocabEntry{
			metaspace + "hi": {id: 10, score: -1},
			metaspace + "x":  {id: 11, score: -3},
		},
		maxPieceBytes: 8,
		unkID:         0,
		padID:         1,
		bosID:         2,
		eosID:         3,
		maxLength:     8,
	}
}

func TestTokenizeStartsWithBOSAndIncludesEOS(t *testing.T) {
	tok := newTestTokenizer()
	ids := tok.tokenize("hi")
	if ids[0] != tok.bosID {
		t.Errorf("expected first id to be BOS, got %d", ids[0])
	}
	last := -1
	for i, id := range ids {
		if id == tok.eosID {
			last = i
		}
	}
	if last == -1 {
		t.Fatal("expected EOS to appear in the sequence")
	}
}

func TestTokenizePadsToMaxLength(t *testing.T) {
	tok := newTestTokenizer()
	ids := tok.tokenize("hi")
	if len(ids) != tok.maxLength {
		t.Fatalf("expected length %d, got %d", tok.maxLength, len(ids))
	}
}

func TestTokenizeTruncationKeepsEOSLast(t *testing.T) {
	tok := newTestTokenizer()
	ids := tok.tokenize("hi x hi x hi x hi x hi x")
	if len(ids) != tok.maxLength {
		t.Fatalf("expected length %d, got %d", tok.maxLength, len(ids))
	}
	if ids[len(ids)-1] != tok.eosID {
		t.Errorf("expected last token to be EOS even after truncation, got %d", ids[len(ids)-1])
	}
}

func TestEscapeGJSONKeyEscapesMetacharacters(t *testing.T) {
	got := escapeGJSONKey("<s>")
	if got != "<s>" {
		t.Errorf("expected no change for a key without metacharacters, got %q", got)
	}
	got = escapeGJSONKey("a.b")
	if got != `a\.b` {
		t.Errorf("expected dot to be escaped, got %q", got)
	}
}
