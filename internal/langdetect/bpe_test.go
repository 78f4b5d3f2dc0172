package langdetect

import (
	"strings"
	"testing"
)

func TestPretokenizeSplitsPunctuation(t *testing.T) {
	got := pretokenize("Hello, world!")
	want := []string{"Hello", ",", "world", "!"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestBpeEncodeWordDeterministic(t *testing.T) {
	ranks := mergeRank{
		{"H", "e"}: 0,
		{"He", "l"}: 1,
	}
	a := bpeEncodeWord("Hello", ranks)
	b := bpeEncodeWord("Hello", ranks)
	if strings.Join(a, "|") != strings.Join(b, "|") {
		t.Errorf("bpeEncodeWord not deterministic: %v vs %v", a, b)
	}
	if a[0] != spaceMarker+"H" {
		t.Errorf("expected first piece to carry the space marker, got %q", a[0])
	}
}

func TestBpeEncodeWordMergesLowestRankFirst(t *testing.T) {
	ranks := mergeRank{
		{spaceMarker + "a", "b"}: 5,
		{"b", "c"}:               0,
	}
	got := bpeEncodeWord("abc", ranks)
	if len(got) != 2 || got[0] != spaceMarker+"a" || got[1] != "bc" {
		t.Fatalf("expected the rank-0 pair (b,c) to merge first, leaving [%sa bc], got %v", spaceMarker, got)
	}
}

func TestBpeEncodeBeginsAndEndsWithSpecialTokens(t *testing.T) {
	vocab := map[string]int64{spaceMarker + "h": 10, "i": 11}
	ids := bpeEncode("hi", mergeRank{}, vocab, 99, bosID, eosID)
	if ids[0] != bosID {
		t.Errorf("expected BOS first, got %d", ids[0])
	}
	if ids[len(ids)-1] != eosID {
		t.Errorf("expected EOS last, got %d", ids[len(ids)-1])
	}
}

func TestBpeEncodeTruncatesToMaxTokens(t *testing.T) {
	vocab := map[string]int64{}
	long := strings.Repeat("word ", 2000)
	ids := bpeEncode(long, mergeRank{}, vocab, 0, bosID, eosID)
	if len(ids) > maxTokens {
		t.Fatalf("expected at most %d tokens, got %d", maxTokens, len(ids))
	}
	if ids[len(ids)-1] != eosID {
		t.Errorf("truncated sequence must still end with EOS, got %d", ids[len(ids)-1])
	}
}

func TestLoadMergesSkipsHeader(t *testing.T) {
	r := strings.NewReader("#version: 0.2\na b\nc d\n")
	ranks, err := loadMerges(r)
	if err != nil {
		t.Fatal(err)
	}
	if rank, ok := ranks[[2]string{"a", "b"}]; !ok || rank != 0 {
		t.Errorf("expected a,b at rank 0, got %d ok=%v", rank, ok)
	}
	if rank, ok := ranks[[2]string{"c", "d"}]; !ok || rank != 1 {
		t.Errorf("expected c,d at rank 1, got %d ok=%v", rank, ok)
	}
}
