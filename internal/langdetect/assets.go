package langdetect

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// modelAssets is everything loaded from the three sibling files next to
// model.onnx (§4.6, §6).
type modelAssets struct {
	vocab  map[string]int64
	ranks  mergeRank
	labels []string
}

func loadAssets(modelDir string) (*modelAssets, error) {
	vocab, err := loadVocab(filepath.Join(modelDir, "vocab.json"))
	if err != nil {
		return nil, fmt.Errorf("langdetect: vocab.json: %w", err)
	}

	mergesFile, err := os.Open(filepath.Join(modelDir, "merges.txt"))
	if err != nil {
		return nil, fmt.Errorf("langdetect: merges.txt: %w", err)
	}
	defer mergesFile.Close()
	ranks, err := loadMerges(mergesFile)
	if err != nil {
		return nil, fmt.Errorf("langdetect: merges.txt: %w", err)
	}

	labels, err := loadLabels(filepath.Join(modelDir, "labels.txt"))
	if err != nil {
		return nil, fmt.Errorf("langdetect: labels.txt: %w", err)
	}

	return &modelAssets{vocab: vocab, ranks: ranks, labels: labels}, nil
}

func loadVocab(path string) (map[string]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	vocab := make(map[string]int64)
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, fmt.Errorf("vocab.json is not a JSON object")
	}
	result.ForEach(func(key, value gjson.Result) bool {
		vocab[key.String()] = value.Int()
		return true
	})
	if len(vocab) == 0 {
		return nil, fmt.Errorf("vocab.json has no entries")
	}
	return vocab, nil
}

func loadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		labels = append(labels, scanner.Text())
	}
	return labels, scanner.Err()
}
