// Package langdetect implements C6: a BPE tokenizer plus an ONNX
// classification model that labels text as a programming language, or
// declines via a confidence threshold.
package langdetect

import (
	"log/slog"
	"sync"

	"github.com/Sathamlet92/clipboard/internal/onnx"
)

// DefaultThreshold is the dataset-specific cutoff below which the winning
// logit is treated as "unknown" (§4.6, flagged as an Open Question — exposed
// here as configuration rather than a constant).
const DefaultThreshold = 5.11

const (
	bosID = 0
	eosID = 2
)

// Detector is the §4.6 capability: a BPE tokenizer in front of an ONNX
// sequence classifier. It is lazily initialized exactly once; a failed
// initialization permanently disables it for the process lifetime.
type Detector struct {
	modelPath string
	modelDir  string
	threshold float64

	once    sync.Once
	assets  *modelAssets
	runner  onnx.Runner
	unkID   int64
	padID   int64
	disable string // non-empty once permanently disabled, with a reason
}

// New returns a Detector that will lazily load modelPath (and its sibling
// vocab.json/merges.txt/labels.txt) on first use.
func New(modelPath, modelDir string, threshold float64) *Detector {
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	return &Detector{modelPath: modelPath, modelDir: modelDir, threshold: threshold}
}

func (d *Detector) init() {
	d.once.Do(func() {
		assets, err := loadAssets(d.modelDir)
		if err != nil {
			d.disable = err.Error()
			slog.Warn("language detector disabled", "reason", err)
			return
		}

		runner, err := onnx.Load(d.modelPath,
			[]string{"input_ids", "attention_mask", "token_type_ids"},
			[]string{"logits"},
		)
		if err != nil {
			d.disable = err.Error()
			slog.Warn("language detector disabled", "reason", err)
			return
		}

		d.assets = assets
		d.runner = runner
		d.unkID = assets.vocab["<unk>"]
		if id, ok := assets.vocab["<pad>"]; ok {
			d.padID = id
		} else {
			d.padID = 1
		}
	})
}

// Available reports whether the detector initialized successfully.
func (d *Detector) Available() bool {
	d.init()
	return d.disable == ""
}

// DetectCodeLanguage implements classify.LanguageDetector: returns a label
// such as "C#" or "Python", or "" when the detector is unavailable or the
// winning logit is below threshold.
func (d *Detector) DetectCodeLanguage(text string) string {
	d.init()
	if d.disable != "" || text == "" {
		return ""
	}

	ids := bpeEncode(text, d.assets.ranks, d.assets.vocab, d.unkID, bosID, eosID)
	padded, mask := padAndMask(ids, d.padID, maxTokens)

	inputs := map[string]onnx.Tensor{}
	shape := []int64{1, int64(maxTokens)}
	want := map[string]bool{}
	for _, n := range d.runner.InputNames() {
		want[n] = true
	}
	if want["input_ids"] {
		inputs["input_ids"] = onnx.Tensor{Shape: shape, Ints: padded}
	}
	if want["attention_mask"] {
		inputs["attention_mask"] = onnx.Tensor{Shape: shape, Ints: mask}
	}
	if want["token_type_ids"] {
		inputs["token_type_ids"] = onnx.Tensor{Shape: shape, Ints: make([]int64, maxTokens)}
	}

	out, err := d.runner.Run(inputs)
	if err != nil {
		slog.Debug("language detection inference failed", "error", err)
		return ""
	}

	logits, ok := out["logits"]
	if !ok || len(logits.Float) == 0 {
		return ""
	}

	idx, best := argmax(logits.Float)
	if float64(best) < d.threshold {
		return ""
	}
	if idx < 0 || idx >= len(d.assets.labels) {
		return ""
	}
	return d.assets.labels[idx]
}

// Close releases the underlying ONNX session, if one was ever created.
func (d *Detector) Close() error {
	if d.runner != nil {
		return d.runner.Close()
	}
	return nil
}

func padAndMask(ids []int64, padID int64, length int) (padded, mask []int64) {
	padded = make([]int64, length)
	mask = make([]int64, length)
	for i := 0; i < length; i++ {
		if i < len(ids) {
			padded[i] = ids[i]
			if ids[i] != padID {
				mask[i] = 1
			}
		} else {
			padded[i] = padID
		}
	}
	return padded, mask
}

func argmax(v []float32) (int, float32) {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best, v[best]
}
