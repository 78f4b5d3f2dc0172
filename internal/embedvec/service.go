package embedvec

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/Sathamlet92/clipboard/internal/onnx"
)

// Service is the §4.7 capability: load once, then generate mean-pooled
// sentence embeddings on demand. A failed load permanently disables it for
// the process lifetime.
type Service struct {
	modelPath string

	once      sync.Once
	tokenizer *unigramTokenizer
	runner    onnx.Runner
	disable   string
}

// New returns a Service that will lazily load modelPath (and its sibling
// tokenizer.json) on first use.
func New(modelPath string) *Service {
	return &Service{modelPath: modelPath}
}

func (s *Service) init() {
	s.once.Do(func() {
		tokPath := filepath.Join(filepath.Dir(s.modelPath), "tokenizer.json")
		tok, err := loadTokenizer(tokPath)
		if err != nil {
			s.disable = err.Error()
			slog.Warn("embedding service disabled", "reason", err)
			return
		}

		runner, err := onnx.Load(s.modelPath,
			[]string{"input_ids", "attention_mask", "token_type_ids"},
			[]string{"last_hidden_state"},
		)
		if err != nil {
			s.disable = err.Error()
			slog.Warn("embedding service disabled", "reason", err)
			return
		}

		s.tokenizer = tok
		s.runner = runner
	})
}

// Available reports whether the embedding service initialized successfully.
func (s *Service) Available() bool {
	s.init()
	return s.disable == ""
}

// GenerateEmbedding tokenizes text and runs it through the model, returning
// the mean-pooled hidden state. An empty result means the service is
// unavailable or inference failed — both treated as an empty result per §7.
func (s *Service) GenerateEmbedding(text string) []float32 {
	s.init()
	if s.disable != "" {
		return nil
	}

	ids := s.tokenizer.tokenize(text)
	mask := make([]int64, len(ids))
	for i, id := range ids {
		if id != s.tokenizer.padID {
			mask[i] = 1
		}
	}

	shape := []int64{1, int64(len(ids))}
	inputs := map[string]onnx.Tensor{}
	want := map[string]bool{}
	for _, n := range s.runner.InputNames() {
		want[n] = true
	}
	if want["input_ids"] {
		inputs["input_ids"] = onnx.Tensor{Shape: shape, Ints: ids}
	}
	if want["attention_mask"] {
		inputs["attention_mask"] = onnx.Tensor{Shape: shape, Ints: mask}
	}
	if want["token_type_ids"] {
		inputs["token_type_ids"] = onnx.Tensor{Shape: shape, Ints: make([]int64, len(ids))}
	}

	out, err := s.runner.Run(inputs)
	if err != nil {
		slog.Debug("embedding inference failed", "error", err)
		return nil
	}

	hidden, ok := out["last_hidden_state"]
	if !ok || len(hidden.Shape) != 3 {
		return nil
	}
	seqLen := int(hidden.Shape[1])
	hiddenSize := int(hidden.Shape[2])
	if seqLen == 0 || hiddenSize == 0 || len(hidden.Float) < seqLen*hiddenSize {
		return nil
	}

	return meanPool(hidden.Float, seqLen, hiddenSize)
}

// meanPool averages a [seq_len, hidden] tensor over every position,
// unmasked. §4.7/§9 record this as the observed (not necessarily ideal)
// behavior: padded positions are included in the average, which skews short
// inputs. See DESIGN.md for the decision to preserve it rather than mask by
// attention_mask.
func meanPool(tokenEmbeddings []float32, seqLen, hiddenSize int) []float32 {
	result := make([]float32, hiddenSize)
	for i := 0; i < seqLen; i++ {
		base := i * hiddenSize
		for j := 0; j < hiddenSize; j++ {
			result[j] += tokenEmbeddings[base+j]
		}
	}
	for j := range result {
		result[j] /= float32(seqLen)
	}
	return result
}

// Close releases the underlying ONNX session, if one was ever created.
func (s *Service) Close() error {
	if s.runner != nil {
		return s.runner.Close()
	}
	return nil
}
