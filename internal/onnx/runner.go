// Package onnx is the black-box ML inference boundary named in the spec's
// scope: bytes/token ids in, a tensor of floats out. Everything upstream
// (tokenizers, pooling, label lookup) is real Go the core owns and tests;
// this package only adapts to the ONNX Runtime.
package onnx

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// Tensor is a rank-3-or-less int64/float32 tensor, the only shapes the
// language detector and embedding service exchange with a model.
type Tensor struct {
	Shape []int64
	Ints  []int64   // set when the tensor holds input ids / masks
	Float []float32 // set for model outputs
}

// Runner is the minimal contract the enrichment ML adapters need: run a
// named set of input tensors through a loaded model and get back named
// output tensors. InputNames reports what the model actually expects, so
// callers can omit optional inputs like token_type_ids.
type Runner interface {
	InputNames() []string
	Run(inputs map[string]Tensor) (map[string]Tensor, error)
	Close() error
}

var (
	envOnce sync.Once
	envErr  error
)

func ensureEnvironment() error {
	envOnce.Do(func() {
		envErr = ort.InitializeEnvironment()
	})
	return envErr
}

// session is the real ONNX Runtime-backed Runner.
type session struct {
	advanced    *ort.DynamicAdvancedSession
	inputNames  []string
	outputNames []string
}

// Load opens an ONNX model file and returns a Runner bound to outputNames
// and to those of inputNames that the model file itself declares.
func Load(modelPath string, inputNames, outputNames []string) (Runner, error) {
	if err := ensureEnvironment(); err != nil {
		return nil, fmt.Errorf("onnx: initialize environment: %w", err)
	}

	declared, _, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: inspect %s: %w", modelPath, err)
	}
	expected := make(map[string]bool, len(declared))
	for _, info := range declared {
		expected[info.Name] = true
	}
	var names []string
	for _, n := range inputNames {
		if expected[n] {
			names = append(names, n)
		}
	}

	adv, err := ort.NewDynamicAdvancedSession(modelPath, names, outputNames, nil)
	if err != nil {
		return nil, fmt.Errorf("onnx: load %s: %w", modelPath, err)
	}

	return &session{advanced: adv, inputNames: names, outputNames: outputNames}, nil
}

func (s *session) InputNames() []string { return s.inputNames }

func (s *session) Run(inputs map[string]Tensor) (map[string]Tensor, error) {
	inTensors := make([]ort.ArbitraryTensor, 0, len(s.inputNames))
	cleanup := make([]func(), 0, len(s.inputNames))
	defer func() {
		for _, c := range cleanup {
			c()
		}
	}()

	for _, name := range s.inputNames {
		t, ok := inputs[name]
		if !ok {
			return nil, fmt.Errorf("onnx: missing input %q", name)
		}
		shape := ort.NewShape(t.Shape...)
		tensor, err := ort.NewTensor(shape, t.Ints)
		if err != nil {
			return nil, fmt.Errorf("onnx: build tensor %q: %w", name, err)
		}
		cleanup = append(cleanup, func() { tensor.Destroy() })
		inTensors = append(inTensors, tensor)
	}

	outPlaceholders := make([]ort.ArbitraryTensor, len(s.outputNames))
	if err := s.advanced.Run(inTensors, outPlaceholders); err != nil {
		return nil, fmt.Errorf("onnx: run: %w", err)
	}

	out := make(map[string]Tensor, len(s.outputNames))
	for i, name := range s.outputNames {
		ft, ok := outPlaceholders[i].(*ort.Tensor[float32])
		if !ok {
			return nil, fmt.Errorf("onnx: output %q is not a float32 tensor", name)
		}
		out[name] = Tensor{Shape: ft.GetShape(), Float: ft.GetData()}
	}
	return out, nil
}

func (s *session) Close() error {
	return s.advanced.Destroy()
}
