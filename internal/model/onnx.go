package model

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"chessagent/internal/chess"

	ort "github.com/yalue/onnxruntime_go"
)

const (
	onnxInputName  = "board"
	onnxOutputName = "scores"
)

var ortInitMu sync.Mutex

// initORT 进程内只初始化一次 onnxruntime 环境
func initORT(libPath string) error {
	ortInitMu.Lock()
	defer ortInitMu.Unlock()
	if ort.IsInitialized() {
		return nil
	}
	absLibPath, err := resolveORTSharedLibraryPath(libPath)
	if err != nil {
		return err
	}
	libDir := filepath.Dir(absLibPath)
	prependPathEnv("PATH", libDir)
	configureORTSearchPath(libDir)

	ort.SetSharedLibraryPath(absLibPath)
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("init onnxruntime: %w", err)
	}
	return nil
}

// ONNXModel 单输入单输出的 ONNX 模型：board [1,384] -> scores [1,N]。
// N == 64 时当排序模型用，N == 60 时当价值模型用。
type ONNXModel struct {
	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	outSize int
}

func NewONNXModel(modelPath, libPath string, outSize int) (*ONNXModel, error) {
	absModel, err := resolveModelPath(modelPath)
	if err != nil {
		return nil, err
	}
	if err := initORT(libPath); err != nil {
		return nil, err
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, InputSize))
	if err != nil {
		return nil, fmt.Errorf("alloc input tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(outSize)))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("alloc output tensor: %w", err)
	}

	providers := []struct {
		name  string
		setup func(*ort.SessionOptions) error
	}{
		{"CUDA", func(so *ort.SessionOptions) error {
			cudaOpts, e := ort.NewCUDAProviderOptions()
			if e != nil {
				return e
			}
			defer cudaOpts.Destroy()
			return so.AppendExecutionProviderCUDA(cudaOpts)
		}},
		{"CPU", func(so *ort.SessionOptions) error { return nil }},
	}

	var session *ort.AdvancedSession
	for _, p := range providers {
		so, err := ort.NewSessionOptions()
		if err != nil {
			log.Printf("model: %s options failed: %v", p.name, err)
			continue
		}
		if err := p.setup(so); err != nil {
			log.Printf("model: %s setup failed: %v", p.name, err)
			so.Destroy()
			continue
		}
		s, err := ort.NewAdvancedSession(absModel,
			[]string{onnxInputName}, []string{onnxOutputName},
			[]ort.Value{input}, []ort.Value{output}, so)
		so.Destroy()
		if err != nil {
			log.Printf("model: %s session failed: %v", p.name, err)
			continue
		}
		log.Printf("model: %s loaded with %s", filepath.Base(absModel), p.name)
		session = s
		break
	}
	if session == nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("load %s: no execution provider worked", absModel)
	}

	return &ONNXModel{
		session: session,
		input:   input,
		output:  output,
		outSize: outSize,
	}, nil
}

func (m *ONNXModel) Close() {
	if m.session != nil {
		m.session.Destroy()
	}
	m.input.Destroy()
	m.output.Destroy()
}

// Scores 跑一次推理，返回拷贝出来的输出
func (m *ONNXModel) Scores(b *chess.Board) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	EncodeInto(m.input.GetData(), b)
	if err := m.session.Run(); err != nil {
		return nil, fmt.Errorf("onnx run: %w", err)
	}
	return append([]float32(nil), m.output.GetData()...), nil
}

func (m *ONNXModel) Rank(b *chess.Board) ([]float64, error) {
	if m.outSize != PolicySize {
		return nil, fmt.Errorf("%w: onnx output %d cannot rank squares", ErrShape, m.outSize)
	}
	scores, err := m.Scores(b)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = float64(s)
	}
	return out, nil
}

func (m *ONNXModel) Value(b *chess.Board) (int, error) {
	if m.outSize != Buckets {
		return 0, fmt.Errorf("%w: onnx output %d is not a favor head", ErrShape, m.outSize)
	}
	scores, err := m.Scores(b)
	if err != nil {
		return 0, err
	}
	return Argmax(scores), nil
}
