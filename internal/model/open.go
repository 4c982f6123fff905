package model

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"chessagent/internal/chess"
)

var ErrModelFormat = errors.New("unknown model format")

type Ranker interface {
	Rank(b *chess.Board) ([]float64, error)
}

type Valuer interface {
	Value(b *chess.Board) (int, error)
}

// Models 一对排序/价值模型，Close 释放 onnx 会话
type Models struct {
	Ranker  Ranker
	Valuer  Valuer
	closers []func()
}

func (m *Models) Close() {
	for _, c := range m.closers {
		c()
	}
	m.closers = nil
}

// Open 按扩展名加载：.onnx 走 onnxruntime，.json 是本地网络文件
func Open(rankerPath, valuerPath, libPath string) (*Models, error) {
	m := &Models{}
	r, err := m.open(rankerPath, libPath, PolicySize)
	if err != nil {
		return nil, fmt.Errorf("ranker: %w", err)
	}
	v, err := m.open(valuerPath, libPath, Buckets)
	if err != nil {
		m.Close()
		return nil, fmt.Errorf("valuer: %w", err)
	}
	if on, ok := r.(*ONNXModel); ok {
		m.Ranker = on
	} else {
		m.Ranker = NetworkRanker{Net: r.(*Network)}
	}
	if on, ok := v.(*ONNXModel); ok {
		m.Valuer = on
	} else {
		m.Valuer = NetworkValuer{Net: v.(*Network)}
	}
	return m, nil
}

func (m *Models) open(path, libPath string, outSize int) (any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".onnx":
		on, err := NewONNXModel(path, libPath, outSize)
		if err != nil {
			return nil, err
		}
		m.closers = append(m.closers, on.Close)
		return on, nil
	case ".json":
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		n, err := LoadNetwork(filepath.Dir(path), name)
		if err != nil {
			return nil, err
		}
		if n.InputSize() != InputSize || n.OutputSize() != outSize {
			return nil, fmt.Errorf("%w: %s is %d->%d, want %d->%d", ErrShape, path, n.InputSize(), n.OutputSize(), InputSize, outSize)
		}
		log.Printf("model: loaded network %s", path)
		return n, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrModelFormat, path)
}
