package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
)

var ErrShape = errors.New("shape mismatch")

const (
	FavorLearningRate  = 0.000001
	PolicyLearningRate = 0.0000005
)

// 默认结构：价值网络 384-200-60，策略网络 384-100-100-64，全部 sigmoid
var (
	FavorLayers  = []int{InputSize, 200, Buckets}
	PolicyLayers = []int{InputSize, 100, 100, PolicySize}
)

// Network 全连接 sigmoid 网络。
// Forward 记下各层激活值，紧接着的 Backward 用它们算梯度。
// Predict 只读权重，可以和别的 Predict 并发。
type Network struct {
	mu sync.RWMutex

	sizes   []int
	rate    float64
	weights [][][]float64 // [层][输出][输入]
	biases  [][]float64

	acts [][]float64 // 最近一次 Forward 的激活值
}

func NewNetwork(sizes []int, rate float64, seed int64) (*Network, error) {
	if len(sizes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 layers, got %d", ErrShape, len(sizes))
	}
	rng := rand.New(rand.NewSource(seed))
	n := &Network{
		sizes:   append([]int(nil), sizes...),
		rate:    rate,
		weights: make([][][]float64, len(sizes)-1),
		biases:  make([][]float64, len(sizes)-1),
	}
	for l := 0; l < len(sizes)-1; l++ {
		in, out := sizes[l], sizes[l+1]
		if in <= 0 || out <= 0 {
			return nil, fmt.Errorf("%w: layer %d has size 0", ErrShape, l)
		}
		limit := 1 / math.Sqrt(float64(in))
		n.weights[l] = make([][]float64, out)
		for j := range n.weights[l] {
			row := make([]float64, in)
			for k := range row {
				row[k] = (rng.Float64()*2 - 1) * limit
			}
			n.weights[l][j] = row
		}
		n.biases[l] = make([]float64, out)
	}
	return n, nil
}

func NewFavorNetwork(seed int64) *Network {
	n, _ := NewNetwork(FavorLayers, FavorLearningRate, seed)
	return n
}

func NewPolicyNetwork(seed int64) *Network {
	n, _ := NewNetwork(PolicyLayers, PolicyLearningRate, seed)
	return n
}

func (n *Network) InputSize() int  { return n.sizes[0] }
func (n *Network) OutputSize() int { return n.sizes[len(n.sizes)-1] }

func (n *Network) SetLearningRate(rate float64) {
	n.mu.Lock()
	n.rate = rate
	n.mu.Unlock()
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

func (n *Network) run(input []float64, keep bool) ([]float64, [][]float64, error) {
	if len(input) != n.sizes[0] {
		return nil, nil, fmt.Errorf("%w: input %d, want %d", ErrShape, len(input), n.sizes[0])
	}
	var acts [][]float64
	if keep {
		acts = make([][]float64, 0, len(n.sizes))
		acts = append(acts, append([]float64(nil), input...))
	}
	cur := input
	for l, layer := range n.weights {
		next := make([]float64, len(layer))
		for j, row := range layer {
			z := n.biases[l][j]
			for k, w := range row {
				z += w * cur[k]
			}
			next[j] = sigmoid(z)
		}
		if keep {
			acts = append(acts, next)
		}
		cur = next
	}
	return cur, acts, nil
}

// Predict 纯推理
func (n *Network) Predict(input []float64) ([]float64, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out, _, err := n.run(input, false)
	return out, err
}

// Forward 推理并记下激活值，给后面的 Backward 用
func (n *Network) Forward(input []float64) ([]float64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	out, acts, err := n.run(input, true)
	if err != nil {
		return nil, err
	}
	n.acts = acts
	return append([]float64(nil), out...), nil
}

// Backward 用最近一次 Forward 的结果做一步梯度下降（平方误差），返回 L1 损失
func (n *Network) Backward(pred, target []float64) (float64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.acts == nil {
		return 0, errors.New("backward without forward")
	}
	out := n.OutputSize()
	if len(pred) != out || len(target) != out {
		return 0, fmt.Errorf("%w: pred %d target %d, want %d", ErrShape, len(pred), len(target), out)
	}

	var loss float64
	delta := make([]float64, out)
	for j := range delta {
		diff := pred[j] - target[j]
		loss += math.Abs(diff)
		delta[j] = diff * pred[j] * (1 - pred[j])
	}

	for l := len(n.weights) - 1; l >= 0; l-- {
		prev := n.acts[l]
		var prevDelta []float64
		if l > 0 {
			prevDelta = make([]float64, len(prev))
			for j, row := range n.weights[l] {
				for k, w := range row {
					prevDelta[k] += w * delta[j]
				}
			}
			for k, a := range prev {
				prevDelta[k] *= a * (1 - a)
			}
		}
		for j, row := range n.weights[l] {
			g := n.rate * delta[j]
			for k := range row {
				row[k] -= g * prev[k]
			}
			n.biases[l][j] -= g
		}
		delta = prevDelta
	}
	n.acts = nil
	return loss, nil
}

type networkFile struct {
	Sizes        []int         `json:"sizes"`
	LearningRate float64       `json:"learning_rate"`
	Weights      [][][]float64 `json:"weights"`
	Biases       [][]float64   `json:"biases"`
}

func networkPath(dir, name string) string {
	return filepath.Join(dir, name+".json")
}

// Save 按逻辑名存到 dir/<name>.json
func (n *Network) Save(dir, name string) error {
	n.mu.RLock()
	data, err := json.Marshal(networkFile{
		Sizes:        n.sizes,
		LearningRate: n.rate,
		Weights:      n.weights,
		Biases:       n.biases,
	})
	n.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode network %s: %w", name, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save network %s: %w", name, err)
	}
	if err := os.WriteFile(networkPath(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("save network %s: %w", name, err)
	}
	return nil
}

func LoadNetwork(dir, name string) (*Network, error) {
	data, err := os.ReadFile(networkPath(dir, name))
	if err != nil {
		return nil, fmt.Errorf("load network %s: %w", name, err)
	}
	var f networkFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode network %s: %w", name, err)
	}
	if len(f.Sizes) < 2 || len(f.Weights) != len(f.Sizes)-1 || len(f.Biases) != len(f.Sizes)-1 {
		return nil, fmt.Errorf("%w: network %s has %d layers", ErrShape, name, len(f.Sizes))
	}
	for l := range f.Weights {
		if len(f.Weights[l]) != f.Sizes[l+1] || len(f.Biases[l]) != f.Sizes[l+1] {
			return nil, fmt.Errorf("%w: network %s layer %d", ErrShape, name, l)
		}
		for _, row := range f.Weights[l] {
			if len(row) != f.Sizes[l] {
				return nil, fmt.Errorf("%w: network %s layer %d", ErrShape, name, l)
			}
		}
	}
	return &Network{
		sizes:   f.Sizes,
		rate:    f.LearningRate,
		weights: f.Weights,
		biases:  f.Biases,
	}, nil
}
