package engine

import (
	"math"
	"math/rand"
	"sync"

	"chessagent/internal/chess"
)

const (
	DefaultDepth = 3

	leafCacheCap = 500_000
)

var (
	scoreInf    = math.Inf(1)
	scoreNegInf = math.Inf(-1)
)

// Policy 决定每个节点展开哪些走法、叶子怎么估值。
// 返回错误时搜索退回精确行为，并在结果里标记 ModelFailed。
type Policy interface {
	Leaf(b *chess.Board) (float64, error)
	Expand(b *chess.Board, side chess.Color) ([]chess.Move, error)
}

// ExactPolicy 全宽搜索，叶子用 Favor
type ExactPolicy struct{}

func (ExactPolicy) Leaf(b *chess.Board) (float64, error) { return b.Favor(), nil }

func (ExactPolicy) Expand(b *chess.Board, side chess.Color) ([]chess.Move, error) {
	return b.LegalMoves(side), nil
}

type Engine struct {
	policy Policy
	nodes  int64

	// 根节点并列最优时随机挑一个
	randomTies bool
	rng        *rand.Rand

	modelFailed bool
}

func NewEngine() *Engine {
	return &Engine{policy: ExactPolicy{}}
}

func (e *Engine) leaf(b *chess.Board) float64 {
	v, err := e.policy.Leaf(b)
	if err != nil {
		e.modelFailed = true
		return b.Favor()
	}
	return v
}

func (e *Engine) expand(b *chess.Board, side chess.Color) []chess.Move {
	moves, err := e.policy.Expand(b, side)
	if err != nil {
		e.modelFailed = true
		return b.LegalMoves(side)
	}
	return moves
}

// leafCache 按 Zobrist 哈希缓存模型给的叶子值
type leafCache struct {
	mu sync.RWMutex
	m  map[uint64]float64
}

func newLeafCache() *leafCache {
	return &leafCache{m: make(map[uint64]float64, 1<<12)}
}

func (c *leafCache) get(key uint64) (float64, bool) {
	c.mu.RLock()
	v, ok := c.m[key]
	c.mu.RUnlock()
	return v, ok
}

func (c *leafCache) store(key uint64, v float64) {
	c.mu.Lock()
	if len(c.m) > leafCacheCap {
		c.m = make(map[uint64]float64, 1<<12)
	}
	c.m[key] = v
	c.mu.Unlock()
}

func (c *leafCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
