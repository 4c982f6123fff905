package engine

import (
	"math"
	"time"

	"chessagent/internal/chess"
)

// Candidate 根节点的一个候选：走法和它搜出来的分（白方视角）
type Candidate struct {
	Value float64
	From  chess.Square
	To    chess.Square
	Move  chess.Move
}

// 搜索配置
type SearchConfig struct {
	Depth int // 搜索深度（ply），<= 0 用 DefaultDepth
}

// 搜索结果
type SearchResult struct {
	Best        Candidate
	Found       bool          // 没有可走的棋时为 false，Best.Value 是局面本身的值
	Depth       int           // 实际搜索深度
	Nodes       int64         // 节点数
	TimeUsed    time.Duration // 花费时间
	ModelFailed bool          // 模型出错过，相关节点退回了精确搜索
}

// Search 给 side 找一步棋。b 的走法缓存必须是新的。
func (e *Engine) Search(b *chess.Board, side chess.Color, cfg SearchConfig) SearchResult {
	if cfg.Depth <= 0 {
		cfg.Depth = DefaultDepth
	}
	start := time.Now()
	e.nodes = 0
	e.modelFailed = false

	var best Candidate
	var found bool
	if e.randomTies {
		best, found = e.rootWithTies(b, cfg.Depth, side)
	} else {
		best, found = e.root(b, cfg.Depth, side)
	}
	if !found {
		best.Value = e.alphaBeta(b, 0, scoreNegInf, scoreInf, side)
	}

	return SearchResult{
		Best:        best,
		Found:       found,
		Depth:       cfg.Depth,
		Nodes:       e.nodes,
		TimeUsed:    time.Since(start),
		ModelFailed: e.modelFailed,
	}
}

func child(b *chess.Board, m chess.Move) *chess.Board {
	nb := b.Clone()
	nb.Play(m)
	return nb
}

func candidate(v float64, m chess.Move) Candidate {
	return Candidate{Value: v, From: m.From, To: m.To, Move: m}
}

// 根节点：白方取极大，黑方取极小，分数相同保留先搜到的那个
func (e *Engine) root(b *chess.Board, depth int, side chess.Color) (Candidate, bool) {
	alpha, beta := scoreNegInf, scoreInf
	var best Candidate
	found := false
	for _, m := range e.expand(b, side) {
		v := e.alphaBeta(child(b, m), depth-1, alpha, beta, side.Opposite())
		if side == chess.White {
			if !found || v > best.Value {
				best, found = candidate(v, m), true
			}
			alpha = math.Max(alpha, best.Value)
		} else {
			if !found || v < best.Value {
				best, found = candidate(v, m), true
			}
			beta = math.Min(beta, best.Value)
		}
		if alpha >= beta {
			break
		}
	}
	return best, found
}

// rootWithTies 收集所有达到最优分的根走法，随机挑一个。
// 窗口只收紧到当前最优值的相邻浮点数，保证和最优值相等的子节点拿到的是精确值。
func (e *Engine) rootWithTies(b *chess.Board, depth int, side chess.Color) (Candidate, bool) {
	var ties []Candidate
	var bestValue float64
	for _, m := range e.expand(b, side) {
		alpha, beta := scoreNegInf, scoreInf
		if len(ties) > 0 {
			if side == chess.White {
				alpha = math.Nextafter(bestValue, scoreNegInf)
			} else {
				beta = math.Nextafter(bestValue, scoreInf)
			}
		}
		v := e.alphaBeta(child(b, m), depth-1, alpha, beta, side.Opposite())
		switch {
		case len(ties) == 0,
			side == chess.White && v > bestValue,
			side == chess.Black && v < bestValue:
			bestValue = v
			ties = append(ties[:0], candidate(v, m))
		case v == bestValue:
			ties = append(ties, candidate(v, m))
		}
	}
	if len(ties) == 0 {
		return Candidate{}, false
	}
	return ties[e.rng.Intn(len(ties))], true
}

// 内部递归：标准 alpha-beta（fail-soft）。
// side 是当前走棋方，白方极大，黑方极小。
func (e *Engine) alphaBeta(b *chess.Board, depth int, alpha, beta float64, side chess.Color) float64 {
	e.nodes++

	switch b.EndGame(side) {
	case chess.Checkmate:
		if side == chess.White {
			return scoreNegInf
		}
		return scoreInf
	case chess.Stalemate:
		return 0
	}
	if depth <= 0 {
		return e.leaf(b)
	}

	moves := e.expand(b, side)
	if len(moves) == 0 {
		return e.leaf(b)
	}

	if side == chess.White {
		best := scoreNegInf
		for _, m := range moves {
			v := e.alphaBeta(child(b, m), depth-1, alpha, beta, chess.Black)
			best = math.Max(best, v)
			alpha = math.Max(alpha, best)
			if alpha >= beta {
				break
			}
		}
		return best
	}

	best := scoreInf
	for _, m := range moves {
		v := e.alphaBeta(child(b, m), depth-1, alpha, beta, chess.White)
		best = math.Min(best, v)
		beta = math.Min(beta, best)
		if alpha >= beta {
			break
		}
	}
	return best
}
