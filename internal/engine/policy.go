package engine

import (
	"fmt"
	"sort"

	"chessagent/internal/chess"
	"chessagent/internal/model"
)

// Ranker 给 64 个格子打分，分越高越可能是该走的子
type Ranker interface {
	Rank(b *chess.Board) ([]float64, error)
}

// Valuer 给局面一个 favor 桶号
type Valuer interface {
	Value(b *chess.Board) (int, error)
}

// LearnedPolicy 只展开排序模型选出的前 TopN 个子，叶子用价值模型
type LearnedPolicy struct {
	Ranker Ranker
	Valuer Valuer
	TopN   int

	cache *leafCache
}

func NewLearnedPolicy(r Ranker, v Valuer, topN int) *LearnedPolicy {
	return &LearnedPolicy{Ranker: r, Valuer: v, TopN: topN, cache: newLeafCache()}
}

func (p *LearnedPolicy) Leaf(b *chess.Board) (float64, error) {
	key := b.Hash()
	if v, ok := p.cache.get(key); ok {
		return v, nil
	}
	bucket, err := p.Valuer.Value(b)
	if err != nil {
		return 0, err
	}
	v := model.BucketFavor(bucket)
	p.cache.store(key, v)
	return v, nil
}

func (p *LearnedPolicy) Expand(b *chess.Board, side chess.Color) ([]chess.Move, error) {
	top, err := p.TopPieces(b, side)
	if err != nil {
		return nil, err
	}
	var moves []chess.Move
	for _, pc := range top {
		moves = append(moves, pc.Moves...)
	}
	return moves, nil
}

// TopPieces 按分数从高到低挑出前 TopN 个有棋可走的 side 棋子，同分按格序
func (p *LearnedPolicy) TopPieces(b *chess.Board, side chess.Color) ([]chess.Piece, error) {
	scores, err := p.Ranker.Rank(b)
	if err != nil {
		return nil, err
	}
	if len(scores) != chess.NumSquares {
		return nil, fmt.Errorf("%w: ranker returned %d scores", model.ErrShape, len(scores))
	}

	order := make([]chess.Square, chess.NumSquares)
	for i := range order {
		order[i] = chess.Square(i)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	var top []chess.Piece
	for _, sq := range order {
		if len(top) == p.TopN {
			break
		}
		pc, ok := b.At(sq)
		if !ok || pc.Color != side || len(pc.Moves) == 0 {
			continue
		}
		top = append(top, pc)
	}
	return top, nil
}
