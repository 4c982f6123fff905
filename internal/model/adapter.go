package model

import (
	"fmt"

	"chessagent/internal/chess"
)

// NetworkRanker 用策略网络给 64 个格子打分
type NetworkRanker struct {
	Net *Network
}

func (r NetworkRanker) Rank(b *chess.Board) ([]float64, error) {
	out, err := r.Net.Predict(Encode(b))
	if err != nil {
		return nil, err
	}
	if len(out) != PolicySize {
		return nil, fmt.Errorf("%w: ranker output %d, want %d", ErrShape, len(out), PolicySize)
	}
	return out, nil
}

// NetworkValuer 用价值网络给出 favor 桶号
type NetworkValuer struct {
	Net *Network
}

func (v NetworkValuer) Value(b *chess.Board) (int, error) {
	out, err := v.Net.Predict(Encode(b))
	if err != nil {
		return 0, err
	}
	if len(out) != Buckets {
		return 0, fmt.Errorf("%w: valuer output %d, want %d", ErrShape, len(out), Buckets)
	}
	return Argmax(out), nil
}
