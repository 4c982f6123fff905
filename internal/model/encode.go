package model

import "chessagent/internal/chess"

const (
	// 每格 6 个槽位：兵 王 后 马 象 车
	SlotsPerSquare = 6
	InputSize      = chess.NumSquares * SlotsPerSquare
	PolicySize     = chess.NumSquares
)

var kindSlot = [...]int{
	chess.Pawn:   0,
	chess.King:   1,
	chess.Queen:  2,
	chess.Knight: 3,
	chess.Bishop: 4,
	chess.Rook:   5,
}

// Encode 把局面编码成 384 维输入：下标 sq*6+槽位，白 +1 黑 -1
func Encode(b *chess.Board) []float64 {
	state := make([]float64, InputSize)
	for _, p := range b.Pieces() {
		v := 1.0
		if p.Color == chess.Black {
			v = -1.0
		}
		state[int(p.Square)*SlotsPerSquare+kindSlot[p.Kind]] = v
	}
	return state
}

// EncodeInto 写进 float32 缓冲区，给 ONNX 输入张量用
func EncodeInto(dst []float32, b *chess.Board) {
	for i := range dst {
		dst[i] = 0
	}
	for _, p := range b.Pieces() {
		v := float32(1)
		if p.Color == chess.Black {
			v = -1
		}
		dst[int(p.Square)*SlotsPerSquare+kindSlot[p.Kind]] = v
	}
}

// OneHot 训练目标
func OneHot(size, idx int) []float64 {
	out := make([]float64, size)
	if idx >= 0 && idx < size {
		out[idx] = 1
	}
	return out
}
