package chess

import "sync"

const zobristKinds = int(Pawn) + 1 // Kind 范围 [1..6]，0 保留空位不用

var (
	zobristOnce sync.Once

	zobristPieces    [2][zobristKinds][NumSquares]uint64
	zobristSide      uint64
	zobristEnPassant [NumSquares]uint64
	zobristCastle    [2][2]uint64 // [颜色][0 短 1 长]
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for c := 0; c < 2; c++ {
			for k := 1; k < zobristKinds; k++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[c][k][sq] = next()
				}
			}
		}
		zobristSide = next()
		for sq := 0; sq < NumSquares; sq++ {
			zobristEnPassant[sq] = next()
		}
		for c := 0; c < 2; c++ {
			zobristCastle[c][0] = next()
			zobristCastle[c][1] = next()
		}
	})
}

// Hash 全量计算 Zobrist 哈希：棋子、走子方、过路兵格、易位权。
// 非王车的 Moved 标记不参与，所以马跳出去再跳回来哈希不变。
func (b *Board) Hash() uint64 {
	initZobrist()

	var h uint64
	for _, p := range b.squares {
		if p.Kind == NoKind {
			continue
		}
		h ^= zobristPieces[p.Color][p.Kind][p.Square]
	}
	if b.SideToMove() == Black {
		h ^= zobristSide
	}
	if b.ep.Square != NoSquare {
		h ^= zobristEnPassant[b.ep.Square]
	}
	for c := White; c <= Black; c++ {
		ks := b.kings[c]
		if ks == NoSquare || b.squares[ks].Moved {
			continue
		}
		row, col := ks.Row(), ks.Col()
		if col+3 < Size && b.castleRook(c, Sq(row, col+3)) {
			h ^= zobristCastle[c][0]
		}
		if col-4 >= 0 && b.castleRook(c, Sq(row, col-4)) {
			h ^= zobristCastle[c][1]
		}
	}
	return h
}
