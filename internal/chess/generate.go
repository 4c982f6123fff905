package chess

import "fmt"

// 单个棋子的伪合法走法（不考虑自己王被将军）
func (b *Board) pseudoMoves(from Square) []Move {
	var moves []Move
	switch b.squares[from].Kind {
	case King:
		genKingMoves(b, from, &moves)
	case Queen:
		genQueenMoves(b, from, &moves)
	case Rook:
		genRookMoves(b, from, &moves)
	case Bishop:
		genBishopMoves(b, from, &moves)
	case Knight:
		genKnightMoves(b, from, &moves)
	case Pawn:
		genPawnMoves(b, from, &moves)
	}
	return moves
}

// legalMoves 过滤掉走完后自己王被将军的走法。
// 易位另外要求：当前不被将军，王经过的格子不被攻击。
func (b *Board) legalMoves(from Square) []Move {
	pseudo := b.pseudoMoves(from)
	out := make([]Move, 0, len(pseudo))
	side := b.squares[from].Color
	for _, m := range pseudo {
		if m.IsCastle() {
			if b.InCheck(side) {
				continue
			}
			transit := Sq(m.From.Row(), (m.From.Col()+m.To.Col())/2)
			nb := b.Clone()
			nb.relocate(m.From, transit)
			if nb.InCheck(side) {
				continue
			}
		}
		nb := b.Clone()
		nb.MakeMove(m)
		if nb.InCheck(side) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// UpdateMoveSet 重算双方所有棋子的合法走法缓存
func (b *Board) UpdateMoveSet() {
	for sq := Square(0); sq < NumSquares; sq++ {
		if b.squares[sq].Kind == NoKind {
			b.squares[sq].Moves = nil
			continue
		}
		b.squares[sq].Moves = b.legalMoves(sq)
	}
	b.fresh = true
}

// LegalMoves 按格序列出 side 所有合法走法
func (b *Board) LegalMoves(side Color) []Move {
	b.mustFresh()
	var out []Move
	for _, p := range b.squares {
		if p.Kind != NoKind && p.Color == side {
			out = append(out, p.Moves...)
		}
	}
	return out
}

// MoveCount side 的合法走法总数
func (b *Board) MoveCount(side Color) int {
	b.mustFresh()
	n := 0
	for _, p := range b.squares {
		if p.Kind != NoKind && p.Color == side {
			n += len(p.Moves)
		}
	}
	return n
}

// Movable 有至少一步合法走法的 side 棋子
func (b *Board) Movable(side Color) []Piece {
	b.mustFresh()
	var out []Piece
	for _, p := range b.squares {
		if p.Kind != NoKind && p.Color == side && len(p.Moves) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// MoveAt 取 sq 上棋子的第 i 个合法走法，越界是调用方的错
func (b *Board) MoveAt(sq Square, i int) Move {
	b.mustFresh()
	p := b.PieceAt(sq)
	if i < 0 || i >= len(p.Moves) {
		panic(fmt.Sprintf("chess: move index %d out of range for %v (%d moves)", i, sq, len(p.Moves)))
	}
	return p.Moves[i]
}

// FindMove 按起止格找合法走法
func (b *Board) FindMove(from, to Square) (Move, bool) {
	b.mustFresh()
	p, ok := b.At(from)
	if !ok {
		return Move{}, false
	}
	for _, m := range p.Moves {
		if m.To == to {
			return m, true
		}
	}
	return Move{}, false
}
