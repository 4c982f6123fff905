package chess

import (
	"errors"
	"fmt"
)

var ErrIllegalMove = errors.New("illegal move")

// MakeMove 只改棋盘，不动回合数，也不重算走法缓存。
// 调用方保证 m 至少是伪合法的。
func (b *Board) MakeMove(m Move) {
	pc := b.squares[m.From]
	if !m.From.Valid() || pc.Kind == NoKind {
		panic(fmt.Sprintf("chess: make move %v from empty square", m))
	}
	b.ep = noEnPassant
	b.fresh = false

	switch m.Kind {
	case MoveCastleKingside, MoveCastleQueenside:
		rookFrom, rookTo := castleRookSquares(m)
		b.relocate(m.From, m.To)
		b.relocate(rookFrom, rookTo)
	case MovePawnDouble:
		b.relocate(m.From, m.To)
		b.ep = enPassant{
			Square: Sq((m.From.Row()+m.To.Row())/2, m.From.Col()),
			Color:  pc.Color,
		}
	case MoveEnPassant:
		b.clear(Sq(m.From.Row(), m.To.Col()))
		b.relocate(m.From, m.To)
	default:
		b.relocate(m.From, m.To)
		if pc.Kind == Pawn && promotionRow(m.To.Row()) {
			b.squares[m.To].Kind = Queen
		}
	}
}

// relocate 挪子，落点有子直接吃掉
func (b *Board) relocate(from, to Square) {
	pc := b.squares[from]
	if victim := b.squares[to]; victim.Kind == King && b.kings[victim.Color] == to {
		b.kings[victim.Color] = NoSquare
	}
	b.clear(from)
	pc.Square = to
	pc.Moved = true
	pc.Moves = nil
	b.squares[to] = pc
	if pc.Kind == King {
		b.kings[pc.Color] = to
	}
}

func (b *Board) clear(sq Square) {
	if old := b.squares[sq]; old.Kind == King && b.kings[old.Color] == sq {
		b.kings[old.Color] = NoSquare
	}
	b.squares[sq] = Piece{Color: NoColor, Square: sq}
	b.fresh = false
}

// Play 走子 + 回合推进 + 重算缓存，不做合法性检查
func (b *Board) Play(m Move) {
	b.MakeMove(m)
	b.turn++
	b.UpdateMoveSet()
}

// Apply 是对局入口：只接受轮到的一方、缓存里有的走法
func (b *Board) Apply(m Move) error {
	b.mustFresh()
	p, ok := b.At(m.From)
	if !ok {
		return fmt.Errorf("%w: no piece on %v", ErrIllegalMove, m.From)
	}
	if p.Color != b.SideToMove() {
		return fmt.Errorf("%w: %v to move", ErrIllegalMove, b.SideToMove())
	}
	for _, lm := range p.Moves {
		if lm == m {
			b.Play(m)
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrIllegalMove, m)
}
