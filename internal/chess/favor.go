package chess

// Favor 白方视角的局面分：
// (白子力 + 白位置分/格权总和) - (黑子力 + 黑位置分/格权总和)
func (b *Board) Favor() float64 {
	b.mustFresh()
	var material, positional [2]float64
	var seen [2][numMoveKinds][NumSquares]bool

	reach := func(c Color, kind MoveKind, to Square) {
		if seen[c][kind][to] {
			return
		}
		seen[c][kind][to] = true
		positional[c] += b.targetValue(c, kind, to)
	}

	for _, p := range b.squares {
		if p.Kind == NoKind {
			continue
		}
		material[p.Color] += p.Points()
		if p.Kind == Pawn {
			for _, to := range pawnAttackSquares(p.Square, p.Color) {
				reach(p.Color, MoveNormal, to)
			}
			continue
		}
		for _, m := range p.Moves {
			reach(p.Color, m.Kind, m.To)
		}
	}

	return (material[White] + positional[White]/b.gridTotal) -
		(material[Black] + positional[Black]/b.gridTotal)
}

func (b *Board) targetValue(c Color, kind MoveKind, to Square) float64 {
	switch kind {
	case MoveCastleKingside, MoveCastleQueenside:
		corner := Sq(to.Row(), 0)
		if kind == MoveCastleKingside {
			corner = Sq(to.Row(), Size-1)
		}
		return 2 * TileValue(corner)
	case MovePawnDouble:
		return 0
	case MoveEnPassant:
		return TileValue(to) + 1
	}
	v := TileValue(to)
	if occ := b.squares[to]; occ.Kind != NoKind && occ.Color != c {
		v += occ.Points() / QueenPoints
	}
	return v
}
