package chess

func genPawnMoves(b *Board, from Square, moves *[]Move) {
	row, col := from.Row(), from.Col()
	pc := b.squares[from]
	dir := pawnDir(pc.Color)

	r1 := row + dir
	if !onBoard(r1, col) {
		return
	}

	// 前进一格；未动过的兵可以跳两格
	if !b.occupied(r1, col) {
		*moves = append(*moves, Move{From: from, To: Sq(r1, col)})
		r2 := row + 2*dir
		if !pc.Moved && b.emptyAt(r2, col) {
			*moves = append(*moves, Move{Kind: MovePawnDouble, From: from, To: Sq(r2, col)})
		}
	}

	// 斜吃，包括吃过路兵
	for _, dc := range [2]int{-1, +1} {
		c := col + dc
		if !onBoard(r1, c) {
			continue
		}
		to := Sq(r1, c)
		dst := b.squares[to]
		switch {
		case dst.Kind != NoKind && dst.Color != pc.Color:
			*moves = append(*moves, Move{From: from, To: to})
		case dst.Kind == NoKind && b.ep.Square == to && b.ep.Color == pc.Color.Opposite():
			*moves = append(*moves, Move{Kind: MoveEnPassant, From: from, To: to})
		}
	}
}

// 兵的两个斜前方格（只算棋盘内的），估值用
func pawnAttackSquares(from Square, c Color) []Square {
	row, col := from.Row(), from.Col()
	r := row + pawnDir(c)
	out := make([]Square, 0, 2)
	for _, dc := range [2]int{-1, +1} {
		if onBoard(r, col+dc) {
			out = append(out, Sq(r, col+dc))
		}
	}
	return out
}

func promotionRow(row int) bool {
	return row == 0 || row == Size-1
}
