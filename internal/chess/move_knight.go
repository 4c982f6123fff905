package chess

// 马：八个日字落点
var knightOffsets = [8][2]int{
	{-2, -1}, {-2, +1},
	{-1, -2}, {-1, +2},
	{+1, -2}, {+1, +2},
	{+2, -1}, {+2, +1},
}

func genKnightMoves(b *Board, from Square, moves *[]Move) {
	row, col := from.Row(), from.Col()
	side := b.squares[from].Color
	for _, d := range knightOffsets {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) {
			continue
		}
		to := Sq(r, c)
		dst := b.squares[to]
		if dst.Kind == NoKind || dst.Color != side {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}
