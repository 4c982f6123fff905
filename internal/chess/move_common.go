package chess

var (
	rookDirs   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	kingDirs   = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// 滑子：沿方向一直走，遇敌吃后停，遇己停
func genSlide(b *Board, from Square, dirs [][2]int, moves *[]Move) {
	row, col := from.Row(), from.Col()
	side := b.squares[from].Color
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			to := Sq(r, c)
			pc := b.squares[to]
			if pc.Kind == NoKind {
				*moves = append(*moves, Move{From: from, To: to})
			} else {
				if pc.Color != side {
					*moves = append(*moves, Move{From: from, To: to})
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

func genRookMoves(b *Board, from Square, moves *[]Move) {
	genSlide(b, from, rookDirs[:], moves)
}

func genBishopMoves(b *Board, from Square, moves *[]Move) {
	genSlide(b, from, bishopDirs[:], moves)
}

func genQueenMoves(b *Board, from Square, moves *[]Move) {
	genSlide(b, from, kingDirs[:], moves)
}

// 王：八邻格 + 易位
func genKingMoves(b *Board, from Square, moves *[]Move) {
	row, col := from.Row(), from.Col()
	king := b.squares[from]
	for _, d := range kingDirs {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) {
			continue
		}
		dst := b.squares[Sq(r, c)]
		if dst.Kind == NoKind || dst.Color != king.Color {
			*moves = append(*moves, Move{From: from, To: Sq(r, c)})
		}
	}
	if king.Moved {
		return
	}
	// 短易位：王车之间两格空，角上车未动
	if col+3 < Size && b.emptyAt(row, col+1) && b.emptyAt(row, col+2) && b.castleRook(king.Color, Sq(row, col+3)) {
		*moves = append(*moves, Move{Kind: MoveCastleKingside, From: from, To: Sq(row, col+2)})
	}
	// 长易位：三格空
	if col-4 >= 0 && b.emptyAt(row, col-1) && b.emptyAt(row, col-2) && b.emptyAt(row, col-3) && b.castleRook(king.Color, Sq(row, col-4)) {
		*moves = append(*moves, Move{Kind: MoveCastleQueenside, From: from, To: Sq(row, col-2)})
	}
}

func (b *Board) castleRook(c Color, sq Square) bool {
	p := b.squares[sq]
	return p.Kind == Rook && p.Color == c && !p.Moved
}

// 易位时车的起止格
func castleRookSquares(m Move) (from, to Square) {
	row, col := m.From.Row(), m.From.Col()
	if m.Kind == MoveCastleKingside {
		return Sq(row, col+3), Sq(row, col+1)
	}
	return Sq(row, col-4), Sq(row, col-1)
}
