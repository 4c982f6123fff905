package chess

// InCheck 判断 c 的王是否被将军。
// 一次扫描全部棋子，每条射线只保留离王最近的那个子：
// 直线上最近的是敌车/后，斜线上最近的是敌象/后，即被将。
// 另外单独看马、兵和相邻的敌王。没有王返回 false。
func (b *Board) InCheck(c Color) bool {
	ks := b.KingSquare(c)
	if ks == NoSquare {
		return false
	}
	kr, kc := ks.Row(), ks.Col()
	enemy := c.Opposite()

	// 0-3 直线，4-7 斜线
	var nearest [8]Square
	var dist [8]int
	for i := range nearest {
		nearest[i] = NoSquare
	}

	for sq := Square(0); sq < NumSquares; sq++ {
		p := b.squares[sq]
		if p.Kind == NoKind || sq == ks {
			continue
		}
		dr, dc := sq.Row()-kr, sq.Col()-kc
		ar, ac := absInt(dr), absInt(dc)

		if p.Color == enemy {
			switch p.Kind {
			case Knight:
				if ar*ac == 2 {
					return true
				}
			case Pawn:
				// 敌兵在王的斜前方（从王的视角）
				if dr == pawnDir(c) && ac == 1 {
					return true
				}
			case King:
				if ar <= 1 && ac <= 1 {
					return true
				}
			}
		}

		ray := rayIndex(dr, dc)
		if ray < 0 {
			continue
		}
		d := max(ar, ac)
		if nearest[ray] == NoSquare || d < dist[ray] {
			nearest[ray] = sq
			dist[ray] = d
		}
	}

	for ray, sq := range nearest {
		if sq == NoSquare {
			continue
		}
		p := b.squares[sq]
		if p.Color != enemy {
			continue
		}
		if ray < 4 && (p.Kind == Rook || p.Kind == Queen) {
			return true
		}
		if ray >= 4 && (p.Kind == Bishop || p.Kind == Queen) {
			return true
		}
	}
	return false
}

// rayIndex 返回 (dr, dc) 所在的射线编号，不在任何射线上返回 -1
func rayIndex(dr, dc int) int {
	switch {
	case dr == 0 && dc > 0:
		return 0
	case dr == 0 && dc < 0:
		return 1
	case dc == 0 && dr > 0:
		return 2
	case dc == 0 && dr < 0:
		return 3
	case dr == dc && dr > 0:
		return 4
	case dr == dc && dr < 0:
		return 5
	case dr == -dc && dr > 0:
		return 6
	case dr == -dc && dr < 0:
		return 7
	}
	return -1
}
