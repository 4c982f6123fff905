package chess

import (
	"strconv"
	"strings"
)

// FEN 导出标准 FEN，半回合计数恒为 0。
// 易位权按“王没动 + 对应角上车没动”推出。
func (b *Board) FEN() string {
	var sb strings.Builder
	for row := Size - 1; row >= 0; row-- {
		if row < Size-1 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < Size; col++ {
			p := b.squares[Sq(row, col)]
			if p.Kind == NoKind {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}

	sb.WriteByte(' ')
	if b.SideToMove() == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	rights := ""
	for _, c := range [2]Color{White, Black} {
		ks := b.kings[c]
		if ks == NoSquare || b.squares[ks].Moved {
			continue
		}
		row, col := ks.Row(), ks.Col()
		short, long := "K", "Q"
		if c == Black {
			short, long = "k", "q"
		}
		if col+3 < Size && b.castleRook(c, Sq(row, col+3)) {
			rights += short
		}
		if col-4 >= 0 && b.castleRook(c, Sq(row, col-4)) {
			rights += long
		}
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	sb.WriteByte(' ')
	sb.WriteString(b.ep.Square.String())

	sb.WriteString(" 0 ")
	sb.WriteString(strconv.Itoa((b.turn + 1) / 2))
	return sb.String()
}

