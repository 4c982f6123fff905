package chess

import (
	"fmt"
	"io"
	"strings"
)

// Print 文本棋盘：第 8 行在上，白方大写，黑方小写，空格用 '.'
func (b *Board) Print(w io.Writer) {
	for row := Size - 1; row >= 0; row-- {
		fmt.Fprintf(w, "%d| ", row+1)
		for col := 0; col < Size; col++ {
			fmt.Fprintf(w, "%c ", b.squares[Sq(row, col)].Letter())
		}
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, "   ")
	for col := 0; col < Size; col++ {
		fmt.Fprint(w, "_ ")
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, "   ")
	for col := 0; col < Size; col++ {
		fmt.Fprintf(w, "%c ", 'a'+col)
	}
	fmt.Fprintln(w)
}

func (b *Board) String() string {
	var sb strings.Builder
	b.Print(&sb)
	return sb.String()
}

// PrintMoves 列出 sq 上棋子的合法走法，序号就是 MoveAt 的下标
func (b *Board) PrintMoves(w io.Writer, sq Square) {
	b.mustFresh()
	p := b.PieceAt(sq)
	for i, m := range p.Moves {
		fmt.Fprintf(w, "%d: %s\n", i, m.Label())
	}
}
