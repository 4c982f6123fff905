// Package render 把局面画成 SVG，给网页和调试用。
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"chessagent/internal/chess"
)

const DefaultSquareSize = 45

type Options struct {
	SquareSize int            // 每格边长（像素），<= 0 用 DefaultSquareSize
	Highlight  []chess.Square // 需要高亮的格子，比如上一步的起止格
	Flip       bool           // 黑方视角
}

var (
	lightFill     = "fill:#f0d9b5"
	darkFill      = "fill:#b58863"
	highlightFill = "fill:#cdd26a;fill-opacity:0.8"
	coordStyle    = "font-family:sans-serif;font-size:%dpx;fill:#555"
)

// 白子用空心符号，黑子用实心符号
var glyphs = [2][7]string{
	chess.White: {chess.King: "♔", chess.Queen: "♕", chess.Rook: "♖", chess.Bishop: "♗", chess.Knight: "♘", chess.Pawn: "♙"},
	chess.Black: {chess.King: "♚", chess.Queen: "♛", chess.Rook: "♜", chess.Bishop: "♝", chess.Knight: "♞", chess.Pawn: "♟"},
}

// WriteSVG 画出棋盘、坐标和棋子
func WriteSVG(w io.Writer, b *chess.Board, opts Options) {
	size := opts.SquareSize
	if size <= 0 {
		size = DefaultSquareSize
	}
	margin := size / 2
	side := chess.Size*size + 2*margin

	hl := make(map[chess.Square]bool, len(opts.Highlight))
	for _, sq := range opts.Highlight {
		hl[sq] = true
	}

	canvas := svg.New(w)
	canvas.Start(side, side)
	canvas.Rect(0, 0, side, side, "fill:#ffffff")

	for row := 0; row < chess.Size; row++ {
		for col := 0; col < chess.Size; col++ {
			sq := chess.Sq(row, col)
			x, y := origin(row, col, size, margin, opts.Flip)
			fill := lightFill
			if (row+col)%2 == 0 {
				fill = darkFill
			}
			canvas.Rect(x, y, size, size, fill)
			if hl[sq] {
				canvas.Rect(x, y, size, size, highlightFill)
			}
			p, ok := b.At(sq)
			if !ok {
				continue
			}
			canvas.Text(x+size/2, y+size*4/5, glyphs[p.Color][p.Kind],
				fmt.Sprintf("text-anchor:middle;font-size:%dpx", size*4/5))
		}
	}

	style := fmt.Sprintf(coordStyle, max(margin*3/5, 6))
	for i := 0; i < chess.Size; i++ {
		x, _ := origin(0, i, size, margin, opts.Flip)
		_, y := origin(i, 0, size, margin, opts.Flip)
		canvas.Text(x+size/2, side-margin/4, string(rune('a'+i)), "text-anchor:middle;"+style)
		canvas.Text(margin/2, y+size/2+margin/4, string(rune('1'+i)), "text-anchor:middle;"+style)
	}
	canvas.End()
}

// origin 返回格子左上角坐标，白方视角第 0 行在最下面
func origin(row, col, size, margin int, flip bool) (int, int) {
	if flip {
		return margin + (chess.Size-1-col)*size, margin + row*size
	}
	return margin + col*size, margin + (chess.Size-1-row)*size
}
