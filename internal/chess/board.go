package chess

import "fmt"

// 过路兵标记：被越过的格子 + 跳兵那一方的颜色。
// 下一步走子开始时无条件清掉。
type enPassant struct {
	Square Square
	Color  Color
}

var noEnPassant = enPassant{Square: NoSquare, Color: NoColor}

type Board struct {
	squares   [NumSquares]Piece
	kings     [2]Square
	ep        enPassant
	gridTotal float64 // 64 格权重之和，构造时算一次
	turn      int     // 奇数白走，偶数黑走
	fresh     bool    // 走法缓存是否与当前局面一致
}

func NewEmptyBoard() *Board {
	b := &Board{
		kings: [2]Square{NoSquare, NoSquare},
		ep:    noEnPassant,
		turn:  1,
	}
	for sq := Square(0); sq < NumSquares; sq++ {
		b.squares[sq] = Piece{Color: NoColor, Square: sq}
		b.gridTotal += TileValue(sq)
	}
	return b
}

var backRank = [Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard 标准开局，走法缓存已就绪
func NewBoard() *Board {
	b := NewEmptyBoard()
	for col := 0; col < Size; col++ {
		b.Place(Piece{Kind: backRank[col], Color: White, Square: Sq(0, col)})
		b.Place(Piece{Kind: Pawn, Color: White, Square: Sq(1, col)})
		b.Place(Piece{Kind: Pawn, Color: Black, Square: Sq(Size-2, col)})
		b.Place(Piece{Kind: backRank[col], Color: Black, Square: Sq(Size-1, col)})
	}
	b.UpdateMoveSet()
	return b
}

// Place 摆子（开局、读档、测试局面用），会让走法缓存失效
func (b *Board) Place(p Piece) {
	if !p.Square.Valid() {
		panic(fmt.Sprintf("chess: place on invalid square %d", p.Square))
	}
	if p.Kind == NoKind {
		b.clear(p.Square)
		return
	}
	if old := b.squares[p.Square]; old.Kind == King && b.kings[old.Color] == p.Square {
		b.kings[old.Color] = NoSquare
	}
	p.Moves = nil
	b.squares[p.Square] = p
	if p.Kind == King {
		b.kings[p.Color] = p.Square
	}
	b.fresh = false
}

func (b *Board) SetTurn(turn int) {
	if turn < 1 {
		panic(fmt.Sprintf("chess: bad turn %d", turn))
	}
	b.turn = turn
}

// SetEnPassant 设置过路兵标记，sq 是被越过的格子，c 是跳兵方
func (b *Board) SetEnPassant(sq Square, c Color) {
	b.ep = enPassant{Square: sq, Color: c}
	b.fresh = false
}

// Clone 深拷贝：数组按值复制，走法切片之后只会被整体替换
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// At 是纯查找，不存在返回 false
func (b *Board) At(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	p := b.squares[sq]
	return p, p.Kind != NoKind
}

// PieceAt 查空格属于程序错误
func (b *Board) PieceAt(sq Square) Piece {
	p, ok := b.At(sq)
	if !ok {
		panic(fmt.Sprintf("chess: no piece on %v", sq))
	}
	return p
}

func (b *Board) occupied(row, col int) bool {
	return b.squares[Sq(row, col)].Kind != NoKind
}

func (b *Board) emptyAt(row, col int) bool {
	return onBoard(row, col) && !b.occupied(row, col)
}

func (b *Board) KingSquare(c Color) Square {
	if c != White && c != Black {
		return NoSquare
	}
	return b.kings[c]
}

func (b *Board) Turn() int { return b.turn }

func (b *Board) SideToMove() Color {
	if b.turn%2 == 1 {
		return White
	}
	return Black
}

func (b *Board) EnPassant() (Square, Color, bool) {
	return b.ep.Square, b.ep.Color, b.ep.Square != NoSquare
}

func (b *Board) GridTotal() float64 { return b.gridTotal }

// Fresh 走法缓存是否可用
func (b *Board) Fresh() bool { return b.fresh }

// Pieces 按格序返回所有棋子
func (b *Board) Pieces() []Piece {
	out := make([]Piece, 0, 32)
	for _, p := range b.squares {
		if p.Kind != NoKind {
			out = append(out, p)
		}
	}
	return out
}

func (b *Board) Count() int {
	n := 0
	for _, p := range b.squares {
		if p.Kind != NoKind {
			n++
		}
	}
	return n
}

func (b *Board) mustFresh() {
	if !b.fresh {
		panic("chess: move caches are stale, call UpdateMoveSet first")
	}
}
