package chess

// Color 用作数组下标，White/Black 必须是 0/1
type Color int8

const (
	NoColor Color = -1
	White   Color = 0
	Black   Color = 1
)

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

type Kind int8

const (
	NoKind Kind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

const (
	QueenPoints = 8.0
	PawnPoints  = 1.0
)

var kindPoints = [...]float64{
	NoKind: 0,
	King:   0,
	Queen:  QueenPoints,
	Rook:   5,
	Bishop: 3,
	Knight: 3,
	Pawn:   PawnPoints,
}

var kindLetters = [...]byte{
	NoKind: '.',
	King:   'K',
	Queen:  'Q',
	Rook:   'R',
	Bishop: 'B',
	Knight: 'N',
	Pawn:   'P',
}

func (k Kind) Points() float64 {
	if k < 0 || int(k) >= len(kindPoints) {
		return 0
	}
	return kindPoints[k]
}

func (k Kind) Letter() byte {
	if k < 0 || int(k) >= len(kindLetters) {
		return '?'
	}
	return kindLetters[k]
}

func kindFromLetter(ch byte) (Kind, bool) {
	for k := King; k <= Pawn; k++ {
		if kindLetters[k] == ch {
			return k, true
		}
	}
	return NoKind, false
}

// Piece 的身份只由所在格决定，棋盘按格查找。
// Moves 是最近一次 UpdateMoveSet 算出的合法走法。
type Piece struct {
	Kind   Kind
	Color  Color
	Square Square
	Moved  bool
	Moves  []Move
}

func (p Piece) Empty() bool { return p.Kind == NoKind }

func (p Piece) Points() float64 { return p.Kind.Points() }

// 白方大写，黑方小写
func (p Piece) Letter() byte {
	ch := p.Kind.Letter()
	if p.Color == Black && ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	return ch
}

type MoveKind uint8

const (
	MoveNormal MoveKind = iota
	MoveCastleKingside
	MoveCastleQueenside
	MovePawnDouble
	MoveEnPassant

	numMoveKinds
)

func (k MoveKind) String() string {
	switch k {
	case MoveNormal:
		return "normal"
	case MoveCastleKingside:
		return "castle_kingside"
	case MoveCastleQueenside:
		return "castle_queenside"
	case MovePawnDouble:
		return "pawn_double"
	case MoveEnPassant:
		return "en_passant"
	}
	return "unknown"
}

// Move 的 To 永远是真实格子：
// 易位 = 王的落点，双步 = 兵的落点，吃过路兵 = 被越过的那一格。
type Move struct {
	Kind MoveKind
	From Square
	To   Square
}

func (m Move) IsCastle() bool {
	return m.Kind == MoveCastleKingside || m.Kind == MoveCastleQueenside
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// Label 是给人看的走法描述
func (m Move) Label() string {
	switch m.Kind {
	case MoveCastleKingside:
		return "O-O"
	case MoveCastleQueenside:
		return "O-O-O"
	case MovePawnDouble:
		return "jump"
	case MoveEnPassant:
		return "en passant " + string(rune('a'+m.To.Col())) + " pawn"
	}
	return m.To.String()
}
