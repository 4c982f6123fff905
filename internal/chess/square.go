package chess

import (
	"errors"
	"strings"
)

const (
	Size       = 8
	NumSquares = Size * Size
)

// Square = row*8 + col，第 0 行是白方底线
type Square int8

const NoSquare Square = -1

var ErrBadSquare = errors.New("bad square")

func Sq(row, col int) Square { return Square(row*Size + col) }

func (s Square) Row() int { return int(s) / Size }
func (s Square) Col() int { return int(s) % Size }

func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.Col()), byte('1' + s.Row())})
}

// ParseSquare 解析 "e4" 这种坐标
func ParseSquare(str string) (Square, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	if len(str) != 2 {
		return NoSquare, ErrBadSquare
	}
	col := int(str[0] - 'a')
	row := int(str[1] - '1')
	if !onBoard(row, col) {
		return NoSquare, ErrBadSquare
	}
	return Sq(row, col), nil
}

func onBoard(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// 兵的前进方向：白向上(+1)，黑向下(-1)
func pawnDir(c Color) int {
	switch c {
	case White:
		return +1
	case Black:
		return -1
	}
	return 0
}

// TileValue 同心环权重：中心 1.10，外一圈 1.05，再外 1.025，边线 1.0
func TileValue(s Square) float64 {
	r, c := s.Row(), s.Col()
	ring := min(r, c, Size-1-r, Size-1-c)
	switch ring {
	case 3:
		return 1.1
	case 2:
		return 1.05
	case 1:
		return 1.025
	}
	return 1.0
}
