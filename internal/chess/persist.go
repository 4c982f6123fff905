package chess

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var ErrBadRecord = errors.New("bad board record")

// Save 文本存档：
//
//	第一行回合数
//	每个棋子一行：<字母> <行> <列> <颜色 0/1> <是否动过 0/1>
//	可选一行过路兵：E <行> <列> <颜色>
func (b *Board) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", b.turn)
	for _, p := range b.squares {
		if p.Kind == NoKind {
			continue
		}
		moved := 0
		if p.Moved {
			moved = 1
		}
		fmt.Fprintf(bw, "%c %d %d %d %d\n", p.Kind.Letter(), p.Square.Row(), p.Square.Col(), p.Color, moved)
	}
	if b.ep.Square != NoSquare {
		fmt.Fprintf(bw, "E %d %d %d\n", b.ep.Square.Row(), b.ep.Square.Col(), b.ep.Color)
	}
	return bw.Flush()
}

// ReadBoard 解析存档到新棋盘，重建王位置和全部走法缓存
func ReadBoard(r io.Reader) (*Board, error) {
	sc := bufio.NewScanner(r)
	nb := NewEmptyBoard()

	line := 0
	gotTurn := false
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if !gotTurn {
			turn, err := strconv.Atoi(text)
			if err != nil || turn < 1 {
				return nil, fmt.Errorf("%w: line %d: turn %q", ErrBadRecord, line, text)
			}
			nb.turn = turn
			gotTurn = true
			continue
		}
		if fields[0] == "E" {
			if len(fields) != 4 {
				return nil, fmt.Errorf("%w: line %d: en passant needs 3 fields", ErrBadRecord, line)
			}
			nums, err := atoiAll(fields[1:])
			if err != nil || !onBoard(nums[0], nums[1]) || !validColor(nums[2]) {
				return nil, fmt.Errorf("%w: line %d: %q", ErrBadRecord, line, text)
			}
			nb.ep = enPassant{Square: Sq(nums[0], nums[1]), Color: Color(nums[2])}
			continue
		}
		if len(fields) != 5 || len(fields[0]) != 1 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrBadRecord, line, text)
		}
		kind, ok := kindFromLetter(fields[0][0])
		if !ok {
			return nil, fmt.Errorf("%w: line %d: unknown piece %q", ErrBadRecord, line, fields[0])
		}
		nums, err := atoiAll(fields[1:])
		if err != nil || !onBoard(nums[0], nums[1]) || !validColor(nums[2]) || (nums[3] != 0 && nums[3] != 1) {
			return nil, fmt.Errorf("%w: line %d: %q", ErrBadRecord, line, text)
		}
		sq := Sq(nums[0], nums[1])
		if _, taken := nb.At(sq); taken {
			return nil, fmt.Errorf("%w: line %d: square %v used twice", ErrBadRecord, line, sq)
		}
		if kind == King && nb.kings[nums[2]] != NoSquare {
			return nil, fmt.Errorf("%w: line %d: second %v king", ErrBadRecord, line, Color(nums[2]))
		}
		nb.Place(Piece{Kind: kind, Color: Color(nums[2]), Square: sq, Moved: nums[3] == 1})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !gotTurn {
		return nil, fmt.Errorf("%w: empty record", ErrBadRecord)
	}
	nb.UpdateMoveSet()
	return nb, nil
}

// Load 成功才替换接收者，失败时棋盘保持原样
func (b *Board) Load(r io.Reader) error {
	nb, err := ReadBoard(r)
	if err != nil {
		return err
	}
	*b = *nb
	return nil
}

func (b *Board) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	if err := b.Save(f); err != nil {
		f.Close()
		return fmt.Errorf("save board: %w", err)
	}
	return f.Close()
}

func (b *Board) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}
	defer f.Close()
	return b.Load(f)
}

func atoiAll(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, s := range fields {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func validColor(n int) bool {
	return n == int(White) || n == int(Black)
}
