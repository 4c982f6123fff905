// Package notation 把 SAN/PGN 棋谱转换成引擎自己的走法序列。
// SAN 的解析交给 github.com/notnil/chess，这里只做逐步对照和转换。
package notation

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"chessagent/internal/chess"

	nchess "github.com/notnil/chess"
)

var (
	ErrUnsupportedPromotion = errors.New("only queen promotion is supported")
	ErrNoMatchingMove       = errors.New("no matching legal move")
	ErrUnknownResult        = errors.New("unknown result tag")
	ErrBadMove              = errors.New("bad SAN move")
)

type Result int8

const (
	Unfinished Result = iota
	WhiteWins
	BlackWins
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	}
	return "*"
}

// Sign 白胜 +1，黑胜 -1，其余 0
func (r Result) Sign() float64 {
	switch r {
	case WhiteWins:
		return 1
	case BlackWins:
		return -1
	}
	return 0
}

func ParseResult(tag string) (Result, error) {
	switch strings.TrimSpace(tag) {
	case "1-0":
		return WhiteWins, nil
	case "0-1":
		return BlackWins, nil
	case "1/2-1/2", "½-½":
		return Draw, nil
	case "*", "":
		return Unfinished, nil
	}
	return Unfinished, fmt.Errorf("%w: %q", ErrUnknownResult, tag)
}

// Record 一盘棋：从标准开局起的走法序列和结果
type Record struct {
	Moves  []chess.Move
	Result Result
}

// Replay 从开局重放，返回终局棋盘
func (r Record) Replay() (*chess.Board, error) {
	b := chess.NewBoard()
	for i, m := range r.Moves {
		if err := b.Apply(m); err != nil {
			return nil, fmt.Errorf("ply %d: %w", i+1, err)
		}
	}
	return b, nil
}

// isMoveNumber "1." "12..." 这种回合号
func isMoveNumber(tok string) bool {
	digits := strings.TrimRight(tok, ".")
	if digits == "" || digits == tok {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// FromTokens 把已经切好的 SAN 记号（可以夹着回合号和结果）转成走法
func FromTokens(tokens []string, result string) (Record, error) {
	res, err := ParseResult(result)
	if err != nil {
		return Record{}, err
	}

	g := nchess.NewGame()
	b := chess.NewBoard()
	var moves []chess.Move
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" || isMoveNumber(tok) {
			continue
		}
		if _, err := ParseResult(tok); err == nil {
			continue
		}
		// 形如 "1.e4" 的写法
		if i := strings.LastIndex(tok, "."); i >= 0 && isMoveNumber(tok[:i+1]) {
			tok = tok[i+1:]
		}
		if err := g.MoveStr(tok); err != nil {
			return Record{}, fmt.Errorf("%w: ply %d %q: %v", ErrBadMove, len(moves)+1, tok, err)
		}
		played := g.Moves()
		m, err := apply(b, played[len(played)-1])
		if err != nil {
			return Record{}, fmt.Errorf("ply %d %q: %w", len(moves)+1, tok, err)
		}
		moves = append(moves, m)
	}
	return Record{Moves: moves, Result: res}, nil
}

// ReadPGN 读一个 PGN 文件里的所有对局
func ReadPGN(r io.Reader) ([]Record, error) {
	var out []Record
	scanner := nchess.NewScanner(r)
	for scanner.Scan() {
		g := scanner.Next()
		res, err := ParseResult(string(g.Outcome()))
		if err != nil {
			return out, fmt.Errorf("game %d: %w", len(out)+1, err)
		}
		b := chess.NewBoard()
		var moves []chess.Move
		for i, nm := range g.Moves() {
			m, err := apply(b, nm)
			if err != nil {
				return out, fmt.Errorf("game %d ply %d: %w", len(out)+1, i+1, err)
			}
			moves = append(moves, m)
		}
		out = append(out, Record{Moves: moves, Result: res})
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return out, fmt.Errorf("read pgn: %w", err)
	}
	return out, nil
}

// apply 在自己的棋盘上找到同起止格的合法走法并走掉。
// 两边的格子编号都是 rank*8+file，可以直接转换。
func apply(b *chess.Board, nm *nchess.Move) (chess.Move, error) {
	if p := nm.Promo(); p != nchess.NoPieceType && p != nchess.Queen {
		return chess.Move{}, fmt.Errorf("%w: %s", ErrUnsupportedPromotion, nm)
	}
	from, to := chess.Square(nm.S1()), chess.Square(nm.S2())
	m, ok := b.FindMove(from, to)
	if !ok {
		return chess.Move{}, fmt.Errorf("%w: %v%v", ErrNoMatchingMove, from, to)
	}
	if err := b.Apply(m); err != nil {
		return chess.Move{}, err
	}
	return m, nil
}
