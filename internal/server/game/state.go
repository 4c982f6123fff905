package game

import (
	"sync"
	"time"

	"chessagent/internal/chess"
)

// GameState 一盘进行中的对局，mu 保护 Board 和 History
type GameState struct {
	mu        sync.Mutex
	ID        string
	Board     *chess.Board
	History   []chess.Move
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Play 按起止格找到合法走法并落子
func (g *GameState) Play(from, to chess.Square) (chess.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.Board.FindMove(from, to)
	if !ok {
		return chess.Move{}, ErrIllegalMove
	}
	if err := g.Board.Apply(m); err != nil {
		return chess.Move{}, err
	}
	g.History = append(g.History, m)
	g.UpdatedAt = time.Now()
	return m, nil
}

// Snapshot 拷贝当前局面和最后一步，拷贝出来的局面可以拿去搜索
func (g *GameState) Snapshot() (*chess.Board, *chess.Move) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var last *chess.Move
	if n := len(g.History); n > 0 {
		m := g.History[n-1]
		last = &m
	}
	return g.Board.Clone(), last
}

// Replace 读档后整盘替换，历史清空
func (g *GameState) Replace(b *chess.Board) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Board = b
	g.History = nil
	g.UpdatedAt = time.Now()
}
