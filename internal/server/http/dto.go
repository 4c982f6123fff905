package httpserver

import (
	"math"

	"chessagent/internal/chess"
	"chessagent/internal/engine"
)

// 将死分数在 JSON 里用这个有限值代替 ±Inf
const mateScore = 1e6

// 前端用的招法结构，格子下标 = 行*8+列，第 0 行是白方底线
type MoveDTO struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Kind  string `json:"kind,omitempty"`
	Label string `json:"label,omitempty"`
	UCI   string `json:"uci,omitempty"`
}

func moveToDTO(m chess.Move) MoveDTO {
	return MoveDTO{
		From:  int(m.From),
		To:    int(m.To),
		Kind:  m.Kind.String(),
		Label: m.Label(),
		UCI:   m.String(),
	}
}

func movesToDTO(ms []chess.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

// 0=白, 1=黑
func sideToInt(c chess.Color) int {
	switch c {
	case chess.White:
		return 0
	case chess.Black:
		return 1
	default:
		return -1
	}
}

func squareOf(v int) (chess.Square, bool) {
	sq := chess.Square(v)
	return sq, v >= 0 && v < chess.NumSquares
}

// GameRequest 只带对局 ID 的请求（state / save）
type GameRequest struct {
	GameID string `json:"game_id"`
}

// StateResponse new_game / play / state / load 共用
type StateResponse struct {
	GameID     string    `json:"game_id"`
	Position   string    `json:"position"` // FEN
	Turn       int       `json:"turn"`
	ToMove     int       `json:"to_move"`
	LegalMoves []MoveDTO `json:"legal_moves"`
	InCheck    bool      `json:"in_check"`
	Favor      float64   `json:"favor"`
	Status     string    `json:"status"` // "ongoing" / "checkmate" / "stalemate"
	LastMove   *MoveDTO  `json:"last_move,omitempty"`
}

type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

// AiMoveRequest 让 AI 为当前局面想一步
type AiMoveRequest struct {
	GameID   string `json:"game_id"`
	MaxDepth int    `json:"max_depth"`
	UseAgent bool   `json:"use_agent"` // 用模型引导的搜索，没加载模型时退回精确搜索
	Apply    bool   `json:"apply"`     // 想完直接落子
}

type AiMoveResponse struct {
	BestMove    MoveDTO        `json:"best_move"`
	Score       float64        `json:"score"` // 白方视角
	Mate        int            `json:"mate"`  // +1 白胜定，-1 黑胜定
	Depth       int            `json:"depth"`
	Nodes       int64          `json:"nodes"`
	TimeMs      int64          `json:"time_ms"`
	Agent       bool           `json:"agent"`
	ModelFailed bool           `json:"model_failed"`
	Status      string         `json:"status"` // "ok" / "no_moves"
	State       *StateResponse `json:"state,omitempty"`
}

// 无穷分数换成 mateScore 并单独给出方向
func scoreToJSON(v float64) (float64, int) {
	switch {
	case math.IsInf(v, 1):
		return mateScore, 1
	case math.IsInf(v, -1):
		return -mateScore, -1
	}
	return v, 0
}

func fillSearch(resp *AiMoveResponse, res engine.SearchResult) {
	resp.Score, resp.Mate = scoreToJSON(res.Best.Value)
	resp.Depth = res.Depth
	resp.Nodes = res.Nodes
	resp.TimeMs = res.TimeUsed.Milliseconds()
	resp.ModelFailed = res.ModelFailed
}

type MovesResponse struct {
	Square string    `json:"square"`
	Moves  []MoveDTO `json:"moves"`
}

type SaveResponse struct {
	GameID string `json:"game_id"`
	Record string `json:"record"`
}

// LoadRequest 读档：GameID 为空时新开一盘
type LoadRequest struct {
	GameID string `json:"game_id"`
	Record string `json:"record"`
}
