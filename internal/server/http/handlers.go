package httpserver

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"chessagent/internal/chess"
	"chessagent/internal/engine"
	"chessagent/internal/render"
	"chessagent/internal/server/game"
)

// Options 没给 Ranker/Valuer 时 use_agent 退回精确搜索
type Options struct {
	Depth  int
	TopN   int
	Seed   int64
	Ranker engine.Ranker
	Valuer engine.Valuer
}

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games *game.Manager
	depth int

	// Engine 和 Agent 内部有计数器和随机源，同一时间只跑一个搜索
	searchMu sync.Mutex
	exact    *engine.Engine
	agent    *engine.Agent
}

func NewHandler(opts Options) *Handler {
	h := &Handler{
		games: game.NewManager(),
		depth: opts.Depth,
		exact: engine.NewEngine(),
	}
	if opts.Ranker != nil && opts.Valuer != nil {
		h.agent = engine.NewAgent(opts.Ranker, opts.Valuer, engine.AgentConfig{TopN: opts.TopN, Seed: opts.Seed})
	}
	return h
}

func (h *Handler) Games() *game.Manager { return h.games }

func (h *Handler) HasAgent() bool { return h.agent != nil }

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/new_game":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleNewGame(w, r)

	case "/api/play":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handlePlay(w, r)

	case "/api/state":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleState(w, r)

	case "/api/ai_move":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleAiMove(w, r)

	case "/api/moves":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleMoves(w, r)

	case "/api/board.svg":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleBoardSVG(w, r)

	case "/api/save":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleSave(w, r)

	case "/api/load":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleLoad(w, r)

	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) lookup(w http.ResponseWriter, id string) (*game.GameState, bool) {
	g, err := h.games.Get(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return g, true
}

func stateOf(g *game.GameState) StateResponse {
	b, last := g.Snapshot()
	side := b.SideToMove()
	resp := StateResponse{
		GameID:     g.ID,
		Position:   b.FEN(),
		Turn:       b.Turn(),
		ToMove:     sideToInt(side),
		LegalMoves: movesToDTO(b.LegalMoves(side)),
		InCheck:    b.InCheck(side),
		Favor:      b.Favor(),
		Status:     b.EndGame(side).String(),
	}
	if last != nil {
		d := moveToDTO(*last)
		resp.LastMove = &d
	}
	return resp
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g := h.games.NewGame()
	writeJSON(w, stateOf(g))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !decode(w, r, &req) {
		return
	}
	g, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	from, ok1 := squareOf(req.Move.From)
	to, ok2 := squareOf(req.Move.To)
	if !ok1 || !ok2 {
		http.Error(w, "bad square", http.StatusBadRequest)
		return
	}

	// 确认这步是不是合法招之一
	if _, err := g.Play(from, to); err != nil {
		http.Error(w, "illegal move", http.StatusBadRequest)
		return
	}
	writeJSON(w, stateOf(g))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	g, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	writeJSON(w, stateOf(g))
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if !decode(w, r, &req) {
		return
	}
	g, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	depth := req.MaxDepth
	if depth <= 0 {
		depth = h.depth
	}

	// 只思考不落子，在拷贝上搜
	b, _ := g.Snapshot()
	side := b.SideToMove()
	useAgent := req.UseAgent && h.agent != nil

	h.searchMu.Lock()
	var res engine.SearchResult
	if useAgent {
		res = h.agent.Search(b, side, engine.SearchConfig{Depth: depth})
	} else {
		res = h.exact.Search(b, side, engine.SearchConfig{Depth: depth})
	}
	h.searchMu.Unlock()

	if res.ModelFailed {
		log.Printf("ai_move: model failed in game %s, fell back to exact search", g.ID)
	}

	resp := AiMoveResponse{
		BestMove: MoveDTO{From: -1, To: -1},
		Agent:    useAgent,
		Status:   "no_moves",
	}
	fillSearch(&resp, res)
	if !res.Found {
		writeJSON(w, resp)
		return
	}

	resp.BestMove = moveToDTO(res.Best.Move)
	resp.Status = "ok"
	if req.Apply {
		if _, err := g.Play(res.Best.From, res.Best.To); err != nil {
			// 搜索期间局面被别的请求改了
			http.Error(w, "position changed during search", http.StatusConflict)
			return
		}
		st := stateOf(g)
		resp.State = &st
	}
	writeJSON(w, resp)
}

// handleMoves GET ?game_id=...&square=e2，不给 square 时列出走棋方全部走法
func (h *Handler) handleMoves(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	g, ok := h.lookup(w, q.Get("game_id"))
	if !ok {
		return
	}
	b, _ := g.Snapshot()

	name := q.Get("square")
	if name == "" {
		writeJSON(w, MovesResponse{Moves: movesToDTO(b.LegalMoves(b.SideToMove()))})
		return
	}
	sq, err := chess.ParseSquare(name)
	if err != nil {
		http.Error(w, "bad square", http.StatusBadRequest)
		return
	}
	resp := MovesResponse{Square: sq.String(), Moves: []MoveDTO{}}
	if p, ok := b.At(sq); ok {
		resp.Moves = movesToDTO(p.Moves)
	}
	writeJSON(w, resp)
}

// handleBoardSVG GET ?game_id=...&flip=1，高亮上一步
func (h *Handler) handleBoardSVG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	g, ok := h.lookup(w, q.Get("game_id"))
	if !ok {
		return
	}
	b, last := g.Snapshot()
	opts := render.Options{Flip: q.Get("flip") == "1"}
	if last != nil {
		opts.Highlight = []chess.Square{last.From, last.To}
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	render.WriteSVG(w, b, opts)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	g, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	b, _ := g.Snapshot()
	var buf bytes.Buffer
	if err := b.Save(&buf); err != nil {
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, SaveResponse{GameID: g.ID, Record: buf.String()})
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if !decode(w, r, &req) {
		return
	}
	b, err := chess.ReadBoard(strings.NewReader(req.Record))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.GameID == "" {
		writeJSON(w, stateOf(h.games.Add(b)))
		return
	}
	g, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	g.Replace(b)
	writeJSON(w, stateOf(g))
}
