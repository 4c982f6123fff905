package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"chessagent/internal/chess"
	"chessagent/internal/model"
)

// TestCase 给外部模型导出脚本对齐输入编码和走子掩码用。
// Stage 0 的 Mask 是可走的子，Stage 1 的 Mask 是选中那个子后的落点。
type TestCase struct {
	FEN   string    `json:"fen"`
	Side  int       `json:"side"` // 0=白 1=黑
	State []float64 `json:"state"`
	Stage int       `json:"stage"`
	From  int       `json:"from"` // Stage 1 选中的子，Stage 0 为 -1
	Mask  []int8    `json:"mask"`
}

func genGame(rng *rand.Rand, maxPlies int) []TestCase {
	var out []TestCase
	b := chess.NewBoard()
	for ply := 0; ply < maxPlies; ply++ {
		side := b.SideToMove()
		if b.EndGame(side) != chess.Ongoing {
			break
		}
		legal := b.LegalMoves(side)
		fen, state := b.FEN(), model.Encode(b)

		mask0 := make([]int8, chess.NumSquares)
		for _, m := range legal {
			mask0[m.From] = 1
		}
		out = append(out, TestCase{FEN: fen, Side: int(side), State: state, Stage: 0, From: -1, Mask: mask0})

		// 随机选一步
		chosen := legal[rng.Intn(len(legal))]

		mask1 := make([]int8, chess.NumSquares)
		for _, m := range legal {
			if m.From == chosen.From {
				mask1[m.To] = 1
			}
		}
		out = append(out, TestCase{FEN: fen, Side: int(side), State: state, Stage: 1, From: int(chosen.From), Mask: mask1})

		b.Play(chosen)
	}
	return out
}

func main() {
	games := flag.Int("games", 10, "number of random games")
	maxPlies := flag.Int("max-plies", 300, "ply cap per game")
	seed := flag.Int64("seed", 0, "random seed (0: time based)")
	outPath := flag.String("out", "move_gen_test_data.json", "output file")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	var cases []TestCase
	for g := 0; g < *games; g++ {
		cases = append(cases, genGame(rng, *maxPlies)...)
	}

	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", *outPath, err)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(cases), *games, *outPath)
}
