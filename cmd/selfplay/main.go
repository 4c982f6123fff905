package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"chessagent/internal/chess"
	"chessagent/internal/engine"
	"chessagent/internal/model"
)

type searcher interface {
	Search(b *chess.Board, side chess.Color, cfg engine.SearchConfig) engine.SearchResult
}

// PlayerConfig 每盘棋各自 New 一个 searcher，并行的对局不共享计数器和随机源
type PlayerConfig struct {
	Name string
	Cfg  engine.SearchConfig
	New  func(game int) searcher
}

type gameResult struct {
	Winner chess.Color // NoColor 为和棋
	Plies  int
}

func main() {
	rankerPath := flag.String("ranker", "", "piece ranking model (.onnx or network .json)")
	valuerPath := flag.String("valuer", "", "favor bucket model (.onnx or network .json)")
	libPath := flag.String("lib", "", "path to the onnxruntime shared library")
	totalGames := flag.Int("games", 10, "number of games to play")
	exactDepth := flag.Int("exact-depth", 2, "exact alpha-beta depth")
	agentDepth := flag.Int("agent-depth", 3, "agent search depth")
	topN := flag.Int("topn", engine.DefaultTopN, "pieces expanded per node by the agent")
	seed := flag.Int64("seed", 1, "base seed for the agent's tie breaking")
	maxPlies := flag.Int("max-plies", 400, "plies before a game is scored as a draw")
	parallel := flag.Int("parallel", 4, "games played at the same time")
	bench := flag.Bool("bench", false, "play one exact game and report nodes per second")
	flag.Parse()

	if *bench {
		runBenchmark(*exactDepth, *maxPlies)
		return
	}

	playerExact := PlayerConfig{
		Name: fmt.Sprintf("Exact (Depth %d)", *exactDepth),
		Cfg:  engine.SearchConfig{Depth: *exactDepth},
		New:  func(int) searcher { return engine.NewEngine() },
	}

	var second PlayerConfig
	if *rankerPath != "" && *valuerPath != "" {
		models, err := model.Open(*rankerPath, *valuerPath, *libPath)
		if err != nil {
			log.Fatalf("failed to load models: %v", err)
		}
		defer models.Close()
		second = PlayerConfig{
			Name: fmt.Sprintf("Agent (Depth %d, Top %d)", *agentDepth, *topN),
			Cfg:  engine.SearchConfig{Depth: *agentDepth},
			New: func(g int) searcher {
				return engine.NewAgent(models.Ranker, models.Valuer, engine.AgentConfig{TopN: *topN, Seed: *seed + int64(g)})
			},
		}
	} else {
		log.Printf("no models given, playing exact depth %d against exact depth %d", *exactDepth, *agentDepth)
		second = PlayerConfig{
			Name: fmt.Sprintf("Exact (Depth %d)", *agentDepth),
			Cfg:  engine.SearchConfig{Depth: *agentDepth},
			New:  func(int) searcher { return engine.NewEngine() },
		}
	}

	results := make([]gameResult, *totalGames)
	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(max(*parallel, 1))
	for g := 0; g < *totalGames; g++ {
		g := g
		white, black := playerExact, second
		if g%2 == 1 {
			white, black = second, playerExact
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := playGame(white, black, g, *maxPlies)
			if err != nil {
				return fmt.Errorf("game %d: %w", g+1, err)
			}
			results[g] = res
			log.Printf("game %d: White [%s] vs Black [%s]: %s after %d plies", g+1, white.Name, black.Name, describe(res), res.Plies)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatal(err)
	}

	exactWins, secondWins, draws := 0, 0, 0
	for g, res := range results {
		exactColor := chess.White
		if g%2 == 1 {
			exactColor = chess.Black
		}
		switch res.Winner {
		case chess.NoColor:
			draws++
		case exactColor:
			exactWins++
		default:
			secondWins++
		}
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", playerExact.Name, exactWins)
	fmt.Printf("%s: %d\n", second.Name, secondWins)
	fmt.Printf("Draws: %d\n", draws)
}

func describe(res gameResult) string {
	if res.Winner == chess.NoColor {
		return "draw"
	}
	return res.Winner.String() + " wins"
}

func playGame(white, black PlayerConfig, game, maxPlies int) (gameResult, error) {
	players := [2]searcher{white.New(game), black.New(game)}
	cfgs := [2]engine.SearchConfig{white.Cfg, black.Cfg}

	b := chess.NewBoard()
	for ply := 0; ply < maxPlies; ply++ {
		side := b.SideToMove()
		switch b.EndGame(side) {
		case chess.Checkmate:
			return gameResult{Winner: side.Opposite(), Plies: ply}, nil
		case chess.Stalemate:
			return gameResult{Winner: chess.NoColor, Plies: ply}, nil
		}

		res := players[side].Search(b, side, cfgs[side])
		if !res.Found {
			return gameResult{}, fmt.Errorf("no move found in an ongoing position %s", b.FEN())
		}
		if err := b.Apply(res.Best.Move); err != nil {
			return gameResult{}, err
		}
	}
	return gameResult{Winner: chess.NoColor, Plies: maxPlies}, nil
}
