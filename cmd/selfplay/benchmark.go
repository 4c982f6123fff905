package main

import (
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"chessagent/internal/chess"
	"chessagent/internal/engine"
)

// runBenchmark 精确搜索自己和自己下一盘，打印每步的节点数和 NPS
func runBenchmark(depth, maxPlies int) {
	go func() {
		log.Println("pprof listening on :6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			log.Printf("pprof failed: %v", err)
		}
	}()

	e := engine.NewEngine()
	b := chess.NewBoard()
	var totalNodes int64
	var totalTime time.Duration

	for i := 0; i < maxPlies; i++ {
		side := b.SideToMove()
		if st := b.EndGame(side); st != chess.Ongoing {
			log.Printf("Game over: %v", st)
			break
		}

		res := e.Search(b, side, engine.SearchConfig{Depth: depth})
		totalNodes += res.Nodes
		totalTime += res.TimeUsed

		fmt.Printf("%3d %-5v BestMove: %v, Score: %.4f, Nodes: %d, Time: %v, NPS: %d\n",
			i+1, side, res.Best.Move, res.Best.Value, res.Nodes, res.TimeUsed, nps(res.Nodes, res.TimeUsed))

		if err := b.Apply(res.Best.Move); err != nil {
			log.Fatalf("Failed to apply move %v: %v", res.Best.Move, err)
		}
	}

	log.Printf("Benchmark finished: %d nodes in %v, %d NPS", totalNodes, totalTime, nps(totalNodes, totalTime))
}

func nps(nodes int64, d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(float64(nodes) / d.Seconds())
}
