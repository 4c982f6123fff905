package main

import (
	"flag"
	"log"
	"os"
	"time"

	"chessagent/internal/model"
	"chessagent/internal/notation"
	"chessagent/internal/train"
)

func main() {
	pgnPath := flag.String("pgn", "", "PGN file with training games")
	dir := flag.String("dir", "models", "directory for favor_<name>.json / policy_<name>.json")
	name := flag.String("name", "default", "logical model name")
	resume := flag.Bool("resume", false, "continue from saved networks instead of fresh ones")
	seed := flag.Int64("seed", 1, "weight init seed for fresh networks")
	epochs := flag.Int("epochs", 1, "passes over the game file")
	discount := flag.Float64("discount", train.DefaultDiscount, "discount of later favors")
	bonus := flag.Float64("bonus", train.DefaultResultBonus, "result bonus on the final step")
	flag.Parse()

	if *pgnPath == "" {
		log.Fatal("-pgn is required")
	}
	f, err := os.Open(*pgnPath)
	if err != nil {
		log.Fatalf("open %s: %v", *pgnPath, err)
	}
	recs, err := notation.ReadPGN(f)
	f.Close()
	if err != nil {
		// 前面读到的对局照样用
		log.Printf("read %s: %v (keeping %d games)", *pgnPath, err, len(recs))
	}
	if len(recs) == 0 {
		log.Fatal("no games to train on")
	}

	cfg := train.Config{Discount: *discount, ResultBonus: *bonus, Name: *name, Dir: *dir}
	var tr *train.Trainer
	if *resume {
		if tr, err = train.Load(cfg); err != nil {
			log.Fatalf("resume: %v", err)
		}
	} else {
		tr = train.NewTrainer(model.NewFavorNetwork(*seed), model.NewPolicyNetwork(*seed+1), cfg)
	}

	start := time.Now()
	for ep := 1; ep <= *epochs; ep++ {
		n := tr.TrainAll(recs)
		log.Printf("epoch %d: trained %d/%d games", ep, n, len(recs))
		if err := tr.Save(); err != nil {
			log.Fatalf("save: %v", err)
		}
	}
	log.Printf("done in %v, networks saved under %s", time.Since(start), *dir)
}
