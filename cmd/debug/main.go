package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"chessagent/internal/chess"
)

// debug 打印局面、每个子的走法、favor 和 FEN。-board 读存档，否则用开局。
func main() {
	path := flag.String("board", "", "saved board file")
	square := flag.String("square", "", "only list moves of the piece on this square, e.g. e2")
	flag.Parse()

	b := chess.NewBoard()
	if *path != "" {
		if err := b.LoadFile(*path); err != nil {
			log.Fatalf("load %s: %v", *path, err)
		}
	}

	b.Print(os.Stdout)
	side := b.SideToMove()
	fmt.Println("FEN:", b.FEN())
	fmt.Printf("Side: %v, favor: %.4f, hash: %016x, status: %v\n", side, b.Favor(), b.Hash(), b.EndGame(side))

	if *square != "" {
		sq, err := chess.ParseSquare(*square)
		if err != nil {
			log.Fatalf("bad square %q", *square)
		}
		if _, ok := b.At(sq); !ok {
			log.Fatalf("no piece on %v", sq)
		}
		b.PrintMoves(os.Stdout, sq)
		return
	}
	for _, p := range b.Movable(side) {
		fmt.Printf("%c %v\n", p.Letter(), p.Square)
		b.PrintMoves(os.Stdout, p.Square)
	}
	fmt.Println("Legal moves:", b.MoveCount(side))
}
