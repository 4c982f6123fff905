package chess

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	nchess "github.com/notnil/chess"
)

func randomGame(t *testing.T, seed int64, maxPlies int, visit func(b *Board)) *Board {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	b := NewBoard()
	for ply := 0; ply < maxPlies; ply++ {
		visit(b)
		side := b.SideToMove()
		if b.EndGame(side) != Ongoing {
			break
		}
		moves := b.LegalMoves(side)
		if err := b.Apply(moves[rng.Intn(len(moves))]); err != nil {
			t.Fatalf("seed %d ply %d: %v", seed, ply, err)
		}
	}
	return b
}

func TestMoveCountMatchesTerminalState(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		randomGame(t, seed, 200, func(b *Board) {
			side := b.SideToMove()
			n := b.MoveCount(side)
			outcome := b.EndGame(side)
			if n == 0 && outcome == Ongoing {
				t.Fatalf("seed %d: no moves but ongoing\n%s", seed, b)
			}
			if outcome == Checkmate && (n != 0 || !b.InCheck(side)) {
				t.Fatalf("seed %d: checkmate with %d moves\n%s", seed, n, b)
			}
			for _, c := range [2]Color{White, Black} {
				ks := b.KingSquare(c)
				if p := b.PieceAt(ks); p.Kind != King || p.Color != c {
					t.Fatalf("seed %d: king cache for %v points at %+v", seed, c, p)
				}
			}
		})
	}
}

func TestLegalMovesMatchReferenceGenerator(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		randomGame(t, seed, 150, func(b *Board) {
			fen := b.FEN()
			opt, err := nchess.FEN(fen)
			if err != nil {
				t.Fatalf("seed %d: reference rejected %q: %v", seed, fen, err)
			}
			ref := map[string]bool{}
			for _, m := range nchess.NewGame(opt).ValidMoves() {
				ref[m.S1().String()+m.S2().String()] = true
			}
			ours := map[string]bool{}
			for _, m := range b.LegalMoves(b.SideToMove()) {
				ours[m.String()] = true
			}
			if !reflect.DeepEqual(ours, ref) {
				t.Fatalf("seed %d %s\nours: %v\nref:  %v", seed, fen, sortedKeys(ours), sortedKeys(ref))
			}
		})
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestSaveLoadRoundTrip(t *testing.T) {
	b := NewBoard()
	play(t, b, "e2e4", "a7a6", "e4e5", "d7d5", "g1f3")
	play(t, b, "c7c5")

	var buf bytes.Buffer
	if err := b.Save(&buf); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved := buf.String()
	if !strings.HasSuffix(saved, "E 5 2 1\n") {
		t.Fatalf("en passant line missing:\n%s", saved)
	}

	nb := NewBoard()
	if err := nb.Load(strings.NewReader(saved)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if nb.FEN() != b.FEN() || nb.Hash() != b.Hash() || nb.Turn() != b.Turn() {
		t.Fatalf("loaded board differs:\n%s\n%s", nb.FEN(), b.FEN())
	}
	for _, c := range [2]Color{White, Black} {
		if !reflect.DeepEqual(nb.LegalMoves(c), b.LegalMoves(c)) {
			t.Fatalf("%v legal moves differ", c)
		}
		if nb.KingSquare(c) != b.KingSquare(c) {
			t.Fatalf("%v king cache differs", c)
		}
	}
	var again bytes.Buffer
	if err := nb.Save(&again); err != nil {
		t.Fatalf("save again: %v", err)
	}
	if again.String() != saved {
		t.Fatalf("second save differs:\n%s\n---\n%s", again.String(), saved)
	}
	if _, ok := nb.FindMove(sq(t, "e5"), sq(t, "c6")); !ok {
		t.Fatalf("en passant lost across save/load")
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"bad turn":         "x\n",
		"zero turn":        "0\n",
		"unknown piece":    "1\nZ 0 0 0 0\n",
		"off board":        "1\nK 9 0 0 0\n",
		"missing field":    "1\nK 0 0 0\n",
		"extra field":      "1\nK 0 0 0 0 0\n",
		"bad color":        "1\nK 0 0 2 0\n",
		"bad moved flag":   "1\nK 0 0 0 7\n",
		"same square":      "1\nK 0 0 0 0\nQ 0 0 1 0\n",
		"two kings":        "1\nK 0 0 0 0\nK 0 1 0 0\n",
		"short en passant": "1\nK 0 0 0 0\nE 2 4\n",
	}
	for name, rec := range cases {
		t.Run(name, func(t *testing.T) {
			b := NewBoard()
			play(t, b, "e2e4")
			before := b.FEN()
			err := b.Load(strings.NewReader(rec))
			if !errors.Is(err, ErrBadRecord) {
				t.Fatalf("err = %v, want ErrBadRecord", err)
			}
			if b.FEN() != before || !b.Fresh() {
				t.Fatalf("failed load modified the board")
			}
		})
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.txt")
	b := NewBoard()
	play(t, b, "b1c3", "g8f6")
	if err := b.SaveFile(path); err != nil {
		t.Fatalf("save file: %v", err)
	}
	nb := NewEmptyBoard()
	if err := nb.LoadFile(path); err != nil {
		t.Fatalf("load file: %v", err)
	}
	if nb.String() != b.String() || nb.Turn() != 3 {
		t.Fatalf("file round trip mismatch:\n%s", nb)
	}
	if err := nb.LoadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("loading a missing file should fail")
	}
}

func TestHash(t *testing.T) {
	start := NewBoard()
	b := NewBoard()
	play(t, b, "g1f3", "g8f6", "f3g1", "f6g8")
	if b.Hash() != start.Hash() {
		t.Fatalf("knight shuffle should transpose back to the start position")
	}
	if b.Clone().Hash() != b.Hash() {
		t.Fatalf("clone hash differs")
	}

	play(t, b, "e2e4")
	if b.Hash() == start.Hash() {
		t.Fatalf("e2e4 should change the hash")
	}

	castle := NewEmptyBoard()
	place(t, castle, "Ke1 Rh1 ke8")
	moved := castle.Clone()
	rook := moved.PieceAt(sq(t, "h1"))
	rook.Moved = true
	moved.Place(rook)
	if castle.Hash() == moved.Hash() {
		t.Fatalf("castling right should be part of the hash")
	}
}

func TestFavor(t *testing.T) {
	const eps = 1e-9

	if f := NewBoard().Favor(); math.Abs(f) > eps {
		t.Fatalf("start favor = %v, want 0", f)
	}

	b := NewEmptyBoard()
	place(t, b, "Ka1 kh8")
	p := Piece{Kind: Pawn, Color: White, Square: sq(t, "e4"), Moved: true}
	b.Place(p)
	b.UpdateMoveSet()
	// 王各有三个落点 1.0+1.0+1.025；兵看 d5(1.10) 和 f5(1.05)
	want := 1 + 2.15/65.5
	if f := b.Favor(); math.Abs(f-want) > eps {
		t.Fatalf("favor = %v, want %v", f, want)
	}

	q := NewBoard()
	q.Place(Piece{Kind: NoKind, Square: sq(t, "d8")})
	q.UpdateMoveSet()
	if f := q.Favor(); f < QueenPoints-1 {
		t.Fatalf("missing black queen favor = %v", f)
	}
}

func TestTargetValue(t *testing.T) {
	b := NewEmptyBoard()
	place(t, b, "Ka1 kh8 qd5 Pd4")
	d5, e3 := sq(t, "d5"), sq(t, "e3")
	cases := []struct {
		name string
		kind MoveKind
		to   Square
		want float64
	}{
		{"empty centre", MoveNormal, sq(t, "e4"), 1.1},
		{"capture queen", MoveNormal, d5, 1.1 + 1},
		{"own piece", MoveNormal, sq(t, "d4"), 1.1},
		{"kingside castle", MoveCastleKingside, sq(t, "g1"), 2},
		{"queenside castle", MoveCastleQueenside, sq(t, "c1"), 2},
		{"double advance", MovePawnDouble, sq(t, "e4"), 0},
		{"en passant", MoveEnPassant, e3, 1.05 + 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.targetValue(White, tc.kind, tc.to); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("targetValue = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFEN(t *testing.T) {
	b := NewBoard()
	if got := b.FEN(); got != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1" {
		t.Fatalf("start FEN = %q", got)
	}
	play(t, b, "e2e4")
	if got := b.FEN(); got != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1" {
		t.Fatalf("FEN after e4 = %q", got)
	}
}
