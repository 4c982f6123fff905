package chess

import (
	"strings"
	"testing"
)

func sq(t *testing.T, s string) Square {
	t.Helper()
	v, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("parse square %q: %v", s, err)
	}
	return v
}

func place(t *testing.T, b *Board, layout string) {
	t.Helper()
	// layout 形如 "Ke1 Rh1 ke8"，大写白方小写黑方
	for _, tok := range strings.Fields(layout) {
		ch := tok[0]
		c := White
		if ch >= 'a' && ch <= 'z' {
			c = Black
			ch -= 'a' - 'A'
		}
		k, ok := kindFromLetter(ch)
		if !ok {
			t.Fatalf("bad piece token %q", tok)
		}
		b.Place(Piece{Kind: k, Color: c, Square: sq(t, tok[1:])})
	}
}

func play(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		m, ok := b.FindMove(sq(t, mv[:2]), sq(t, mv[2:]))
		if !ok {
			t.Fatalf("move %s not legal\n%s", mv, b)
		}
		if err := b.Apply(m); err != nil {
			t.Fatalf("apply %s: %v", mv, err)
		}
	}
}

func TestNewBoardMoveCounts(t *testing.T) {
	b := NewBoard()
	if got := b.MoveCount(White); got != 20 {
		t.Fatalf("white moves = %d, want 20", got)
	}
	if got := b.MoveCount(Black); got != 20 {
		t.Fatalf("black moves = %d, want 20", got)
	}
	if b.KingSquare(White) != sq(t, "e1") || b.KingSquare(Black) != sq(t, "e8") {
		t.Fatalf("king cache wrong: %v %v", b.KingSquare(White), b.KingSquare(Black))
	}
	if b.EndGame(White) != Ongoing {
		t.Fatalf("start position should be ongoing")
	}
	if b.GridTotal() != 65.5 {
		t.Fatalf("grid total = %v, want 65.5", b.GridTotal())
	}
	if b.SideToMove() != White || b.Turn() != 1 {
		t.Fatalf("white should move first")
	}
}

func TestPieceLookup(t *testing.T) {
	b := NewBoard()
	if _, ok := b.At(sq(t, "e4")); ok {
		t.Fatalf("e4 should be empty")
	}
	if p := b.PieceAt(sq(t, "d8")); p.Kind != Queen || p.Color != Black {
		t.Fatalf("d8 = %+v", p)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("PieceAt on an empty square should panic")
		}
	}()
	b.PieceAt(sq(t, "e4"))
}

func TestMoveAtOutOfRangePanics(t *testing.T) {
	b := NewBoard()
	g1 := sq(t, "g1")
	if m := b.MoveAt(g1, 0); m.From != g1 {
		t.Fatalf("MoveAt returned %v", m)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("MoveAt out of range should panic")
		}
	}()
	b.MoveAt(g1, 2)
}

func TestStaleBoardRefusesApply(t *testing.T) {
	b := NewEmptyBoard()
	place(t, b, "Ke1 ke8")
	defer func() {
		if recover() == nil {
			t.Fatalf("Apply on stale caches should panic")
		}
	}()
	_ = b.Apply(Move{From: sq(t, "e1"), To: sq(t, "e2")})
}

func TestApplyRejectsIllegal(t *testing.T) {
	b := NewBoard()
	cases := []struct {
		name string
		m    Move
	}{
		{"empty square", Move{From: sq(t, "e4"), To: sq(t, "e5")}},
		{"wrong side", Move{From: sq(t, "e7"), To: sq(t, "e6")}},
		{"not in move list", Move{From: sq(t, "e2"), To: sq(t, "e5")}},
		{"wrong kind", Move{Kind: MoveNormal, From: sq(t, "e2"), To: sq(t, "e4")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := b.Apply(tc.m); err == nil {
				t.Fatalf("Apply(%v) should fail", tc.m)
			}
		})
	}
	if b.Turn() != 1 {
		t.Fatalf("failed applies must not advance the turn")
	}
}

func TestInCheck(t *testing.T) {
	cases := []struct {
		name   string
		pieces string
		side   Color
		want   bool
	}{
		{"rook on file", "ke8 Re1 Ka1", Black, true},
		{"rook blocked", "ke8 pe7 Re1 Ka1", Black, false},
		{"rook blocked by own piece", "ke8 Ne4 Re1 Ka1", Black, false},
		{"bishop diagonal", "ke8 Bb5 Ka1", Black, true},
		{"rook on diagonal", "ke8 Rb5 Ka1", Black, false},
		{"queen diagonal", "Ke1 qa5 kh8", White, true},
		{"knight", "Ke4 nf6 kh8", White, true},
		{"knight far", "Ke4 nf7 kh8", White, false},
		{"black pawn in front", "Ke4 pd5 kh8", White, true},
		{"black pawn behind", "Ke4 pd3 kh8", White, false},
		{"white pawn in front", "ke5 Pd4 Ka1", Black, true},
		{"adjacent kings", "Ke4 ke5", White, true},
		{"no king", "Ra1 kh8", White, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewEmptyBoard()
			place(t, b, tc.pieces)
			if got := b.InCheck(tc.side); got != tc.want {
				t.Fatalf("InCheck(%v) = %v, want %v\n%s", tc.side, got, tc.want, b)
			}
		})
	}
}

func TestCheckmateAndStalemate(t *testing.T) {
	cases := []struct {
		name   string
		pieces string
		want   Outcome
	}{
		{"queen mate", "kh8 Qg7 Kf6", Checkmate},
		{"queen stalemate", "kh8 Qg6 Kf7", Stalemate},
		{"bare kings", "kh8 Ka1", Stalemate},
		{"lone knight", "kh8 Ka1 Nc3", Stalemate},
		{"lone bishop", "kh8 Ka1 bc3", Stalemate},
		{"bishops same shade", "kh8 Ka1 Bc1 bf4", Stalemate},
		{"bishops opposite shade", "kh8 Ka1 Bc1 bf5", Ongoing},
		{"rook is enough", "kh8 Ka1 Rc3", Ongoing},
		{"two knights", "kh8 Ka1 Nc3 Nd3", Ongoing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewEmptyBoard()
			place(t, b, tc.pieces)
			b.SetTurn(2)
			b.UpdateMoveSet()
			if got := b.EndGame(Black); got != tc.want {
				t.Fatalf("EndGame = %v, want %v\n%s", got, tc.want, b)
			}
			if tc.want == Checkmate && b.MoveCount(Black) != 0 {
				t.Fatalf("mated side still has moves")
			}
		})
	}
}

func TestEnPassantLifecycle(t *testing.T) {
	b := NewBoard()
	play(t, b, "e2e4")
	if s, c, ok := b.EnPassant(); !ok || s != sq(t, "e3") || c != White {
		t.Fatalf("after e2e4 marker = %v %v %v", s, c, ok)
	}
	play(t, b, "a7a6")
	if _, _, ok := b.EnPassant(); ok {
		t.Fatalf("marker must be cleared by the next move")
	}
	play(t, b, "e4e5", "d7d5")

	m, ok := b.FindMove(sq(t, "e5"), sq(t, "d6"))
	if !ok || m.Kind != MoveEnPassant {
		t.Fatalf("expected en passant e5xd6, got %v %v", m, ok)
	}
	if m.Label() != "en passant d pawn" {
		t.Fatalf("label = %q", m.Label())
	}

	t.Run("capture", func(t *testing.T) {
		nb := b.Clone()
		if err := nb.Apply(m); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if _, ok := nb.At(sq(t, "d5")); ok {
			t.Fatalf("captured pawn still on d5")
		}
		if p := nb.PieceAt(sq(t, "d6")); p.Kind != Pawn || p.Color != White {
			t.Fatalf("d6 = %+v", p)
		}
	})

	t.Run("expires", func(t *testing.T) {
		nb := b.Clone()
		play(t, nb, "h2h3", "a6a5")
		if m, ok := nb.FindMove(sq(t, "e5"), sq(t, "d6")); ok {
			t.Fatalf("en passant still available one move later: %v", m)
		}
	})

	if _, ok := b.At(sq(t, "d5")); !ok {
		t.Fatalf("clone mutation leaked into the original board")
	}
}

func TestCastling(t *testing.T) {
	hasKind := func(b *Board, from Square, kind MoveKind) bool {
		for _, m := range b.PieceAt(from).Moves {
			if m.Kind == kind {
				return true
			}
		}
		return false
	}

	cases := []struct {
		name   string
		pieces string
		prep   func(b *Board)
		short  bool
		long   bool
	}{
		{name: "both sides open", pieces: "Ke1 Rh1 Ra1 ke8", short: true, long: true},
		{name: "blocked kingside", pieces: "Ke1 Rh1 Ng1 Ra1 ke8", short: false, long: true},
		{name: "blocked queenside b1", pieces: "Ke1 Rh1 Ra1 Nb1 ke8", short: true, long: false},
		{name: "in check", pieces: "Ke1 Rh1 Ra1 ke8 re6", short: false, long: false},
		{name: "transit attacked", pieces: "Ke1 Rh1 Ra1 ke8 rf6", short: false, long: true},
		{name: "landing attacked", pieces: "Ke1 Rh1 Ra1 kh8 rc6", short: true, long: false},
		{name: "rook moved", pieces: "Ke1 Rh1 Ra1 ke8", prep: func(b *Board) {
			p := b.PieceAt(Sq(0, 7))
			p.Moved = true
			b.Place(p)
		}, short: false, long: true},
		{name: "king moved", pieces: "Ke1 Rh1 Ra1 ke8", prep: func(b *Board) {
			p := b.PieceAt(Sq(0, 4))
			p.Moved = true
			b.Place(p)
		}, short: false, long: false},
		{name: "no rook", pieces: "Ke1 ke8", short: false, long: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewEmptyBoard()
			place(t, b, tc.pieces)
			if tc.prep != nil {
				tc.prep(b)
			}
			b.UpdateMoveSet()
			e1 := sq(t, "e1")
			if got := hasKind(b, e1, MoveCastleKingside); got != tc.short {
				t.Fatalf("kingside = %v, want %v", got, tc.short)
			}
			if got := hasKind(b, e1, MoveCastleQueenside); got != tc.long {
				t.Fatalf("queenside = %v, want %v", got, tc.long)
			}
		})
	}

	t.Run("apply kingside", func(t *testing.T) {
		b := NewEmptyBoard()
		place(t, b, "Ke1 Rh1 ke8")
		b.UpdateMoveSet()
		m, ok := b.FindMove(sq(t, "e1"), sq(t, "g1"))
		if !ok || m.Kind != MoveCastleKingside || m.Label() != "O-O" {
			t.Fatalf("castle move = %v %v", m, ok)
		}
		if err := b.Apply(m); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if b.KingSquare(White) != sq(t, "g1") {
			t.Fatalf("king cache = %v", b.KingSquare(White))
		}
		rook := b.PieceAt(sq(t, "f1"))
		if rook.Kind != Rook || !rook.Moved {
			t.Fatalf("f1 = %+v", rook)
		}
		if _, ok := b.At(sq(t, "h1")); ok {
			t.Fatalf("h1 should be empty")
		}
		if !b.PieceAt(sq(t, "g1")).Moved {
			t.Fatalf("king should be marked moved")
		}
	})

	t.Run("apply queenside", func(t *testing.T) {
		b := NewEmptyBoard()
		place(t, b, "Ke1 Ra1 ke8")
		b.UpdateMoveSet()
		m, ok := b.FindMove(sq(t, "e1"), sq(t, "c1"))
		if !ok || m.Kind != MoveCastleQueenside {
			t.Fatalf("castle move = %v %v", m, ok)
		}
		b.Play(m)
		if b.KingSquare(White) != sq(t, "c1") || b.PieceAt(sq(t, "d1")).Kind != Rook {
			t.Fatalf("queenside castle misplaced pieces\n%s", b)
		}
	})
}

func TestPromotion(t *testing.T) {
	b := NewEmptyBoard()
	place(t, b, "Ka1 kh8 Pb7 rc8")
	b.UpdateMoveSet()

	for _, dst := range []string{"b8", "c8"} {
		t.Run(dst, func(t *testing.T) {
			nb := b.Clone()
			m, ok := nb.FindMove(sq(t, "b7"), sq(t, dst))
			if !ok {
				t.Fatalf("b7-%s not legal", dst)
			}
			nb.Play(m)
			p := nb.PieceAt(sq(t, dst))
			if p.Kind != Queen || p.Color != White || !p.Moved {
				t.Fatalf("promoted piece = %+v", p)
			}
		})
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	b := NewEmptyBoard()
	place(t, b, "Ke1 Ne2 re8 kh8")
	b.UpdateMoveSet()
	if n := len(b.PieceAt(sq(t, "e2")).Moves); n != 0 {
		t.Fatalf("pinned knight has %d moves", n)
	}
}

func TestPrint(t *testing.T) {
	out := NewBoard().String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != "8| r n b q k b n r " {
		t.Fatalf("top row = %q", lines[0])
	}
	if lines[7] != "1| R N B Q K B N R " {
		t.Fatalf("bottom row = %q", lines[7])
	}
	if lines[4] != "4| . . . . . . . . " {
		t.Fatalf("empty row = %q", lines[4])
	}
	if lines[9] != "   a b c d e f g h " {
		t.Fatalf("file row = %q", lines[9])
	}

	var sb strings.Builder
	NewBoard().PrintMoves(&sb, Sq(1, 4))
	if sb.String() != "0: e3\n1: jump\n" {
		t.Fatalf("e2 moves = %q", sb.String())
	}
}
