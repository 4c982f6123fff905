package chess

type Outcome int8

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
)

func (o Outcome) String() string {
	switch o {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "ongoing"
}

// EndGame 判断 side 走棋时的局面状态
func (b *Board) EndGame(side Color) Outcome {
	b.mustFresh()
	if b.MoveCount(side) == 0 {
		if b.InCheck(side) {
			return Checkmate
		}
		return Stalemate
	}
	if b.insufficientMaterial() {
		return Stalemate
	}
	return Ongoing
}

// 子力不足：只剩双王；双王 + 单马/单象；双王 + 两象且同色格
func (b *Board) insufficientMaterial() bool {
	var extra []Piece
	for _, p := range b.squares {
		if p.Kind == NoKind || p.Kind == King {
			continue
		}
		extra = append(extra, p)
		if len(extra) > 2 {
			return false
		}
	}
	if b.Count() != len(extra)+2 {
		return false
	}
	switch len(extra) {
	case 0:
		return true
	case 1:
		return extra[0].Kind == Knight || extra[0].Kind == Bishop
	case 2:
		return extra[0].Kind == Bishop && extra[1].Kind == Bishop &&
			squareShade(extra[0].Square) == squareShade(extra[1].Square)
	}
	return false
}

func squareShade(sq Square) int {
	return (sq.Row() + sq.Col()) % 2
}
