package model

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"chessagent/internal/chess"
)

func TestFavorToBucket(t *testing.T) {
	cases := []struct {
		name  string
		favor float64
		want  int
	}{
		{"far negative", -100, 0},
		{"far positive", 100, Buckets - 1},
		{"zero", 0, Buckets/2 - 1},
		{"first positive boundary", StartingBucketSize, Buckets / 2},
		{"just below first boundary", StartingBucketSize * 0.999, Buckets/2 - 1},
		{"nan", math.NaN(), Buckets/2 - 1},
		{"positive infinity", math.Inf(1), Buckets - 1},
		{"negative infinity", math.Inf(-1), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FavorToBucket(tc.favor); got != tc.want {
				t.Fatalf("FavorToBucket(%v) = %d, want %d", tc.favor, got, tc.want)
			}
		})
	}
}

func TestBucketsAreMonotonic(t *testing.T) {
	prev := -1
	for f := -0.03; f <= 0.03; f += 0.0001 {
		b := FavorToBucket(f)
		if b < prev {
			t.Fatalf("bucket went down at favor %v: %d < %d", f, b, prev)
		}
		prev = b
	}
	for i := 1; i < Buckets; i++ {
		if BucketFavor(i) <= BucketFavor(i-1) {
			t.Fatalf("BucketFavor not increasing at %d", i)
		}
	}
	for i := 0; i < Buckets; i++ {
		if got := FavorToBucket(BucketFavor(i)); got != i {
			t.Fatalf("midpoint of bucket %d maps to %d", i, got)
		}
	}
}

func TestArgmaxPrefersLastMaximum(t *testing.T) {
	if got := Argmax([]float64{0.1, 0.9, 0.3, 0.9}); got != 3 {
		t.Fatalf("Argmax = %d, want 3", got)
	}
	if got := Argmax([]int{}); got != -1 {
		t.Fatalf("Argmax(empty) = %d", got)
	}
	if got := Clamp(70, 0, Buckets-1); got != Buckets-1 {
		t.Fatalf("Clamp = %d", got)
	}
}

func TestEncode(t *testing.T) {
	state := Encode(chess.NewBoard())
	if len(state) != InputSize {
		t.Fatalf("len = %d", len(state))
	}
	// e1 白王，d8 黑后，a2 白兵
	if state[int(chess.Sq(0, 4))*SlotsPerSquare+1] != 1 {
		t.Fatalf("white king slot not set")
	}
	if state[int(chess.Sq(7, 3))*SlotsPerSquare+2] != -1 {
		t.Fatalf("black queen slot not set")
	}
	if state[int(chess.Sq(1, 0))*SlotsPerSquare] != 1 {
		t.Fatalf("white pawn slot not set")
	}
	nonZero := 0
	for _, v := range state {
		if v != 0 {
			nonZero++
		}
	}
	if nonZero != 32 {
		t.Fatalf("nonzero inputs = %d, want 32", nonZero)
	}

	buf := make([]float32, InputSize)
	buf[5] = 7
	EncodeInto(buf, chess.NewBoard())
	for i := range buf {
		if float64(buf[i]) != state[i] {
			t.Fatalf("EncodeInto differs at %d", i)
		}
	}
}

func TestNetworkTrainingReducesLoss(t *testing.T) {
	n, err := NewNetwork([]int{4, 8, 3}, 0.5, 1)
	if err != nil {
		t.Fatalf("new network: %v", err)
	}
	input := []float64{1, -1, 0, 1}
	target := OneHot(3, 2)

	step := func() float64 {
		pred, err := n.Forward(input)
		if err != nil {
			t.Fatalf("forward: %v", err)
		}
		loss, err := n.Backward(pred, target)
		if err != nil {
			t.Fatalf("backward: %v", err)
		}
		return loss
	}
	first := step()
	var last float64
	for i := 0; i < 200; i++ {
		last = step()
	}
	if last >= first {
		t.Fatalf("loss did not decrease: first %v last %v", first, last)
	}
	out, _ := n.Predict(input)
	if Argmax(out) != 2 {
		t.Fatalf("trained network predicts %v", out)
	}
}

func TestNetworkErrors(t *testing.T) {
	n, _ := NewNetwork([]int{2, 2}, 0.1, 1)
	if _, err := n.Backward([]float64{0, 0}, []float64{0, 1}); err == nil {
		t.Fatalf("backward without forward should fail")
	}
	if _, err := n.Predict([]float64{1}); !errors.Is(err, ErrShape) {
		t.Fatalf("short input err = %v", err)
	}
	if _, err := NewNetwork([]int{3}, 0.1, 1); !errors.Is(err, ErrShape) {
		t.Fatalf("single layer err = %v", err)
	}
}

func TestNetworkSaveLoad(t *testing.T) {
	dir := t.TempDir()
	n, _ := NewNetwork([]int{InputSize, 5, Buckets}, 0.01, 3)
	if err := n.Save(dir, "favor_test"); err != nil {
		t.Fatalf("save: %v", err)
	}
	m, err := LoadNetwork(dir, "favor_test")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	b := chess.NewBoard()
	want, _ := n.Predict(Encode(b))
	got, _ := m.Predict(Encode(b))
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("output %d differs after load: %v vs %v", i, got[i], want[i])
		}
	}
	if _, err := LoadNetwork(dir, "missing"); err == nil {
		t.Fatalf("loading a missing network should fail")
	}

	v, err := NetworkValuer{Net: m}.Value(b)
	if err != nil || v < 0 || v >= Buckets {
		t.Fatalf("valuer = %d, %v", v, err)
	}
	if _, err := (NetworkRanker{Net: m}).Rank(b); !errors.Is(err, ErrShape) {
		t.Fatalf("favor net used as ranker should fail, got %v", err)
	}
}

func TestDefaultNetworks(t *testing.T) {
	f := NewFavorNetwork(1)
	p := NewPolicyNetwork(1)
	if f.InputSize() != InputSize || f.OutputSize() != Buckets {
		t.Fatalf("favor net %d->%d", f.InputSize(), f.OutputSize())
	}
	scores, err := NetworkRanker{Net: p}.Rank(chess.NewBoard())
	if err != nil || len(scores) != PolicySize {
		t.Fatalf("rank = %d scores, %v", len(scores), err)
	}
}

func TestOpenNetworkFiles(t *testing.T) {
	dir := t.TempDir()
	if err := NewPolicyNetwork(1).Save(dir, "policy_x"); err != nil {
		t.Fatal(err)
	}
	if err := NewFavorNetwork(2).Save(dir, "favor_x"); err != nil {
		t.Fatal(err)
	}

	m, err := Open(filepath.Join(dir, "policy_x.json"), filepath.Join(dir, "favor_x.json"), "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer m.Close()
	b := chess.NewBoard()
	if scores, err := m.Ranker.Rank(b); err != nil || len(scores) != PolicySize {
		t.Fatalf("rank: %v, %d scores", err, len(scores))
	}
	if bucket, err := m.Valuer.Value(b); err != nil || bucket < 0 || bucket >= Buckets {
		t.Fatalf("value: %v, bucket %d", err, bucket)
	}

	// 排序和价值模型装反了要报形状错误
	if _, err := Open(filepath.Join(dir, "favor_x.json"), filepath.Join(dir, "policy_x.json"), ""); !errors.Is(err, ErrShape) {
		t.Fatalf("swapped models: %v", err)
	}
	if _, err := Open(filepath.Join(dir, "policy_x.bin"), "", ""); !errors.Is(err, ErrModelFormat) {
		t.Fatalf("unknown extension: %v", err)
	}
}
