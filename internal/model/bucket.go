package model

import (
	"math"

	"golang.org/x/exp/constraints"
)

const (
	Buckets            = 60
	StartingBucketSize = 0.001
	ExpansionRate      = 1.1
)

// boundary 第 x 条分界线，x<0 在负半轴。
// 0 号分界线是 +0.001，-1 号是 -0.0011，中间那个桶跨过 0。
func boundary(x int) float64 {
	if x < 0 {
		return -math.Pow(ExpansionRate, float64(-x)) * StartingBucketSize
	}
	return math.Pow(ExpansionRate, float64(x)) * StartingBucketSize
}

// FavorToBucket 把连续的 favor 映射到 [0, Buckets) 的桶号，两端截断
func FavorToBucket(favor float64) int {
	half := Buckets / 2
	switch {
	case math.IsNaN(favor):
		return half - 1
	case favor < boundary(-half):
		return 0
	case favor >= boundary(half):
		return Buckets - 1
	}
	for i := -half; i < half; i++ {
		if boundary(i) <= favor && favor < boundary(i+1) {
			return i + half
		}
	}
	return Buckets - 1
}

// BucketFavor 桶的中点，把价值网络的输出放回 favor 的量纲
func BucketFavor(bucket int) float64 {
	half := Buckets / 2
	bucket = Clamp(bucket, 0, Buckets-1)
	i := bucket - half
	return (boundary(i) + boundary(i+1)) / 2
}

// Argmax 相等时取靠后的那个
func Argmax[T constraints.Ordered](xs []T) int {
	if len(xs) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(xs); i++ {
		if xs[i] >= xs[best] {
			best = i
		}
	}
	return best
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
