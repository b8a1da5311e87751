package utils

import "math/rand/v2"

// Rand 可注入的随机源
// 旋转圈数、旋转时长、回弹幅度、粒子抖动都通过它取值，测试中可替换为确定序列。
// *rand.Rand (math/rand/v2) 直接满足该接口。
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand 创建带固定种子的 PCG 随机源
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomInRange 在 [min, max) 内均匀取值；min == max 时返回 min
func RandomInRange(rng Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// RandomIntInclusive 在闭区间 [min, max] 内均匀取整数
func RandomIntInclusive(rng Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.IntN(max-min+1)
}
