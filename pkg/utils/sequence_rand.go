package utils

// SequenceRand 按固定序列返回随机值的随机源（测试用）
// Float64 循环返回 Floats；IntN 返回 Ints 中的下一个值对 n 取模。
// 序列为空时分别返回 0。
type SequenceRand struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

// Float64 返回序列中的下一个浮点值
func (s *SequenceRand) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v
}

// IntN 返回序列中的下一个整数（对 n 取模）
func (s *SequenceRand) IntN(n int) int {
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[s.ii%len(s.Ints)] % n
	s.ii++
	if v < 0 {
		v += n
	}
	return v
}
