package wheel

import "math"

// TickState 记录转盘最近经过的扇区边界
//
// 值类型：Advance 返回新状态而不修改自身，
// 由持有者决定何时从新的转角重新开始。
type TickState struct {
	AngleStep float64
	Tick      int
}

// NewTickState 以当前转角初始化刻度检测
func NewTickState(rotation, angleStep float64) TickState {
	return TickState{AngleStep: angleStep, Tick: tickOf(rotation, angleStep)}
}

// Advance 返回 rotation 对应的新状态，以及与上一状态相比经过的边界数
// 0 表示本帧没有刻度
func (s TickState) Advance(rotation float64) (TickState, int) {
	now := tickOf(rotation, s.AngleStep)
	crossed := now - s.Tick
	if crossed < 0 {
		crossed = -crossed
	}
	s.Tick = now
	return s, crossed
}

func tickOf(rotation, angleStep float64) int {
	if angleStep <= 0 {
		return 0
	}
	return int(math.Floor(rotation / angleStep))
}
