package utils

import (
	"fmt"
	"math"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]。
// 除 EaseOutBack 外，返回值 ∈ [0, 1]，且 f(0)=0, f(1)=1，单调递增。
//
// 参考：https://easings.net/

// Easing 命名的缓动曲线
type Easing func(t float64) float64

// BackTension 回弹缓动的标准张力系数
const BackTension = 1.70158

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（转盘主旋转阶段使用）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic 三次方缓入
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuart 四次方缓出
// 特点：比 Cubic 更早接近终点（奖金数字滚动使用）
// 公式：f(t) = 1 - (1-t)⁴
func EaseOutQuart(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv*inv
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢（回弹阶段使用）
// 公式：f(t) = 1 - (1-t)² = t(2-t)
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutExpo 指数缓出
// 公式：f(t) = 1 - 2^(-10t)
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseOutBack 回弹缓出
// 特点：越过终点后回落到 1（标题弹出效果使用）
// 输出在中途会短暂超过 1，tension 越大越明显。
// 公式：f(t) = 1 + (s+1)(t-1)³ + s(t-1)²
func EaseOutBack(t, tension float64) float64 {
	u := t - 1
	return 1 + (tension+1)*u*u*u + tension*u*u
}

// EaseOutBackDefault 使用标准张力的回弹缓出
func EaseOutBackDefault(t float64) float64 {
	return EaseOutBack(t, BackTension)
}

// easingNames YAML 配置中可用的曲线名称
var easingNames = map[string]Easing{
	"linear":      EaseLinear,
	"cubic-out":   EaseOutCubic,
	"cubic-in":    EaseInCubic,
	"cubic-inout": EaseInOutCubic,
	"quart-out":   EaseOutQuart,
	"quad-out":    EaseOutQuad,
	"quad-in":     EaseInQuad,
	"expo-out":    EaseOutExpo,
	"back-out":    EaseOutBackDefault,
}

// EasingByName 根据名称查找缓动曲线
// 未知名称返回错误（配置错误，不做静默回退）
func EasingByName(name string) (Easing, error) {
	if fn, ok := easingNames[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown easing %q", name)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
