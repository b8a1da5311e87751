package particle

import "github.com/ojrac/opensimplex-go"

// Turbulence 平滑速度场扰动
type Turbulence interface {
	// Force 返回 (x, y) 处在 t 帧时的速度增量
	Force(x, y, t float64) (fx, fy float64)
}

// SimplexTurbulence 采样两个不相关的 OpenSimplex 平面
// 让光环缓慢闪烁，而不是白噪声抖动
type SimplexTurbulence struct {
	noise     opensimplex.Noise
	amplitude float64
	scale     float64
	speed     float64
}

// NewSimplexTurbulence 创建给定强度的速度场
// 强度为 0 时不产生作用力
func NewSimplexTurbulence(seed int64, amplitude float64) *SimplexTurbulence {
	return &SimplexTurbulence{
		noise:     opensimplex.New(seed),
		amplitude: amplitude,
		scale:     0.02,
		speed:     0.05,
	}
}

// Force 实现 Turbulence
func (s *SimplexTurbulence) Force(x, y, t float64) (float64, float64) {
	if s.amplitude == 0 {
		return 0, 0
	}
	z := t * s.speed
	fx := s.noise.Eval3(x*s.scale, y*s.scale, z)
	fy := s.noise.Eval3(x*s.scale+31.7, y*s.scale-17.3, z)
	return fx * s.amplitude, fy * s.amplitude
}
