package config

import "fmt"

// SpawnPolicy 粒子发射策略
type SpawnPolicy string

const (
	// SpawnContinuous 持续发射（按钮火焰光环）
	SpawnContinuous SpawnPolicy = "continuous"
	// SpawnBurst 一次性爆发（中奖彩带），之后不再补充
	SpawnBurst SpawnPolicy = "burst"
)

// FloatRange 闭区间浮点范围
type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// IntRange 闭区间整数范围
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// MaxCatchUpLimit 单次更新最多追赶的帧数（卡顿后不会一次性补发大量粒子）
const MaxCatchUpLimit = 3.0

// EmitterConfig 环形粒子发射器配置
//
// 所有速度、寿命单位均为"帧"（以 TargetFrameMs 为一帧），按 60fps 画布动画换算：
// 每次更新的 dt = 实际帧间隔 / TargetFrameMs，并被限制在 [0, MaxCatchUp]。
type EmitterConfig struct {
	Policy SpawnPolicy `yaml:"policy"`

	// 发射环几何（逻辑坐标，渲染时再乘以 RenderScale）
	CenterX      float64 `yaml:"centerX"`
	CenterY      float64 `yaml:"centerY"`
	Radius       float64 `yaml:"radius"`
	RadiusJitter float64 `yaml:"radiusJitter"` // 半径随机偏移总宽度（±一半）

	// 初始速度
	TangentialSpeed FloatRange `yaml:"tangentialSpeed"` // 切向分量
	RadialSpeedX    float64    `yaml:"radialSpeedX"`    // 径向分量（X）
	RadialSpeedY    float64    `yaml:"radialSpeedY"`    // 径向分量（Y）
	VelocityNoise   float64    `yaml:"velocityNoise"`   // X 方向随机噪声总宽度
	Lift            FloatRange `yaml:"lift"`            // 向上漂浮速度（Y 负方向）

	// 寿命（帧）
	Life FloatRange `yaml:"life"`

	// 每帧更新
	Gravity       float64 `yaml:"gravity"`       // Y 方向加速度（帧⁻²）
	JitterX       float64 `yaml:"jitterX"`       // X 速度抖动总宽度
	JitterY       float64 `yaml:"jitterY"`       // Y 速度抖动总宽度
	DragFactor    float64 `yaml:"dragFactor"`    // drag(p) = 1 - p*DragFactor
	FadeIn        float64 `yaml:"fadeIn"`        // 淡入占寿命比例
	AlphaScale    float64 `yaml:"alphaScale"`    // 全局透明度乘数
	TurbulenceAmp float64 `yaml:"turbulenceAmp"` // simplex 湍流强度，0 表示关闭

	// 外观
	Sizes   []float64 `yaml:"sizes"`   // 尺寸等级（像素半径）
	Palette []string  `yaml:"palette"` // 颜色等级（十六进制）

	// 时间步
	TargetFrameMs float64 `yaml:"targetFrameMs"`
	MaxCatchUp    float64 `yaml:"maxCatchUp"` // 不得超过 MaxCatchUpLimit

	// Prefill 启动时以随机年龄填满粒子池（持续模式可选，爆发模式总是如此）
	Prefill bool `yaml:"prefill"`
}

// DefaultHaloConfig 按钮火焰光环默认配置
func DefaultHaloConfig() EmitterConfig {
	return EmitterConfig{
		Policy:          SpawnContinuous,
		CenterX:         178,
		CenterY:         178,
		Radius:          118,
		RadiusJitter:    16,
		TangentialSpeed: FloatRange{Min: 0.25, Max: 0.6},
		RadialSpeedX:    0.2,
		RadialSpeedY:    0.15,
		VelocityNoise:   0.3,
		Lift:            FloatRange{Min: 1.2, Max: 2.8},
		Life:            FloatRange{Min: 36, Max: 60},
		JitterX:         0.12,
		JitterY:         0.05,
		DragFactor:      0.35,
		FadeIn:          0.18,
		AlphaScale:      0.85,
		TurbulenceAmp:   0.04,
		Sizes:           []float64{6, 9, 12, 15, 18},
		Palette:         []string{"#ffdc32", "#ff8c00", "#ff3c00"},
		TargetFrameMs:   16.67,
		MaxCatchUp:      3,
		Prefill:         true,
	}
}

// DefaultConfettiConfig 中奖彩带默认配置
func DefaultConfettiConfig() EmitterConfig {
	return EmitterConfig{
		Policy:          SpawnBurst,
		CenterX:         366,
		CenterY:         366,
		Radius:          60,
		RadiusJitter:    120,
		TangentialSpeed: FloatRange{Min: 0.5, Max: 2.0},
		RadialSpeedX:    1.5,
		RadialSpeedY:    1.5,
		VelocityNoise:   2.0,
		Lift:            FloatRange{Min: 0, Max: 2},
		Life:            FloatRange{Min: 36, Max: 60},
		Gravity:         0.03,
		JitterX:         0.1,
		JitterY:         0.02,
		DragFactor:      0.2,
		FadeIn:          0.18,
		AlphaScale:      1.0,
		Sizes:           []float64{4, 6, 8, 10, 12},
		Palette:         []string{"#ff6a00", "#ffae00", "#ff4500", "#ffd700", "#ffffff", "#ff8c00", "#ffa500"},
		TargetFrameMs:   16.67,
		MaxCatchUp:      3,
	}
}

// Validate 检查发射器配置
func (c EmitterConfig) Validate() error {
	switch c.Policy {
	case SpawnContinuous, SpawnBurst:
	default:
		return fmt.Errorf("%w: unknown spawn policy %q", ErrInvalidConfiguration, c.Policy)
	}
	if c.Life.Min <= 0 || c.Life.Max < c.Life.Min {
		return fmt.Errorf("%w: particle life [%v, %v] must be positive and ordered", ErrInvalidConfiguration, c.Life.Min, c.Life.Max)
	}
	if c.TargetFrameMs <= 0 {
		return fmt.Errorf("%w: targetFrameMs %v must be positive", ErrInvalidConfiguration, c.TargetFrameMs)
	}
	if c.MaxCatchUp <= 0 || c.MaxCatchUp > MaxCatchUpLimit {
		return fmt.Errorf("%w: maxCatchUp %v must be in (0, %v]", ErrInvalidConfiguration, c.MaxCatchUp, MaxCatchUpLimit)
	}
	if c.FadeIn <= 0 || c.FadeIn >= 1 {
		return fmt.Errorf("%w: fadeIn %v must be in (0, 1)", ErrInvalidConfiguration, c.FadeIn)
	}
	if c.DragFactor < 0 || c.DragFactor >= 1 {
		return fmt.Errorf("%w: dragFactor %v must be in [0, 1)", ErrInvalidConfiguration, c.DragFactor)
	}
	if c.TangentialSpeed.Max < c.TangentialSpeed.Min || c.Lift.Max < c.Lift.Min {
		return fmt.Errorf("%w: velocity ranges must be ordered", ErrInvalidConfiguration)
	}
	if len(c.Sizes) == 0 || len(c.Palette) == 0 {
		return fmt.Errorf("%w: emitter needs at least one size and one color", ErrInvalidConfiguration)
	}
	for _, s := range c.Sizes {
		if s <= 0 {
			return fmt.Errorf("%w: particle size %v must be positive", ErrInvalidConfiguration, s)
		}
	}
	return nil
}
