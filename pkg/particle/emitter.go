package particle

import (
	"math"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/utils"
)

// Emitter 环形发射器：重置并积分环上的粒子
type Emitter struct {
	cfg        config.EmitterConfig
	rng        utils.Rand
	turbulence Turbulence
}

// NewEmitter 绑定配置和随机源
func NewEmitter(cfg config.EmitterConfig, rng utils.Rand) *Emitter {
	return &Emitter{cfg: cfg, rng: rng}
}

// jitter 返回 [-width/2, width/2) 内的值
func (e *Emitter) jitter(width float64) float64 {
	return (e.rng.Float64() - 0.5) * width
}

// Reset 把 p 放到环上的随机位置并赋予新的寿命
func (e *Emitter) Reset(p *Particle) {
	c := e.cfg
	angle := e.rng.Float64() * 2 * math.Pi
	r := c.Radius + e.jitter(c.RadiusJitter)
	cos, sin := math.Cos(angle), math.Sin(angle)

	p.X = c.CenterX + cos*r
	p.Y = c.CenterY + sin*r

	// 角度处圆环切线在 X 轴上的投影
	tang := math.Cos(angle - math.Pi/2)
	p.VX = tang*utils.RandomInRange(e.rng, c.TangentialSpeed.Min, c.TangentialSpeed.Max) +
		cos*c.RadialSpeedX +
		e.jitter(c.VelocityNoise)
	p.VY = sin*c.RadialSpeedY - utils.RandomInRange(e.rng, c.Lift.Min, c.Lift.Max)

	p.Age = 0
	p.MaxAge = utils.RandomInRange(e.rng, c.Life.Min, c.Life.Max)
	p.SizeClass = e.rng.IntN(len(c.Sizes))
	p.ColorClass = e.rng.IntN(len(c.Palette))
}

// Update 让 p 老化 dt 帧并更新运动
// 返回 false 表示粒子已到期，必须释放
func (e *Emitter) Update(p *Particle, dt, t float64) bool {
	c := e.cfg
	p.Age += dt
	if p.Age >= p.MaxAge {
		return false
	}
	progress := p.Age / p.MaxAge

	drag := Drag(progress, c.DragFactor)
	p.X += p.VX * dt * drag
	p.Y += p.VY * dt * drag

	p.VX += e.jitter(c.JitterX) * dt
	p.VY += e.jitter(c.JitterY)*dt + c.Gravity*dt
	if e.turbulence != nil {
		fx, fy := e.turbulence.Force(p.X, p.Y, t)
		p.VX += fx * dt
		p.VY += fy * dt
	}
	return true
}

// Command 为存活粒子生成绘制命令
func (e *Emitter) Command(p *Particle, alphaScale float64) DrawCommand {
	progress := p.Age / p.MaxAge
	return DrawCommand{
		X:          p.X,
		Y:          p.Y,
		Radius:     e.cfg.Sizes[p.SizeClass] * SizeEnvelope(progress),
		Alpha:      AlphaEnvelope(progress, e.cfg.FadeIn) * alphaScale,
		ColorClass: p.ColorClass,
	}
}

// AlphaEnvelope 透明度包络
// 前 fadeIn 比例线性淡入，其余部分线性淡出
func AlphaEnvelope(progress, fadeIn float64) float64 {
	if progress < fadeIn {
		return progress / fadeIn
	}
	return 1 - (progress-fadeIn)/(1-fadeIn)
}

// SizeEnvelope 尺寸包络
// 前 30% 寿命从 0.6 增长到 1.0，之后缩小到 0.5
func SizeEnvelope(progress float64) float64 {
	if progress < 0.3 {
		return 0.6 + (progress/0.3)*0.4
	}
	return 1 - ((progress-0.3)/0.7)*0.5
}

// Drag 粒子随年龄增长而减速
func Drag(progress, factor float64) float64 {
	return 1 - progress*factor
}
