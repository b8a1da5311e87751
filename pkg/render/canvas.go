package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/prizewheel/pkg/particle"
)

// coreScale 高亮内核半径相对外晕的比例
const coreScale = 0.45

// Dot 解析后的一个粒子圆点（屏幕坐标）
type Dot struct {
	X, Y   float32
	Radius float32
	Color  color.NRGBA
	Core   color.NRGBA // 高亮内核
}

// EbitenCanvas 将粒子模拟输出缓存一帧，在 Draw 阶段绘制到 ebiten 图像
//
// 模拟在 Update（帧回调）中写入，绘制在 Draw 中读取，两者都在游戏 goroutine。
type EbitenCanvas struct {
	particle.Recorder

	palette Palette
	offsetX float64
	offsetY float64
	scale   float64
	glow    bool
}

// NewEbitenCanvas 创建粒子画布；offset 为粒子逻辑坐标原点在屏幕上的位置
func NewEbitenCanvas(palette Palette, offsetX, offsetY float64, glow bool) *EbitenCanvas {
	return &EbitenCanvas{
		palette: palette,
		offsetX: offsetX,
		offsetY: offsetY,
		scale:   1,
		glow:    glow,
	}
}

// SetTransform 设置逻辑坐标到屏幕坐标的变换
func (c *EbitenCanvas) SetTransform(offsetX, offsetY, scale float64) {
	c.offsetX, c.offsetY, c.scale = offsetX, offsetY, scale
}

// Resolve 把一个绘制命令转换为屏幕上的圆点
func (c *EbitenCanvas) Resolve(cmd particle.DrawCommand) Dot {
	base := c.palette.At(cmd.ColorClass)
	return Dot{
		X:      float32(c.offsetX + cmd.X*c.scale),
		Y:      float32(c.offsetY + cmd.Y*c.scale),
		Radius: float32(cmd.Radius * c.scale),
		Color:  NRGBA(base, cmd.Alpha),
		Core:   NRGBA(Lighten(base, 45), cmd.Alpha),
	}
}

// Render 绘制最近一帧的全部粒子
func (c *EbitenCanvas) Render(dst *ebiten.Image) {
	for _, cmd := range c.Commands {
		d := c.Resolve(cmd)
		if d.Color.A == 0 || d.Radius <= 0 {
			continue
		}
		if c.glow {
			halo := d.Color
			halo.A /= 3
			vector.DrawFilledCircle(dst, d.X, d.Y, d.Radius, halo, true)
			vector.DrawFilledCircle(dst, d.X, d.Y, d.Radius*coreScale, d.Core, true)
			continue
		}
		vector.DrawFilledCircle(dst, d.X, d.Y, d.Radius, d.Color, true)
	}
}
