// Package render 使用 Ebitengine 绘制转盘和粒子特效
//
// 不依赖 GPU 的部分（调色板、布局、网格、粒子绘制参数）都是普通函数，
// 可以在无窗口环境下测试；Draw 方法只负责把结果交给 ebiten。
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/prizewheel/pkg/config"
)

// Palette 按颜色等级索引的颜色表
type Palette []colorful.Color

// ParsePalette 解析十六进制颜色列表
func ParsePalette(hexes []string) (Palette, error) {
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("%w: palette color %q: %v", config.ErrInvalidConfiguration, h, err)
		}
		p = append(p, c)
	}
	return p, nil
}

// At 返回颜色等级 class 对应的颜色，越界时取模；空调色板返回白色
func (p Palette) At(class int) colorful.Color {
	if len(p) == 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	if class < 0 {
		class = -class
	}
	return p[class%len(p)]
}

// Shift 向白色（percent > 0）或黑色（percent < 0）混合 |percent|%
func Shift(c colorful.Color, percent float64) colorful.Color {
	p := math.Min(100, math.Abs(percent)) / 100
	target := colorful.Color{}
	if percent > 0 {
		target = colorful.Color{R: 1, G: 1, B: 1}
	}
	return c.BlendRgb(target, p).Clamped()
}

// Lighten 提亮
func Lighten(c colorful.Color, percent float64) colorful.Color {
	return Shift(c, math.Abs(percent))
}

// Darken 压暗
func Darken(c colorful.Color, percent float64) colorful.Color {
	return Shift(c, -math.Abs(percent))
}

// NRGBA 转换为带透明度的 ebiten 可用颜色
func NRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

// SectorShade 扇区金属质感渐变：内圈亮、外圈暗
type SectorShade struct {
	Inner colorful.Color
	Base  colorful.Color
	Outer colorful.Color
}

// ShadeFor 根据扇区底色生成渐变；黑色扇区使用更强的明暗对比
func ShadeFor(base colorful.Color) SectorShade {
	light, dark := 22.0, 18.0
	if r, g, b := base.RGB255(); r == g && g == b && r < 0x20 {
		light, dark = 18, 25
	}
	return SectorShade{
		Inner: Lighten(base, light),
		Base:  base,
		Outer: Darken(base, dark),
	}
}

// SectorShades 为每个扇区生成渐变
func SectorShades(sectors []int) ([]SectorShade, error) {
	shades := make([]SectorShade, len(sectors))
	for i, v := range sectors {
		c, err := colorful.Hex(config.SectorColor(v, i))
		if err != nil {
			return nil, err
		}
		shades[i] = ShadeFor(c)
	}
	return shades, nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
