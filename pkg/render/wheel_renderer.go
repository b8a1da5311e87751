package render

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/wheel"
)

const (
	arcSegments    = 4
	pointerWidth   = 34
	pointerLength  = 46
	debugGlyphW    = 6 // ebitenutil 调试字体字宽
	debugGlyphH    = 16
	titleText      = "YOU WIN"
	buttonLabel    = "SPIN"
	revealPanelW   = 360
	revealPanelH   = 180
	revealTitleMax = 4.0 // 标题最大放大倍数
)

var (
	goldDark  = colorful.Color{R: 0xB8 / 255.0, G: 0x86 / 255.0, B: 0x0B / 255.0}
	goldLight = colorful.Color{R: 1, G: 0xD7 / 255.0, B: 0}
	backdrop  = color.NRGBA{R: 0, G: 0, B: 0, A: 160}
)

// WheelRenderer 绘制转盘本体、指针、中心按钮和中奖面板
//
// 实现 wheel.RotationSink：动画器每帧写入角度，Draw 时读取。
type WheelRenderer struct {
	layout  Layout
	sectors []int
	shades  []SectorShade

	rotation     float64
	pointerAngle float64

	mesh  Mesh
	white *ebiten.Image
	title *ebiten.Image
}

// NewWheelRenderer 按扇区表创建渲染器
func NewWheelRenderer(cfg *config.WheelConfig, layout Layout) (*WheelRenderer, error) {
	if cfg == nil || cfg.SectorCount() == 0 {
		return nil, fmt.Errorf("%w: renderer needs at least one sector", config.ErrInvalidConfiguration)
	}
	shades, err := SectorShades(cfg.Sectors)
	if err != nil {
		return nil, fmt.Errorf("failed to build sector shades: %w", err)
	}
	return &WheelRenderer{
		layout:   layout,
		sectors:  cfg.Sectors,
		shades:   shades,
		rotation: wheel.InitialRotation(cfg.SectorCount()),
	}, nil
}

// SetRotation 实现 wheel.RotationSink
func (r *WheelRenderer) SetRotation(deg float64) {
	r.rotation = deg
}

// Rotation 当前绘制角度
func (r *WheelRenderer) Rotation() float64 {
	return r.rotation
}

// SetPointerAngle 设置指针偏转角度
func (r *WheelRenderer) SetPointerAngle(deg float64) {
	r.pointerAngle = deg
}

// Layout 返回几何参数
func (r *WheelRenderer) Layout() Layout {
	return r.layout
}

// BuildMesh 重建扇区与指针网格
func (r *WheelRenderer) BuildMesh() *Mesh {
	r.mesh.Reset()
	n := len(r.sectors)
	for i := range r.sectors {
		start, end := r.layout.SectorSpan(i, n, r.rotation)
		r.mesh.AppendSector(r.layout, start, end, r.shades[i], arcSegments)
	}
	r.mesh.AppendPointer(r.layout, r.pointerAngle, pointerWidth, pointerLength, goldLight)
	return &r.mesh
}

func (r *WheelRenderer) whiteImage() *ebiten.Image {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img
	}
	return r.white
}

// Draw 绘制转盘（不含粒子）
func (r *WheelRenderer) Draw(dst *ebiten.Image, canSpin bool) {
	l := r.layout
	mesh := r.BuildMesh()
	n := len(r.sectors)

	// 指针三角形最后追加，先画扇区
	pointerIdx := len(mesh.Indices) - 3
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(mesh.Vertices, mesh.Indices[:pointerIdx], r.whiteImage(), op)

	// 金色分隔线与内外圈
	for i := 0; i < n; i++ {
		start, _ := l.SectorSpan(i, n, r.rotation)
		x1, y1 := l.Polar(start, l.InnerRadius)
		x2, y2 := l.Polar(start, l.OuterRadius)
		vector.StrokeLine(dst, float32(x1), float32(y1), float32(x2), float32(y2), 6, NRGBA(goldDark, 1), true)
		vector.StrokeLine(dst, float32(x1), float32(y1), float32(x2), float32(y2), 2, color.NRGBA{R: 255, G: 255, B: 255, A: 102}, true)
	}
	cx, cy := float32(l.CenterX), float32(l.CenterY)
	vector.StrokeCircle(dst, cx, cy, float32(l.InnerRadius-2), 6, NRGBA(goldLight, 1), true)
	vector.StrokeCircle(dst, cx, cy, float32(l.OuterRadius+2), 6, NRGBA(goldLight, 1), true)

	for i, v := range r.sectors {
		x, y := l.LabelPosition(i, n, r.rotation)
		label := strconv.Itoa(v)
		ebitenutil.DebugPrintAt(dst, label, int(x)-len(label)*debugGlyphW/2, int(y)-debugGlyphH/2)
	}

	// 中心按钮
	face := NRGBA(Darken(goldDark, 40), 1)
	if !canSpin {
		face = NRGBA(Darken(goldDark, 70), 1)
	}
	vector.DrawFilledCircle(dst, cx, cy, float32(l.InnerRadius*0.62), face, true)
	vector.StrokeCircle(dst, cx, cy, float32(l.InnerRadius*0.62), 4, NRGBA(goldLight, 1), true)
	ebitenutil.DebugPrintAt(dst, buttonLabel, int(l.CenterX)-len(buttonLabel)*debugGlyphW/2, int(l.CenterY)-debugGlyphH/2)

	dst.DrawTriangles(mesh.Vertices, mesh.Indices[pointerIdx:], r.whiteImage(), op)
}

// RevealText 中奖面板的文字内容
func RevealText(reveal *wheel.PrizeReveal) (title, counter string, ok bool) {
	if reveal == nil || reveal.Prize() == 0 {
		return "", "", false
	}
	return titleText, strconv.Itoa(reveal.Counter()), true
}

// DrawReveal 绘制中奖面板：标题按 TitleScale 缩放，奖金数字滚动
func (r *WheelRenderer) DrawReveal(dst *ebiten.Image, reveal *wheel.PrizeReveal) {
	title, counter, ok := RevealText(reveal)
	if !ok {
		return
	}
	l := r.layout
	px := float32(l.CenterX - revealPanelW/2)
	py := float32(l.CenterY - revealPanelH/2)
	vector.DrawFilledRect(dst, px, py, revealPanelW, revealPanelH, backdrop, false)
	vector.StrokeRect(dst, px, py, revealPanelW, revealPanelH, 3, NRGBA(goldLight, 1), false)

	if r.title == nil {
		r.title = ebiten.NewImage(len(titleText)*debugGlyphW, debugGlyphH)
		ebitenutil.DebugPrint(r.title, titleText)
	}
	scale := reveal.TitleScale() * revealTitleMax
	if scale > 0 {
		op := &ebiten.DrawImageOptions{}
		w := float64(len(title) * debugGlyphW)
		op.GeoM.Translate(-w/2, -debugGlyphH/2)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(l.CenterX, l.CenterY-revealPanelH/5)
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(r.title, op)
	}

	ebitenutil.DebugPrintAt(dst, counter, int(l.CenterX)-len(counter)*debugGlyphW/2, int(l.CenterY)+revealPanelH/6)
}
