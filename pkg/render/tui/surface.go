// Package tui 通过 tcell 在终端中绘制转盘
//
// 转盘显示为在固定指针下滚动的横向扇区条；
// 粒子特效从转盘坐标映射到终端字符格。
package tui

import (
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/particle"
	"github.com/decker502/prizewheel/pkg/wheel"
)

const (
	// SectorWidth 每个扇区在条带中占的列数
	SectorWidth = 7

	pointerRune  = '▼'
	kickRune     = '◣'
	stripRows    = 3
	titleMessage = "YOU WIN"
)

// Surface 终端渲染表面，实现 wheel.RotationSink
type Surface struct {
	screen  tcell.Screen
	sectors []int
	styles  []tcell.Style

	rotation     float64
	pointerAngle float64

	halo     *CellCanvas
	confetti *CellCanvas
}

// NewSurface 创建终端渲染表面
//
// 粒子坐标以转盘画布为参照（边长为彩带中心的两倍），光环画布按两个发射中心的差值平移。
func NewSurface(screen tcell.Screen, cfg *config.WheelConfig) *Surface {
	styles := make([]tcell.Style, len(cfg.Sectors))
	for i, v := range cfg.Sectors {
		bg := tcell.GetColor(config.SectorColor(v, i))
		styles[i] = tcell.StyleDefault.Background(bg).Foreground(tcell.ColorWhite).Bold(v == config.JackpotValue)
	}

	world := 2 * cfg.Confetti.CenterX
	s := &Surface{
		screen:   screen,
		sectors:  cfg.Sectors,
		styles:   styles,
		rotation: wheel.InitialRotation(len(cfg.Sectors)),
		halo: NewCellCanvas(cfg.Halo.Palette, world,
			cfg.Confetti.CenterX-cfg.Halo.CenterX, cfg.Confetti.CenterY-cfg.Halo.CenterY),
		confetti: NewCellCanvas(cfg.Confetti.Palette, world, 0, 0),
	}
	return s
}

// SetRotation 实现 wheel.RotationSink
func (s *Surface) SetRotation(deg float64) {
	s.rotation = deg
}

// SetPointerAngle 设置指针偏转；非零时指针显示为拨动状态
func (s *Surface) SetPointerAngle(deg float64) {
	s.pointerAngle = deg
}

// HaloCanvas 光环粒子画布
func (s *Surface) HaloCanvas() *CellCanvas { return s.halo }

// ConfettiCanvas 彩带粒子画布
func (s *Surface) ConfettiCanvas() *CellCanvas { return s.confetti }

// StripRow 条带中间行
func (s *Surface) StripRow() int {
	_, h := s.screen.Size()
	return h / 2
}

// SectorAtColumn 条带中第 x 列显示的扇区
func (s *Surface) SectorAtColumn(x int) int {
	n := len(s.sectors)
	w, _ := s.screen.Size()
	pos := wheel.NormalizeDegrees(-s.rotation) / (360 / float64(n))
	f := pos + float64(x-w/2)/SectorWidth
	i := int(math.Floor(f)) % n
	if i < 0 {
		i += n
	}
	return i
}

// Draw 绘制一帧：粒子、条带、指针、状态行、中奖面板
func (s *Surface) Draw(status string, reveal *wheel.PrizeReveal) {
	s.screen.Clear()
	w, h := s.screen.Size()
	if w == 0 || h == 0 || len(s.sectors) == 0 {
		return
	}

	s.halo.render(s.screen)
	s.confetti.render(s.screen)

	row := s.StripRow()
	for x := 0; x < w; x++ {
		style := s.styles[s.SectorAtColumn(x)]
		for dy := -stripRows / 2; dy <= stripRows/2; dy++ {
			s.screen.SetContent(x, row+dy, ' ', nil, style)
		}
	}

	// 扇区标签居中于各自的列块
	n := len(s.sectors)
	step := 360 / float64(n)
	pos := wheel.NormalizeDegrees(-s.rotation) / step
	visible := w/SectorWidth/2 + 2
	for k := -visible; k <= visible; k++ {
		j := int(math.Floor(pos)) + k
		cx := w/2 + int(math.Round((float64(j)+0.5-pos)*SectorWidth))
		idx := ((j % n) + n) % n
		label := strconv.Itoa(s.sectors[idx])
		s.puts(cx-len(label)/2, row, label, s.styles[idx])
	}

	pointer := pointerRune
	if s.pointerAngle != 0 {
		pointer = kickRune
	}
	gold := tcell.StyleDefault.Foreground(tcell.GetColor("#ffd700"))
	s.screen.SetContent(w/2, row-stripRows/2-1, pointer, nil, gold)

	s.puts(1, h-1, status, tcell.StyleDefault)

	if reveal != nil && reveal.Prize() > 0 {
		text := titleMessage + "  " + strconv.Itoa(reveal.Counter())
		panel := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.GetColor("#ffd700")).Bold(true)
		s.puts(w/2-len(text)/2, row+stripRows, text, panel)
	}
	s.screen.Show()
}

func (s *Surface) puts(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

// CellCanvas 将粒子绘制命令映射到终端字符格，实现 particle.Canvas
type CellCanvas struct {
	particle.Recorder

	colors  []tcell.Color
	world   float64
	originX float64
	originY float64
}

// NewCellCanvas 创建字符格画布；world 为逻辑画布边长，origin 为本画布原点在逻辑画布中的位置
func NewCellCanvas(palette []string, world, originX, originY float64) *CellCanvas {
	colors := make([]tcell.Color, len(palette))
	for i, hex := range palette {
		colors[i] = tcell.GetColor(hex)
	}
	return &CellCanvas{colors: colors, world: world, originX: originX, originY: originY}
}

// Cell 计算一个绘制命令落在 w×h 终端中的位置与字符
func (c *CellCanvas) Cell(cmd particle.DrawCommand, w, h int) (x, y int, r rune, ok bool) {
	if c.world <= 0 || cmd.Alpha <= 0.05 {
		return 0, 0, 0, false
	}
	x = int((c.originX + cmd.X) / c.world * float64(w))
	y = int((c.originY + cmd.Y) / c.world * float64(h))
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, 0, 0, false
	}
	switch {
	case cmd.Alpha > 0.75:
		r = '●'
	case cmd.Alpha > 0.45:
		r = '•'
	case cmd.Alpha > 0.2:
		r = '∙'
	default:
		r = '·'
	}
	return x, y, r, true
}

func (c *CellCanvas) render(screen tcell.Screen) {
	w, h := screen.Size()
	for _, cmd := range c.Commands {
		x, y, r, ok := c.Cell(cmd, w, h)
		if !ok {
			continue
		}
		style := tcell.StyleDefault
		if len(c.colors) > 0 {
			style = style.Foreground(c.colors[cmd.ColorClass%len(c.colors)])
		}
		screen.SetContent(x, y, r, nil, style)
	}
}
