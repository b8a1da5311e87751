package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// sectorBaseStop 渐变中间色所在的径向位置（0 = 内圈，1 = 外圈）
const sectorBaseStop = 0.55

// Mesh 顶点着色的三角形网格，交给 DrawTriangles 绘制
type Mesh struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// Reset 清空网格，保留底层数组
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

func (m *Mesh) vertex(x, y float64, c colorful.Color, alpha float64) uint16 {
	r, g, b := c.Clamped().R, c.Clamped().G, c.Clamped().B
	a := float32(alpha)
	m.Vertices = append(m.Vertices, ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(r) * a,
		ColorG: float32(g) * a,
		ColorB: float32(b) * a,
		ColorA: a,
	})
	return uint16(len(m.Vertices) - 1)
}

// AppendSector 追加一个环形扇区：内圈到外圈三档渐变，弧线按 segments 细分
func (m *Mesh) AppendSector(l Layout, start, end float64, shade SectorShade, segments int) {
	if segments < 1 {
		segments = 1
	}
	radii := [3]float64{
		l.InnerRadius,
		l.InnerRadius + (l.OuterRadius-l.InnerRadius)*sectorBaseStop,
		l.OuterRadius,
	}
	colors := [3]colorful.Color{shade.Inner, shade.Base, shade.Outer}

	first := uint16(len(m.Vertices))
	for s := 0; s <= segments; s++ {
		deg := start + (end-start)*float64(s)/float64(segments)
		for ring := range radii {
			x, y := l.Polar(deg, radii[ring])
			m.vertex(x, y, colors[ring], 1)
		}
	}
	// 每列 3 个顶点，相邻两列之间两个环带
	for s := 0; s < segments; s++ {
		col := first + uint16(s*3)
		next := col + 3
		for band := uint16(0); band < 2; band++ {
			a, b := col+band, col+band+1
			c, d := next+band, next+band+1
			m.Indices = append(m.Indices, a, c, b, b, c, d)
		}
	}
}

// AppendPointer 追加指针三角形：尖端朝下指向转盘，绕顶部支点偏转 angle 度
func (m *Mesh) AppendPointer(l Layout, angle, width, length float64, c colorful.Color) {
	pivotX, pivotY := l.CenterX, l.CenterY-l.OuterRadius-length*0.35
	rad := angle * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	rotate := func(dx, dy float64) (float64, float64) {
		return pivotX + dx*cos - dy*sin, pivotY + dx*sin + dy*cos
	}

	tipX, tipY := rotate(0, length)
	lx, ly := rotate(-width/2, 0)
	rx, ry := rotate(width/2, 0)
	a := m.vertex(lx, ly, Lighten(c, 25), 1)
	b := m.vertex(rx, ry, c, 1)
	t := m.vertex(tipX, tipY, Darken(c, 20), 1)
	m.Indices = append(m.Indices, a, b, t)
}
