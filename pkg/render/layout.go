package render

import "math"

// Layout 转盘几何（逻辑像素）
//
// 角度约定：0° 指向正上方（指针位置），顺时针为正。
type Layout struct {
	Size        float64
	CenterX     float64
	CenterY     float64
	OuterRadius float64
	InnerRadius float64
	LabelRadius float64
	ButtonSize  float64 // 中心按钮画布边长，光环粒子坐标以此为参照
}

// DefaultLayout 733×733 的转盘，与粒子配置中的坐标一致
func DefaultLayout() Layout {
	const size = 733
	return Layout{
		Size:        size,
		CenterX:     size / 2,
		CenterY:     size / 2,
		OuterRadius: 350,
		InnerRadius: 155,
		LabelRadius: 260,
		ButtonSize:  356,
	}
}

// Polar 从中心出发，沿 deg 方向 r 距离处的坐标
func (l Layout) Polar(deg, r float64) (x, y float64) {
	rad := (deg - 90) * math.Pi / 180
	return l.CenterX + r*math.Cos(rad), l.CenterY + r*math.Sin(rad)
}

// SectorSpan 扇区 i 在给定转盘角度下的起止角度
func (l Layout) SectorSpan(i, n int, rotation float64) (start, end float64) {
	step := 360 / float64(n)
	start = float64(i)*step + rotation
	return start, start + step
}

// LabelPosition 扇区奖金文字的位置
func (l Layout) LabelPosition(i, n int, rotation float64) (x, y float64) {
	start, end := l.SectorSpan(i, n, rotation)
	return l.Polar((start+end)/2, l.LabelRadius)
}

// HaloOffset 光环画布左上角在转盘坐标中的位置
func (l Layout) HaloOffset() (x, y float64) {
	return l.CenterX - l.ButtonSize/2, l.CenterY - l.ButtonSize/2
}

// InButton 判断点是否落在中心按钮内
func (l Layout) InButton(x, y float64) bool {
	dx, dy := x-l.CenterX, y-l.CenterY
	return dx*dx+dy*dy <= l.InnerRadius*l.InnerRadius
}
