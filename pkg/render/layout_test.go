package render

import (
	"math"
	"testing"

	"github.com/decker502/prizewheel/pkg/wheel"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestLayoutPolar(t *testing.T) {
	l := DefaultLayout()
	tests := []struct {
		name   string
		deg    float64
		wantDX float64
		wantDY float64
	}{
		{"top", 0, 0, -100},
		{"right", 90, 100, 0},
		{"bottom", 180, 0, 100},
		{"left", -90, -100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := l.Polar(tt.deg, 100)
			if !near(x-l.CenterX, tt.wantDX) || math.Abs(y-l.CenterY-tt.wantDY) > 1e-9 {
				t.Errorf("Polar(%v) = (%.3f, %.3f) relative, want (%v, %v)",
					tt.deg, x-l.CenterX, y-l.CenterY, tt.wantDX, tt.wantDY)
			}
		})
	}
}

// TestSectorUnderPointerIsDrawnAtTop 绘制几何与旋转数学一致：指针下的扇区跨越 0°
func TestSectorUnderPointerIsDrawnAtTop(t *testing.T) {
	l := DefaultLayout()
	const n = 31
	for winner := 0; winner < n; winner++ {
		plan, err := wheel.ComputeSpinPlan(winner, n, 42, 5)
		if err != nil {
			t.Fatal(err)
		}
		start, end := l.SectorSpan(winner, n, plan.TargetRotation)
		mid := wheel.NormalizeDegrees((start + end) / 2)
		if mid > 180 {
			mid -= 360
		}
		if math.Abs(mid) > 1e-6 {
			t.Errorf("winner %d: sector mid at %.6f°, want 0", winner, mid)
		}
	}
}

func TestLayoutHaloAndButton(t *testing.T) {
	l := DefaultLayout()
	x, y := l.HaloOffset()
	if !near(x+l.ButtonSize/2, l.CenterX) || !near(y+l.ButtonSize/2, l.CenterY) {
		t.Errorf("halo canvas (%v, %v) is not centered on the wheel", x, y)
	}
	if !l.InButton(l.CenterX+10, l.CenterY-10) {
		t.Error("point near center should hit the button")
	}
	if l.InButton(l.CenterX+l.OuterRadius, l.CenterY) {
		t.Error("point on the rim should not hit the button")
	}
}

func TestLabelPosition(t *testing.T) {
	l := DefaultLayout()
	x, y := l.LabelPosition(0, 31, wheel.InitialRotation(31))
	if !near(x, l.CenterX) || !near(y, l.CenterY-l.LabelRadius) {
		t.Errorf("jackpot label at (%.3f, %.3f), want straight above center", x, y)
	}
}
