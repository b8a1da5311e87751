package render

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/prizewheel/pkg/config"
)

func TestMeshSector(t *testing.T) {
	l := DefaultLayout()
	shade := ShadeFor(colorful.Color{R: 0.8, G: 0.1, B: 0.1})

	var m Mesh
	m.AppendSector(l, 0, 30, shade, 4)
	// 5 列 × 3 环；4 段 × 2 环带 × 2 三角形
	if len(m.Vertices) != 15 {
		t.Errorf("vertices = %d, want 15", len(m.Vertices))
	}
	if len(m.Indices) != 4*2*6 {
		t.Errorf("indices = %d, want 48", len(m.Indices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
	if m.Vertices[0].ColorR <= m.Vertices[2].ColorR {
		t.Error("inner ring should be lighter than outer ring")
	}

	m.Reset()
	if len(m.Vertices) != 0 || len(m.Indices) != 0 {
		t.Error("Reset should empty the mesh")
	}
	m.AppendSector(l, 0, 30, shade, 0)
	if len(m.Indices) != 12 {
		t.Errorf("segments < 1 should clamp to 1, got %d indices", len(m.Indices))
	}
}

func TestMeshPointerKick(t *testing.T) {
	l := DefaultLayout()
	var rest, kicked Mesh
	rest.AppendPointer(l, 0, 34, 46, goldLight)
	kicked.AppendPointer(l, -8, 34, 46, goldLight)

	tip := rest.Vertices[2]
	if !near(float64(tip.DstX), l.CenterX) {
		t.Errorf("resting tip x = %v, want %v", tip.DstX, l.CenterX)
	}
	if kicked.Vertices[2].DstX <= tip.DstX {
		t.Errorf("negative kick should swing the tip right: %v vs %v", kicked.Vertices[2].DstX, tip.DstX)
	}
}

func TestWheelRendererMesh(t *testing.T) {
	cfg := config.DefaultWheelConfig()
	r, err := NewWheelRenderer(cfg, DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	r.SetRotation(123)
	if r.Rotation() != 123 {
		t.Errorf("Rotation = %v", r.Rotation())
	}
	m := r.BuildMesh()
	wantV := cfg.SectorCount()*(arcSegments+1)*3 + 3
	if len(m.Vertices) != wantV {
		t.Errorf("vertices = %d, want %d", len(m.Vertices), wantV)
	}
	if len(m.Vertices) > 1<<16 {
		t.Error("mesh exceeds uint16 index range")
	}

	empty := config.DefaultWheelConfig()
	empty.Sectors = nil
	if _, err := NewWheelRenderer(empty, DefaultLayout()); err == nil {
		t.Error("expected error for empty sector table")
	}
}
