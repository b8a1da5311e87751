package particle

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/frame"
	"github.com/decker502/prizewheel/pkg/utils"
)

func newTestScheduler() (*frame.Scheduler, *frame.ManualClock) {
	clock := frame.NewManualClock(0)
	return frame.NewScheduler(clock), clock
}

func haloConfig() config.EmitterConfig {
	cfg := config.DefaultHaloConfig()
	cfg.Prefill = false
	cfg.TurbulenceAmp = 0
	return cfg
}

func TestNewSimulationRejectsInvalidConfig(t *testing.T) {
	sched, _ := newTestScheduler()
	tests := []struct {
		name   string
		mutate func(c *config.EmitterConfig)
	}{
		{"zero life", func(c *config.EmitterConfig) { c.Life = config.FloatRange{Min: 0, Max: 10} }},
		{"negative life", func(c *config.EmitterConfig) { c.Life = config.FloatRange{Min: -3, Max: -1} }},
		{"zero frame time", func(c *config.EmitterConfig) { c.TargetFrameMs = 0 }},
		{"no palette", func(c *config.EmitterConfig) { c.Palette = nil }},
		{"catch-up above limit", func(c *config.EmitterConfig) { c.MaxCatchUp = 10 }},
		{"zero catch-up", func(c *config.EmitterConfig) { c.MaxCatchUp = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := haloConfig()
			tt.mutate(&cfg)
			_, err := NewSimulation(sched, cfg, config.TierConfigFor(config.TierHigh), utils.NewRand(1), nil)
			if !errors.Is(err, config.ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestZeroCapacityIsNoop(t *testing.T) {
	sched, clock := newTestScheduler()
	rec := &Recorder{}
	sim, err := NewSimulation(sched, haloConfig(), config.TierConfig{MaxParticles: 0, SpawnPerFrame: 3}, utils.NewRand(1), rec)
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.Start(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		clock.Advance(16 * time.Millisecond)
		sched.Tick()
		sim.Advance(16.67)
	}
	if rec.Frames != 0 || len(rec.Commands) != 0 {
		t.Errorf("zero-capacity simulation drew %d frames", rec.Frames)
	}
	if sched.Pending() != 0 {
		t.Error("zero-capacity simulation should not schedule frames")
	}
}

func TestSpawnCount(t *testing.T) {
	tests := []struct {
		name          string
		spawnPerFrame int
		deltaMs       float64
		want          int
	}{
		{"one frame", 3, 16.67, 3},
		{"half frame rounds up", 3, 8.335, 2},
		{"negative delta", 3, -50, 0},
		{"stall is capped", 3, 10_000, 9},
		{"low tier stall", 1, 1_000, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpawnCount(tt.spawnPerFrame, tt.deltaMs, 16.67, 3); got != tt.want {
				t.Errorf("SpawnCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSpawnCountIgnoresLargeCatchUp(t *testing.T) {
	// 卡顿 10 秒、追赶帧数配置为 10，仍然不能超过 ceil(3*3)
	if got := SpawnCount(3, 10_000, 16.67, 10); got != 9 {
		t.Errorf("SpawnCount with maxCatchUp 10 = %d, want 9", got)
	}
}

func TestContinuousSpawnBounded(t *testing.T) {
	sched, _ := newTestScheduler()
	tier := config.TierConfig{MaxParticles: 1000, SpawnPerFrame: 3}
	sim, err := NewSimulation(sched, haloConfig(), tier, utils.NewRand(3), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.Start(); err != nil {
		t.Fatal(err)
	}

	limit := int(math.Ceil(float64(tier.SpawnPerFrame) * 3))
	for _, delta := range []float64{16.67, 1e6, 250, 0, 33, math.MaxFloat32} {
		if got := sim.Advance(delta); got > limit {
			t.Errorf("Advance(%v) spawned %d, limit %d", delta, got, limit)
		}
	}
}

func TestCapacityNeverExceeded(t *testing.T) {
	sched, _ := newTestScheduler()
	tier := config.TierConfigFor(config.TierLow)
	cfg := haloConfig()
	cfg.Life = config.FloatRange{Min: 5000, Max: 6000}

	sim, err := NewSimulation(sched, cfg, tier, utils.NewRand(5), &Recorder{})
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.Start(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 300; i++ {
		sim.Advance(1000)
		if sim.ActiveCount() > tier.MaxParticles {
			t.Fatalf("frame %d: %d active > capacity %d", i, sim.ActiveCount(), tier.MaxParticles)
		}
		p := sim.Pool()
		if p.Len()+p.FreeLen() != p.Capacity() {
			t.Fatalf("frame %d: pool accounting broken", i)
		}
	}
	if sim.ActiveCount() != tier.MaxParticles {
		t.Errorf("long-lived particles should saturate the pool, got %d", sim.ActiveCount())
	}
}

func TestPrefillFillsPool(t *testing.T) {
	sched, _ := newTestScheduler()
	cfg := config.DefaultHaloConfig()
	tier := config.TierConfigFor(config.TierMedium)
	sim, err := NewSimulation(sched, cfg, tier, utils.NewRand(2), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.Start(); err != nil {
		t.Fatal(err)
	}
	if sim.ActiveCount() != tier.MaxParticles {
		t.Errorf("prefill should fill %d slots, got %d", tier.MaxParticles, sim.ActiveCount())
	}
	for i := 0; i < sim.Pool().Len(); i++ {
		p := sim.Pool().At(i)
		if p.Age < 0 || p.Age >= p.MaxAge {
			t.Fatalf("prefilled age %v outside [0, %v)", p.Age, p.MaxAge)
		}
	}
}

// 100 confetti particles, 200 frames at dt=1: the pool drains exactly once
// and nothing respawns.
func TestBurstDrainsOnce(t *testing.T) {
	sched, _ := newTestScheduler()
	cfg := config.DefaultConfettiConfig()
	cfg.Life = config.FloatRange{Min: 36, Max: 60}
	rec := &Recorder{}

	sim, err := NewSimulation(sched, cfg, config.TierConfig{MaxParticles: 100}, utils.NewRand(11), rec)
	if err != nil {
		t.Fatal(err)
	}
	drained := 0
	sim.OnDrained(func() { drained++ })

	if err := sim.Start(); err != nil {
		t.Fatal(err)
	}
	if sim.ActiveCount() != 100 {
		t.Fatalf("burst should start full, got %d", sim.ActiveCount())
	}

	reachedZero := 0
	prev := sim.ActiveCount()
	for frameNo := 0; frameNo < 200; frameNo++ {
		spawned := sim.Advance(cfg.TargetFrameMs)
		if spawned != 0 {
			t.Fatalf("frame %d: burst spawned %d particles", frameNo, spawned)
		}
		n := sim.ActiveCount()
		if n > prev {
			t.Fatalf("frame %d: active count grew %d -> %d", frameNo, prev, n)
		}
		if n == 0 && prev != 0 {
			reachedZero++
			t.Logf("burst drained at frame %d", frameNo)
		}
		prev = n
	}

	if reachedZero != 1 {
		t.Errorf("active count reached 0 %d times, want 1", reachedZero)
	}
	if drained != 1 {
		t.Errorf("OnDrained fired %d times, want 1", drained)
	}
	if sim.Running() {
		t.Error("drained burst should stop its loop")
	}
	if sched.Pending() != 0 {
		t.Errorf("drained burst left %d frame callbacks", sched.Pending())
	}
}

func TestStopCancelsLoopAndClears(t *testing.T) {
	sched, clock := newTestScheduler()
	rec := &Recorder{}
	sim, err := NewSimulation(sched, config.DefaultHaloConfig(), config.TierConfigFor(config.TierHigh), utils.NewRand(4), rec)
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.Start(); err != nil {
		t.Fatal(err)
	}

	clock.Advance(16 * time.Millisecond)
	sched.Tick()
	if rec.Frames != 1 {
		t.Fatalf("expected one frame drawn, got %d", rec.Frames)
	}

	sim.Stop()
	if sim.ActiveCount() != 0 || sim.Pool().FreeLen() != sim.Pool().Capacity() {
		t.Error("Stop should clear both lists")
	}
	if sched.Pending() != 0 {
		t.Error("Stop should cancel the pending frame")
	}

	for i := 0; i < 5; i++ {
		clock.Advance(16 * time.Millisecond)
		sched.Tick()
	}
	if rec.Frames != 1 {
		t.Errorf("stopped simulation kept drawing: %d frames", rec.Frames)
	}
}

func TestAlphaScaleDimsCommands(t *testing.T) {
	sched, _ := newTestScheduler()
	rec := &Recorder{}
	cfg := haloConfig()
	cfg.AlphaScale = 1
	sim, err := NewSimulation(sched, cfg, config.TierConfigFor(config.TierLow), utils.NewRand(8), rec)
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.Start(); err != nil {
		t.Fatal(err)
	}
	sim.SetAlphaScale(0.2)
	for i := 0; i < 20; i++ {
		sim.Advance(16.67)
	}
	if len(rec.Commands) == 0 {
		t.Fatal("expected draw commands")
	}
	for _, cmd := range rec.Commands {
		if cmd.Alpha < 0 || cmd.Alpha > 0.2+1e-9 {
			t.Fatalf("alpha %v exceeds dimmed scale", cmd.Alpha)
		}
	}
}
