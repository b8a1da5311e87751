package wheel

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/frame"
)

func TestKickAngle(t *testing.T) {
	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{0.25, -4},
		{0.5, -8},
		{0.75, -4},
		{1, 0},
	}
	for _, tt := range tests {
		if got := KickAngle(tt.t, -8); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("KickAngle(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestPointerKick(t *testing.T) {
	clock := frame.NewManualClock(0)
	sched := frame.NewScheduler(clock)
	kick := NewPointerKick(sched, -8, 120*time.Millisecond, false)

	kick.Kick()
	clock.Advance(60 * time.Millisecond)
	sched.Tick()
	if math.Abs(kick.Angle()-(-8)) > 1e-9 {
		t.Errorf("mid-kick angle = %v, want -8", kick.Angle())
	}

	// a new boundary restarts the kick from zero
	kick.Kick()
	clock.Advance(30 * time.Millisecond)
	sched.Tick()
	if math.Abs(kick.Angle()-(-4)) > 1e-9 {
		t.Errorf("restarted kick angle = %v, want -4", kick.Angle())
	}

	clock.Advance(200 * time.Millisecond)
	sched.Tick()
	if kick.Angle() != 0 || kick.Active() {
		t.Errorf("finished kick: angle=%v active=%v", kick.Angle(), kick.Active())
	}
	if sched.Pending() != 0 {
		t.Error("finished kick left a frame callback")
	}
}

func TestPointerKickDisabled(t *testing.T) {
	sched := frame.NewScheduler(frame.NewManualClock(0))
	kick := NewPointerKick(sched, -8, 120*time.Millisecond, true)
	kick.Kick()
	if kick.Active() || sched.Pending() != 0 {
		t.Error("reduced-motion kick should not animate")
	}
}

func TestPrizeReveal(t *testing.T) {
	clock := frame.NewManualClock(0)
	sched := frame.NewScheduler(clock)
	reveal := NewPrizeReveal(sched, config.DefaultWheelConfig().Reveal)

	done := 0
	reveal.Start(300, func() { done++ })

	clock.Advance(300 * time.Millisecond)
	sched.Tick()
	if reveal.TitleScale() <= 1 {
		t.Errorf("title should overshoot mid-pop, scale = %v", reveal.TitleScale())
	}

	clock.Set(750 * time.Millisecond)
	sched.Tick()
	if reveal.Counter() != 281 {
		t.Errorf("counter at half time = %d, want 281", reveal.Counter())
	}
	if reveal.TitleScale() != 1 {
		t.Errorf("title should have settled, scale = %v", reveal.TitleScale())
	}

	clock.Set(1500 * time.Millisecond)
	sched.Tick()
	sched.Tick()
	if reveal.Counter() != 300 || reveal.Active() {
		t.Errorf("finished reveal: counter=%d active=%v", reveal.Counter(), reveal.Active())
	}
	if done != 1 {
		t.Errorf("done fired %d times", done)
	}
}

func TestPrizeRevealStop(t *testing.T) {
	clock := frame.NewManualClock(0)
	sched := frame.NewScheduler(clock)
	reveal := NewPrizeReveal(sched, config.DefaultWheelConfig().Reveal)

	done := 0
	reveal.Start(1000, func() { done++ })
	reveal.Stop()
	clock.Advance(2 * time.Second)
	sched.Tick()
	if done != 0 || reveal.Counter() != 0 || reveal.Active() {
		t.Errorf("stopped reveal: done=%d counter=%d active=%v", done, reveal.Counter(), reveal.Active())
	}
}
