package frame

import (
	"errors"
	"testing"
	"time"
)

// TestSchedulerRunsNextTick verifies callbacks run once, on the following tick.
func TestSchedulerRunsNextTick(t *testing.T) {
	clock := NewManualClock(0)
	s := NewScheduler(clock)

	calls := 0
	var seen time.Duration
	if _, err := s.RequestFrame(func(now time.Duration) {
		calls++
		seen = now
	}); err != nil {
		t.Fatalf("RequestFrame: %v", err)
	}

	clock.Advance(16 * time.Millisecond)
	s.Tick()
	s.Tick()

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if seen != 16*time.Millisecond {
		t.Errorf("callback saw %v, want 16ms", seen)
	}
}

// TestSchedulerDefersRequestsMadeDuringTick verifies rAF semantics for self-rescheduling.
func TestSchedulerDefersRequestsMadeDuringTick(t *testing.T) {
	s := NewScheduler(NewManualClock(0))

	runs := 0
	var step Callback
	step = func(time.Duration) {
		runs++
		if runs < 3 {
			s.RequestFrame(step)
		}
	}
	s.RequestFrame(step)

	for i := 1; i <= 5; i++ {
		s.Tick()
		want := i
		if want > 3 {
			want = 3
		}
		if runs != want {
			t.Fatalf("after tick %d: runs = %d, want %d", i, runs, want)
		}
	}
	if s.Pending() != 0 {
		t.Errorf("expected no pending callbacks, got %d", s.Pending())
	}
}

// TestSchedulerCancelWithinBatch verifies a callback cancelled earlier in the same tick is skipped.
func TestSchedulerCancelWithinBatch(t *testing.T) {
	s := NewScheduler(NewManualClock(0))

	secondRan := false
	var second Handle
	s.RequestFrame(func(time.Duration) { s.CancelFrame(second) })
	second, _ = s.RequestFrame(func(time.Duration) { secondRan = true })

	s.Tick()
	if secondRan {
		t.Error("cancelled callback must not run")
	}
}

// TestSchedulerClose verifies requests fail after Close.
func TestSchedulerClose(t *testing.T) {
	s := NewScheduler(NewManualClock(0))
	ran := false
	s.RequestFrame(func(time.Duration) { ran = true })
	s.Close()
	s.Tick()
	if ran {
		t.Error("callbacks pending at Close must be dropped")
	}
	if _, err := s.RequestFrame(func(time.Duration) {}); !errors.Is(err, ErrSchedulerClosed) {
		t.Errorf("expected ErrSchedulerClosed, got %v", err)
	}
}

// TestTaskCancelStopsChain verifies Cancel drops the pending step synchronously.
func TestTaskCancelStopsChain(t *testing.T) {
	s := NewScheduler(NewManualClock(0))
	task := NewTask(s)

	runs := 0
	var step Callback
	step = func(time.Duration) {
		runs++
		task.Schedule(step)
	}
	if err := task.Schedule(step); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	s.Tick()
	s.Tick()
	task.Cancel()
	s.Tick()
	s.Tick()

	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
	if task.Active() {
		t.Error("task must be inactive after Cancel")
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}
}

// TestTaskScheduleReplacesPending verifies at most one step per task is queued.
func TestTaskScheduleReplacesPending(t *testing.T) {
	s := NewScheduler(NewManualClock(0))
	task := NewTask(s)

	var order []string
	task.Schedule(func(time.Duration) { order = append(order, "first") })
	task.Schedule(func(time.Duration) { order = append(order, "second"); task.Finish() })

	s.Tick()
	if len(order) != 1 || order[0] != "second" {
		t.Errorf("order = %v, want [second]", order)
	}
	if task.Active() {
		t.Error("task must be idle after Finish")
	}
}

// TestTaskWithoutFrames verifies a nil requester degrades to an error, not a panic.
func TestTaskWithoutFrames(t *testing.T) {
	task := NewTask(nil)
	if err := task.Schedule(func(time.Duration) {}); err == nil {
		t.Error("expected error without a frame requester")
	}
	if task.Active() {
		t.Error("task must stay inactive")
	}
}
