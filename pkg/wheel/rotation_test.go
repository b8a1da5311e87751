package wheel

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/utils"
)

// angleDiff returns the circular distance between two angles in degrees.
func angleDiff(a, b float64) float64 {
	d := NormalizeDegrees(a - b)
	return math.Min(d, 360-d)
}

func TestComputeSpinPlanLandsOnWinner(t *testing.T) {
	currents := []float64{0, -5.8, 12.25, 359.999, 1e5 + 0.3, -7200.5}
	for _, sectors := range []int{1, 2, 7, 31, 360} {
		for winner := 0; winner < sectors; winner += 1 + sectors/8 {
			for _, current := range currents {
				for spins := 0; spins <= 7; spins++ {
					plan, err := ComputeSpinPlan(winner, sectors, current, spins)
					if err != nil {
						t.Fatalf("ComputeSpinPlan(%d, %d, %v, %d): %v", winner, sectors, current, spins, err)
					}
					want := -(float64(winner)*360/float64(sectors) + 180/float64(sectors))
					if d := angleDiff(plan.TargetRotation, want); d > 1e-6 {
						t.Fatalf("sectors=%d winner=%d current=%v: target %v off by %v°", sectors, winner, current, plan.TargetRotation, d)
					}
					delta := plan.TargetRotation - current
					lo, hi := float64(spins)*360, float64(spins+1)*360
					if delta < lo-1e-6 || delta >= hi {
						t.Fatalf("delta %v outside [%v, %v)", delta, lo, hi)
					}
					if plan.FullSpins != spins {
						t.Fatalf("FullSpins = %d, want %d", plan.FullSpins, spins)
					}
				}
			}
		}
	}
}

func TestComputeSpinPlanErrors(t *testing.T) {
	tests := []struct {
		name    string
		winner  int
		sectors int
		spins   int
		want    error
	}{
		{"zero sectors", 0, 0, 5, config.ErrInvalidConfiguration},
		{"negative sectors", 0, -3, 5, config.ErrInvalidConfiguration},
		{"negative spins", 0, 31, -1, config.ErrInvalidConfiguration},
		{"winner too large", 31, 31, 5, ErrWinnerOutOfRange},
		{"negative winner", -1, 31, 5, ErrWinnerOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeSpinPlan(tt.winner, tt.sectors, 0, tt.spins)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPlannerFullSpinsInRange(t *testing.T) {
	spins := config.IntRange{Min: 5, Max: 7}
	planner, err := NewPlanner(31, spins, utils.NewRand(42))
	if err != nil {
		t.Fatal(err)
	}
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		plan, err := planner.Plan(i%31, float64(i)*13.7)
		if err != nil {
			t.Fatal(err)
		}
		if plan.FullSpins < spins.Min || plan.FullSpins > spins.Max {
			t.Fatalf("FullSpins %d outside [%d, %d]", plan.FullSpins, spins.Min, spins.Max)
		}
		seen[plan.FullSpins] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all of 5..7 to be drawn, saw %v", seen)
	}
}

func TestNewPlannerRejectsBadInput(t *testing.T) {
	if _, err := NewPlanner(0, config.IntRange{Min: 1, Max: 2}, utils.NewRand(1)); !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Errorf("zero sectors: %v", err)
	}
	if _, err := NewPlanner(31, config.IntRange{Min: 4, Max: 2}, utils.NewRand(1)); !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Errorf("inverted range: %v", err)
	}
	if _, err := NewPlanner(31, config.IntRange{Min: 1, Max: 2}, nil); !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Errorf("nil rand: %v", err)
	}
}

// 31 sectors, winner 0, starting from -5.8°.
func TestSpinPlanSector0From31(t *testing.T) {
	spins := config.IntRange{Min: 5, Max: 7}
	planner, err := NewPlanner(31, spins, utils.NewRand(3))
	if err != nil {
		t.Fatal(err)
	}
	plan, err := planner.Plan(0, -5.8)
	if err != nil {
		t.Fatal(err)
	}

	sectorCenter := NormalizeDegrees(-180.0 / 31)
	t.Logf("target=%.6f fullSpins=%d", plan.TargetRotation, plan.FullSpins)
	if d := angleDiff(plan.TargetRotation, sectorCenter); d > 1e-6 {
		t.Errorf("target %v is %v° away from sector 0 center %v", plan.TargetRotation, d, sectorCenter)
	}
	if plan.FullSpins < 5 || plan.FullSpins > 7 {
		t.Errorf("FullSpins %d outside [5, 7]", plan.FullSpins)
	}
}

// Each spin starts where the previous one ended: the winding never decreases.
func TestSequentialSpinsWindForward(t *testing.T) {
	planner, err := NewPlanner(31, config.IntRange{Min: 1, Max: 7}, utils.NewRand(9))
	if err != nil {
		t.Fatal(err)
	}
	current := InitialRotation(31)
	for i, winner := range []int{0, 0, 30, 15, 1, 1, 29} {
		plan, err := planner.Plan(winner, current)
		if err != nil {
			t.Fatal(err)
		}
		if plan.TargetRotation <= current {
			t.Fatalf("spin %d: rotation did not advance %v -> %v", i, current, plan.TargetRotation)
		}
		current = plan.TargetRotation
	}
}

func TestInitialRotation(t *testing.T) {
	if got := InitialRotation(31); math.Abs(got-(-360.0/31/2)) > 1e-12 {
		t.Errorf("InitialRotation(31) = %v", got)
	}
	if InitialRotation(0) != 0 {
		t.Error("InitialRotation(0) should be 0")
	}
}

func TestTickState(t *testing.T) {
	step := 360.0 / 31
	s := NewTickState(InitialRotation(31), step)
	if s.Tick != -1 {
		t.Errorf("initial tick = %d, want -1", s.Tick)
	}

	s, crossed := s.Advance(InitialRotation(31) + step/4)
	if crossed != 0 {
		t.Errorf("no boundary passed, got %d crossings", crossed)
	}
	s, crossed = s.Advance(step*2 + 0.1)
	if crossed != 3 || s.Tick != 2 {
		t.Errorf("crossed=%d tick=%d, want 3 and 2", crossed, s.Tick)
	}

	live := 1234.5
	if got := NewTickState(live, step).Tick; got != int(math.Floor(live/step)) {
		t.Errorf("reseeded tick = %d, want %d", got, int(math.Floor(live/step)))
	}
}

func TestSectorAtPointer(t *testing.T) {
	const sectors = 31
	if got := SectorAtPointer(InitialRotation(sectors), sectors); got != 0 {
		t.Errorf("initial rotation shows sector %d, want 0", got)
	}
	for winner := 0; winner < sectors; winner++ {
		plan, err := ComputeSpinPlan(winner, sectors, 123.4, 5)
		if err != nil {
			t.Fatal(err)
		}
		if got := SectorAtPointer(plan.TargetRotation, sectors); got != winner {
			t.Errorf("winner %d: pointer shows sector %d at %.3f°", winner, got, plan.TargetRotation)
		}
	}
	if got := SectorAtPointer(10, 0); got != -1 {
		t.Errorf("empty wheel: got %d, want -1", got)
	}
}
