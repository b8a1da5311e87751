package particle

import "testing"

// checkInvariant verifies Len()+FreeLen()==Capacity() and that no particle
// is both active and free.
func checkInvariant(t *testing.T, p *Pool) {
	t.Helper()
	if p.Len()+p.FreeLen() != p.Capacity() {
		t.Fatalf("Len %d + FreeLen %d != Capacity %d", p.Len(), p.FreeLen(), p.Capacity())
	}
	seen := make(map[*Particle]bool)
	for _, pt := range p.active {
		seen[pt] = true
	}
	for _, pt := range p.free {
		if seen[pt] {
			t.Fatalf("particle %p is both active and free", pt)
		}
	}
}

func TestPoolAcquireUpToCapacity(t *testing.T) {
	p := NewPool(3)
	checkInvariant(t, p)

	for i := 0; i < 3; i++ {
		if _, ok := p.Acquire(); !ok {
			t.Fatalf("Acquire %d failed below capacity", i)
		}
		checkInvariant(t, p)
	}
	if _, ok := p.Acquire(); ok {
		t.Error("Acquire should fail when the pool is full")
	}
	if !p.Full() {
		t.Error("pool should report Full")
	}
}

func TestPoolReleaseReusesSlots(t *testing.T) {
	p := NewPool(2)
	a, _ := p.Acquire()
	b, _ := p.Acquire()

	p.ReleaseAt(0) // a; b moves to index 0
	checkInvariant(t, p)
	if p.At(0) != b {
		t.Error("last active particle should fill the released index")
	}

	c, ok := p.Acquire()
	if !ok {
		t.Fatal("Acquire after release failed")
	}
	if c != a {
		t.Error("Acquire should pop the most recently released slot")
	}
	checkInvariant(t, p)
}

func TestPoolClear(t *testing.T) {
	p := NewPool(4)
	for i := 0; i < 3; i++ {
		p.Acquire()
	}
	p.ReleaseAt(1)
	p.Clear()

	if p.Len() != 0 || p.FreeLen() != 4 {
		t.Errorf("after Clear: Len=%d FreeLen=%d", p.Len(), p.FreeLen())
	}
	checkInvariant(t, p)
}

func TestPoolZeroAndNegativeCapacity(t *testing.T) {
	for _, capacity := range []int{0, -5} {
		p := NewPool(capacity)
		if p.Capacity() != 0 {
			t.Errorf("NewPool(%d).Capacity() = %d, want 0", capacity, p.Capacity())
		}
		if _, ok := p.Acquire(); ok {
			t.Errorf("NewPool(%d) should never hand out particles", capacity)
		}
	}
}
