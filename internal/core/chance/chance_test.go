package chance

import (
	"math"
	"sync"
	"testing"
)

func TestNew_Deterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 32; i++ {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d out of range: %v", i, x)
		}
	}
}

func TestCrypto_InRange(t *testing.T) {
	s := Crypto()
	for i := 0; i < 100; i++ {
		if v := s.Float64(); v < 0 || v >= 1 {
			t.Fatalf("out of range: %v", v)
		}
	}
}

func TestSeq_ReplaysThenFallback(t *testing.T) {
	s := Sequence(0.1, 0.2)
	if v := s.Float64(); v != 0.1 {
		t.Fatalf("first = %v", v)
	}
	if v := s.Float64(); v != 0.2 {
		t.Fatalf("second = %v", v)
	}
	if v := s.Float64(); v != 1 {
		t.Fatalf("fallback = %v", v)
	}
	if s.Drawn() != 3 {
		t.Fatalf("drawn = %d", s.Drawn())
	}
}

func TestAt_Overrides(t *testing.T) {
	s := At(4, map[int]float64{2: 0, 9: 0})
	got := []float64{s.Float64(), s.Float64(), s.Float64(), s.Float64()}
	want := []float64{1, 1, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("idx %d = %v want %v", i, got[i], want[i])
		}
	}
}

func TestJitter_Bounds(t *testing.T) {
	cases := []struct {
		draw float64
		want float64
	}{{0, 800}, {0.5, 1000}, {1, 1200}}
	for _, c := range cases {
		if v := Jitter(Const(c.draw), 1000, 0.2); math.Abs(v-c.want) > 1e-6 {
			t.Fatalf("draw %v = %v want %v", c.draw, v, c.want)
		}
	}
}

func TestSeeded_ConcurrentUse(t *testing.T) {
	s := New(7)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = s.Float64()
			}
		}()
	}
	wg.Wait()
}
