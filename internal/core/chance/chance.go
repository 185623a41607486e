// Package chance provides the random source threaded through every probabilistic
// stage of the reply pipeline so tests can pin exact draws
package chance

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// Source yields uniform draws in [0,1)
type Source interface {
	Float64() float64
}

// seeded wraps a PCG generator behind a mutex so one Source can serve concurrent requests
type seeded struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a deterministic Source for the given seed
func New(seed uint64) Source {
	return &seeded{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Crypto returns a Source seeded from the OS entropy pool
func Crypto() Source {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return New(0x5eed)
	}
	return New(binary.LittleEndian.Uint64(b[:]))
}

func (s *seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// Seq replays a fixed list of draws then returns Fallback forever
// it is meant for tests that assert on the exact transform that fired
type Seq struct {
	Vals     []float64
	Fallback float64
	i        int
}

// Sequence builds a Seq with a fallback of 1 so unlisted gates never fire
func Sequence(vals ...float64) *Seq { return &Seq{Vals: vals, Fallback: 1} }

// At builds a Seq of length n filled with fallback 1 and the given index overrides
func At(n int, overrides map[int]float64) *Seq {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = 1
	}
	for i, v := range overrides {
		if i >= 0 && i < n {
			vals[i] = v
		}
	}
	return &Seq{Vals: vals, Fallback: 1}
}

// Float64 returns the next scripted draw
func (s *Seq) Float64() float64 {
	if s.i < len(s.Vals) {
		v := s.Vals[s.i]
		s.i++
		return v
	}
	s.i++
	return s.Fallback
}

// Drawn reports how many draws were consumed
func (s *Seq) Drawn() int { return s.i }

// Const always returns the same draw
type Const float64

// Float64 implements Source
func (c Const) Float64() float64 { return float64(c) }

// Jitter scales v by a uniform factor in [1-spread, 1+spread]
func Jitter(src Source, v, spread float64) float64 {
	return v * (1 + (src.Float64()*2-1)*spread)
}
