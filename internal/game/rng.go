package game

import (
	mathrand "math/rand"
	"sync"
)

// Rand is the single randomness source for the engine. Every chance roll and
// shuffle goes through it so callers can seed it and tests can substitute a
// scripted sequence.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

type lockedRand struct {
	mu  sync.Mutex
	src *mathrand.Rand
}

// NewRand returns a Rand safe for concurrent use.
func NewRand(seed int64) Rand {
	return &lockedRand{src: mathrand.New(mathrand.NewSource(seed))}
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}
