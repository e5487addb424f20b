// Package rng provides the seedable random source shared by the content generators.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source is the randomness the generators depend on.
type Source interface {
	// Intn returns a value in [0, n). It panics if n <= 0.
	Intn(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// PCG is a deterministic Source backed by math/rand/v2.
type PCG struct {
	r    *rand.Rand
	seed uint64
}

// New returns a Source that yields the same sequence for the same seed.
func New(seed uint64) *PCG {
	return &PCG{
		r:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// NewEntropy returns a Source seeded from crypto/rand.
func NewEntropy() *PCG {
	return New(EntropySeed())
}

// EntropySeed reads a seed from crypto/rand, falling back to the
// runtime's own random source if the OS pool is unavailable.
func EntropySeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.Uint64()
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Seed reports the seed the source was created with.
func (p *PCG) Seed() uint64 {
	return p.seed
}

func (p *PCG) Intn(n int) int {
	return p.r.IntN(n)
}

func (p *PCG) Float64() float64 {
	return p.r.Float64()
}

// Pick returns a uniformly random element of items. It returns the zero
// value for an empty slice.
func Pick[T any](src Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[src.Intn(len(items))]
}

// Shuffle permutes n indices with a Fisher-Yates pass and returns them.
func Shuffle(src Source, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}
