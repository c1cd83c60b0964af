package random

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"
)

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// SeededRandom implements Random with a PCG generator, so a seed reproduces
// the same ship layouts. Not safe for concurrent use; give each worker its own.
type SeededRandom struct {
	seed uint64
	rng  *mathrand.Rand
}

// New creates a SeededRandom with a seed drawn from crypto/rand
func New() *SeededRandom {
	return NewSeeded(CryptoSeed())
}

// NewSeeded creates a SeededRandom from the given seed
func NewSeeded(seed uint64) *SeededRandom {
	return &SeededRandom{
		seed: seed,
		rng:  mathrand.New(mathrand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed the generator was created with
func (r *SeededRandom) Seed() uint64 {
	return r.seed
}

// Intn returns a random int in [0, n)
func (r *SeededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.IntN(n)
}

// CryptoSeed returns a seed from crypto/rand
func CryptoSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand.Read does not fail on supported platforms
		panic(err)
	}
	return binary.LittleEndian.Uint64(b[:])
}
