package rand

import (
	"github.com/pkg/errors"
	"github.com/seehuhn/mt19937"
)

// A Generator is a seedable Mersenne twister stream. Every draw is counted so
// that a stream can be rebuilt at an exact position (see Skip). A Generator is
// NOT safe for concurrent use: give each chain its own.
//
// Generator satisfies the math/rand/v2 Source interface, so it can be handed
// directly to gonum's distuv distributions as their Src.
type Generator struct {
	mt    *mt19937.MT19937
	key   []uint64
	draws uint64
}

// NewGenerator creates a new PRNG based on the given seed
func NewGenerator(seed int64) (*Generator, error) {
	return NewGeneratorSlice([]uint64{uint64(seed)})
}

// NewGeneratorSlice creates a new PRNG seeded with the given key using the
// MT19937-64 init_by_array procedure. Keys that differ only in a trailing
// element (e.g. a chain index) give independent streams.
func NewGeneratorSlice(key []uint64) (*Generator, error) {
	if len(key) < 1 {
		return nil, errors.New("Generator seed key must have at least one element")
	}

	r := mt19937.New()
	r.SeedFromSlice(key)

	g := &Generator{
		mt:  r,
		key: append([]uint64(nil), key...),
	}

	return g, nil
}

// Key returns a copy of the seed key used to create the generator
func (g *Generator) Key() []uint64 {
	return append([]uint64(nil), g.key...)
}

// Draws is the number of 64-bit values taken from the stream so far
func (g *Generator) Draws() uint64 {
	return g.draws
}

// Skip discards n values. A generator rebuilt from Key() and advanced with
// Skip(Draws()) continues exactly where the original left off.
func (g *Generator) Skip(n uint64) {
	for i := uint64(0); i < n; i++ {
		g.Uint64()
	}
}

// Uint64 returns the next raw 64-bit value (math/rand/v2 Source interface)
func (g *Generator) Uint64() uint64 {
	g.draws++
	return g.mt.Uint64()
}

// Int63 provides the same interface as Go's math/rand
func (g *Generator) Int63() int64 {
	return int64(g.Uint64() & 0x7fffffffffffffff)
}

// Int63n is a copy of the current Go code
func (g *Generator) Int63n(n int64) int64 {
	if n <= 0 {
		panic("invalid argument to Int63n")
	}

	if n&(n-1) == 0 { // n is power of two, can mask
		return g.Int63() & (n - 1)
	}

	max := int64((1 << 63) - 1 - (1<<63)%uint64(n))
	v := g.Int63()
	for v > max {
		v = g.Int63()
	}

	return v % n
}

// Float64 uses the commented, simpler implmentation since we don't have the
// same support requirements for users. Result is in [0, 1).
func (g *Generator) Float64() float64 {
	// See the Go lang comments for Rand Float64 implementation for details
	return float64(g.Int63n(1<<53)) / (1 << 53)
}

// OpenFloat64 returns a value in the open interval (0, 1), which is what we
// want before taking a log.
func (g *Generator) OpenFloat64() float64 {
	for {
		f := g.Float64()
		if f > 0 {
			return f
		}
	}
}
