package rand

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMTBadSeed(t *testing.T) {
	assert := assert.New(t)

	gen, err := NewGeneratorSlice([]uint64{})
	assert.Nil(gen)
	assert.Error(err)
}

func TestMTCanonicalSeed(t *testing.T) {
	assert := assert.New(t)

	gen, err := NewGeneratorSlice([]uint64{0x12345, 0x23456, 0x34567, 0x45678})
	assert.NotNil(gen)
	assert.NoError(err)

	origTestSeq := []uint64{
		7266447313870364031,
		4946485549665804864,
		16945909448695747420,
		16394063075524226720,
		4873882236456199058,
	}

	// Now convert to the format we should get from Int63
	for _, v := range origTestSeq {
		exp := int64(v & 0x7fffffffffffffff)
		act := gen.Int63()
		assert.Equal(exp, act)
	}
	assert.Equal(uint64(len(origTestSeq)), gen.Draws())
}

func TestSkipResumesStream(t *testing.T) {
	assert := assert.New(t)

	gen, err := NewGeneratorSlice([]uint64{42, 3})
	assert.NoError(err)
	for i := 0; i < 1000; i++ {
		gen.Float64()
	}

	cp, err := NewGeneratorSlice(gen.Key())
	assert.NoError(err)
	cp.Skip(gen.Draws())
	assert.Equal(gen.Draws(), cp.Draws())

	for i := 0; i < 100; i++ {
		assert.Equal(gen.Uint64(), cp.Uint64())
	}
}

func TestChainKeysDiffer(t *testing.T) {
	assert := assert.New(t)

	g1, err := NewGeneratorSlice([]uint64{7, 0})
	assert.NoError(err)
	g2, err := NewGeneratorSlice([]uint64{7, 1})
	assert.NoError(err)

	same := 0
	for i := 0; i < 64; i++ {
		if g1.Uint64() == g2.Uint64() {
			same++
		}
	}
	assert.Equal(0, same)
}

func TestFloat64Range(t *testing.T) {
	assert := assert.New(t)

	gen, err := NewGenerator(1)
	assert.NoError(err)

	sum := 0.0
	const count = 20000
	for i := 0; i < count; i++ {
		f := gen.OpenFloat64()
		assert.True(f > 0 && f < 1)
		sum += f
	}
	assert.InDelta(0.5, sum/count, 0.02)
	assert.False(math.IsNaN(sum))
}

func BenchmarkFloat64(b *testing.B) {
	gen, err := NewGenerator(42)
	if err != nil {
		b.Fatalf("Could not init PRNG %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.Float64()
	}
}
