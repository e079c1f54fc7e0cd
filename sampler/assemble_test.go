package sampler

import (
	"testing"

	"github.com/CraigKelly/carnet/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestAssembleSymmetric(t *testing.T) {
	assert := assert.New(t)

	// A scrambled but valid index
	edges, err := model.NewEdgeIndex(4, []model.Edge{
		{3, 4}, {2, 1}, {4, 1}, {2, 3}, {1, 3}, {4, 2},
	})
	require.NoError(t, err)

	beta := []float64{0.1, -0.2, 0.3, -0.4, 0.5, -0.6}
	m := mat.NewDense(4, 4, nil)

	// Junk from a previous sweep must not survive
	m.Set(0, 0, 99)
	m.Set(1, 2, 99)

	Assemble(m, edges, beta)

	for d := 0; d < 4; d++ {
		assert.Equal(0.0, m.At(d, d))
	}
	for k := 1; k <= edges.Num(); k++ {
		i, j, err := edges.ToCoord(k)
		require.NoError(t, err)
		assert.Equal(beta[k-1], m.At(i-1, j-1))
		assert.Equal(m.At(i-1, j-1), m.At(j-1, i-1))
	}
}

func TestAssembleSingleEdge(t *testing.T) {
	assert := assert.New(t)

	edges, err := model.FullEdgeIndex(2)
	require.NoError(t, err)

	m := mat.NewDense(2, 2, nil)
	Assemble(m, edges, []float64{0.7})

	assert.Equal([]float64{0, 0.7, 0.7, 0}, m.RawMatrix().Data)

	sym := EffectMatrix(edges, []float64{0.7})
	assert.Equal(0.7, sym.At(1, 0))
	assert.Equal(0.0, sym.At(1, 1))
}
