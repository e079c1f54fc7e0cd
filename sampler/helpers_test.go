package sampler

import (
	"testing"

	"github.com/CraigKelly/carnet/model"
	"github.com/CraigKelly/carnet/rand"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// sparseProblem is p=4 with true effects on (1,2) and (3,4), both flagged in
// the prior, and every other edge zero and unflagged.
func sparseProblem(t testing.TB, n int, seed int64) (*mat.Dense, *model.EdgeIndex, []int) {
	edges, err := model.FullEdgeIndex(4)
	require.NoError(t, err)

	// (1,2) (1,3) (1,4) (2,3) (2,4) (3,4)
	beta := []float64{0.5, 0, 0, 0, 0, 0.5}
	prior := []int{1, 0, 0, 0, 0, 1}

	gen, err := rand.NewGenerator(seed)
	require.NoError(t, err)

	raw, err := SimulateCAR(gen, EffectMatrix(edges, beta), n, 1.0)
	require.NoError(t, err)

	data, err := model.Standardize(raw)
	require.NoError(t, err)

	return data, edges, prior
}

// noiseData is standardized independent normal data
func noiseData(t testing.TB, n, p int, seed int64) *mat.Dense {
	gen, err := rand.NewGenerator(seed)
	require.NoError(t, err)

	raw, err := SimulateCAR(gen, mat.NewSymDense(p, nil), n, 1.0)
	require.NoError(t, err)

	data, err := model.Standardize(raw)
	require.NoError(t, err)
	return data
}

func shortConfig() Config {
	cfg := DefaultConfig()
	cfg.Iterations = 300
	cfg.BurnIn = 100
	cfg.Thin = 3
	cfg.Seed = 17
	return cfg
}
