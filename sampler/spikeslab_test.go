package sampler

import (
	"math"
	"testing"

	"github.com/CraigKelly/carnet/model"
	"github.com/CraigKelly/carnet/rand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaplaceLogProb(t *testing.T) {
	assert := assert.New(t)

	// rate/2 * exp(-rate |x|)
	assert.InDelta(math.Log(1.0)-2*0.3, laplaceLogProb(0.3, SlabRate), 1e-12)
	assert.InDelta(math.Log(10.0)-20*0.3, laplaceLogProb(-0.3, SpikeRate), 1e-12)
}

func TestInclusionProb(t *testing.T) {
	assert := assert.New(t)

	// At zero the spike density is 10x the slab density
	assert.InDelta(1.0/11.0, InclusionProb(0.5, 0), 1e-12)

	// Large effects belong to the slab
	assert.True(InclusionProb(0.5, 1.0) > 0.999)

	// Far out in the tails we must not get NaN from underflow
	q := InclusionProb(0.5, 200)
	assert.False(math.IsNaN(q))
	assert.InDelta(1.0, q, 1e-12)

	q = InclusionProb(0.75, 0.4)
	slab := 0.75 * 1.0 * math.Exp(-0.8)
	spike := 0.25 * 10.0 * math.Exp(-8)
	assert.InDelta(slab/(slab+spike), q, 1e-12)
}

func TestAdjustStep(t *testing.T) {
	assert := assert.New(t)

	assert.InDelta(1.0, adjustStep(1.0, TargetAcceptance), 1e-12)
	assert.True(adjustStep(1.0, 0.2) < 1.0)
	assert.True(adjustStep(1.0, 0.8) > 1.0)
	assert.Equal(MinStep, adjustStep(1.0, 0.0))
	assert.Equal(MaxStep, adjustStep(1.0, 1.0))
}

func TestStepTunerOnlyAdaptsWhenAsked(t *testing.T) {
	assert := assert.New(t)

	tuner := NewStepTuner(2, 0.5, 4)
	for i := 0; i < 4; i++ {
		tuner.Record(0, false, false)
	}
	assert.Equal(0.5, tuner.Steps[0])
	assert.Equal(0, tuner.Proposed[0])

	for i := 0; i < 4; i++ {
		tuner.Record(1, false, true)
	}
	assert.Equal(MinStep, tuner.Steps[1])
	assert.Equal(0, tuner.Proposed[1])
}

func TestSpikeSlabSweepKeepsResiduals(t *testing.T) {
	assert := assert.New(t)

	data, edges, priorEdge := sparseProblem(t, 40, 11)
	prior, err := model.NewPrior(priorEdge, edges.Num())
	require.NoError(t, err)

	gen, err := rand.NewGenerator(3)
	require.NoError(t, err)

	st := NewState(prior)
	car := NewCAR(data)
	car.Refresh(edges, st.Beta)
	tuner := NewStepTuner(edges.Num(), 0.3, 10)
	ss := NewSpikeSlab(gen, edges, prior, car, tuner, NewDiagnostics(nil), false)

	for sweep := 1; sweep <= 50; sweep++ {
		ss.Sweep(st, sweep, true)
		require.NoError(t, st.Check())

		// Incremental M must equal a fresh assembly of Beta
		for k, b := range st.Beta {
			i, j := edges.Cell(k)
			assert.InDelta(b, car.M.At(i, j), 1e-12)
			assert.InDelta(b, car.M.At(j, i), 1e-12)
		}
	}
}

func TestSpikeSlabRejectsNonFiniteRatio(t *testing.T) {
	assert := assert.New(t)

	data, edges, priorEdge := sparseProblem(t, 40, 11)
	prior, err := model.NewPrior(priorEdge, edges.Num())
	require.NoError(t, err)

	gen, err := rand.NewGenerator(5)
	require.NoError(t, err)

	st := NewState(prior)
	for k := range st.Beta {
		st.Beta[k] = 0.1
	}
	st.Tau = math.NaN()

	car := NewCAR(data)
	car.Refresh(edges, st.Beta)
	ssr := car.SSR()

	diag := NewDiagnostics(nil)
	ss := NewSpikeSlab(gen, edges, prior, car, NewStepTuner(edges.Num(), 0.3, 10), diag, false)

	ss.Sweep(st, 1, true)
	for _, b := range st.Beta {
		assert.Equal(0.1, b)
	}
	assert.Equal(ssr, car.SSR())
	assert.Equal(int64(edges.Num()), diag.NumericRejects)
	assert.Len(diag.Warnings, edges.Num())

	// Further rejects are counted but only warn once per edge
	ss.Sweep(st, 2, true)
	assert.Equal(int64(2*edges.Num()), diag.NumericRejects)
	assert.Len(diag.Warnings, edges.Num())
	assert.Equal(ssr, car.SSR())
}

func TestNoisePrecisionPosterior(t *testing.T) {
	assert := assert.New(t)

	data, edges, _ := sparseProblem(t, 20, 13)
	car := NewCAR(data)
	car.Refresh(edges, make([]float64, edges.Num()))

	gen, err := rand.NewGenerator(4)
	require.NoError(t, err)

	np := NewNoisePrecision(gen, car, false)
	shape, rate := np.Posterior()
	assert.InDelta(8+0.5*80, shape, 1e-12)
	// Beta=0 means residuals are the data: each standardized column has SS n-1
	assert.InDelta(8+0.5*4*19, rate, 1e-9)

	st := &State{Tau: 1}
	for i := 0; i < 100; i++ {
		_, ok := np.Sample(st)
		assert.True(ok)
		assert.True(st.Tau > 0)
	}

	shape, rate = NewNoisePrecision(gen, car, true).Posterior()
	assert.Equal(TauPriorShape, shape)
	assert.Equal(TauPriorRate, rate)
}
