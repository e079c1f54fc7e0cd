package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgreement(t *testing.T) {
	assert := assert.New(t)

	// Hellinger between [0.25 0.75] and [0.5 0.5]
	p1 := math.Pow(math.Sqrt(0.75)-math.Sqrt(0.50), 2)
	p2 := math.Pow(math.Sqrt(0.25)-math.Sqrt(0.50), 2)
	hellExp := math.Sqrt(p1+p2) / math.Sqrt2

	/* JS Divergence calc via python with from scipy.stats import entropy
	print(jsd([0.5, 0.5], [0.25, 0.75]))
	*/
	jsExp := 0.0487949406953985

	const eps = 1e-8

	a, err := NewAgreement([]float64{0.75, 0.75}, []float64{0.5, 0.5})
	assert.NoError(err)
	assert.InEpsilon(0.25, a.MeanAbsError, eps)
	assert.InEpsilon(0.25, a.MaxAbsError, eps)
	assert.InEpsilon(hellExp, a.MeanHellinger, eps)
	assert.InEpsilon(hellExp, a.MaxHellinger, eps)
	assert.InEpsilon(jsExp, a.MeanJSDiverge, eps)
	assert.InEpsilon(jsExp, a.MaxJSDiverge, eps)

	// One matching edge halves the means but not the maxes
	a, err = NewAgreement([]float64{0.75, 0.3}, []float64{0.5, 0.3})
	assert.NoError(err)
	assert.InEpsilon(0.125, a.MeanAbsError, eps)
	assert.InEpsilon(0.25, a.MaxAbsError, eps)
	assert.InEpsilon(hellExp/2, a.MeanHellinger, eps)
	assert.InEpsilon(jsExp, a.MaxJSDiverge, eps)

	// Certain edges must not produce NaN
	a, err = NewAgreement([]float64{1, 0}, []float64{1, 0})
	assert.NoError(err)
	assert.Equal(0.0, a.MaxJSDiverge)
	assert.Equal(0.0, a.MaxHellinger)

	_, err = NewAgreement([]float64{1}, []float64{1, 0})
	assert.Error(err)
	_, err = NewAgreement(nil, nil)
	assert.Error(err)
}
