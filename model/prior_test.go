package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestPriorHyperparameters(t *testing.T) {
	assert := assert.New(t)

	pr, err := NewPrior([]int{1, 0, 1}, 3)
	assert.NoError(err)
	assert.Equal(3, pr.Num())

	assert.Equal([]float64{30, 10, 30}, pr.Alpha)
	assert.Equal([]float64{10, 10, 10}, pr.Beta)

	// Literal hyperparameters give 0.75, not the documented 0.8
	assert.InDelta(0.75, pr.Mean(0), 1e-12)
	assert.InDelta(0.50, pr.Mean(1), 1e-12)
}

func TestPriorErrors(t *testing.T) {
	assert := assert.New(t)

	pr, err := NewPrior([]int{1, 0}, 3)
	assert.Nil(pr)
	assert.True(errors.Is(err, ErrConfiguration))

	pr, err = NewPrior([]int{1, 2, 0}, 3)
	assert.Nil(pr)
	assert.True(errors.Is(err, ErrConfiguration))
}
