package sampler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadCheckpointsInvalid(t *testing.T) {
	assert := assert.New(t)

	for _, bad := range []string{
		``,
		`{"chain": 0}`,
		`[null]`,
		`[{"chain": 0, "iteration": 5, "seed_key": [1, 0]}]`,
		`[{"chain": 0, "iteration": 5, "state": {"gamma": [0], "p": [0.5], "tauprior": [20], "beta": [0], "tau": 1}, "tuner": {"steps": [0.5]}}]`,
		`[{"chain": 0, "iteration": 5, "state": {"gamma": [3], "p": [0.5], "tauprior": [20], "beta": [0], "tau": 1}, "tuner": {"steps": [0.5]}, "seed_key": [1, 0]}]`,
	} {
		_, err := ReadCheckpoints(strings.NewReader(bad))
		assert.Error(err, bad)
	}

	cps, err := ReadCheckpoints(strings.NewReader(`[{"chain": 0, "iteration": 5, "state": {"gamma": [1], "p": [0.5], "tauprior": [2], "beta": [0.1], "tau": 1}, "tuner": {"steps": [0.5]}, "seed_key": [1, 0], "draws": 12}]`))
	assert.NoError(err)
	assert.Len(cps, 1)
	assert.Equal(uint64(12), cps[0].Draws)
}
