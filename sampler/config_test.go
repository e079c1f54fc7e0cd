package sampler

import (
	"testing"

	"github.com/CraigKelly/carnet/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseMonitor(t *testing.T) {
	assert := assert.New(t)

	m, err := ParseMonitor(nil)
	assert.NoError(err)
	assert.Equal(DefaultMonitor, m)
	assert.Equal([]string{ParamBeta, ParamGamma}, m.Names())

	m, err = ParseMonitor([]string{"tau", " p", "Beta"})
	assert.NoError(err)
	assert.Equal(Monitor{Beta: true, P: true, Tau: true}, m)

	_, err = ParseMonitor([]string{"Beta", "sigma"})
	assert.True(errors.Is(err, model.ErrConfiguration))
}

func TestConfigCheck(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(DefaultConfig().Check())
	assert.Equal(500, DefaultConfig().ChainLength())

	breakers := []func(c *Config){
		func(c *Config) { c.Iterations = 0 },
		func(c *Config) { c.BurnIn = -1 },
		func(c *Config) { c.BurnIn = c.Iterations },
		func(c *Config) { c.Thin = 0 },
		func(c *Config) { c.Chains = 0 },
		func(c *Config) { c.AdaptInterval = 0 },
		func(c *Config) { c.InitialStep = 0 },
		func(c *Config) { c.Monitor = []string{"Delta"} },
	}

	for i, brk := range breakers {
		cfg := DefaultConfig()
		brk(&cfg)
		err := cfg.Check()
		assert.Error(err, "breaker %d", i)
		assert.True(errors.Is(err, model.ErrConfiguration), "breaker %d", i)
	}
}

func TestChainLengthFormula(t *testing.T) {
	assert := assert.New(t)

	cases := []struct{ iter, burn, thin, exp int }{
		{10, 0, 1, 10},
		{10, 5, 1, 5},
		{10, 5, 2, 2},
		{10, 5, 10, 0},
		{10000, 5000, 10, 500},
		{101, 0, 10, 10},
	}
	for _, c := range cases {
		cfg := Config{Iterations: c.iter, BurnIn: c.burn, Thin: c.thin}
		assert.Equal(c.exp, cfg.ChainLength())

		count := 0
		for s := 1; s <= c.iter; s++ {
			if cfg.Recorded(s) {
				count++
			}
		}
		assert.Equal(c.exp, count)
	}
}
