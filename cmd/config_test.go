package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CraigKelly/carnet/sampler"
)

func testRunCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addRunFlags(cmd)
	cmd.Flags().Int64("seed", 1, "")
	return cmd
}

func TestParseRunConfig(t *testing.T) {
	assert := assert.New(t)

	cfg := sampler.DefaultConfig()
	err := parseRunConfig([]byte(`
iterations: 2000
burnin: 500
thin: 5
chains: 3
monitor: [Beta, Gamma, tau]
seed: 42
prior_only: true
adapt_interval: 25
initial_step: 0.1
`), &cfg)
	assert.NoError(err)
	assert.Equal(2000, cfg.Iterations)
	assert.Equal(500, cfg.BurnIn)
	assert.Equal(5, cfg.Thin)
	assert.Equal(3, cfg.Chains)
	assert.Equal([]string{"Beta", "Gamma", "tau"}, cfg.Monitor)
	assert.Equal(int64(42), cfg.Seed)
	assert.True(cfg.PriorOnly)
	assert.Equal(25, cfg.AdaptInterval)
	assert.InDelta(0.1, cfg.InitialStep, 1e-12)
	assert.NoError(cfg.Check())

	// Keys not given keep their defaults
	cfg = sampler.DefaultConfig()
	assert.NoError(parseRunConfig([]byte("thin: 2\n"), &cfg))
	assert.Equal(2, cfg.Thin)
	assert.Equal(sampler.DefaultConfig().Iterations, cfg.Iterations)

	// Empty file is fine
	cfg = sampler.DefaultConfig()
	assert.NoError(parseRunConfig(nil, &cfg))
	assert.Equal(sampler.DefaultConfig(), cfg)

	// Typos are not
	cfg = sampler.DefaultConfig()
	assert.Error(parseRunConfig([]byte("iteratons: 5\n"), &cfg))
	assert.Error(parseRunConfig([]byte("thin: [1, 2]\n"), &cfg))
}

func TestLoadRunConfigFlagsOverride(t *testing.T) {
	assert := assert.New(t)

	fn := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("iterations: 3000\nburnin: 1000\nthin: 4\nseed: 9\n"), 0o644))

	cmd := testRunCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--thin", "7", "--chains", "2", "--monitor", "Gamma,p"}))

	cfg, err := loadRunConfig(fn, cmd)
	assert.NoError(err)
	assert.Equal(3000, cfg.Iterations) // file
	assert.Equal(1000, cfg.BurnIn)     // file
	assert.Equal(7, cfg.Thin)          // flag beats file
	assert.Equal(2, cfg.Chains)        // flag over default
	assert.Equal([]string{"Gamma", "p"}, cfg.Monitor)
	assert.Equal(int64(9), cfg.Seed) // seed flag not set

	cmd = testRunCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--seed", "11", "--prior-only"}))
	cfg, err = loadRunConfig("", cmd)
	assert.NoError(err)
	assert.Equal(int64(11), cfg.Seed)
	assert.True(cfg.PriorOnly)
	assert.Equal(sampler.DefaultConfig().Iterations, cfg.Iterations)

	_, err = loadRunConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(err)
}
