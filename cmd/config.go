package cmd

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/CraigKelly/carnet/sampler"
)

// loadRunConfig starts from the sampler defaults, applies the YAML file at
// path (if any), then applies every flag the user explicitly set.
func loadRunConfig(path string, cmd *cobra.Command) (sampler.Config, error) {
	cfg := sampler.DefaultConfig()

	if len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "Could not READ config from %s", path)
		}
		if err = parseRunConfig(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "Could not PARSE config %s", path)
		}
	}

	if cmd == nil {
		return cfg, nil
	}

	flags := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && flags.Changed(name) {
			err = apply()
		}
	}

	set("iterations", func() (e error) { cfg.Iterations, e = flags.GetInt("iterations"); return })
	set("burnin", func() (e error) { cfg.BurnIn, e = flags.GetInt("burnin"); return })
	set("thin", func() (e error) { cfg.Thin, e = flags.GetInt("thin"); return })
	set("chains", func() (e error) { cfg.Chains, e = flags.GetInt("chains"); return })
	set("monitor", func() (e error) { cfg.Monitor, e = flags.GetStringSlice("monitor"); return })
	set("prior-only", func() (e error) { cfg.PriorOnly, e = flags.GetBool("prior-only"); return })
	set("adapt-interval", func() (e error) { cfg.AdaptInterval, e = flags.GetInt("adapt-interval"); return })
	set("initial-step", func() (e error) { cfg.InitialStep, e = flags.GetFloat64("initial-step"); return })
	set("seed", func() (e error) { cfg.Seed, e = flags.GetInt64("seed"); return })

	return cfg, errors.Wrap(err, "Could not read command line flags")
}

// parseRunConfig decodes YAML over the given config. Unknown keys are an
// error so that typos do not silently fall back to defaults.
func parseRunConfig(data []byte, cfg *sampler.Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}
